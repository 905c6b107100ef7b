package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ojimaabraham/chronos/internal/device"
	"github.com/ojimaabraham/chronos/internal/lockstore"
	"github.com/ojimaabraham/chronos/internal/metrics"
	"github.com/ojimaabraham/chronos/internal/platform"
	"pkt.systems/pslog"
)

// Engine is the partition lifecycle engine: components C through G of
// spec.md §2, all guarded by one mutex. One Engine is constructed per
// process lifetime (see SPEC_FULL.md's process-model note) and torn down
// with Close.
type Engine struct {
	mu         sync.Mutex
	instanceID string
	registry   *device.Registry
	locks      *lockstore.Store
	table      table

	platform platform.Platform
	clk      Clock
	logger   pslog.Logger
	metrics  *metrics.Registry

	monitorPeriod time.Duration
	stop          chan struct{}
	done          chan struct{}
	closeOnce     sync.Once
}

// New constructs an Engine: enumerates devices, prepares the lock
// directory, and starts the expiration monitor. It never returns an error
// for "no devices found" — that degrades to an empty, permanently
// unusable-by-index registry per spec.md §4.2.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if cfg.Enumerator == nil {
		return nil, fmt.Errorf("engine: Config.Enumerator is required")
	}

	// A time-ordered (v7) id is used purely so an operator grepping logs can
	// tell which process run a line came from — never as a partition id,
	// which must follow the fixed partition_NNNN counter format.
	instanceID := uuid.Must(uuid.NewV7()).String()
	logger := cfg.Logger.With("instance", instanceID)

	locks := cfg.locksFor()
	if err := locks.Init(); err != nil {
		logger.Warn("engine.lockdir.init_failed", "dir", locks.BaseDir(), "error", err)
	}

	registry := device.New(ctx, cfg.Enumerator, logger)

	e := &Engine{
		instanceID:    instanceID,
		registry:      registry,
		locks:         locks,
		platform:      cfg.Platform,
		clk:           cfg.Clock,
		logger:        logger,
		metrics:       cfg.Metrics,
		monitorPeriod: cfg.MonitorPeriod,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	go e.monitorLoop()
	return e, nil
}

// InstanceID returns the UUIDv7 generated for this Engine's lifetime, used
// only to correlate log lines from one process run — never as a partition
// id, which must follow the fixed partition_NNNN counter format.
func (e *Engine) InstanceID() string {
	return e.instanceID
}

// DeviceCount returns the number of registered devices.
func (e *Engine) DeviceCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Len()
}

// validateDeviceIndex is shared by every public operation that takes a
// device index; it does not acquire the guard — callers already hold it.
func (e *Engine) validateDeviceIndex(idx int) error {
	if !e.registry.Valid(idx) {
		return invalidArgument("device index " + strconv.Itoa(idx) + " out of range")
	}
	return nil
}

// Close stops the monitor, releases every still-active partition, then
// releases the GPU context — spec.md §4.4's shutdown sequence, in order.
func (e *Engine) Close(ctx context.Context) error {
	e.closeOnce.Do(func() {
		close(e.stop)
		<-e.done

		e.mu.Lock()
		for _, p := range e.table.active() {
			e.releaseLocked(p, "shutdown")
		}
		e.table.reapInactive()
		e.mu.Unlock()
	})
	return e.registry.Close()
}
