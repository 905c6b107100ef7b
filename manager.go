package chronos

import (
	"context"

	"github.com/ojimaabraham/chronos/internal/engine"
)

// Snapshot is a read-only view of one active partition, as returned by
// Manager.List.
type Snapshot = engine.Snapshot

// DeviceStat is a point-in-time utilization report for one device, as
// returned by Manager.DeviceStats.
type DeviceStat = engine.DeviceStat

// Manager is the facade over the partition lifecycle engine: one per
// process, constructed once and torn down with Close. See SPEC_FULL.md's
// process-model note — a Manager is meant to be built, used for the
// duration of one logical operation or one embedding program's lifetime,
// then closed; it does not persist anything beyond the lock files its
// operations create.
type Manager struct {
	eng *engine.Engine
}

// NewManager enumerates devices and starts the expiration monitor. Call
// Close when done.
func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	eng, err := engine.New(ctx, cfg.toEngineConfig())
	if err != nil {
		return nil, err
	}
	return &Manager{eng: eng}, nil
}

// DeviceCount returns the number of devices this Manager discovered.
func (m *Manager) DeviceCount() int {
	return m.eng.DeviceCount()
}

// Create admits a new partition: memoryFraction must be in (0, 1], and
// durationSeconds must be positive. It returns the new partition's id or a
// Failure describing why admission was refused.
func (m *Manager) Create(deviceIndex int, memoryFraction float32, durationSeconds int) (string, error) {
	return m.eng.Create(deviceIndex, memoryFraction, durationSeconds)
}

// Release ends a partition before its deadline.
func (m *Manager) Release(id string) error {
	return m.eng.Release(id)
}

// List returns every currently active partition. When verbose is true the
// listing is also emitted to the configured logger.
func (m *Manager) List(verbose bool) []Snapshot {
	return m.eng.List(verbose)
}

// DeviceStats reports one DeviceStat per registered device.
func (m *Manager) DeviceStats() []DeviceStat {
	return m.eng.DeviceStats()
}

// AvailableFraction reports the fraction of deviceIndex's memory this
// process has not reserved.
func (m *Manager) AvailableFraction(deviceIndex int) (float64, error) {
	return m.eng.AvailableFraction(deviceIndex)
}

// Close stops the expiration monitor, releases every still-active
// partition, and releases the underlying device context.
func (m *Manager) Close(ctx context.Context) error {
	return m.eng.Close(ctx)
}
