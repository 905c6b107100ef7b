package chronos

import (
	"time"

	"github.com/ojimaabraham/chronos/internal/device"
	"github.com/ojimaabraham/chronos/internal/engine"
	"github.com/ojimaabraham/chronos/internal/gpuenum"
	"github.com/ojimaabraham/chronos/internal/metrics"
	"github.com/ojimaabraham/chronos/internal/platform"
	"pkt.systems/pslog"
)

// Config configures a Manager. The zero value is valid: it enumerates real
// NVML devices, stores lock files under the platform temp directory, and
// discards log output.
type Config struct {
	// Backend selects the device enumerator. Empty means gpuenum.BackendNVML.
	Backend gpuenum.Backend

	// LockDir overrides the directory lock files are created under. Empty
	// means platform.DefaultLockDir.
	LockDir string

	// Logger receives structured diagnostic events. Nil means a discard
	// logger.
	Logger pslog.Logger

	// Metrics, if set, receives admission/release/device observations.
	Metrics *metrics.Registry

	// MonitorPeriod overrides the expiration sweep interval. Zero means
	// engine.DefaultMonitorPeriod.
	MonitorPeriod time.Duration

	// Enumerator overrides Backend entirely with a caller-supplied
	// device.Enumerator — used by tests to inject gpuenum.Static or a fake.
	Enumerator device.Enumerator

	// Platform overrides the production platform.Platform — used by tests
	// to inject platform.Fake.
	Platform platform.Platform

	// Clock overrides the production engine.Clock — used by tests to inject
	// engine.NewManualClock for deterministic expiration.
	Clock engine.Clock
}

func (c Config) toEngineConfig() engine.Config {
	enumerator := c.Enumerator
	if enumerator == nil {
		enumerator = gpuenum.Select(c.Backend)
	}
	return engine.Config{
		Enumerator:    enumerator,
		Platform:      c.Platform,
		Clock:         c.Clock,
		Logger:        c.Logger,
		Metrics:       c.Metrics,
		LockDir:       c.LockDir,
		MonitorPeriod: c.MonitorPeriod,
	}
}
