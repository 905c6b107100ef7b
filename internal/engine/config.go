package engine

import (
	"time"

	"github.com/ojimaabraham/chronos/internal/device"
	"github.com/ojimaabraham/chronos/internal/loggingutil"
	"github.com/ojimaabraham/chronos/internal/lockstore"
	"github.com/ojimaabraham/chronos/internal/metrics"
	"github.com/ojimaabraham/chronos/internal/platform"
	"pkt.systems/pslog"
)

// DefaultMonitorPeriod is the nominal expiration-sweep interval spec.md §4.4
// mandates: 1 second, best-effort late, never early.
const DefaultMonitorPeriod = 1 * time.Second

// Config collects every dependency and behavioral knob the engine needs.
// It mirrors the teacher's internal/core.Config shape: concrete
// dependencies plus a handful of durations, nothing transport-specific.
type Config struct {
	Enumerator    device.Enumerator
	Platform      platform.Platform
	Clock         Clock
	Logger        pslog.Logger
	Metrics       *metrics.Registry
	LockDir       string
	MonitorPeriod time.Duration
}

func (c Config) withDefaults() Config {
	if c.Platform == nil {
		c.Platform = platform.New()
	}
	if c.Clock == nil {
		c.Clock = RealClock{}
	}
	c.Logger = loggingutil.Ensure(c.Logger)
	if c.MonitorPeriod <= 0 {
		c.MonitorPeriod = DefaultMonitorPeriod
	}
	if c.LockDir == "" {
		c.LockDir = platform.DefaultLockDir(c.Platform)
	}
	return c
}

// locksFor builds the lockstore.Store this config derives from LockDir and
// Platform — split out so tests can construct one without a full Engine.
func (c Config) locksFor() *lockstore.Store {
	return lockstore.New(c.LockDir, c.Platform)
}
