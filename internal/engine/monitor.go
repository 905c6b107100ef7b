package engine

import (
	"strconv"
	"time"

	"github.com/ojimaabraham/chronos/internal/platform"
)

// monitorLoop is the background expiration monitor, component F. It wakes
// on a best-effort 1-second period (never early, late under load is fine)
// and releases every partition whose Duration has elapsed. It is the only
// goroutine besides the caller's own that ever touches the Engine, and it
// always takes e.mu before touching the table or registry.
func (e *Engine) monitorLoop() {
	defer close(e.done)
	for {
		select {
		case <-e.stop:
			return
		case <-e.clk.After(e.monitorPeriod):
			e.sweep()
		}
	}
}

// sweep releases every partition whose deadline has passed and then reaps
// the table. now is read once so every partition in this pass is judged
// against the same instant.
func (e *Engine) sweep() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clk.Now()
	for _, p := range e.table.active() {
		if now.Sub(p.StartTime) >= p.Duration {
			e.releaseLocked(p, "expired")
		}
	}
	e.table.reapInactive()
}

// releaseLocked is the single release procedure every caller funnels
// through: manual Release, the expiration sweep, and Close on shutdown.
// Callers must already hold e.mu. It credits the device's available
// memory, deletes the lock file, marks the partition inactive, and reports
// the outcome — in that order, so a partition is never left both active
// and uncounted.
func (e *Engine) releaseLocked(p *Partition, reason string) {
	if !p.Active {
		return
	}
	if e.registry.Valid(p.DeviceIndex) {
		dev := e.registry.At(p.DeviceIndex)
		dev.AvailableMemory += dev.Reserve(p.MemoryFraction)
	}
	if err := e.locks.Delete(p.DeviceIndex, p.MemoryFraction); err != nil && !platform.ErrNotExist(err) {
		e.logger.Warn("engine.release.lock_delete_failed",
			"partition", p.ID, "device", p.DeviceIndex, "error", err)
	}
	p.Active = false
	e.metrics.ObserveRelease(reason)
	e.logger.Info("engine.release.ok",
		"partition", p.ID, "device", p.DeviceIndex, "fraction", p.MemoryFraction, "reason", reason)
	e.refreshDeviceGaugesLocked(p.DeviceIndex)
}

// refreshDeviceGaugesLocked snapshots one device's live numbers into the
// metrics registry. Callers must already hold e.mu.
func (e *Engine) refreshDeviceGaugesLocked(deviceIdx int) {
	if !e.registry.Valid(deviceIdx) {
		return
	}
	dev := e.registry.At(deviceIdx)
	active := 0
	for _, p := range e.table.active() {
		if p.DeviceIndex == deviceIdx {
			active++
		}
	}
	e.metrics.SetDeviceGauges(deviceLabel(deviceIdx), active, dev.AvailableMemory)
}

func deviceLabel(idx int) string {
	return strconv.Itoa(idx)
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
