package engine

// Release ends a partition before its deadline. Releasing an id that does
// not exist or has already expired is NotFound, not a silent no-op — a
// caller racing the monitor deserves to know which one got there first.
// Releasing a partition owned by a different user than the process's
// current identity is PermissionDenied and leaves the partition untouched,
// per spec.md §8's P4 ownership-integrity property.
func (e *Engine) Release(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.table.find(id)
	if p == nil || !p.Active {
		e.logger.Warn("engine.release.not_found", "partition", id)
		return notFound("no active partition with that id")
	}
	if currentUser := e.platform.Username(); p.Owner != currentUser {
		e.logger.Warn("engine.release.permission_denied",
			"partition", id, "owner", p.Owner, "caller", currentUser)
		return permissionDenied("partition owned by " + p.Owner)
	}
	e.releaseLocked(p, "manual")
	e.table.reapInactive()
	return nil
}

// List produces a snapshot of every currently active partition. When
// verbose is true it also emits the listing to the diagnostic logger, one
// structured entry per partition, per spec.md §4.1's "additionally emits
// the formatted listing to the diagnostic stream" — the CLI owns the
// human-facing text rendering; this is the core's own logging of the same
// event.
func (e *Engine) List(verbose bool) []Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clk.Now()
	active := e.table.active()
	out := make([]Snapshot, 0, len(active))
	for _, p := range active {
		name := "Unknown"
		if e.registry.Valid(p.DeviceIndex) {
			name = e.registry.At(p.DeviceIndex).Name
		}
		elapsed := now.Sub(p.StartTime)
		remaining := p.Duration - elapsed
		if remaining < 0 {
			remaining = 0
		}
		snap := Snapshot{
			ID:             p.ID,
			DeviceIndex:    p.DeviceIndex,
			DeviceName:     name,
			MemoryFraction: p.MemoryFraction,
			StartTime:      p.StartTime,
			Duration:       p.Duration,
			Remaining:      remaining,
			Owner:          p.Owner,
			ProcessID:      p.ProcessID,
		}
		if verbose {
			e.logger.Info("engine.list.entry",
				"partition", snap.ID, "device", snap.DeviceIndex, "device_name", snap.DeviceName,
				"fraction", snap.MemoryFraction, "remaining_seconds", int(snap.Remaining.Seconds()),
				"owner", snap.Owner, "pid", snap.ProcessID,
			)
		}
		out = append(out, snap)
	}
	return out
}

// DeviceStat is one device's point-in-time utilization report.
type DeviceStat struct {
	Index            int
	Name             string
	Vendor           string
	Version          string
	Type             string
	TotalMemory      uint64
	AvailableMemory  uint64
	ReservedMemory   uint64
	UsagePercent     float64
	AvailablePercent float64
	ActivePartitions int
}

// DeviceStats reports one DeviceStat per registered device, in registry
// order. It never returns an error; an empty registry yields an empty
// slice, matching spec.md §4.2's degrade-to-empty contract.
func (e *Engine) DeviceStats() []DeviceStat {
	e.mu.Lock()
	defer e.mu.Unlock()

	devices := e.registry.All()
	active := e.table.active()
	out := make([]DeviceStat, len(devices))
	for i, d := range devices {
		count := 0
		for _, p := range active {
			if p.DeviceIndex == i {
				count++
			}
		}
		out[i] = DeviceStat{
			Index:            i,
			Name:             d.Name,
			Vendor:           d.Vendor,
			Version:          d.Version,
			Type:             d.Type.String(),
			TotalMemory:      d.TotalMemory,
			AvailableMemory:  d.AvailableMemory,
			ReservedMemory:   d.Reserved(),
			UsagePercent:     d.UsagePercent(),
			AvailablePercent: d.AvailablePercent(),
			ActivePartitions: count,
		}
	}
	return out
}

// AvailableFraction reports the fraction of deviceIdx's memory this
// process has not reserved, in [0, 1]. Per SPEC_FULL.md §9 it reflects
// only this process's own bookkeeping — it has no visibility into other
// processes' reservations beyond what the lock files already gate at
// admission time.
func (e *Engine) AvailableFraction(deviceIdx int) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateDeviceIndex(deviceIdx); err != nil {
		return 0, err
	}
	return e.registry.At(deviceIdx).AvailablePercent() / 100.0, nil
}
