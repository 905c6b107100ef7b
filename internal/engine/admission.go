package engine

// Create runs the admission sequence in spec.md §4.1 step by step: validate
// arguments, check memory, consult the lock store, create the lock, credit
// the device, insert the record. Every step after argument validation runs
// under the guard so the sequence is indivisible with respect to both the
// in-process table and the on-disk lock store.
func (e *Engine) Create(deviceIdx int, memoryFraction float32, durationSeconds int) (string, error) {
	if memoryFraction <= 0 || memoryFraction > 1 {
		e.logger.Warn("engine.create.invalid_argument", "field", "memory_fraction", "value", memoryFraction)
		e.observeAdmission(CodeInvalidArgument)
		return "", invalidArgument("memory fraction must be in (0, 1]")
	}
	if durationSeconds <= 0 {
		e.logger.Warn("engine.create.invalid_argument", "field", "duration", "value", durationSeconds)
		e.observeAdmission(CodeInvalidArgument)
		return "", invalidArgument("duration must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateDeviceIndex(deviceIdx); err != nil {
		e.logger.Warn("engine.create.invalid_argument", "field", "device_index", "value", deviceIdx)
		e.observeAdmission(CodeInvalidArgument)
		return "", err
	}

	dev := e.registry.At(deviceIdx)
	requested := dev.Reserve(memoryFraction)
	if requested > dev.AvailableMemory {
		e.logger.Warn("engine.create.insufficient_memory",
			"device", deviceIdx, "requested", requested, "available", dev.AvailableMemory)
		e.observeAdmission(CodeInsufficientMemory)
		return "", insufficientMemory("not enough available memory on this device")
	}

	currentUser := e.platform.Username()
	if e.locks.Exists(deviceIdx, memoryFraction) {
		if owner := e.locks.Owner(deviceIdx, memoryFraction); owner != "" && owner != currentUser {
			e.logger.Warn("engine.create.contended", "device", deviceIdx, "fraction", memoryFraction, "owner", owner)
			e.observeAdmission(CodeContended)
			return "", contended("locked by user " + owner)
		}
	}

	id := e.table.nextID()
	now := e.clk.Now()
	pid := e.platform.ProcessID()

	rec := recordFor(deviceIdx, memoryFraction, id, currentUser, pid, now, e.platform)
	if err := e.locks.Create(deviceIdx, memoryFraction, rec); err != nil {
		e.logger.Warn("engine.create.contended", "device", deviceIdx, "fraction", memoryFraction, "error", err)
		e.observeAdmission(CodeContended)
		return "", contended("lost the race to create the lock file")
	}

	dev.AvailableMemory -= requested

	e.table.insert(&Partition{
		ID:             id,
		DeviceHandle:   dev.Handle,
		DeviceIndex:    deviceIdx,
		MemoryFraction: memoryFraction,
		Duration:       secondsToDuration(durationSeconds),
		StartTime:      now,
		Active:         true,
		Owner:          currentUser,
		ProcessID:      pid,
	})

	e.logger.Info("engine.create.ok",
		"partition", id, "device", deviceIdx, "fraction", memoryFraction,
		"bytes", requested, "duration_seconds", durationSeconds, "owner", currentUser, "pid", pid,
	)
	e.observeAdmission("ok")
	e.refreshDeviceGaugesLocked(deviceIdx)
	return id, nil
}

func (e *Engine) observeAdmission(outcome string) {
	e.metrics.ObserveAdmission(outcome)
}
