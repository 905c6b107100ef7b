package engine

import "time"

// Partition is one active or recently-deactivated lease. It is created by
// admission, mutated only to flip Active false (by the monitor or a
// release), and removed from the table by the monitor's next sweep after
// that — or at once, when Release or Close deactivates it.
type Partition struct {
	ID             string
	DeviceHandle   any
	DeviceIndex    int
	MemoryFraction float32
	Duration       time.Duration
	StartTime      time.Time
	Active         bool
	Owner          string
	ProcessID      int
}

// Snapshot is the read-only view of a Partition that List returns — it
// adds the derived fields (device name, remaining time) that a caller
// needs without exposing the live record.
type Snapshot struct {
	ID             string
	DeviceIndex    int
	DeviceName     string
	MemoryFraction float32
	StartTime      time.Time
	Duration       time.Duration
	Remaining      time.Duration
	Owner          string
	ProcessID      int
}
