package engine

import (
	"time"

	"github.com/ojimaabraham/chronos/internal/lockstore"
	"github.com/ojimaabraham/chronos/internal/platform"
)

// recordFor builds the lock-file record for a freshly admitted partition.
func recordFor(deviceIdx int, fraction float32, partitionID, user string, pid int, now time.Time, p platform.Platform) lockstore.Record {
	return lockstore.Record{
		Pid:       pid,
		User:      user,
		Host:      p.Hostname(),
		Time:      p.CurrentTimeString(now),
		Device:    deviceIdx,
		Fraction:  fraction,
		Partition: partitionID,
	}
}
