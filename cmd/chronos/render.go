package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/ojimaabraham/chronos"
)

const bytesPerMB = 1 << 20

func mb(bytes uint64) uint64 {
	return bytes / bytesPerMB
}

// renderListing writes the "Active partitions:" textual format spec.md §6
// defines, byte-for-byte. An empty snapshot list prints "No active
// partitions" instead of the header.
func renderListing(w io.Writer, snapshots []chronos.Snapshot) {
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No active partitions")
		return
	}
	fmt.Fprintln(w, "Active partitions:")
	fmt.Fprintln(w, "-------------------")
	for _, s := range snapshots {
		fmt.Fprintf(w, "ID: %s\n", s.ID)
		fmt.Fprintf(w, "Device: %d (%s)\n", s.DeviceIndex, s.DeviceName)
		fmt.Fprintf(w, "Memory: %.2f%%\n", s.MemoryFraction*100)
		fmt.Fprintf(w, "Time remaining: %ds\n", int(s.Remaining.Seconds()))
		fmt.Fprintf(w, "Owner: %s (pid %d)\n", s.Owner, s.ProcessID)
		fmt.Fprintln(w)
	}
}

// renderDeviceStats writes the per-device textual format spec.md §6
// defines. When human is true, each memory line is additionally annotated
// with a humanized size; the MB columns themselves are unchanged.
func renderDeviceStats(w io.Writer, stats []chronos.DeviceStat, human bool) {
	for _, d := range stats {
		fmt.Fprintf(w, "Device %d: %s\n", d.Index, d.Name)
		fmt.Fprintf(w, "Type: %s\n", d.Type)
		fmt.Fprintf(w, "Vendor: %s\n", d.Vendor)
		fmt.Fprintf(w, "Version: %s\n", d.Version)
		fmt.Fprintf(w, "Total memory: %d MB%s\n", mb(d.TotalMemory), humanSuffix(human, d.TotalMemory))
		fmt.Fprintf(w, "Used memory: %d MB%s\n", mb(d.ReservedMemory), humanSuffix(human, d.ReservedMemory))
		fmt.Fprintf(w, "Available memory: %d MB%s\n", mb(d.AvailableMemory), humanSuffix(human, d.AvailableMemory))
		fmt.Fprintf(w, "Usage: %.2f%%\n", d.UsagePercent)
		fmt.Fprintf(w, "Active partitions: %d\n", d.ActivePartitions)
		fmt.Fprintln(w)
	}
}

func humanSuffix(human bool, bytes uint64) string {
	if !human {
		return ""
	}
	return " (" + humanize.Bytes(bytes) + ")"
}
