// Package device holds the device registry: an immutable list of compute
// devices discovered at startup, plus the one mutable counter per device
// (availableMemory) that admission and release mutate. Mutation is not
// synchronized here — the engine's single guard covers it, per spec.md §5.
package device

import "strings"

// Type is a bitset over the device kinds the spec distinguishes.
type Type uint8

const (
	TypeCPU Type = 1 << iota
	TypeGPU
	TypeAccelerator
	TypeDefault
)

// String renders the type bitset as space-separated human tokens, in the
// order spec.md's device-stats format expects.
func (t Type) String() string {
	var tokens []string
	if t&TypeCPU != 0 {
		tokens = append(tokens, "CPU")
	}
	if t&TypeGPU != 0 {
		tokens = append(tokens, "GPU")
	}
	if t&TypeAccelerator != 0 {
		tokens = append(tokens, "Accelerator")
	}
	if t&TypeDefault != 0 {
		tokens = append(tokens, "Default")
	}
	if len(tokens) == 0 {
		return "Unknown"
	}
	return strings.Join(tokens, " ")
}

// Device is one entry in the registry. Handle, Name, Vendor, Version, and
// TotalMemory are fixed for the registry's lifetime; AvailableMemory is the
// one field admission and release mutate, always under the engine's guard.
type Device struct {
	Handle          any
	Name            string
	Vendor          string
	Version         string
	Type            Type
	TotalMemory     uint64
	AvailableMemory uint64
}

// Reserved returns the bytes currently held by active partitions on this
// device — the complement of AvailableMemory against TotalMemory. Useful
// for device-stats and for the P1 conservation assertion in tests.
func (d Device) Reserved() uint64 {
	if d.AvailableMemory > d.TotalMemory {
		return 0
	}
	return d.TotalMemory - d.AvailableMemory
}

// UsagePercent returns the percentage of TotalMemory currently reserved,
// matching the "Usage: %.2f%%" line in spec.md's device-stats format.
func (d Device) UsagePercent() float64 {
	if d.TotalMemory == 0 {
		return 0
	}
	return 100.0 * (1.0 - float64(d.AvailableMemory)/float64(d.TotalMemory))
}

// AvailablePercent returns the percentage of TotalMemory still free,
// matching available_fraction's contract.
func (d Device) AvailablePercent() float64 {
	if d.TotalMemory == 0 {
		return 0
	}
	return 100.0 * float64(d.AvailableMemory) / float64(d.TotalMemory)
}

// Reserve computes the byte quantity a memoryFraction request would claim,
// floored per spec.md's invariant I1 (Σ⌊totalMemory × fraction⌋).
func (d Device) Reserve(fraction float32) uint64 {
	return uint64(float64(d.TotalMemory) * float64(fraction))
}
