package device

import (
	"context"

	"pkt.systems/pslog"
)

// Enumerator is the GPU layer's contribution to device registry
// construction: a flat list of devices the platform makes visible. The
// engine depends only on this interface, never on a concrete GPU backend —
// internal/gpuenum supplies the real (NVML) and fake implementations.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]Info, error)
	Close() error
}

// Info is the tuple the GPU layer hands the registry for one device:
// opaque handle, display strings, a type bitset, and total memory.
type Info struct {
	Handle      any
	Name        string
	Vendor      string
	Version     string
	Type        Type
	TotalMemory uint64
}

// Registry is the immutable-except-for-AvailableMemory device list
// described in spec.md §3. It owns the Enumerator's resources for its own
// lifetime and releases them on Close.
type Registry struct {
	devices    []Device
	enumerator Enumerator
	logger     pslog.Logger
}

// New constructs a Registry by enumerating devices once. An empty or
// failed enumeration is never an error — it yields a permanently empty
// registry, and every device-index argument against it will subsequently
// fail InvalidArgument, exactly as spec.md §4.2 prescribes.
func New(ctx context.Context, enumerator Enumerator, logger pslog.Logger) *Registry {
	r := &Registry{enumerator: enumerator, logger: logger}
	infos, err := enumerator.Enumerate(ctx)
	if err != nil || len(infos) == 0 {
		if err != nil {
			logger.Warn("device.registry.enumerate_failed", "error", err)
		} else {
			logger.Warn("device.registry.no_devices")
		}
		return r
	}
	r.devices = make([]Device, len(infos))
	for i, info := range infos {
		r.devices[i] = Device{
			Handle:          info.Handle,
			Name:            nonEmpty(info.Name, "Unknown"),
			Vendor:          nonEmpty(info.Vendor, "Unknown"),
			Version:         nonEmpty(info.Version, "Unknown"),
			Type:            info.Type,
			TotalMemory:     info.TotalMemory,
			AvailableMemory: info.TotalMemory,
		}
		logger.Info("device.registry.found",
			"index", i, "name", r.devices[i].Name, "vendor", r.devices[i].Vendor,
			"total_memory", r.devices[i].TotalMemory,
		)
	}
	return r
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Len returns the number of registered devices.
func (r *Registry) Len() int { return len(r.devices) }

// At returns a pointer into the registry's device slice so callers under
// the engine's guard can mutate AvailableMemory in place. idx must already
// be validated by the caller; At does not bounds-check.
func (r *Registry) At(idx int) *Device { return &r.devices[idx] }

// Valid reports whether idx names a registered device.
func (r *Registry) Valid(idx int) bool { return idx >= 0 && idx < len(r.devices) }

// IndexOf returns the registry index of the device with the given handle,
// or -1 if no device matches. Handles are compared with ==, matching
// spec.md §3's "used for equality only" contract.
func (r *Registry) IndexOf(handle any) int {
	for i := range r.devices {
		if r.devices[i].Handle == handle {
			return i
		}
	}
	return -1
}

// All returns a snapshot copy of the current device list, safe to read
// without the engine's guard held for longer than the copy.
func (r *Registry) All() []Device {
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// Close releases the underlying GPU context, mirroring spec.md §4.4's
// "the GPU context is released last" shutdown step.
func (r *Registry) Close() error {
	if r.enumerator == nil {
		return nil
	}
	return r.enumerator.Close()
}
