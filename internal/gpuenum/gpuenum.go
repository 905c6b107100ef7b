// Package gpuenum is the GPU layer collaborator: it turns whatever compute
// devices the host exposes into the flat device.Info list the registry
// consumes. The engine never imports this package directly — it only knows
// device.Enumerator — so swapping NVML for a fake backend (or a future
// ROCm/OpenCL backend) never touches admission, locking, or the monitor.
package gpuenum

import (
	"github.com/ojimaabraham/chronos/internal/device"
)

// Backend names a selectable Enumerator implementation, set via
// --gpu-backend or CHRONOS_GPU_BACKEND.
type Backend string

const (
	BackendNVML   Backend = "nvml"
	BackendStatic Backend = "static"
)

// Select constructs the Enumerator named by backend. It never fails: NVML
// construction is cheap and defers real initialization to the first
// Enumerate call, whose own failure degrades to an empty registry per
// spec.md §4.2 rather than surfacing as a CLI error.
func Select(backend Backend) device.Enumerator {
	switch backend {
	case BackendStatic:
		return NewStatic(DefaultFixture())
	default:
		return NewNVML()
	}
}
