package gpuenum

import (
	"context"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/ojimaabraham/chronos/internal/device"
)

// NVML enumerates devices through NVIDIA's NVML library. It is the
// production Enumerator on hosts with an NVIDIA driver installed; on any
// other host Init fails and Enumerate reports zero devices rather than an
// error, which the registry turns into the documented empty-registry state.
type NVML struct {
	lib         nvml.Interface
	initialized bool
}

// NewNVML constructs an NVML-backed Enumerator. The library is not
// initialized until the first Enumerate call, so constructing one is
// always cheap and never fails.
func NewNVML() *NVML {
	return &NVML{lib: nvml.New()}
}

// Enumerate loads NVML (if not already loaded) and returns one device.Info
// per visible GPU. Failure to initialize NVML — no driver, no supported
// GPU, library not found — is reported as a PlatformUnavailable-flavored
// empty list, not an error, matching spec.md §4.2's degrade-to-empty rule.
func (n *NVML) Enumerate(ctx context.Context) ([]device.Info, error) {
	if !n.initialized {
		if ret := n.lib.Init(); ret != nvml.SUCCESS {
			return nil, nil
		}
		n.initialized = true
	}

	count, ret := n.lib.DeviceGetCount()
	if ret != nvml.SUCCESS || count == 0 {
		return nil, nil
	}

	infos := make([]device.Info, 0, count)
	for i := 0; i < count; i++ {
		handle, ret := n.lib.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			continue
		}
		infos = append(infos, n.describe(handle))
	}
	return infos, nil
}

func (n *NVML) describe(handle nvml.Device) device.Info {
	info := device.Info{
		Handle:  handle,
		Type:    device.TypeGPU,
		Name:    "Unknown",
		Vendor:  "NVIDIA",
		Version: "Unknown",
	}
	if name, ret := handle.GetName(); ret == nvml.SUCCESS && name != "" {
		info.Name = name
	}
	if mem, ret := handle.GetMemoryInfo(); ret == nvml.SUCCESS {
		info.TotalMemory = mem.Total
	}
	if major, minor, ret := handle.GetCudaComputeCapability(); ret == nvml.SUCCESS {
		info.Version = fmt.Sprintf("CUDA %d.%d", major, minor)
	}
	return info
}

// Close shuts NVML down if it was ever initialized.
func (n *NVML) Close() error {
	if !n.initialized {
		return nil
	}
	n.initialized = false
	if ret := n.lib.Shutdown(); ret != nvml.SUCCESS {
		return fmt.Errorf("gpuenum: nvml shutdown: %v", ret)
	}
	return nil
}
