package gpuenum

import (
	"context"

	"github.com/ojimaabraham/chronos/internal/device"
)

// Static is a fixed, in-memory Enumerator. It backs --gpu-backend=static
// for hosts with no GPU, and is what the engine's own test suite uses so
// tests never depend on real hardware. It descends from
// original_source/tests/test_device_info.cpp's SKIP_OPENCL_TESTS mock
// device, generalized to carry any number of fixtures.
type Static struct {
	devices []device.Info
	closed  bool
}

// NewStatic constructs a Static enumerator over the given fixtures. A nil
// or empty slice yields the documented empty-registry behavior.
func NewStatic(devices []device.Info) *Static {
	return &Static{devices: devices}
}

// DefaultFixture is a single plausible GPU, used when no explicit fixture
// list is supplied (e.g. CHRONOS_GPU_BACKEND=static with no config).
func DefaultFixture() []device.Info {
	return []device.Info{{
		Handle:      "static-0",
		Name:        "Static Fixture GPU",
		Vendor:      "Chronos",
		Version:     "1.0",
		Type:        device.TypeGPU,
		TotalMemory: 8 << 30, // 8 GiB
	}}
}

func (s *Static) Enumerate(ctx context.Context) ([]device.Info, error) {
	out := make([]device.Info, len(s.devices))
	copy(out, s.devices)
	return out, nil
}

func (s *Static) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called, for test assertions.
func (s *Static) Closed() bool { return s.closed }
