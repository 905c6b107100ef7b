package loggingutil

import "testing"

func TestEnsureReturnsSuppliedLoggerWhenNonNil(t *testing.T) {
	l := Noop()
	if got := Ensure(l); got != l {
		t.Fatalf("Ensure did not return the supplied logger")
	}
}

func TestEnsureFallsBackToNoopWhenNil(t *testing.T) {
	if got := Ensure(nil); got == nil {
		t.Fatalf("Ensure(nil) returned nil")
	}
}

func TestNoopIsReusedAcrossCalls(t *testing.T) {
	if Noop() != Noop() {
		t.Fatalf("Noop() should return the same instance every call")
	}
}

func TestNamedAttachesComponentWithoutPanicking(t *testing.T) {
	l := Named(nil, "engine.admission")
	if l == nil {
		t.Fatalf("Named returned nil")
	}
}
