package engine

import (
	"context"
	"testing"
	"time"

	"github.com/ojimaabraham/chronos/internal/gpuenum"
	"github.com/ojimaabraham/chronos/internal/platform"
	"pkt.systems/pslog"
)

func newTestEngine(t *testing.T) (*Engine, *platform.Fake, *ManualClock) {
	t.Helper()
	fake := platform.NewFake()
	mc := NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	eng, err := New(context.Background(), Config{
		Enumerator: gpuenum.NewStatic(gpuenum.DefaultFixture()),
		Platform:   fake,
		Clock:      mc,
		Logger:     pslog.NoopLogger(),
		LockDir:    "/fake/locks",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { eng.Close(context.Background()) })
	return eng, fake, mc
}

func totalDeviceMemory(e *Engine) uint64 {
	return e.registry.At(0).TotalMemory
}

// P1: availableMemory + reserved == totalMemory at every observation point.
func TestCreateConservesMemory(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Create(0, 0.25, 60); err != nil {
		t.Fatalf("Create: %v", err)
	}
	dev := eng.registry.At(0)
	if dev.AvailableMemory+dev.Reserved() != dev.TotalMemory {
		t.Fatalf("conservation violated: available=%d reserved=%d total=%d",
			dev.AvailableMemory, dev.Reserved(), dev.TotalMemory)
	}
	if dev.Reserved() != dev.Reserve(0.25) {
		t.Fatalf("reserved=%d want=%d", dev.Reserved(), dev.Reserve(0.25))
	}
}

func TestCreateRejectsOutOfRangeFraction(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	cases := []float32{0, -0.1, 1.0001, 2}
	for _, f := range cases {
		if _, err := eng.Create(0, f, 60); err == nil {
			t.Fatalf("fraction %v: expected error, got nil", f)
		} else if fail, ok := err.(Failure); !ok || fail.Code != CodeInvalidArgument {
			t.Fatalf("fraction %v: want InvalidArgument, got %v", f, err)
		}
	}
}

func TestCreateAcceptsFullFraction(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Create(0, 1.0, 60); err != nil {
		t.Fatalf("Create(1.0): %v", err)
	}
}

func TestCreateRejectsNonPositiveDuration(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Create(0, 0.1, 0); err == nil {
		t.Fatalf("expected error for duration 0")
	}
	if _, err := eng.Create(0, 0.1, -5); err == nil {
		t.Fatalf("expected error for negative duration")
	}
}

func TestCreateRejectsInvalidDeviceIndex(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Create(7, 0.1, 60); err == nil {
		t.Fatalf("expected error for out-of-range device index")
	}
}

func TestCreateInsufficientMemory(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Create(0, 0.6, 60); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := eng.Create(0, 0.6, 60)
	fail, ok := err.(Failure)
	if !ok || fail.Code != CodeInsufficientMemory {
		t.Fatalf("want InsufficientMemory, got %v", err)
	}

	frac, ferr := eng.AvailableFraction(0)
	if ferr != nil {
		t.Fatalf("AvailableFraction: %v", ferr)
	}
	if got, want := frac, 0.40; got < want-0.001 || got > want+0.001 {
		t.Fatalf("available fraction = %v, want ~%v", got, want)
	}
}

// Two fractions whose percentMil rounds equal collide in the lock store.
func TestCreateContendedOnColliddingFraction(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Create(0, 0.3334, 60); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := eng.Create(0, 0.3332, 60)
	fail, ok := err.(Failure)
	if !ok || fail.Code != CodeContended {
		t.Fatalf("want Contended for colliding fraction, got %v", err)
	}
}

func TestCreateContendedAcrossOwners(t *testing.T) {
	fake := platform.NewFake()
	mc := NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := Config{
		Enumerator: gpuenum.NewStatic(gpuenum.DefaultFixture()),
		Platform:   fake,
		Clock:      mc,
		Logger:     pslog.NoopLogger(),
		LockDir:    "/fake/locks",
	}

	fake.User = "alice"
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New(a): %v", err)
	}
	defer a.Close(context.Background())
	if _, err := a.Create(0, 0.25, 60); err != nil {
		t.Fatalf("alice Create: %v", err)
	}

	fake.User = "bob"
	b, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New(b): %v", err)
	}
	defer b.Close(context.Background())
	_, err = b.Create(0, 0.25, 60)
	fail, ok := err.(Failure)
	if !ok || fail.Code != CodeContended {
		t.Fatalf("want Contended across owners, got %v", err)
	}
}

// P5: no partition id appears twice across all create results in one
// manager lifetime.
func TestPartitionIDsAreUniqueAndSequential(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	first, err := eng.Create(0, 0.1, 60)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if err := eng.Release(first); err != nil {
		t.Fatalf("Release: %v", err)
	}
	second, err := eng.Create(0, 0.1, 60)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
	if first != "partition_0001" || second != "partition_0002" {
		t.Fatalf("got %q, %q; want partition_0001, partition_0002", first, second)
	}
}

// P4: release by a different user than the owner leaves the partition
// unchanged and returns PermissionDenied.
func TestReleaseWrongOwnerDenied(t *testing.T) {
	eng, fake, _ := newTestEngine(t)

	id, err := eng.Create(0, 0.2, 60)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fake.User = "someone-else"
	err = eng.Release(id)
	fail, ok := err.(Failure)
	if !ok || fail.Code != CodePermissionDenied {
		t.Fatalf("want PermissionDenied, got %v", err)
	}

	list := eng.List(false)
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("partition should remain listed after denied release, got %+v", list)
	}
}

// P7: a second release on the same id is a no-op failure.
func TestReleaseIsIdempotent(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	id, err := eng.Create(0, 0.2, 60)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := eng.Release(id); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	err = eng.Release(id)
	fail, ok := err.(Failure)
	if !ok || fail.Code != CodeNotFound {
		t.Fatalf("want NotFound on second release, got %v", err)
	}
}

// P6: lock round trip — file exists with the right owner after create,
// and is gone after release.
func TestLockFileRoundTrip(t *testing.T) {
	eng, fake, _ := newTestEngine(t)

	id, err := eng.Create(0, 0.2, 60)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	path := eng.locks.Path(0, 0.2)
	files := fake.Files()
	if _, ok := files[path]; !ok {
		t.Fatalf("lock file %q not created", path)
	}
	if owner := eng.locks.Owner(0, 0.2); owner != fake.Username() {
		t.Fatalf("lock owner = %q, want %q", owner, fake.Username())
	}

	if err := eng.Release(id); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if eng.locks.Exists(0, 0.2) {
		t.Fatalf("lock file %q still present after release", path)
	}
}

// P3: eventual reclamation via the sweep, exercised directly (not through
// the background goroutine) to keep the assertion deterministic.
func TestSweepReclaimsExpiredPartition(t *testing.T) {
	eng, _, mc := newTestEngine(t)

	id, err := eng.Create(0, 0.3, 5)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mc.Advance(4 * time.Second)
	eng.sweep()
	list := eng.List(false)
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("partition reclaimed too early: %+v", list)
	}

	mc.Advance(2 * time.Second)
	eng.sweep()
	list = eng.List(false)
	if len(list) != 0 {
		t.Fatalf("partition not reclaimed after deadline: %+v", list)
	}
	frac, err := eng.AvailableFraction(0)
	if err != nil {
		t.Fatalf("AvailableFraction: %v", err)
	}
	if frac < 0.999 {
		t.Fatalf("available fraction after reclamation = %v, want ~1.0", frac)
	}
	if eng.locks.Exists(0, 0.3) {
		t.Fatalf("lock file still present after expiry sweep")
	}
}

// Scenario 6: destroying the manager reclaims every still-active
// partition's lock file and memory.
func TestCloseReclaimsActivePartitions(t *testing.T) {
	fake := platform.NewFake()
	mc := NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := Config{
		Enumerator: gpuenum.NewStatic(gpuenum.DefaultFixture()),
		Platform:   fake,
		Clock:      mc,
		Logger:     pslog.NoopLogger(),
		LockDir:    "/fake/locks",
	}
	eng, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := eng.Create(0, 0.4, 60); err != nil {
		t.Fatalf("Create 1: %v", err)
	}
	if _, err := eng.Create(0, 0.4, 60); err != nil {
		t.Fatalf("Create 2: %v", err)
	}
	if err := eng.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(fake.Files()) != 0 {
		t.Fatalf("expected no lock files after Close, got %v", fake.Files())
	}

	fresh, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New (fresh): %v", err)
	}
	defer fresh.Close(context.Background())
	frac, err := fresh.AvailableFraction(0)
	if err != nil {
		t.Fatalf("AvailableFraction: %v", err)
	}
	if frac < 0.999 {
		t.Fatalf("fresh manager available fraction = %v, want ~1.0", frac)
	}
}

func TestDeviceStatsReportsActivePartitions(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Create(0, 0.25, 60); err != nil {
		t.Fatalf("Create: %v", err)
	}
	stats := eng.DeviceStats()
	if len(stats) != 1 {
		t.Fatalf("want 1 device stat, got %d", len(stats))
	}
	if stats[0].ActivePartitions != 1 {
		t.Fatalf("ActivePartitions = %d, want 1", stats[0].ActivePartitions)
	}
	if stats[0].TotalMemory != totalDeviceMemory(eng) {
		t.Fatalf("TotalMemory mismatch")
	}
}
