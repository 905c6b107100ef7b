// Package chronos manages time-bounded GPU memory partitions on a single
// host. A Manager enumerates the available devices, admits partition
// requests against each device's available memory, and reclaims expired
// partitions automatically. Coordination across independent processes
// happens only through atomically created lock files on disk — there is no
// shared memory and no daemon to talk to.
//
// # Creating a manager
//
// A Manager enumerates devices once at construction and keeps them for its
// lifetime. Call Close when done so the expiration monitor stops and the
// underlying GPU context is released.
//
//	mgr, err := chronos.NewManager(ctx, chronos.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Close(ctx)
//
//	id, err := mgr.Create(0, 0.25, 3600)
//
// # Errors
//
// Every failure a Manager returns is a Failure with one of a fixed set of
// codes (CodeInvalidArgument, CodeInsufficientMemory, CodeContended,
// CodePermissionDenied, CodeNotFound, CodePlatformUnavailable). Use
// errors.As to recover the code programmatically.
package chronos
