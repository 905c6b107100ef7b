// Package loggingutil holds small helpers shared by every component that
// accepts a pslog.Logger, so "no logger was configured" always degrades to a
// discard logger instead of a nil-pointer panic.
package loggingutil

import (
	"io"
	"sync"

	"pkt.systems/pslog"
)

var (
	noOnce   sync.Once
	noLogger pslog.Logger
)

// Noop returns a disabled logger that discards every entry.
func Noop() pslog.Logger {
	noOnce.Do(func() {
		noLogger = pslog.NewWithOptions(io.Discard, pslog.Options{
			Mode:     pslog.ModeStructured,
			MinLevel: pslog.Disabled,
		})
	})
	return noLogger
}

// Ensure returns l when non-nil, otherwise Noop().
func Ensure(l pslog.Logger) pslog.Logger {
	if l != nil {
		return l
	}
	return Noop()
}

// Named tags logger with a component field identifying the calling
// subsystem, e.g. Named(l, "engine.admission").
func Named(l pslog.Logger, component string) pslog.Logger {
	return Ensure(l).With("component", component)
}
