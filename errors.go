package chronos

import "github.com/ojimaabraham/chronos/internal/engine"

// Failure is the error type every Manager operation returns on failure. It
// is a re-export of the engine's internal failure type so callers never
// need to import internal/engine directly.
type Failure = engine.Failure

// Error codes a Failure.Code can hold.
const (
	CodeInvalidArgument     = engine.CodeInvalidArgument
	CodeInsufficientMemory  = engine.CodeInsufficientMemory
	CodeContended           = engine.CodeContended
	CodePermissionDenied    = engine.CodePermissionDenied
	CodeNotFound            = engine.CodeNotFound
	CodePlatformUnavailable = engine.CodePlatformUnavailable
)
