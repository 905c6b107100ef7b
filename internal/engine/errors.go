package engine

import "fmt"

// Failure captures the transport-neutral error kinds spec.md §7 enumerates.
// It is aliased as chronos.Failure at the package boundary so callers never
// import internal/engine directly.
type Failure struct {
	Code   string
	Detail string
}

func (f Failure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s", f.Code, f.Detail)
	}
	return f.Code
}

// Error codes, exactly the six kinds spec.md §7 names.
const (
	CodeInvalidArgument     = "invalid_argument"
	CodeInsufficientMemory  = "insufficient_memory"
	CodeContended           = "contended"
	CodePermissionDenied    = "permission_denied"
	CodeNotFound            = "not_found"
	CodePlatformUnavailable = "platform_unavailable"
)

func invalidArgument(detail string) Failure {
	return Failure{Code: CodeInvalidArgument, Detail: detail}
}

func insufficientMemory(detail string) Failure {
	return Failure{Code: CodeInsufficientMemory, Detail: detail}
}

func contended(detail string) Failure {
	return Failure{Code: CodeContended, Detail: detail}
}

func permissionDenied(detail string) Failure {
	return Failure{Code: CodePermissionDenied, Detail: detail}
}

func notFound(detail string) Failure {
	return Failure{Code: CodeNotFound, Detail: detail}
}
