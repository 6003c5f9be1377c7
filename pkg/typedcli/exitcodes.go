package typedcli

// Exit codes returned by Run.
// These constants allow callers to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the handler returned Success.
	ExitSuccess = 0

	// ExitFailure indicates the handler returned Failure.
	ExitFailure = 1

	// ExitAbnormal indicates a handler fault, a contract violation, or an
	// engine usage error (unknown command, bad flag, missing command).
	ExitAbnormal = 2
)
