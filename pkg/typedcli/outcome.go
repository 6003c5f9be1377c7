package typedcli

import (
	"github.com/AndreyAkinshin/typedcli/internal/outcome"
	"github.com/AndreyAkinshin/typedcli/internal/registry"
)

// Outcome is what a result handler returns: Success or Failure.
// The zero value is neither and is treated as a contract violation.
type Outcome = outcome.Outcome

// Invocation gives a handler its positional arguments, options and output streams.
type Invocation = registry.Invocation

// ResultHandler is a command handler that reports an Outcome.
type ResultHandler = func(*Invocation) Outcome

// PlainHandler is a command handler without an Outcome. Returning normally
// is Success; Exit and panics behave as for a ResultHandler.
type PlainHandler = func(*Invocation)

// Success reports that a handler completed.
func Success() Outcome { return outcome.Success() }

// Failure reports an expected domain failure. Run prints err on one line
// to stderr and returns ExitFailure.
func Failure(err error) Outcome { return outcome.Failure(err) }

// Failuref is Failure with a formatted message.
func Failuref(format string, args ...interface{}) Outcome {
	return outcome.Failuref(format, args...)
}

// Exit unwinds the running handler and makes Run return code verbatim
// without printing anything. Codes outside 0..255 are contract violations.
// Exit never returns.
func Exit(code int) {
	outcome.Exit(code)
}
