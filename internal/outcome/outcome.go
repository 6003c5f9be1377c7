// Package outcome defines the closed set of results a command handler can report.
package outcome

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/typedcli/internal/errors"
)

type variant uint8

const (
	unset variant = iota
	success
	failure
)

// Outcome is the result of one handler invocation: Success or Failure.
// The zero value is neither and is treated as a contract violation.
type Outcome struct {
	v   variant
	err error
}

// Success reports that the handler finished its work.
func Success() Outcome {
	return Outcome{v: success}
}

// Failure reports a domain failure. err must render to a user-facing message.
func Failure(err error) Outcome {
	return Outcome{v: failure, err: err}
}

// Failuref is Failure with a formatted message.
func Failuref(format string, args ...interface{}) Outcome {
	return Failure(fmt.Errorf(format, args...))
}

// IsSuccess reports whether o is Success.
func (o Outcome) IsSuccess() bool { return o.v == success }

// IsFailure reports whether o is Failure.
func (o Outcome) IsFailure() bool { return o.v == failure }

// Err returns the failure value, or nil for Success.
func (o Outcome) Err() error { return o.err }

func (o Outcome) String() string {
	switch o.v {
	case success:
		return "Success"
	case failure:
		return fmt.Sprintf("Failure(%v)", o.err)
	default:
		return "Outcome(unset)"
	}
}

// Validate checks that o is a well-formed Success or Failure.
func (o Outcome) Validate() error {
	switch o.v {
	case success:
		return nil
	case failure:
		if o.err == nil {
			return errors.Contract("handler returned Failure without an error value")
		}
		return nil
	default:
		return errors.Contract("handler returned an unset Outcome")
	}
}

// AsError converts o into the error form carried through the host engine:
// nil for Success, a CommandError for Failure, a contract violation otherwise.
func (o Outcome) AsError() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.v == failure {
		return &errors.CommandError{Err: o.err}
	}
	return nil
}

// Render turns a failure value into a single line of user-facing text.
// Line breaks and surrounding whitespace are collapsed.
func Render(err error) string {
	if err == nil {
		return ""
	}
	lines := strings.FieldsFunc(err.Error(), func(r rune) bool { return r == '\n' || r == '\r' })
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

// ExitSignal is the panic value used by Exit to unwind a handler with an
// explicit exit code.
type ExitSignal struct {
	Code int
}

func (s *ExitSignal) String() string {
	return fmt.Sprintf("exit(%d)", s.Code)
}

// Exit unwinds the running handler and makes the runner return code verbatim.
// It never returns.
func Exit(code int) {
	panic(&ExitSignal{Code: code})
}
