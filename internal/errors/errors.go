// Package errors provides the boundary error taxonomy and exit codes for typedcli.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes produced by the invocation runner.
const (
	ExitSuccess  = 0 // Handler returned Success
	ExitFailure  = 1 // Handler returned Failure
	ExitAbnormal = 2 // Handler fault, contract violation, or engine usage error
)

// MaxExitCode is the largest code a process can report.
const MaxExitCode = 255

// ErrorKind represents the type of error.
type ErrorKind int

const (
	// KindDomain is a handler-reported failure.
	KindDomain ErrorKind = iota
	// KindAbnormal is a handler fault caught at the boundary.
	KindAbnormal
	// KindEngine is a short-circuit produced by the host engine (help, usage errors).
	KindEngine
	// KindRegistration is a defect detected while commands are registered.
	KindRegistration
	// KindContract is a caller contract violation detected by the boundary.
	KindContract
)

func (k ErrorKind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindAbnormal:
		return "abnormal"
	case KindEngine:
		return "engine"
	case KindRegistration:
		return "registration"
	case KindContract:
		return "contract"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinel contract violations.
var (
	ErrEmptyArgv      = Contract("argv must not be empty: argv[0] should be the program name")
	ErrReentrantRun   = Contract("run is not reentrant: an invocation is already in progress")
	ErrRegistryFrozen = Registration("registry is frozen: commands must be registered before the first run")
)

// BoundaryError is the base error type for typedcli.
type BoundaryError struct {
	Kind    ErrorKind
	Message string
	Code    int   // Exit code for KindEngine; ignored otherwise
	Cause   error // Underlying error
}

func (e *BoundaryError) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *BoundaryError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *BoundaryError) ExitCode() int {
	switch e.Kind {
	case KindDomain:
		return ExitFailure
	case KindEngine:
		return e.Code
	default:
		return ExitAbnormal
	}
}

// Engine creates a host engine short-circuit carrying its own exit code.
func Engine(code int, cause error) *BoundaryError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &BoundaryError{
		Kind:    KindEngine,
		Message: msg,
		Code:    code,
		Cause:   cause,
	}
}

// Usage creates an engine usage error (exit 2).
func Usage(cause error) *BoundaryError {
	return Engine(ExitAbnormal, cause)
}

// Abnormal creates a handler fault error.
func Abnormal(message string) *BoundaryError {
	return &BoundaryError{
		Kind:    KindAbnormal,
		Message: message,
	}
}

// Contract creates a contract violation error.
func Contract(message string) *BoundaryError {
	return &BoundaryError{
		Kind:    KindContract,
		Message: message,
	}
}

// Contractf creates a contract violation error with formatting.
func Contractf(format string, args ...interface{}) *BoundaryError {
	return Contract(fmt.Sprintf(format, args...))
}

// Registration creates a registration error.
func Registration(message string) *BoundaryError {
	return &BoundaryError{
		Kind:    KindRegistration,
		Message: message,
	}
}

// Registrationf creates a registration error with formatting.
func Registrationf(format string, args ...interface{}) *BoundaryError {
	return Registration(fmt.Sprintf(format, args...))
}

// DuplicateNameError reports two registrations that resolve to the same command name.
type DuplicateNameError struct {
	Name     string // Derived command name
	Existing string // Identifier already registered under Name
	Incoming string // Identifier that collided
}

func (e *DuplicateNameError) Error() string {
	if e.Existing == e.Incoming || e.Existing == "" {
		return fmt.Sprintf("command %q already registered", e.Name)
	}
	return fmt.Sprintf("command %q already registered (identifier %q collides with %q)", e.Name, e.Incoming, e.Existing)
}

// Kind reports the taxonomy kind of a duplicate name.
func (e *DuplicateNameError) Kind() ErrorKind {
	return KindRegistration
}

// CommandError carries a handler's Failure value through the host engine.
// Only the invocation runner unwraps it.
type CommandError struct {
	Err error
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return ExitFailure
	}
	var be *BoundaryError
	if errors.As(err, &be) {
		return be.ExitCode()
	}
	return ExitAbnormal
}

// IsKind reports whether err is a boundary error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BoundaryError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	var dn *DuplicateNameError
	if errors.As(err, &dn) {
		return kind == KindRegistration
	}
	return false
}
