package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestBoundaryError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BoundaryError
		expected string
	}{
		{
			name:     "message only",
			err:      &BoundaryError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "cause without message",
			err:      &BoundaryError{Cause: errors.New("underlying")},
			expected: "underlying",
		},
		{
			name:     "message wins over cause",
			err:      &BoundaryError{Message: "outer", Cause: errors.New("inner")},
			expected: "outer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBoundaryError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &BoundaryError{Message: "wrapper", Cause: cause}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &BoundaryError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestBoundaryError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *BoundaryError
		expected int
	}{
		{"domain", &BoundaryError{Kind: KindDomain}, ExitFailure},
		{"abnormal", Abnormal("boom"), ExitAbnormal},
		{"contract", Contract("bad"), ExitAbnormal},
		{"registration", Registration("dup"), ExitAbnormal},
		{"engine help", Engine(0, nil), 0},
		{"engine usage", Usage(errors.New("unknown command")), ExitAbnormal},
		{"engine arbitrary", Engine(42, nil), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestContractf(t *testing.T) {
	err := Contractf("exit code %d out of range", 300)

	if err.Kind != KindContract {
		t.Errorf("Kind = %v, want %v", err.Kind, KindContract)
	}
	if err.Message != "exit code 300 out of range" {
		t.Errorf("Message = %q, want %q", err.Message, "exit code 300 out of range")
	}
}

func TestUsage_KeepsCause(t *testing.T) {
	cause := errors.New(`unknown command "x" for "prog"`)
	err := Usage(cause)

	if !errors.Is(err, cause) {
		t.Error("Usage() should wrap its cause")
	}
	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
}

func TestDuplicateNameError(t *testing.T) {
	tests := []struct {
		name     string
		err      *DuplicateNameError
		expected string
	}{
		{
			name:     "same identifier",
			err:      &DuplicateNameError{Name: "doctor", Existing: "doctor", Incoming: "doctor"},
			expected: `command "doctor" already registered`,
		},
		{
			name:     "colliding identifiers",
			err:      &DuplicateNameError{Name: "do-it", Existing: "do_it", Incoming: "do-it"},
			expected: `command "do-it" already registered (identifier "do-it" collides with "do_it")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("operation failed")
	err := fmt.Errorf("engine: %w", &CommandError{Err: inner})

	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As() should find CommandError")
	}
	if ce.Error() != "operation failed" {
		t.Errorf("Error() = %q, want %q", ce.Error(), "operation failed")
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the handler error")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"command error", &CommandError{Err: errors.New("x")}, ExitFailure},
		{"wrapped command error", fmt.Errorf("ctx: %w", &CommandError{Err: errors.New("x")}), ExitFailure},
		{"engine short-circuit", Engine(0, nil), 0},
		{"contract", ErrEmptyArgv, ExitAbnormal},
		{"generic error", errors.New("generic"), ExitAbnormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	if !IsKind(ErrRegistryFrozen, KindRegistration) {
		t.Error("ErrRegistryFrozen should be a registration error")
	}
	if !IsKind(&DuplicateNameError{Name: "a"}, KindRegistration) {
		t.Error("DuplicateNameError should be a registration error")
	}
	if IsKind(ErrEmptyArgv, KindRegistration) {
		t.Error("ErrEmptyArgv should not be a registration error")
	}
	if IsKind(errors.New("plain"), KindContract) {
		t.Error("plain error should not match any kind")
	}
}

func TestErrorKindConstants(t *testing.T) {
	kinds := []ErrorKind{KindDomain, KindAbnormal, KindEngine, KindRegistration, KindContract}
	seen := make(map[ErrorKind]bool)

	for _, k := range kinds {
		if seen[k] {
			t.Errorf("Duplicate ErrorKind value: %v", k)
		}
		seen[k] = true
	}
}

func TestExitCodeConstants(t *testing.T) {
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitFailure != 1 {
		t.Errorf("ExitFailure = %d, want 1", ExitFailure)
	}
	if ExitAbnormal != 2 {
		t.Errorf("ExitAbnormal = %d, want 2", ExitAbnormal)
	}
}
