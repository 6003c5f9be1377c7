package registry

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/AndreyAkinshin/typedcli/internal/outcome"
)

// Handler is a unit of domain logic bound to one command name.
type Handler func(*Invocation) outcome.Outcome

// Invocation is what a handler sees of the current run.
type Invocation struct {
	Context context.Context
	ID      string   // Invocation id, shared with diagnostics
	Command string   // Selected command name, empty for the root
	Args    []string // Positional arguments after flag parsing
	Stdout  io.Writer
	Stderr  io.Writer

	flags *pflag.FlagSet
}

// NewInvocation creates an Invocation bound to the parsed flag set.
func NewInvocation(ctx context.Context, id, command string, args []string, flags *pflag.FlagSet, stdout, stderr io.Writer) *Invocation {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Invocation{
		Context: ctx,
		ID:      id,
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		flags:   flags,
	}
}

// Arg returns the i-th positional argument, or "" if absent.
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}

// String returns the value of a string option.
func (inv *Invocation) String(name string) string {
	if inv.flags == nil {
		return ""
	}
	v, _ := inv.flags.GetString(name)
	return v
}

// Bool returns the value of a bool option.
func (inv *Invocation) Bool(name string) bool {
	if inv.flags == nil {
		return false
	}
	v, _ := inv.flags.GetBool(name)
	return v
}

// Int returns the value of an int option.
func (inv *Invocation) Int(name string) int {
	if inv.flags == nil {
		return 0
	}
	v, _ := inv.flags.GetInt(name)
	return v
}

// Changed reports whether an option was set on the command line.
func (inv *Invocation) Changed(name string) bool {
	return inv.flags != nil && inv.flags.Changed(name)
}

// Printf writes informational output to stdout.
func (inv *Invocation) Printf(format string, args ...interface{}) {
	fmt.Fprintf(inv.Stdout, format, args...)
}

// Println writes a line of informational output to stdout.
func (inv *Invocation) Println(args ...interface{}) {
	fmt.Fprintln(inv.Stdout, args...)
}
