// Package shape decides whether the root of an application runs its only
// command or requires a command name, and configures the host engine so the
// decision holds.
package shape

import (
	"github.com/AndreyAkinshin/typedcli/internal/engine"
	"github.com/AndreyAkinshin/typedcli/internal/outcome"
	"github.com/AndreyAkinshin/typedcli/internal/registry"
)

// MarkerName identifies the shape-forcing root hook.
const MarkerName = "typedcli.shape-marker"

// Shape is the behavior of a bare invocation.
type Shape int

const (
	// Single runs the only registered command on a bare invocation.
	Single Shape = iota
	// Dispatcher never runs a command without an explicit name.
	Dispatcher
)

func (s Shape) String() string {
	if s == Single {
		return "single"
	}
	return "dispatcher"
}

// Policy holds the caller's dispatch intents.
type Policy struct {
	// ForceSubcommand requires a command name even with one command.
	ForceSubcommand bool
	// HelpOnNoArgs prints help instead of running anything on a bare invocation.
	HelpOnNoArgs bool
}

// Effective applies the one-way coupling: ForceSubcommand forces
// HelpOnNoArgs. Every other combination is returned as given.
func (p Policy) Effective() Policy {
	return Policy{
		ForceSubcommand: p.ForceSubcommand,
		HelpOnNoArgs:    p.ForceSubcommand || p.HelpOnNoArgs,
	}
}

// Host is the part of the host engine the resolver configures.
type Host interface {
	AddRootHook(h engine.Hook)
	SetNoArgsIsHelp(v bool)
	Grouped(count int) bool
}

// Resolver applies a Policy to a Host. Apply runs once, before any
// invocation.
type Resolver struct {
	policy  Policy
	applied bool
}

// NewResolver creates a resolver for p.
func NewResolver(p Policy) *Resolver {
	return &Resolver{policy: p}
}

// Policy returns the effective policy.
func (r *Resolver) Policy() Policy {
	return r.policy.Effective()
}

// Apply installs the shape-forcing marker when ForceSubcommand is set and
// then sets the effective help-on-no-args. Subsequent calls are no-ops.
//
// The marker is a root hook, so the host counts it as a decision point at
// dispatch time regardless of when commands are registered.
func (r *Resolver) Apply(host Host) {
	if r.applied {
		return
	}
	r.applied = true

	if r.policy.ForceSubcommand {
		host.AddRootHook(engine.Hook{
			Name:     MarkerName,
			Internal: true,
			Handler:  marker,
		})
	}
	host.SetNoArgsIsHelp(r.Policy().HelpOnNoArgs)
}

// Resolve reports the shape the host will take for count user-visible
// commands.
func Resolve(host Host, count int) Shape {
	if host.Grouped(count) {
		return Dispatcher
	}
	return Single
}

// Expected is the decision table: the shape a registry of count commands
// must take under p, independent of any host.
func Expected(count int, p Policy) Shape {
	if count == 1 && !p.ForceSubcommand {
		return Single
	}
	return Dispatcher
}

// marker is inert. It never produces output or side effects.
func marker(*registry.Invocation) outcome.Outcome {
	return outcome.Success()
}
