// Package typedcli turns typed command handlers into a command-line program
// with a fixed exit-code contract.
//
// Handlers return an Outcome instead of printing errors or exiting. Run maps
// it to a process exit code:
//
//	Success        0, nothing printed
//	Failure(err)   1, err printed on one line to stderr
//	fault          2, generic "Unexpected error (bug)" line on stderr
//	Exit(n)        n, nothing printed
//
// Help and usage errors come from the host engine (spf13/cobra); help exits
// 0 and usage errors exit 2.
//
// An application with exactly one command runs it on a bare invocation.
// WithForceSubcommand makes it a dispatcher that requires the command name
// and prints help otherwise.
package typedcli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/typedcli/internal/engine"
	boundary "github.com/AndreyAkinshin/typedcli/internal/errors"
	"github.com/AndreyAkinshin/typedcli/internal/log"
	"github.com/AndreyAkinshin/typedcli/internal/output"
	"github.com/AndreyAkinshin/typedcli/internal/registry"
	"github.com/AndreyAkinshin/typedcli/internal/runner"
	"github.com/AndreyAkinshin/typedcli/internal/shape"
)

// App is a command-line application. Register every command, then call Run.
// An App is not safe for concurrent use.
type App struct {
	registry *registry.Registry
	engine   *engine.Engine
	resolver *shape.Resolver
	runner   *runner.Runner
}

// New creates an App. The dispatch policy is fixed here, before any command
// is registered.
func New(opts ...Option) *App {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	out := newWriter(s.stdout, s.stderr)
	reg := registry.New()
	eng := engine.New(s.help, s.version)
	resolver := shape.NewResolver(shape.Policy{
		ForceSubcommand: s.forceSubcommand,
		HelpOnNoArgs:    s.helpOnNoArgs,
	})
	resolver.Apply(eng)

	logger := s.logger
	if logger == nil {
		logger = log.Discard()
	}
	r := runner.New(reg, eng, out, logger)
	r.SetProgram(s.name)

	return &App{
		registry: reg,
		engine:   eng,
		resolver: resolver,
		runner:   r,
	}
}

func newWriter(stdout, stderr io.Writer) *output.Writer {
	if stdout == nil && stderr == nil {
		return output.New()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return output.NewWithWriters(stdout, stderr, false)
}

// CommandResult registers a handler that reports an Outcome. The command
// name is derived from identifier: separators and camel-case boundaries
// become hyphens and the result is lower-cased.
//
// It panics if the name is taken, the identifier is invalid, or Run has
// already been called.
func (a *App) CommandResult(identifier string, h ResultHandler, opts ...CommandOption) {
	a.register(identifier, h, opts)
}

// Command registers a handler without an Outcome. Returning normally is
// Success. It panics under the same conditions as CommandResult.
func (a *App) Command(identifier string, h PlainHandler, opts ...CommandOption) {
	var wrapped ResultHandler
	if h != nil {
		wrapped = func(inv *Invocation) Outcome {
			h(inv)
			return Success()
		}
	}
	a.register(identifier, wrapped, opts)
}

// CommandFunc registers h under a name derived from its Go function name.
// Anonymous functions have no name and are rejected with a panic.
func (a *App) CommandFunc(h ResultHandler, opts ...CommandOption) {
	identifier, err := registry.IdentifierOf(h)
	if err != nil {
		panic(err)
	}
	a.register(identifier, h, opts)
}

func (a *App) register(identifier string, h ResultHandler, opts []CommandOption) {
	cmd := registry.Command{Identifier: identifier, Handler: h}
	for _, opt := range opts {
		opt(&cmd)
	}
	if _, err := a.registry.Register(cmd); err != nil {
		panic(err)
	}
}

// Callback registers a root hook that runs before any named command. A
// Failure from the hook stops the command. With invokeWithoutCommand a bare
// invocation runs only the hook instead of reporting a missing command.
//
// An App with a callback is always a dispatcher.
func (a *App) Callback(h ResultHandler, invokeWithoutCommand bool) {
	if a.registry.Frozen() {
		panic(boundary.ErrRegistryFrozen)
	}
	if h == nil {
		panic(boundary.Registration("callback has no handler"))
	}
	a.engine.AddRootHook(engine.Hook{
		Name:                 "callback",
		Handler:              h,
		InvokeWithoutCommand: invokeWithoutCommand,
	})
}

// CommandCount returns the number of registered commands.
func (a *App) CommandCount() int {
	return a.registry.Count()
}

// Names returns the registered command names in sorted order.
func (a *App) Names() []string {
	return a.registry.Names()
}

// ForceSubcommand reports the effective force-subcommand policy.
func (a *App) ForceSubcommand() bool {
	return a.resolver.Policy().ForceSubcommand
}

// HelpOnNoArgs reports the effective help-on-no-args policy. It is always
// true when ForceSubcommand is.
func (a *App) HelpOnNoArgs() bool {
	return a.resolver.Policy().HelpOnNoArgs
}

// Run executes argv, where argv[0] is the program name, and returns the
// process exit code. The error is non-nil only when argv is empty or Run is
// called from inside a running handler; no command ran then.
//
// The first Run freezes registration.
func (a *App) Run(argv []string) (int, error) {
	return a.runner.Run(argv)
}

// RunContext is Run with a context available to handlers as
// Invocation.Context.
func (a *App) RunContext(ctx context.Context, argv []string) (int, error) {
	return a.runner.RunContext(ctx, argv)
}

// Main runs os.Args and exits the process with the resulting code.
func (a *App) Main() {
	code, err := a.Run(os.Args)
	if err != nil {
		output.New().ErrorPrefix(a.programName(), "%v", err)
		code = ExitAbnormal
	}
	os.Exit(code)
}

func (a *App) programName() string {
	if len(os.Args) > 0 && os.Args[0] != "" {
		return filepath.Base(os.Args[0])
	}
	return "typedcli"
}
