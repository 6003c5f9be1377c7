// Package engine adapts spf13/cobra into the host engine used by the runner.
//
// The engine owns argument parsing, help rendering and command selection. It
// follows the conventional host-engine default: an application with exactly
// one command and no root hook collapses into a single runnable program.
// Anything else is a dispatcher that needs a command name. Callers that want
// a dispatcher for a single command install a root hook (see package shape).
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	boundary "github.com/AndreyAkinshin/typedcli/internal/errors"
	"github.com/AndreyAkinshin/typedcli/internal/output"
	"github.com/AndreyAkinshin/typedcli/internal/registry"
)

// helpCommand is the name of cobra's built-in help command.
const helpCommand = "help"

// errMissingCommand is reported by a dispatcher invoked without a command.
var errMissingCommand = errors.New("missing command")

// Hook runs at the root before any named command.
type Hook struct {
	Name     string
	Internal bool // Installed by the library, not by the application
	Handler  registry.Handler
	// InvokeWithoutCommand runs the hook on a bare invocation instead of
	// reporting a missing command.
	InvokeWithoutCommand bool
}

// Engine holds the root-level configuration of the host engine.
type Engine struct {
	Help    string
	Version string

	noArgsIsHelp bool
	hooks        []Hook
}

// New creates an engine with the given root help text and version.
func New(help, version string) *Engine {
	return &Engine{Help: help, Version: version}
}

// AddRootHook registers a root-level hook.
func (e *Engine) AddRootHook(h Hook) {
	e.hooks = append(e.hooks, h)
}

// Callbacks returns the names of the application's root hooks. Internal
// hooks are left out.
func (e *Engine) Callbacks() []string {
	var names []string
	for _, h := range e.hooks {
		if !h.Internal {
			names = append(names, h.Name)
		}
	}
	return names
}

// SetNoArgsIsHelp makes a bare invocation print help and exit 0.
func (e *Engine) SetNoArgsIsHelp(v bool) {
	e.noArgsIsHelp = v
}

// Grouped reports whether an application with count commands is a
// dispatcher. Root hooks count as decision points.
func (e *Engine) Grouped(count int) bool {
	return len(e.hooks) > 0 || count != 1
}

// Request describes one invocation.
type Request struct {
	Context  context.Context
	ID       string
	Program  string
	Args     []string
	Commands []registry.Command
	Out      *output.Writer
}

// Execute parses req.Args, selects a command and runs it.
//
// It returns nil when a handler succeeded, a *errors.CommandError when a
// handler failed, and a KindEngine boundary error when the engine itself
// short-circuited (help, usage errors). Usage errors are printed here.
// Handler panics are not recovered.
func (e *Engine) Execute(req Request) error {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	root, helped := e.Build(req)
	if len(req.Args) == 0 && e.noArgsIsHelp {
		root.InitDefaultHelpFlag()
		root.InitDefaultVersionFlag()
		if err := root.Help(); err != nil {
			return err
		}
		return boundary.Engine(boundary.ExitSuccess, nil)
	}

	root.SetArgs(append([]string{}, req.Args...))
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		if *helped {
			return boundary.Engine(boundary.ExitSuccess, nil)
		}
		return nil
	}

	var ce *boundary.CommandError
	var be *boundary.BoundaryError
	if errors.As(err, &ce) || errors.As(err, &be) {
		return err
	}

	if cmd == nil {
		cmd = root
	}
	req.Out.UsageError(cmd.CommandPath(), err)
	return boundary.Usage(err)
}

// Build assembles the cobra command tree for req. The returned flag is set
// once cobra renders help.
func (e *Engine) Build(req Request) (*cobra.Command, *bool) {
	root := &cobra.Command{
		Use:           req.Program,
		Long:          e.Help,
		Short:         firstLine(e.Help),
		Version:       e.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetOut(req.Out.Stdout())
	root.SetErr(req.Out.Stderr())

	helped := new(bool)
	renderHelp := root.HelpFunc()
	root.SetHelpFunc(func(c *cobra.Command, args []string) {
		*helped = true
		renderHelp(c, args)
	})

	if !e.Grouped(len(req.Commands)) {
		e.buildSingle(root, req)
	} else {
		e.buildDispatcher(root, req)
	}
	return root, helped
}

// buildSingle makes the root run the only command. A command without
// positional arguments stays reachable by name through a hidden alias; for
// any other command a first argument equal to its name is an argument.
func (e *Engine) buildSingle(root *cobra.Command, req Request) {
	only := req.Commands[0]
	root.Args = positional(only.Args)
	root.RunE = runHandler(req, only.Name, only.Handler)
	bindOptions(root.Flags(), only.Options)
	if root.Short == "" {
		root.Short = only.Help
		root.Long = only.Help
	}

	if only.Args.Max != 0 {
		return
	}
	alias := newCommand(req, only)
	alias.Hidden = true
	root.AddCommand(alias)
}

func (e *Engine) buildDispatcher(root *cobra.Command, req Request) {
	for _, c := range req.Commands {
		root.AddCommand(newCommand(req, c))
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		// The built-in help command is not a command of the application.
		if cmd == root || cmd.Name() == helpCommand {
			return nil
		}
		return e.runHooks(req, cmd, false)
	}
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		if !e.invokesWithoutCommand() {
			return errMissingCommand
		}
		return e.runHooks(req, cmd, true)
	}
}

func (e *Engine) invokesWithoutCommand() bool {
	for _, h := range e.hooks {
		if h.InvokeWithoutCommand {
			return true
		}
	}
	return false
}

func (e *Engine) runHooks(req Request, cmd *cobra.Command, bare bool) error {
	for _, h := range e.hooks {
		if bare && !h.InvokeWithoutCommand {
			continue
		}
		inv := registry.NewInvocation(cmd.Context(), req.ID, "", nil, cmd.Flags(), req.Out.Stdout(), req.Out.Stderr())
		if err := h.Handler(inv).AsError(); err != nil {
			return err
		}
	}
	return nil
}

func newCommand(req Request, c registry.Command) *cobra.Command {
	cc := &cobra.Command{
		Use:   c.Name + argsUsage(c.Args),
		Short: firstLine(c.Help),
		Long:  c.Help,
		Args:  positional(c.Args),
		RunE:  runHandler(req, c.Name, c.Handler),
	}
	bindOptions(cc.Flags(), c.Options)
	return cc
}

func runHandler(req Request, name string, h registry.Handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		inv := registry.NewInvocation(cmd.Context(), req.ID, name, args, cmd.Flags(), req.Out.Stdout(), req.Out.Stderr())
		return h(inv).AsError()
	}
}

func positional(spec registry.ArgSpec) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		return spec.Validate(len(args))
	}
}

func bindOptions(fs *pflag.FlagSet, opts []registry.OptionSpec) {
	for _, o := range opts {
		switch o.Kind {
		case registry.OptionBool:
			def, _ := o.Default.(bool)
			fs.BoolP(o.Name, o.Short, def, o.Help)
		case registry.OptionInt:
			def, _ := o.Default.(int)
			fs.IntP(o.Name, o.Short, def, o.Help)
		default:
			def, _ := o.Default.(string)
			fs.StringP(o.Name, o.Short, def, o.Help)
		}
	}
}

func argsUsage(spec registry.ArgSpec) string {
	switch {
	case spec.Max == 0:
		return ""
	case spec.Max == registry.Unbounded:
		return " [args...]"
	case spec.Min == spec.Max:
		return strings.Repeat(" <arg>", spec.Min)
	default:
		return strings.Repeat(" <arg>", spec.Min) + strings.Repeat(" [arg]", spec.Max-spec.Min)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
