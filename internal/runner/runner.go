// Package runner is the invocation boundary: it drives the host engine for
// one argument vector and turns whatever happened into a process exit code.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"

	boundary "github.com/AndreyAkinshin/typedcli/internal/errors"
	"github.com/AndreyAkinshin/typedcli/internal/engine"
	"github.com/AndreyAkinshin/typedcli/internal/log"
	"github.com/AndreyAkinshin/typedcli/internal/outcome"
	"github.com/AndreyAkinshin/typedcli/internal/output"
	"github.com/AndreyAkinshin/typedcli/internal/registry"
	"github.com/AndreyAkinshin/typedcli/internal/shape"
)

// defaultProgram names the root when argv[0] is blank.
const defaultProgram = "prog"

// Runner executes invocations against a registry and a host engine.
//
// A Runner is not safe for concurrent or reentrant use: Run replaces
// os.Args for the duration of one invocation. A nested Run from inside a
// handler fails with ErrReentrantRun.
type Runner struct {
	registry *registry.Registry
	engine   *engine.Engine
	out      *output.Writer
	logger   *slog.Logger
	program  string

	running atomic.Bool
	newID   func() string
}

// New creates a Runner. A nil logger discards diagnostics.
func New(reg *registry.Registry, eng *engine.Engine, out *output.Writer, logger *slog.Logger) *Runner {
	if out == nil {
		out = output.New()
	}
	return &Runner{
		registry: reg,
		engine:   eng,
		out:      out,
		logger:   log.WithComponent(logger, "runner"),
		newID:    uuid.NewString,
	}
}

// SetProgram fixes the program name shown in help and usage errors.
// An empty name falls back to the base name of argv[0].
func (r *Runner) SetProgram(name string) {
	r.program = name
}

// Run executes argv, where argv[0] is the program name, and returns the exit
// code. The error is non-nil only for contract violations by the caller of
// Run itself (empty argv, reentrant call); no invocation took place then.
func (r *Runner) Run(argv []string) (int, error) {
	return r.RunContext(context.Background(), argv)
}

// RunContext is Run with a context handed to handlers through Invocation.
func (r *Runner) RunContext(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, boundary.ErrEmptyArgv
	}
	if !r.running.CompareAndSwap(false, true) {
		return 0, boundary.ErrReentrantRun
	}
	defer r.running.Store(false)

	r.registry.Freeze()
	id := r.newID()
	logger := log.WithInvocation(r.logger, id)

	saved := os.Args
	os.Args = argv
	defer func() { os.Args = saved }()

	req := engine.Request{
		Context:  ctx,
		ID:       id,
		Program:  r.programName(argv[0]),
		Args:     argv[1:],
		Commands: r.registry.Commands(),
		Out:      r.out,
	}
	logger.Debug("dispatch",
		slog.String("program", req.Program),
		slog.Int("args", len(req.Args)),
		slog.Int("commands", len(req.Commands)),
		slog.Any("callbacks", r.engine.Callbacks()),
		slog.String("shape", shape.Resolve(r.engine, len(req.Commands)).String()),
	)

	t := r.dispatch(req)
	code := r.exitCode(t, logger, id)
	logger.Debug("exit", slog.Int("code", code))
	return code, nil
}

// termination is how one dispatch ended.
type termination struct {
	err      error
	panicked bool
	value    any
	stack    []byte
}

func (r *Runner) dispatch(req engine.Request) (t termination) {
	defer func() {
		if v := recover(); v != nil {
			t = termination{panicked: true, value: v, stack: debug.Stack()}
		}
	}()
	return termination{err: r.engine.Execute(req)}
}

// exitCode is the only place that maps a termination to an exit code and
// the only place that prints error-shaped text on a handler's behalf. Codes
// come from errors.GetExitCode.
func (r *Runner) exitCode(t termination, logger *slog.Logger, id string) int {
	err := t.err
	if t.panicked {
		err = r.panicError(t, logger)
	}

	var ce *boundary.CommandError
	var be *boundary.BoundaryError
	switch {
	case err == nil:
	case errors.As(err, &ce):
		line, ok := renderFailure(ce.Err, logger)
		if !ok {
			err = boundary.Abnormal("handler fault")
			r.out.Bug(err.Error(), id)
			break
		}
		if line == "" {
			line = "command failed"
		}
		r.out.Failure(line)
	case boundary.IsKind(err, boundary.KindEngine):
	case boundary.IsKind(err, boundary.KindContract):
		logger.Error("contract violation", slog.String("error", err.Error()))
		r.out.Bug("contract violation", id)
	case errors.As(err, &be) && be.Kind == boundary.KindAbnormal:
		r.out.Bug(be.Message, id)
	default:
		logger.Error("internal failure", slog.String("error", err.Error()))
		r.out.Bug("internal failure", id)
	}
	return boundary.GetExitCode(err)
}

// panicError turns a recovered panic into a boundary error. An ExitSignal
// is an engine short-circuit carrying its code; anything else is a fault.
func (r *Runner) panicError(t termination, logger *slog.Logger) error {
	if sig, ok := t.value.(*outcome.ExitSignal); ok {
		if sig.Code < 0 || sig.Code > boundary.MaxExitCode {
			return boundary.Contractf("exit code %d outside 0..%d", sig.Code, boundary.MaxExitCode)
		}
		return boundary.Engine(sig.Code, nil)
	}
	logger.Error("handler fault",
		slog.String("panic", fmt.Sprint(t.value)),
		slog.String("type", fmt.Sprintf("%T", t.value)),
		slog.String("stack", string(t.stack)),
	)
	return boundary.Abnormal("handler fault")
}

// renderFailure renders a handler's failure value. The value's Error method
// is handler code and may panic; ok is false then.
func renderFailure(err error, logger *slog.Logger) (line string, ok bool) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error("failure value fault",
				slog.String("panic", fmt.Sprint(v)),
				slog.String("type", fmt.Sprintf("%T", err)),
				slog.String("stack", string(debug.Stack())),
			)
			line, ok = "", false
		}
	}()
	return outcome.Render(err), true
}

func (r *Runner) programName(arg0 string) string {
	if r.program != "" {
		return r.program
	}
	name := filepath.Base(arg0)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return defaultProgram
	}
	return name
}
