package registry

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AndreyAkinshin/typedcli/internal/errors"
)

// Unbounded marks an ArgSpec without an upper limit.
const Unbounded = -1

// ArgSpec bounds the number of positional arguments a command accepts.
// The zero value accepts none.
type ArgSpec struct {
	Min int
	Max int // Unbounded for no limit
}

// AnyArgs accepts any number of positional arguments.
var AnyArgs = ArgSpec{Min: 0, Max: Unbounded}

// Validate checks the positional argument count.
func (s ArgSpec) Validate(n int) error {
	switch {
	case s.Max == s.Min && n != s.Min:
		return fmt.Errorf("accepts %d arg(s), received %d", s.Min, n)
	case n < s.Min:
		return fmt.Errorf("requires at least %d arg(s), only received %d", s.Min, n)
	case s.Max != Unbounded && n > s.Max:
		return fmt.Errorf("accepts at most %d arg(s), received %d", s.Max, n)
	}
	return nil
}

// OptionKind is the value type of a command option.
type OptionKind int

const (
	OptionString OptionKind = iota
	OptionBool
	OptionInt
)

// OptionSpec declares a named option bound by the host engine.
type OptionSpec struct {
	Name    string
	Short   string
	Kind    OptionKind
	Default any
	Help    string
}

// Command is a registered command. It is immutable once registered.
type Command struct {
	Name       string
	Identifier string
	Help       string
	Handler    Handler
	Args       ArgSpec
	Options    []OptionSpec
}

// Registry maps command names to commands.
type Registry struct {
	commands []Command
	index    map[string]int
	frozen   bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register derives the command name from cmd.Identifier and records the
// command. It fails with DuplicateNameError if the derived name is taken and
// with ErrRegistryFrozen after Freeze.
func (r *Registry) Register(cmd Command) (Command, error) {
	if r.frozen {
		return Command{}, errors.ErrRegistryFrozen
	}
	if cmd.Handler == nil {
		return Command{}, errors.Registrationf("command %q has no handler", cmd.Identifier)
	}
	name, err := CommandName(cmd.Identifier)
	if err != nil {
		return Command{}, err
	}
	if name == helpCommand {
		return Command{}, errors.Registrationf("command name %q is reserved", name)
	}
	if err := validateOptions(name, cmd.Options); err != nil {
		return Command{}, err
	}
	if i, exists := r.index[name]; exists {
		return Command{}, &errors.DuplicateNameError{
			Name:     name,
			Existing: r.commands[i].Identifier,
			Incoming: cmd.Identifier,
		}
	}

	cmd.Name = name
	cmd.Options = append([]OptionSpec(nil), cmd.Options...)

	r.index[name] = len(r.commands)
	r.commands = append(r.commands, cmd)
	return cmd, nil
}

// Names and shorthands the host engine binds on every command.
const (
	helpCommand = "help"
	helpFlag    = "help"
	helpShort   = "h"
	versionFlag = "version"
)

// validateOptions rejects options the host engine could not bind: blank or
// repeated names, repeated or multi-letter shorthands, and the built-in
// help and version flags.
func validateOptions(command string, opts []OptionSpec) error {
	names := make(map[string]bool, len(opts))
	shorts := make(map[string]bool, len(opts))
	for _, o := range opts {
		switch {
		case o.Name == "" || strings.HasPrefix(o.Name, "-"):
			return errors.Registrationf("command %q: invalid option name %q", command, o.Name)
		case o.Name == helpFlag || o.Name == versionFlag:
			return errors.Registrationf("command %q: option --%s is reserved", command, o.Name)
		case names[o.Name]:
			return errors.Registrationf("command %q: option --%s declared twice", command, o.Name)
		}
		names[o.Name] = true

		if o.Short == "" {
			continue
		}
		switch {
		case utf8.RuneCountInString(o.Short) != 1 || o.Short == "-":
			return errors.Registrationf("command %q: shorthand %q of --%s must be one character", command, o.Short, o.Name)
		case o.Short == helpShort:
			return errors.Registrationf("command %q: shorthand -%s is reserved", command, o.Short)
		case shorts[o.Short]:
			return errors.Registrationf("command %q: shorthand -%s declared twice", command, o.Short)
		}
		shorts[o.Short] = true
	}
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	i, ok := r.index[name]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	return len(r.commands)
}

// Names returns all command names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, c := range r.commands {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// Freeze ends the registration phase. It is idempotent.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}
