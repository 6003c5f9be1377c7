package typedcli

import (
	"io"
	"log/slog"

	"github.com/AndreyAkinshin/typedcli/internal/registry"
)

type settings struct {
	name            string
	help            string
	version         string
	forceSubcommand bool
	helpOnNoArgs    bool
	stdout          io.Writer
	stderr          io.Writer
	logger          *slog.Logger
}

// Option configures an App.
type Option func(*settings)

// WithName fixes the program name shown in help and usage errors instead of
// the base name of argv[0].
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithHelp sets the root help text.
func WithHelp(help string) Option {
	return func(s *settings) { s.help = help }
}

// WithVersion enables --version.
func WithVersion(version string) Option {
	return func(s *settings) { s.version = version }
}

// WithForceSubcommand requires a command name even when only one command is
// registered. It also forces help on a bare invocation.
func WithForceSubcommand(force bool) Option {
	return func(s *settings) { s.forceSubcommand = force }
}

// WithHelpOnNoArgs prints help instead of running anything on a bare
// invocation.
func WithHelpOnNoArgs(help bool) Option {
	return func(s *settings) { s.helpOnNoArgs = help }
}

// WithOutput redirects user-facing output. Nil writers keep the process streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *settings) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithLogger sets the diagnostic logger. Without it diagnostics are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithConfig applies a loaded configuration: name, help, version and every
// policy key the file sets explicitly. Options after it win. The log section
// is opened separately through Config.OpenLogger.
func WithConfig(cfg *Config) Option {
	return func(s *settings) {
		if cfg == nil {
			return
		}
		if cfg.Name != "" {
			s.name = cfg.Name
		}
		if cfg.Help != "" {
			s.help = cfg.Help
		}
		if cfg.Version != "" {
			s.version = cfg.Version
		}
		if cfg.ForceSubcommand != nil {
			s.forceSubcommand = *cfg.ForceSubcommand
		}
		if cfg.HelpOnNoArgs != nil {
			s.helpOnNoArgs = *cfg.HelpOnNoArgs
		}
	}
}

// CommandOption configures one command at registration.
type CommandOption func(*registry.Command)

// Help sets the command's help text. The first line is its summary.
func Help(text string) CommandOption {
	return func(c *registry.Command) { c.Help = text }
}

// Args bounds the number of positional arguments. Pass -1 as max for no
// upper limit. Without Args a command accepts no positional arguments.
func Args(minArgs, maxArgs int) CommandOption {
	return func(c *registry.Command) {
		if maxArgs < 0 {
			maxArgs = registry.Unbounded
		}
		c.Args = registry.ArgSpec{Min: minArgs, Max: maxArgs}
	}
}

// StringOption declares a --name string option.
func StringOption(name, short, def, help string) CommandOption {
	return option(registry.OptionSpec{Name: name, Short: short, Kind: registry.OptionString, Default: def, Help: help})
}

// BoolOption declares a --name flag.
func BoolOption(name, short string, def bool, help string) CommandOption {
	return option(registry.OptionSpec{Name: name, Short: short, Kind: registry.OptionBool, Default: def, Help: help})
}

// IntOption declares a --name integer option.
func IntOption(name, short string, def int, help string) CommandOption {
	return option(registry.OptionSpec{Name: name, Short: short, Kind: registry.OptionInt, Default: def, Help: help})
}

func option(spec registry.OptionSpec) CommandOption {
	return func(c *registry.Command) { c.Options = append(c.Options, spec) }
}
