// Package main is the entry point for the typedcli configuration tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/typedcli/internal/config"
	"github.com/AndreyAkinshin/typedcli/internal/output"
	"github.com/AndreyAkinshin/typedcli/internal/shape"
	"github.com/AndreyAkinshin/typedcli/pkg/typedcli"
	schemafs "github.com/AndreyAkinshin/typedcli/schema"
)

// version is set by the release build.
var version = "dev"

// envConfig names the file that configures this tool itself.
const envConfig = "TYPEDCLI_CONFIG"

// defaultConfigFile is checked by doctor and written by init.
const defaultConfigFile = "typedcli.yaml"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	out := output.NewWithWriters(stdout, stderr, false)
	opts := []typedcli.Option{
		typedcli.WithName("typedcli"),
		typedcli.WithHelp("Check and scaffold typedcli configuration files."),
		typedcli.WithVersion(version),
		typedcli.WithOutput(stdout, stderr),
	}

	if path := os.Getenv(envConfig); path != "" {
		cfg, warnings, err := config.LoadAndValidate(path)
		if err != nil {
			out.ErrorPrefix("typedcli", "%v", err)
			return typedcli.ExitAbnormal
		}
		for _, w := range warnings {
			out.Warning("%s: %s", path, w)
		}
		logger, closer, err := cfg.OpenLogger()
		if err != nil {
			out.ErrorPrefix("typedcli", "%v", err)
			return typedcli.ExitAbnormal
		}
		defer closer.Close()
		opts = append(opts, typedcli.WithConfig(cfg), typedcli.WithLogger(logger))
	}

	app := typedcli.New(opts...)
	app.CommandResult("doctor", doctor,
		typedcli.Help("Validate a configuration file and show the resulting shape\n\n"+
			"The file defaults to "+defaultConfigFile+" in the current directory."),
		typedcli.Args(0, 1),
		typedcli.IntOption("commands", "c", 1, "Number of commands the application registers"),
	)
	app.CommandResult("init", initConfig,
		typedcli.Help("Write a starter configuration file"),
		typedcli.Args(0, 1),
		typedcli.BoolOption("force", "f", false, "Overwrite an existing file"),
		typedcli.BoolOption("force-subcommand", "", false, "Require a command name even for one command"),
	)
	app.CommandResult("schema", printSchema,
		typedcli.Help("Print the JSON schema for configuration files"),
	)

	code, err := app.Run(argv)
	if err != nil {
		out.ErrorPrefix("typedcli", "%v", err)
		return typedcli.ExitAbnormal
	}
	return code
}

func configPath(inv *typedcli.Invocation) string {
	if p := inv.Arg(0); p != "" {
		return p
	}
	return defaultConfigFile
}

func doctor(inv *typedcli.Invocation) typedcli.Outcome {
	path := configPath(inv)
	cfg, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		return typedcli.Failure(err)
	}

	count := inv.Int("commands")
	if count < 0 {
		return typedcli.Failuref("--commands must not be negative, got %d", count)
	}

	out := output.NewWithWriters(inv.Stdout, inv.Stderr, false)
	title := cases.Title(language.English)

	policy := cfg.Policy()
	effective := policy.Effective()
	out.Section(title.String("configuration"))
	out.Table([]string{"KEY", "VALUE"}, [][]string{
		{"file", path},
		{"name", valueOr(cfg.Name, "(argv[0])")},
		{"version", valueOr(cfg.Version, "(none)")},
		{"force_subcommand", strconv.FormatBool(policy.ForceSubcommand)},
		{"help_on_no_args", fmt.Sprintf("%t (effective %t)", policy.HelpOnNoArgs, effective.HelpOnNoArgs)},
		{"log", fmt.Sprintf("%s/%s %s", cfg.Log.Level, cfg.Log.Format, valueOr(cfg.Log.File, "(discarded)"))},
	})

	out.Section(title.String("bare invocation"))
	out.Println("%d command(s): %s", count, describe(shape.Expected(count, policy), effective))

	if len(warnings) > 0 {
		out.Section(title.String("warnings"))
		out.List(warnings)
	}
	out.Println("")
	out.Success("%s is valid", path)
	return typedcli.Success()
}

func describe(s shape.Shape, p shape.Policy) string {
	switch {
	case s == shape.Single && p.HelpOnNoArgs:
		return "shows help; naming the command runs it"
	case s == shape.Single:
		return "runs the command"
	case p.HelpOnNoArgs:
		return "shows help"
	default:
		return "reports a missing command"
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func initConfig(inv *typedcli.Invocation) typedcli.Outcome {
	path := configPath(inv)
	if !inv.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return typedcli.Failuref("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return typedcli.Failure(err)
		}
	}

	cfg := &config.Config{
		Log: config.LogConfig{Level: config.DefaultLogLevel, Format: config.DefaultLogFormat},
	}
	if inv.Changed("force-subcommand") {
		force := inv.Bool("force-subcommand")
		cfg.ForceSubcommand = &force
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return typedcli.Failure(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return typedcli.Failure(fmt.Errorf("failed to write %s: %w", path, err))
	}

	output.NewWithWriters(inv.Stdout, inv.Stderr, false).Success("wrote %s", path)
	return typedcli.Success()
}

func printSchema(inv *typedcli.Invocation) typedcli.Outcome {
	data, err := schemafs.FS.ReadFile("config.schema.json")
	if err != nil {
		return typedcli.Failure(err)
	}
	if _, err := inv.Stdout.Write(data); err != nil {
		return typedcli.Failure(err)
	}
	return typedcli.Success()
}
