package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors the schema cannot express and
// returns warnings for settings that have no effect.
func Validate(cfg *Config) (warnings []string, err error) {
	if cfg.ForceSubcommand != nil && *cfg.ForceSubcommand &&
		cfg.HelpOnNoArgs != nil && !*cfg.HelpOnNoArgs {
		warnings = append(warnings, "help_on_no_args: false has no effect while force_subcommand is true")
	}

	if cfg.Log.File != "" {
		dir := filepath.Dir(cfg.Log.File)
		info, statErr := os.Stat(dir)
		if statErr != nil {
			return warnings, &ValidationError{
				Field:   "log.file",
				Message: fmt.Sprintf("directory %q does not exist", dir),
			}
		}
		if !info.IsDir() {
			return warnings, &ValidationError{
				Field:   "log.file",
				Message: fmt.Sprintf("%q is not a directory", dir),
			}
		}
	}

	return warnings, nil
}
