package config

import (
	"os"
	"strings"

	"github.com/AndreyAkinshin/typedcli/internal/log"
)

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// applyDefaults fills in default values for unset configuration fields.
// TYPEDCLI_LOG_LEVEL overrides the file's log level.
func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if env := strings.TrimSpace(os.Getenv(log.EnvLevel)); env != "" {
		cfg.Log.Level = strings.ToLower(env)
	}
}
