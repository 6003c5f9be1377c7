package typedcli

import (
	"github.com/AndreyAkinshin/typedcli/internal/config"
)

// Config is an application configuration file.
type Config = config.Config

// LoadConfig reads and validates a YAML configuration file. The returned
// warnings name settings that have no effect.
func LoadConfig(path string) (*Config, []string, error) {
	return config.LoadAndValidate(path)
}
