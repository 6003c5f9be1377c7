// Package config loads typedcli application settings from YAML.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/typedcli/internal/schema"
	"github.com/AndreyAkinshin/typedcli/internal/shape"
)

// Config is the file form of an application's construction-time settings.
type Config struct {
	Name            string    `yaml:"name,omitempty"`
	Help            string    `yaml:"help,omitempty"`
	Version         string    `yaml:"version,omitempty"`
	ForceSubcommand *bool     `yaml:"force_subcommand,omitempty"`
	HelpOnNoArgs    *bool     `yaml:"help_on_no_args,omitempty"`
	Log             LogConfig `yaml:"log,omitempty"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// Policy returns the dispatch policy exactly as written. Coupling between
// the two intents is applied by the resolver, not here.
func (c *Config) Policy() shape.Policy {
	return shape.Policy{
		ForceSubcommand: c.ForceSubcommand != nil && *c.ForceSubcommand,
		HelpOnNoArgs:    c.HelpOnNoArgs != nil && *c.HelpOnNoArgs,
	}
}

// Load reads, validates and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data against the config schema and decodes it.
// An empty document is an empty configuration.
func Parse(data []byte) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := schema.ValidateConfigValue(raw); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadAndValidate reads a config file, applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	warnings, err := Validate(cfg)
	if err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
