package schema

import (
	"strings"
	"testing"
)

func TestValidateConfig_Valid(t *testing.T) {
	docs := map[string]string{
		"empty":   `{}`,
		"policy":  `{"force_subcommand": true, "help_on_no_args": false}`,
		"full":    `{"name": "tool", "help": "A tool", "version": "1.0.0", "log": {"level": "debug", "format": "json", "file": "/tmp/x.log"}}`,
		"upper":   `{"log": {"level": "WARN"}}`,
		"dotname": `{"name": "tool.v2"}`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			if err := ValidateConfig([]byte(doc)); err != nil {
				t.Errorf("expected valid config, got error: %v", err)
			}
		})
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	docs := map[string]string{
		"not an object":     `[]`,
		"unknown key":       `{"forceSubcommand": true}`,
		"wrong type":        `{"force_subcommand": "yes"}`,
		"bad log level":     `{"log": {"level": "verbose"}}`,
		"bad log format":    `{"log": {"format": "xml"}}`,
		"unknown log key":   `{"log": {"colour": true}}`,
		"name with space":   `{"name": "my tool"}`,
		"name leading dash": `{"name": "-tool"}`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			err := ValidateConfig([]byte(doc))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), "config validation failed") {
				t.Errorf("error = %v, want validation failure", err)
			}
		})
	}
}

func TestValidateConfig_MalformedJSON(t *testing.T) {
	err := ValidateConfig([]byte(`{`))
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("error = %v, want invalid JSON", err)
	}
}

func TestValidateConfigValue(t *testing.T) {
	if err := ValidateConfigValue(map[string]any{"help_on_no_args": true}); err != nil {
		t.Errorf("ValidateConfigValue() error = %v", err)
	}
	if err := ValidateConfigValue(map[string]any{"help_on_no_args": 1}); err == nil {
		t.Error("ValidateConfigValue() expected error for integer flag")
	}
}
