// Package schema provides JSON schema validation for typedcli configuration files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/typedcli/schema"
)

var (
	configSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchemas compiles the embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		configData, err := schemafs.FS.ReadFile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read config schema: %w", err)
			return
		}
		configDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal config schema: %w", err)
			return
		}
		if err := compiler.AddResource("config.schema.json", configDoc); err != nil {
			compileErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}
		configSchema, err = compiler.Compile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}
	})
	return compileErr
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ValidateConfigValue validates an already decoded document, such as one
// read from YAML, by round-tripping it through JSON.
func ValidateConfigValue(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode config as JSON: %w", err)
	}
	return ValidateConfig(data)
}
