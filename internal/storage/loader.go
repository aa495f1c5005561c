package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

//go:embed schema/properties.schema.json
var propertiesSchemaJSON string

var propertiesSchema = compilePropertiesSchema()

func compilePropertiesSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource("properties.schema.json", bytes.NewReader([]byte(propertiesSchemaJSON))); err != nil {
		panic(fmt.Sprintf("add properties schema: %v", err))
	}
	return c.MustCompile("properties.schema.json")
}

// LoadPropertiesFromFile reads a fixture file, validates it against the
// property schema and returns its records.
func LoadPropertiesFromFile(path string) ([]domain.Property, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read properties file: %w", err)
	}
	return ParseProperties(b)
}

func ParseProperties(b []byte) ([]domain.Property, error) {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal properties: %w", err)
	}
	if err := propertiesSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate properties: %w", err)
	}

	var props []domain.Property
	if err := json.Unmarshal(b, &props); err != nil {
		return nil, fmt.Errorf("unmarshal properties: %w", err)
	}
	return props, nil
}

// WritePropertiesFile writes props as an indented JSON array.
func WritePropertiesFile(path string, props []domain.Property) error {
	b, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal properties: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write properties file: %w", err)
	}
	return nil
}
