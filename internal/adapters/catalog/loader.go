// Package catalog loads the game-balance tables from YAML. Documents are
// checked against an embedded JSON schema before they are indexed.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	domain "github.com/andrescamacho/colony-go/internal/domain/catalog"
)

//go:embed data/catalog.schema.json
var schemaJSON []byte

//go:embed data/catalog.yaml
var defaultCatalog []byte

const schemaURL = "catalog.schema.json"

// LoadFile loads a catalog from a YAML file. An empty path loads the
// built-in catalog.
func LoadFile(path string) (*domain.Tables, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	tables, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return tables, nil
}

// Default loads the built-in catalog
func Default() (*domain.Tables, error) {
	return Load(defaultCatalog)
}

// Load validates a YAML document and builds the lookup tables from it
func Load(data []byte) (*domain.Tables, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var defs domain.Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return domain.NewTables(defs)
}

// Validate checks a YAML document against the catalog schema
func Validate(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON value types
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to convert catalog: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("failed to convert catalog: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load catalog schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog schema: %w", err)
	}
	return schema, nil
}
