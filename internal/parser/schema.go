// Package parser reads schema definition files and value maps.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/n1rna/paramschema/internal/schema"
)

// SchemaParser handles parsing schema definitions from files and memory
type SchemaParser struct{}

// NewSchemaParser creates a new schema parser
func NewSchemaParser() *SchemaParser {
	return &SchemaParser{}
}

// ParseFile parses a schema from a YAML or JSON file. When the document has
// no name, the file name without extension is used.
func (p *SchemaParser) ParseFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	cfg, err := p.ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := schema.Build(*cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a schema from an in-memory YAML or JSON document
func (p *SchemaParser) Parse(data []byte) (*schema.Schema, error) {
	cfg, err := p.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return schema.Build(*cfg)
}

// ParseConfig decodes the authoring form without building it.
// JSON is a subset of YAML, so one decoder serves both formats.
func (p *SchemaParser) ParseConfig(data []byte) (*schema.SchemaConfig, error) {
	var cfg schema.SchemaConfig

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("file is neither valid YAML nor JSON: %w", err)
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("schema must contain at least one category")
	}

	return &cfg, nil
}
