package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/n1rna/paramschema/internal/schema"
)

const schemaDirective = "# schema:"

// ValueFile is a value map read from disk, with the schema it was written
// for when the file names one
type ValueFile struct {
	Schema string
	Values schema.Values
}

// ParseValuesFile reads a value map. Files ending in .env or .params use
// one key=value assignment per line; anything else is decoded as a YAML or
// JSON mapping.
func ParseValuesFile(path string) (*ValueFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".env", ".params":
		return parseAssignmentFile(data)
	}

	values := schema.Values{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("values file %s is not a mapping: %w", path, err)
	}
	return &ValueFile{Values: values}, nil
}

// parseAssignmentFile parses key=value lines. Comments start with #, and a
// "# schema: <ref>" line records the schema the values belong to.
func parseAssignmentFile(data []byte) (*ValueFile, error) {
	file := &ValueFile{Values: schema.Values{}}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, schemaDirective) {
			file.Schema = strings.TrimSpace(strings.TrimPrefix(line, schemaDirective))
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseAssignment(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		file.Values[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading values file: %w", err)
	}
	return file, nil
}

// ParseAssignments parses key=value specs as given on the command line.
// Later assignments to the same key win.
func ParseAssignments(specs []string) (schema.Values, error) {
	values := schema.Values{}
	for _, spec := range specs {
		key, value, err := parseAssignment(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment '%s': %w", spec, err)
		}
		values[key] = value
	}
	return values, nil
}

// parseAssignment splits key=value and decodes the value as a YAML scalar or
// flow collection, so 3, true and [a, b] keep their types
func parseAssignment(spec string) (string, any, error) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("format should be 'key=value'")
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", nil, fmt.Errorf("key cannot be empty")
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return key, "", nil
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		// not valid YAML on its own, keep the text
		return key, raw, nil
	}
	return key, value, nil
}
