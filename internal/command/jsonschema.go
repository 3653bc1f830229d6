package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/schema"
)

// NewJSONSchemaCommand creates the jsonschema command
func NewJSONSchemaCommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema for definition files",
		Long: `Print a JSON Schema describing schema definition files, for editor
completion and CI checks of hand-written YAML or JSON definitions.`,
		Args:    cobra.NoArgs,
		GroupID: groupID,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := definitionSchema()
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			return writeFileAtomic(out, data)
		},
	}

	cmd.Flags().String("out", "", "Write the schema to a file instead of stdout")

	return cmd
}

func definitionSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	s := reflector.Reflect(new(schema.SchemaConfig))
	s.Title = "Parameter Schema Definition"
	s.Description = "Categories of typed parameters with dependsOn conditions and presets"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
