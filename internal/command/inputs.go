package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/catalog"
	"github.com/n1rna/paramschema/internal/config"
	"github.com/n1rna/paramschema/internal/generator"
	"github.com/n1rna/paramschema/internal/logger"
	"github.com/n1rna/paramschema/internal/output"
	"github.com/n1rna/paramschema/internal/parser"
	"github.com/n1rna/paramschema/internal/schema"
)

// inputs is a schema plus the value map assembled from the value flags
type inputs struct {
	Ref    string
	Schema *schema.Schema
	Values schema.Values
}

func addValueFlags(cmd *cobra.Command) {
	cmd.Flags().String("values", "", "Read values from a YAML, JSON, .env or .params file")
	cmd.Flags().StringArray("set", nil, "Set a value as key=value (repeatable)")
	cmd.Flags().String("preset", "", "Apply a preset declared by the schema")
	cmd.Flags().String("profile", "", "Start from the values of a saved profile")
	cmd.Flags().Bool("no-defaults", false, "Do not start from the schema's default values")
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json, yaml)")
}

func newPrinter(cmd *cobra.Command) (*output.Printer, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	return output.NewPrinterWithWriter(cmd.OutOrStdout(), format, quiet), nil
}

// resolveSchema finds a schema by reference: builtin:<name>, a file path, a
// definition in the configured schema directory, or a built-in name
func resolveSchema(cfg *config.Config, ref string) (*schema.Schema, error) {
	if cfg != nil && cfg.SchemaDir != "" && filepath.Base(ref) == ref {
		for _, ext := range []string{".yaml", ".yml", ".json"} {
			candidate := filepath.Join(cfg.SchemaDir, ref+ext)
			if _, err := os.Stat(candidate); err == nil {
				logger.Debug("resolved schema %s to %s", ref, candidate)
				return parser.NewSchemaParser().ParseFile(candidate)
			}
		}
	}
	return catalog.Resolve(ref)
}

// loadInputs assembles the schema and values for a command. Layers apply in
// order, later ones winning: schema defaults, profile, preset, values file,
// --set assignments. The schema reference comes from the first argument,
// otherwise from the values file or the profile.
func loadInputs(cmd *cobra.Command, args []string) (*inputs, error) {
	cfg := GetConfig(cmd.Context())

	valuesPath, _ := cmd.Flags().GetString("values")
	sets, _ := cmd.Flags().GetStringArray("set")
	presetID, _ := cmd.Flags().GetString("preset")
	profileName, _ := cmd.Flags().GetString("profile")
	noDefaults, _ := cmd.Flags().GetBool("no-defaults")

	var ref string
	if len(args) > 0 {
		ref = args[0]
	}

	var profileValues schema.Values
	if profileName != "" {
		store, err := RequireProfileStore(cmd.Context())
		if err != nil {
			return nil, err
		}
		profile, err := store.Get(profileName)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profileValues = profile.Values
		if ref == "" {
			ref = profile.Schema
		}
	}

	var fileValues schema.Values
	if valuesPath != "" {
		file, err := parser.ParseValuesFile(valuesPath)
		if err != nil {
			return nil, err
		}
		fileValues = file.Values
		if ref == "" {
			ref = file.Schema
		}
	}

	setValues, err := parser.ParseAssignments(sets)
	if err != nil {
		return nil, err
	}

	if ref == "" {
		return nil, fmt.Errorf("no schema given; pass a schema reference, a values file with a '# schema:' line, or --profile")
	}

	s, err := resolveSchema(cfg, ref)
	if err != nil {
		return nil, err
	}

	var defaults schema.Values
	if !noDefaults {
		defaults = s.Defaults()
	}

	var presetValues schema.Values
	if presetID != "" {
		preset, ok := s.Preset(presetID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", generator.ErrUnknownPreset, presetID)
		}
		presetValues = preset.Values
	}

	return &inputs{
		Ref:    ref,
		Schema: s,
		Values: generator.Merge(defaults, profileValues, presetValues, fileValues, setValues),
	}, nil
}
