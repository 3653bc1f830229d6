package command

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/generator"
	"github.com/n1rna/paramschema/internal/schema"
)

// NewValidateCommand creates the validate command
func NewValidateCommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [schema]",
		Short: "Validate a set of values against a schema",
		Long: `Validate values against a schema and print every violation.

The schema is a file path, a name from the schema directory, or builtin:<name>.
Values are layered: defaults, --profile, --preset, --values, then --set.

Examples:
  pschema validate builtin:angles --set problemCount=12 --set difficulty=hard
  pschema validate quadratics.yaml --values class.params
  pschema validate --values class.params   # schema read from '# schema:' line`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: groupID,
		RunE:    runValidate,
	}

	addValueFlags(cmd)
	addFormatFlag(cmd)
	cmd.Flags().BoolP("quiet", "q", false, "Only print errors")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	in, err := loadInputs(cmd, args)
	if err != nil {
		return err
	}

	_, err = generator.Resolve(in.Schema, schema.Values{}, in.Values)
	var invalid *generator.InvalidParametersError
	if err != nil && !errors.As(err, &invalid) {
		return err
	}

	if perr := printer.PrintValidation(in.Schema.Validate(in.Values)); perr != nil {
		return perr
	}
	return err
}
