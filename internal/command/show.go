package command

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command
func NewShowCommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [schema]",
		Short: "Show the parameters visible for a set of values",
		Long: `Show the categories and parameters a settings screen would display for the
given values, with hidden parameters removed and everything sorted by order.`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: groupID,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			in, err := loadInputs(cmd, args)
			if err != nil {
				return err
			}
			return printer.PrintCategories(in.Schema.CategorizedParameters(in.Values), in.Values)
		},
	}

	addValueFlags(cmd)
	addFormatFlag(cmd)

	return cmd
}

// NewHiddenCommand creates the hidden command
func NewHiddenCommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hidden [schema]",
		Short:   "List parameters hidden by their conditions",
		Args:    cobra.MaximumNArgs(1),
		GroupID: groupID,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			in, err := loadInputs(cmd, args)
			if err != nil {
				return err
			}
			return printer.PrintHidden(in.Schema.HiddenParameterIDs(in.Values))
		},
	}

	addValueFlags(cmd)
	addFormatFlag(cmd)

	return cmd
}

// NewPresetsCommand creates the presets command
func NewPresetsCommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "presets <schema>",
		Short:   "List the presets a schema declares",
		Args:    cobra.ExactArgs(1),
		GroupID: groupID,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			s, err := resolveSchema(GetConfig(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			return printer.PrintPresets(s.Presets)
		},
	}

	addFormatFlag(cmd)

	return cmd
}
