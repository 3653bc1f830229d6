package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/output"
)

// ProfileCommand groups the profile subcommands
type ProfileCommand struct{}

// NewProfileCommand creates the profile command
func NewProfileCommand(groupID string) *cobra.Command {
	pc := &ProfileCommand{}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved value profiles",
		Long: `Profiles are named value sets stored under the pschema directory. A profile
remembers the schema it was made for, so --profile can stand in for both.`,
		GroupID: groupID,
	}

	cmd.AddCommand(
		pc.newSaveCommand(),
		pc.newListCommand(),
		pc.newShowCommand(),
		pc.newDeleteCommand(),
	)

	return cmd
}

func (c *ProfileCommand) newSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name> [schema]",
		Short: "Validate values and save them as a profile",
		Long: `Assemble values with the usual flags, validate them, and store them under
name. Saving over an existing profile replaces its values.

Examples:
  pschema profile save week-3 builtin:angles --preset quick --set problemCount=8
  pschema profile save week-4 --profile week-3 --set difficulty=hard`,
		Args: cobra.RangeArgs(1, 2),
		RunE: c.runSave,
	}

	addValueFlags(cmd)
	cmd.Flags().String("description", "", "Profile description")
	cmd.Flags().Bool("force", false, "Save even when the values do not validate")
	cmd.Flags().Bool("quiet", false, "Suppress non-error output")

	return cmd
}

func (c *ProfileCommand) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE:  c.runList,
	}
	addFormatFlag(cmd)
	return cmd
}

func (c *ProfileCommand) newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runShow,
	}
	addFormatFlag(cmd)
	return cmd
}

func (c *ProfileCommand) newDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runDelete,
	}
	cmd.Flags().Bool("quiet", false, "Suppress non-error output")
	return cmd
}

func (c *ProfileCommand) runSave(cmd *cobra.Command, args []string) error {
	store, err := RequireProfileStore(cmd.Context())
	if err != nil {
		return err
	}

	name := args[0]
	in, err := loadInputs(cmd, args[1:])
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	result := in.Schema.Validate(in.Values)
	if !result.IsValid && !force {
		printer := output.NewPrinterWithWriter(cmd.ErrOrStderr(), output.FormatTable, false)
		for _, msg := range result.Errors {
			printer.Error(msg)
		}
		return fmt.Errorf("refusing to save invalid values (use --force to override)")
	}

	description, _ := cmd.Flags().GetString("description")
	if err := saveProfile(store, name, description, in.Ref, in.Values); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	output.NewPrinterWithWriter(cmd.OutOrStdout(), output.FormatTable, quiet).
		Success(fmt.Sprintf("Saved profile '%s'", name))
	return nil
}

func (c *ProfileCommand) runList(cmd *cobra.Command, args []string) error {
	store, err := RequireProfileStore(cmd.Context())
	if err != nil {
		return err
	}
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	summaries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	return printer.PrintProfileList(summaries)
}

func (c *ProfileCommand) runShow(cmd *cobra.Command, args []string) error {
	store, err := RequireProfileStore(cmd.Context())
	if err != nil {
		return err
	}
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	profile, err := store.Get(args[0])
	if err != nil {
		return err
	}
	return printer.PrintProfile(profile)
}

func (c *ProfileCommand) runDelete(cmd *cobra.Command, args []string) error {
	store, err := RequireProfileStore(cmd.Context())
	if err != nil {
		return err
	}

	if err := store.Delete(args[0]); err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	output.NewPrinterWithWriter(cmd.OutOrStdout(), output.FormatTable, quiet).
		Success(fmt.Sprintf("Deleted profile '%s'", args[0]))
	return nil
}
