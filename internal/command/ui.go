package command

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/schema"
	"github.com/n1rna/paramschema/internal/storage"
	"github.com/n1rna/paramschema/internal/tui"
)

// NewUICommand creates the UI command
func NewUICommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui [schema]",
		Short: "Launch interactive settings browser",
		Long: `Browse a schema's parameters interactively. Parameters appear and disappear
as the values they depend on change, and validation runs on every edit.

With --save, pressing 's' stores the current values as a named profile.`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runUI,
		GroupID: groupID,
	}

	addValueFlags(cmd)
	cmd.Flags().String("save", "", "Profile name to save values under")

	return cmd
}

func runUI(cmd *cobra.Command, args []string) error {
	in, err := loadInputs(cmd, args)
	if err != nil {
		return err
	}

	var onSave tui.SaveFunc
	if name, _ := cmd.Flags().GetString("save"); name != "" {
		store, err := RequireProfileStore(cmd.Context())
		if err != nil {
			return err
		}
		onSave = func(values schema.Values) error {
			return saveProfile(store, name, "", in.Ref, values)
		}
	}

	program := tea.NewProgram(tui.NewModel(in.Schema, in.Values, onSave), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// saveProfile creates the named profile or updates it in place
func saveProfile(store *storage.ProfileStore, name, description, ref string, values schema.Values) error {
	profile, err := store.Get(name)
	switch {
	case err == nil:
		profile.Schema = ref
		profile.Values = values
		if description != "" {
			profile.Description = description
		}
	case errors.Is(err, storage.ErrProfileNotFound):
		profile = storage.NewProfile(name, description, ref, values)
	default:
		return err
	}
	return store.Save(profile)
}
