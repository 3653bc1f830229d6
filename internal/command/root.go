// Package command contains the pschema CLI command implementations.
package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/config"
	"github.com/n1rna/paramschema/internal/logger"
	"github.com/n1rna/paramschema/internal/storage"
)

// NewRootCommand builds the pschema command tree
func NewRootCommand(version string) *cobra.Command {
	var (
		baseDir string
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:   "pschema",
		Short: "pschema - Parameter schemas for problem generators",
		Long: `pschema validates and inspects the parameter schemas that describe how a
problem generator can be configured: typed parameters grouped into categories,
progressive disclosure through dependsOn conditions, and named presets.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if baseDir != "" {
				cfg.BaseDir = baseDir
				cfg.SchemaDir = ""
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
			}

			if debug {
				cfg.LogLevel = logger.DEBUG
			}
			logger.SetGlobalLevel(cfg.LogLevel)
			logger.Debug("using base directory %s", cfg.BaseDir)

			store, err := storage.NewProfileStore(cfg.ProfilesDir())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}

			ctx := WithConfig(cmd.Context(), cfg)
			cmd.SetContext(WithProfileStore(ctx, store))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "",
		"Base directory for pschema storage (default: $PSCHEMA_HOME or ~/.pschema)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "schemas",
		Title: "Schema Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "values",
		Title: "Value Commands:",
	})

	rootCmd.AddCommand(
		NewListCommand("schemas"),
		NewLintCommand("schemas"),
		NewPresetsCommand("schemas"),
		NewJSONSchemaCommand("schemas"),

		NewValidateCommand("values"),
		NewShowCommand("values"),
		NewHiddenCommand("values"),
		NewProfileCommand("values"),
		NewUICommand("values"),
	)

	rootCmd.SetVersionTemplate("pschema version {{.Version}}\n")
	return rootCmd
}
