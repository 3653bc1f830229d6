package command

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/catalog"
	"github.com/n1rna/paramschema/internal/logger"
	"github.com/n1rna/paramschema/internal/output"
)

// NewListCommand creates the list command
func NewListCommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List available schemas",
		Long:    "List the built-in schemas and the definitions found in the schema directory.",
		Args:    cobra.NoArgs,
		GroupID: groupID,
		RunE:    runList,
	}

	addFormatFlag(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	c, err := catalog.Builtin()
	if err != nil {
		return err
	}

	var summaries []output.SchemaSummary
	for _, name := range c.Names() {
		s, err := c.Get(name)
		if err != nil {
			return err
		}
		summary := output.Summarize(s)
		summary.Name = catalog.BuiltinPrefix + name
		summaries = append(summaries, summary)
	}

	if cfg := GetConfig(cmd.Context()); cfg != nil {
		if _, err := os.Stat(cfg.SchemaDir); err == nil {
			entries, err := catalog.LoadDir(cmd.Context(), cfg.SchemaDir)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				if entry.Err != nil {
					logger.Warn("skipping %s: %v", entry.Path, entry.Err)
					continue
				}
				summary := output.Summarize(entry.Schema)
				summary.Name = entry.Name
				summaries = append(summaries, summary)
			}
		}
	}

	return printer.PrintSchemaList(summaries)
}
