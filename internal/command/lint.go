package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n1rna/paramschema/internal/catalog"
	"github.com/n1rna/paramschema/internal/output"
	"github.com/n1rna/paramschema/internal/schema"
)

// NewLintCommand creates the lint command
func NewLintCommand(groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [schema|dir]...",
		Short: "Check schema definitions for authoring problems",
		Long: `Report problems the schema engine tolerates at runtime: empty ids, unknown
parameter or condition types, dependsOn references to undeclared parameters,
impossible bounds and presets that set unknown parameters.

Directories are linted file by file. Without arguments every built-in schema
and the configured schema directory are checked.`,
		GroupID: groupID,
		RunE:    runLint,
	}

	addFormatFlag(cmd)

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	cfg := GetConfig(cmd.Context())

	targets := args
	if len(targets) == 0 {
		c, err := catalog.Builtin()
		if err != nil {
			return err
		}
		for _, name := range c.Names() {
			targets = append(targets, catalog.BuiltinPrefix+name)
		}
		if cfg != nil {
			if info, err := os.Stat(cfg.SchemaDir); err == nil && info.IsDir() {
				targets = append(targets, cfg.SchemaDir)
			}
		}
	}

	var reports []output.LintReport
	for _, target := range targets {
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			entries, err := catalog.LoadDir(cmd.Context(), target)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				reports = append(reports, lintReport(entry.Path, entry.Schema, entry.Err))
			}
			continue
		}

		s, err := resolveSchema(cfg, target)
		reports = append(reports, lintReport(target, s, err))
	}

	if err := printer.PrintLint(reports); err != nil {
		return err
	}

	problems := 0
	for _, r := range reports {
		if r.Error != "" || len(r.Warnings) > 0 {
			problems++
		}
	}
	if problems > 0 {
		return fmt.Errorf("%d schema(s) with problems", problems)
	}
	return nil
}

func lintReport(source string, s *schema.Schema, err error) output.LintReport {
	report := output.LintReport{Source: source, Warnings: []schema.LintWarning{}}
	if err != nil {
		report.Error = err.Error()
		return report
	}
	if warnings := schema.Lint(s); warnings != nil {
		report.Warnings = warnings
	}
	return report
}
