// Package output provides formatted terminal output for schemas, value maps
// and profiles. This centralizes all printing and formatting logic away from
// command modules.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/n1rna/paramschema/internal/schema"
	"github.com/n1rna/paramschema/internal/storage"
)

// Format represents different output formats
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format flag value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use table, json or yaml)", s)
}

// Printer handles formatted output to the terminal
type Printer struct {
	writer io.Writer
	format Format
	quiet  bool
}

// NewPrinter creates a new printer with the specified format
func NewPrinter(format Format, quiet bool) *Printer {
	return NewPrinterWithWriter(os.Stdout, format, quiet)
}

// NewPrinterWithWriter creates a new printer with a custom writer
func NewPrinterWithWriter(writer io.Writer, format Format, quiet bool) *Printer {
	return &Printer{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Success prints a success message
func (p *Printer) Success(message string) {
	if !p.quiet {
		fmt.Fprintf(p.writer, "✓ %s\n", message)
	}
}

// Error prints an error message
func (p *Printer) Error(message string) {
	fmt.Fprintf(p.writer, "✗ %s\n", message)
}

// Warning prints a warning message
func (p *Printer) Warning(message string) {
	if !p.quiet {
		fmt.Fprintf(p.writer, "⚠ %s\n", message)
	}
}

// Info prints an informational message
func (p *Printer) Info(message string) {
	if !p.quiet {
		fmt.Fprintf(p.writer, "ℹ %s\n", message)
	}
}

// structured prints obj as JSON or YAML, reporting false for table format
func (p *Printer) structured(obj interface{}) (bool, error) {
	switch p.format {
	case FormatJSON:
		return true, p.printJSON(obj)
	case FormatYAML:
		return true, p.printYAML(obj)
	case FormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("unsupported format: %s", p.format)
	}
}

// SchemaSummary is one row of the schema list
type SchemaSummary struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Categories  int    `json:"categories" yaml:"categories"`
	Parameters  int    `json:"parameters" yaml:"parameters"`
	Presets     int    `json:"presets" yaml:"presets"`
}

// Summarize counts the parts of a schema for listing
func Summarize(s *schema.Schema) SchemaSummary {
	summary := SchemaSummary{
		Name:        s.Name,
		Description: s.Description,
		Categories:  len(s.Categories),
		Presets:     len(s.Presets),
	}
	for _, c := range s.Categories {
		summary.Parameters += len(c.Parameters)
	}
	return summary
}

// PrintSchemaList prints a list of schema summaries
func (p *Printer) PrintSchemaList(summaries []SchemaSummary) error {
	if done, err := p.structured(summaries); done {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintf(p.writer, "No schemas found\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tCATEGORIES\tPARAMETERS\tPRESETS\tDESCRIPTION\n")
	fmt.Fprintf(w, "----\t----------\t----------\t-------\t-----------\n")

	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
			s.Name, s.Categories, s.Parameters, s.Presets, truncate(s.Description, 50))
	}

	return w.Flush()
}

// PrintCategories prints the visible parameters of each category with the
// value each one currently resolves to
func (p *Printer) PrintCategories(views []schema.CategoryView, values schema.Values) error {
	if done, err := p.structured(views); done {
		return err
	}

	if len(views) == 0 {
		fmt.Fprintf(p.writer, "No categories defined\n")
		return nil
	}

	for i, view := range views {
		if i > 0 {
			fmt.Fprintln(p.writer)
		}
		fmt.Fprintf(p.writer, "%s (%s)\n", view.Label, view.ID)
		if view.Description != "" {
			fmt.Fprintf(p.writer, "  %s\n", view.Description)
		}
		if len(view.Parameters) == 0 {
			fmt.Fprintf(p.writer, "  No visible parameters\n")
			continue
		}

		w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  PARAMETER\tTYPE\tREQUIRED\tVALUE\tCONSTRAINTS\n")
		fmt.Fprintf(w, "  ---------\t----\t--------\t-----\t-----------\n")
		for _, param := range view.Parameters {
			base := param.Common()
			required := "No"
			if base.Required {
				required = "Yes"
			}
			value := "-"
			if v, ok := values[base.ID]; ok && v != nil {
				value = truncate(schema.FormatValue(v), 40)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
				base.ID, base.Type, required, value, Constraints(param))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return nil
}

// Constraints summarizes the type-specific limits of a parameter
func Constraints(param schema.Parameter) string {
	switch p := param.(type) {
	case *schema.NumberParameter:
		return numericBounds(p.NumericSettings)
	case *schema.RangeParameter:
		bounds := numericBounds(p.NumericSettings)
		if p.Dual {
			return strings.TrimSpace(bounds + " dual")
		}
		return bounds
	case *schema.SelectParameter:
		return "one of " + optionList(p.Options)
	case *schema.MultiselectParameter:
		text := "any of " + optionList(p.Options)
		switch {
		case p.Min != nil && p.Max != nil:
			text += fmt.Sprintf(" (%d-%d)", *p.Min, *p.Max)
		case p.Min != nil:
			text += fmt.Sprintf(" (>=%d)", *p.Min)
		case p.Max != nil:
			text += fmt.Sprintf(" (<=%d)", *p.Max)
		}
		return text
	case *schema.GroupParameter:
		return "group " + optionList(p.Options)
	}
	return ""
}

func numericBounds(n schema.NumericSettings) string {
	lo, hi := "", ""
	if n.Min != nil {
		lo = schema.FormatValue(*n.Min)
	}
	if n.Max != nil {
		hi = schema.FormatValue(*n.Max)
	}
	if lo == "" && hi == "" {
		return ""
	}
	text := fmt.Sprintf("%s..%s", lo, hi)
	if n.Unit != "" {
		text += " " + n.Unit
	}
	return text
}

func optionList(options []schema.Option) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		parts = append(parts, schema.FormatValue(o.Value))
	}
	return truncate(strings.Join(parts, "|"), 60)
}

// PrintValidation prints the outcome of validating a value map
func (p *Printer) PrintValidation(result schema.ValidationResult) error {
	if done, err := p.structured(result); done {
		return err
	}

	if result.IsValid {
		p.Success("Values are valid")
		return nil
	}
	for _, msg := range result.Errors {
		p.Error(msg)
	}
	return nil
}

// PrintValues prints a value map sorted by key
func (p *Printer) PrintValues(values schema.Values) error {
	if done, err := p.structured(values); done {
		return err
	}
	return p.printValuesTable(values)
}

// PrintHidden prints the ids of parameters hidden for a value map
func (p *Printer) PrintHidden(ids []string) error {
	if done, err := p.structured(ids); done {
		return err
	}

	if len(ids) == 0 {
		p.Info("No hidden parameters")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(p.writer, id)
	}
	return nil
}

// LintReport is the set of warnings for one schema source
type LintReport struct {
	Source   string               `json:"source" yaml:"source"`
	Error    string               `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings []schema.LintWarning `json:"warnings" yaml:"warnings"`
}

// PrintLint prints lint reports, one block per source
func (p *Printer) PrintLint(reports []LintReport) error {
	if done, err := p.structured(reports); done {
		return err
	}

	for _, r := range reports {
		switch {
		case r.Error != "":
			p.Error(fmt.Sprintf("%s: %s", r.Source, r.Error))
		case len(r.Warnings) == 0:
			p.Success(fmt.Sprintf("%s: no problems found", r.Source))
		default:
			p.Warning(fmt.Sprintf("%s: %d problem(s)", r.Source, len(r.Warnings)))
			for _, w := range r.Warnings {
				fmt.Fprintf(p.writer, "  %s\n", w)
			}
		}
	}
	return nil
}

// PrintPresets prints the presets declared by a schema
func (p *Printer) PrintPresets(presets []*schema.Preset) error {
	if done, err := p.structured(presets); done {
		return err
	}

	if len(presets) == 0 {
		fmt.Fprintf(p.writer, "No presets defined\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tLABEL\tTAGS\tVALUES\n")
	fmt.Fprintf(w, "--\t-----\t----\t------\n")
	for _, preset := range presets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			preset.ID,
			preset.Label,
			strings.Join(preset.Tags, ","),
			truncate(inlineValues(preset.Values), 60),
		)
	}
	return w.Flush()
}

// PrintProfile prints a stored profile in the specified format
func (p *Printer) PrintProfile(profile *storage.Profile) error {
	if done, err := p.structured(profile); done {
		return err
	}

	fmt.Fprintf(p.writer, "Profile: %s\n", profile.Name)
	fmt.Fprintf(p.writer, "ID: %s\n", profile.ID)
	if profile.Description != "" {
		fmt.Fprintf(p.writer, "Description: %s\n", profile.Description)
	}
	fmt.Fprintf(p.writer, "Schema: %s\n", profile.Schema)
	fmt.Fprintf(p.writer, "Created: %s\n", profile.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(p.writer, "Updated: %s\n", profile.UpdatedAt.Format(time.RFC3339))

	fmt.Fprintf(p.writer, "\nValues:\n")
	return p.printValuesTable(profile.Values)
}

// PrintProfileList prints a list of profile summaries
func (p *Printer) PrintProfileList(summaries []storage.EntitySummary) error {
	if done, err := p.structured(summaries); done {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintf(p.writer, "No profiles found\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tSCHEMA\tDESCRIPTION\tUPDATED\n")
	fmt.Fprintf(w, "----\t------\t-----------\t-------\n")

	for _, summary := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			summary.Name,
			summary.Schema,
			truncate(summary.Description, 50),
			summary.UpdatedAt.Format("2006-01-02"),
		)
	}

	return w.Flush()
}

// printValuesTable prints parameter values in table format
func (p *Printer) printValuesTable(values schema.Values) error {
	if len(values) == 0 {
		fmt.Fprintf(p.writer, "  No values defined\n")
		return nil
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  PARAMETER\tVALUE\n")
	fmt.Fprintf(w, "  ---------\t-----\n")

	for _, key := range sortedKeys(values) {
		fmt.Fprintf(w, "  %s\t%s\n", key, truncate(schema.FormatValue(values[key]), 80))
	}

	return w.Flush()
}

func inlineValues(values schema.Values) string {
	parts := make([]string, 0, len(values))
	for _, key := range sortedKeys(values) {
		parts = append(parts, key+"="+schema.FormatValue(values[key]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(values schema.Values) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// printJSON prints any object as JSON
func (p *Printer) printJSON(obj interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(obj)
}

// printYAML prints any object as YAML
func (p *Printer) printYAML(obj interface{}) error {
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(obj); err != nil {
		return err
	}
	return encoder.Close()
}
