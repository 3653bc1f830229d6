package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1rna/paramschema/internal/generator"
	"github.com/n1rna/paramschema/internal/storage"
)

// run executes a fresh command tree against an isolated base directory
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PSCHEMA_HOME", dir)
	t.Setenv("PSCHEMA_SCHEMA_DIR", "")
	t.Setenv("PSCHEMA_LOG_LEVEL", "")

	var stdout, stderr bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--dir", dir))

	err := root.Execute()
	return stdout.String(), err
}

func TestValidateDefaults(t *testing.T) {
	out, err := run(t, t.TempDir(), "validate", "builtin:angles")
	require.NoError(t, err)
	assert.Equal(t, "✓ Values are valid\n", out)
}

func TestValidateReportsErrors(t *testing.T) {
	out, err := run(t, t.TempDir(), "validate", "builtin:angles",
		"--set", "problemCount=40", "--set", "difficulty=extreme")

	var invalid *generator.InvalidParametersError
	require.ErrorAs(t, err, &invalid)
	assert.Len(t, invalid.Errors, 2)
	assert.Contains(t, out, "✗ Number of Problems must be at most 25")
	assert.Contains(t, out, "✗ Difficulty must be one of: easy, medium, hard")
}

func TestValidateNoDefaults(t *testing.T) {
	_, err := run(t, t.TempDir(), "validate", "builtin:angles", "--no-defaults")
	assert.ErrorContains(t, err, "Number of Problems is required")
}

func TestValidateJSON(t *testing.T) {
	out, err := run(t, t.TempDir(), "validate", "builtin:quadratics", "--format", "json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["isValid"])
	assert.Equal(t, []any{}, result["errors"])
}

func TestValidateValuesFileNamesSchema(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "class.params")
	require.NoError(t, os.WriteFile(file, []byte("# schema: builtin:quadratics\nmethod=formula\nleadingCoefficient=12\n"), 0o644))

	out, err := run(t, dir, "validate", "--values", file)
	assert.Error(t, err)
	assert.Contains(t, out, "Leading Coefficient must be at most 9")
}

func TestValidateNeedsSchema(t *testing.T) {
	_, err := run(t, t.TempDir(), "validate")
	assert.ErrorContains(t, err, "no schema given")
}

func TestUnknownPreset(t *testing.T) {
	_, err := run(t, t.TempDir(), "validate", "builtin:angles", "--preset", "nope")
	assert.ErrorIs(t, err, generator.ErrUnknownPreset)
}

func TestHidden(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "hidden", "builtin:quadratics")
	require.NoError(t, err)
	assert.Equal(t, "leadingCoefficient\nallowComplexRoots\n", out)

	out, err = run(t, dir, "hidden", "builtin:quadratics", "--set", "method=formula")
	require.NoError(t, err)
	assert.Contains(t, out, "No hidden parameters")
}

func TestShowPresetChangesVisibility(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "show", "builtin:angles")
	require.NoError(t, err)
	assert.Contains(t, out, "Basic Settings (basic)")
	assert.NotContains(t, out, "labelStyle")

	out, err = run(t, dir, "show", "builtin:angles", "--preset", "challenge")
	require.NoError(t, err)
	assert.Contains(t, out, "labelStyle")
}

func TestPresetsAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "presets", "builtin:angles")
	require.NoError(t, err)
	assert.Contains(t, out, "quick")
	assert.Contains(t, out, "challenge")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schemas"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schemas", "fractions.yaml"),
		[]byte("categories: {main: {label: Main, parameters: {n: {type: number, label: N}}}}\n"), 0o644))

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "builtin:angles")
	assert.Contains(t, out, "builtin:quadratics")
	assert.Contains(t, out, "fractions")

	// definitions in the schema directory resolve by name
	out, err = run(t, dir, "validate", "fractions", "--set", "n=3")
	require.NoError(t, err)
	assert.Contains(t, out, "Values are valid")
}

func TestLint(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "builtin:angles: no problems found")

	defs := filepath.Join(dir, "defs")
	require.NoError(t, os.Mkdir(defs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(defs, "bad.yaml"), []byte(`
categories:
  - id: main
    label: Main
    parameters:
      - {id: a, type: number, label: A, min: 5, max: 1}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(defs, "good.yaml"),
		[]byte("categories: {main: {label: Main}}\n"), 0o644))

	out, err = run(t, dir, "lint", defs)
	assert.ErrorContains(t, err, "1 schema(s) with problems")
	assert.Contains(t, out, "bad.yaml: 1 problem(s)")
	assert.Contains(t, out, "good.yaml: no problems found")
}

func TestJSONSchema(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "definition.schema.json")

	_, err := run(t, dir, "jsonschema", "--out", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Parameter Schema Definition", doc["title"])
	assert.NoFileExists(t, target+".tmp")
}

func TestProfileLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "profile", "save", "week-3", "builtin:angles",
		"--preset", "quick", "--set", "problemCount=8", "--description", "homework")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved profile 'week-3'")

	_, err = run(t, dir, "profile", "save", "broken", "builtin:angles", "--set", "problemCount=0")
	assert.ErrorContains(t, err, "refusing to save")

	out, err = run(t, dir, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "week-3")
	assert.Contains(t, out, "builtin:angles")
	assert.NotContains(t, out, "broken")

	out, err = run(t, dir, "profile", "show", "week-3", "--format", "json")
	require.NoError(t, err)
	var profile storage.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, 8.0, profile.Values["problemCount"])
	assert.Equal(t, "easy", profile.Values["difficulty"])
	assert.Equal(t, "homework", profile.Description)

	// the profile supplies both schema and values
	out, err = run(t, dir, "hidden", "--profile", "week-3")
	require.NoError(t, err)
	assert.Equal(t, "labelStyle\n", out)

	// saving again under the same name updates in place
	_, err = run(t, dir, "profile", "save", "week-3", "--profile", "week-3", "--set", "difficulty=hard")
	require.NoError(t, err)
	out, err = run(t, dir, "profile", "show", "week-3", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "difficulty: hard")

	_, err = run(t, dir, "profile", "delete", "week-3")
	require.NoError(t, err)
	_, err = run(t, dir, "profile", "show", "week-3")
	assert.ErrorIs(t, err, storage.ErrProfileNotFound)
}
