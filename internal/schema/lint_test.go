package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lintMessages(warnings []LintWarning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.String())
	}
	return out
}

func TestLintCleanSchema(t *testing.T) {
	s := MustBuild(SchemaConfig{
		Categories: CategoryList{
			{ID: "basic", Label: "Basic", Parameters: ParameterList{
				{ID: "show", Type: TypeBoolean, Label: "Show"},
				{ID: "size", Type: TypeSelect, Label: "Size", Options: []Option{{Value: "s"}, {Value: "l"}},
					DependsOn: ConditionList{{Parameter: "show", Value: true}}},
			}},
		},
		Presets: []PresetConfig{{ID: "big", Values: Values{"show": true, "size": "l"}}},
	})

	assert.Empty(t, Lint(s))
}

func TestLintFindsProblems(t *testing.T) {
	s := MustBuild(SchemaConfig{
		Categories: CategoryList{
			{ID: "basic", Label: "Basic", Parameters: ParameterList{
				{ID: "count", Type: TypeNumber, Label: "Count", Min: Float(10), Max: Float(1)},
				{ID: "kinds", Type: TypeMultiselect, Label: "Kinds", Options: []Option{{Value: "a"}, {Value: "a"}},
					Min: Float(3), Max: Float(2)},
				{ID: "mode", Type: TypeSelect, Label: "Mode"},
				{ID: "odd", Type: "slider", Label: "Odd",
					DependsOn: ConditionList{
						{Parameter: "ghost", Value: 1},
						{Parameter: "odd", Type: "matches", Operator: OperatorOr},
					}},
				{ID: "unlabelled", Type: TypeBoolean},
			}},
		},
		Presets: []PresetConfig{
			{ID: "p", Values: Values{"nope": 1}},
			{ID: "p"},
		},
	})

	got := strings.Join(lintMessages(Lint(s)), "\n")
	for _, want := range []string{
		"basic.count: min 10 is greater than max 1",
		"basic.kinds: option value a is declared more than once",
		"basic.kinds: min selections 3 is greater than max selections 2",
		"basic.mode: no options declared",
		`basic.odd: unknown parameter type "slider"`,
		`basic.odd.dependsOn[0]: condition references unknown parameter "ghost"`,
		`basic.odd.dependsOn[1]: unknown condition type "matches"`,
		"basic.odd.dependsOn[1]: parameter depends on itself",
		`basic.odd.dependsOn[1]: operator "or" is not evaluated`,
		"basic.unlabelled: parameter label is empty",
		`presets.p: preset sets unknown parameter "nope"`,
		"presets.p: preset id is declared more than once",
	} {
		assert.Contains(t, got, want)
	}
}

func TestLintEmptyIDs(t *testing.T) {
	s := &Schema{
		Version: SchemaVersion,
		Categories: []*Category{
			NewCategory(CategoryConfig{Parameters: ParameterList{{Type: TypeBoolean, Label: "x"}}}),
		},
	}

	got := lintMessages(Lint(s))
	assert.Contains(t, got, "categories[0]: category id is empty")
	assert.Contains(t, got, "categories[0].parameters[0]: parameter id is empty")
}
