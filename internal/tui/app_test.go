package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1rna/paramschema/internal/schema"
)

func browserSchema() *schema.Schema {
	return schema.MustBuild(schema.SchemaConfig{
		Name: "angles",
		Categories: schema.CategoryList{
			{
				ID:    "basic",
				Label: "Basic",
				Parameters: schema.ParameterList{
					{ID: "count", Type: schema.TypeNumber, Label: "Count", Required: true,
						Min: schema.Float(1), Max: schema.Float(12), Step: schema.Float(5), Default: 5},
					{ID: "level", Type: schema.TypeSelect, Label: "Level",
						Options: []schema.Option{{Value: "easy"}, {Value: "medium"}, {Value: "hard"}}, Default: "easy"},
				},
			},
			{
				ID:    "visual",
				Label: "Visual",
				Parameters: schema.ParameterList{
					{ID: "diagrams", Type: schema.TypeBoolean, Label: "Diagrams", Default: false},
					{ID: "kinds", Type: schema.TypeMultiselect, Label: "Kinds",
						Options:   []schema.Option{{Value: "acute"}, {Value: "obtuse"}, {Value: "right"}},
						DependsOn: schema.ConditionList{{Parameter: "diagrams", Value: true}}},
				},
			},
		},
		Presets: []schema.PresetConfig{
			{ID: "hard", Label: "Hard", Values: schema.Values{"level": "hard", "count": 10}},
		},
	})
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestNewModelStartsFromDefaults(t *testing.T) {
	m := NewModel(browserSchema(), nil, nil)
	assert.Equal(t, schema.Values{"count": 5, "level": "easy", "diagrams": false}, m.Values())
	assert.Len(t, m.rows, 3)
	assert.True(t, m.result.IsValid)
}

func TestNumberStepsAreClamped(t *testing.T) {
	m := NewModel(browserSchema(), nil, nil)

	m = press(t, m, right)
	assert.Equal(t, 10, m.Values()["count"])
	m = press(t, m, right)
	assert.Equal(t, 12, m.Values()["count"])
	m = press(t, m, left, left, left)
	assert.Equal(t, 1, m.Values()["count"])
}

func TestSelectCycles(t *testing.T) {
	m := NewModel(browserSchema(), nil, nil)
	m = press(t, m, down, right)
	assert.Equal(t, "medium", m.Values()["level"])
	m = press(t, m, left, left)
	assert.Equal(t, "hard", m.Values()["level"])
}

func TestToggleRevealsDependentParameter(t *testing.T) {
	m := NewModel(browserSchema(), nil, nil)
	m = press(t, m, down, down, space)

	assert.Equal(t, true, m.Values()["diagrams"])
	require.Len(t, m.rows, 4)
	assert.Equal(t, "kinds", m.rows[3].param.Common().ID)

	// pick the second option of the multiselect
	m = press(t, m, down, right, space)
	assert.Equal(t, []any{"obtuse"}, m.Values()["kinds"])
	m = press(t, m, left, space)
	assert.Equal(t, []any{"acute", "obtuse"}, m.Values()["kinds"])
	m = press(t, m, space)
	assert.Equal(t, []any{"obtuse"}, m.Values()["kinds"])

	// hiding it again keeps the cursor in range
	m = press(t, m, up, space)
	assert.Len(t, m.rows, 3)
	assert.Equal(t, "diagrams", m.current().Common().ID)
}

func TestEditTypedValue(t *testing.T) {
	m := NewModel(browserSchema(), nil, nil)

	m = press(t, m, enter)
	require.True(t, m.editing)
	assert.Equal(t, "5", m.input.Value())

	m.input.SetValue("40")
	m = press(t, m, enter)
	assert.False(t, m.editing)
	assert.Equal(t, 40, m.Values()["count"])
	assert.False(t, m.result.IsValid)
	assert.Equal(t, []string{"Count must be at most 12"}, m.result.Errors)
	assert.Contains(t, m.View(), "Count must be at most 12")

	m = press(t, m, enter)
	m.input.SetValue("")
	m = press(t, m, enter)
	_, present := m.Values()["count"]
	assert.False(t, present)
	assert.Equal(t, []string{"Count is required"}, m.result.Errors)
}

func TestEditCancel(t *testing.T) {
	m := NewModel(browserSchema(), nil, nil)
	m = press(t, m, enter)
	m.input.SetValue("9")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, 5, m.Values()["count"])
}

func TestPresetAndReset(t *testing.T) {
	m := NewModel(browserSchema(), schema.Values{"count": 3}, nil)

	m = press(t, m, runes("p"))
	assert.Equal(t, schema.Values{"count": 10, "level": "hard"}, m.Values())
	assert.Contains(t, m.View(), "Applied preset Hard")

	m = press(t, m, runes("r"))
	assert.Equal(t, schema.Values{"count": 5, "level": "easy", "diagrams": false}, m.Values())
}

func TestSave(t *testing.T) {
	var saved schema.Values
	m := NewModel(browserSchema(), nil, func(v schema.Values) error {
		saved = v
		return nil
	})

	_, cmd := m.Update(runes("s"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, SavedMsg{}, msg)
	assert.Equal(t, 5, saved["count"])

	next, _ := m.Update(msg)
	assert.Contains(t, next.View(), "Saved")
}

func TestSaveRefusedWhenInvalidOrDisabled(t *testing.T) {
	m := NewModel(browserSchema(), schema.Values{"count": 99}, func(schema.Values) error {
		return errors.New("should not be called")
	})
	_, cmd := m.Update(runes("s"))
	assert.IsType(t, ErrorMsg(""), cmd())

	m = NewModel(browserSchema(), nil, nil)
	_, cmd = m.Update(runes("s"))
	assert.IsType(t, ErrorMsg(""), cmd())

	m = NewModel(browserSchema(), nil, func(schema.Values) error { return errors.New("disk full") })
	_, cmd = m.Update(runes("s"))
	assert.Equal(t, ErrorMsg("disk full"), cmd())
}

func TestNewModelDoesNotMutateInput(t *testing.T) {
	input := schema.Values{"count": 5}
	m := NewModel(browserSchema(), input, nil)
	press(t, m, right)
	assert.Equal(t, schema.Values{"count": 5}, input)
}

func TestQuit(t *testing.T) {
	m := NewModel(browserSchema(), nil, nil)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}
