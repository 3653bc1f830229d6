package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameterDefaults(t *testing.T) {
	tests := []struct {
		name  string
		cfg   ParameterConfig
		check func(t *testing.T, p Parameter)
	}{
		{
			name: "number",
			cfg:  ParameterConfig{ID: "count", Type: TypeNumber, Label: "Count"},
			check: func(t *testing.T, p Parameter) {
				n, ok := p.(*NumberParameter)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, 1.0, n.Step)
				assert.Nil(t, n.Min)
				assert.Nil(t, n.Max)
				assert.False(t, n.Slider)
			},
		},
		{
			name: "range",
			cfg:  ParameterConfig{ID: "span", Type: TypeRange, Step: Float(0.5), Dual: true},
			check: func(t *testing.T, p Parameter) {
				r, ok := p.(*RangeParameter)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, 0.5, r.Step)
				assert.True(t, r.Dual)
			},
		},
		{
			name: "boolean",
			cfg:  ParameterConfig{ID: "flag", Type: TypeBoolean},
			check: func(t *testing.T, p Parameter) {
				b, ok := p.(*BooleanParameter)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, "switch", b.Variant)
			},
		},
		{
			name: "boolean keeps explicit variant",
			cfg:  ParameterConfig{ID: "flag", Type: TypeBoolean, Variant: "checkbox"},
			check: func(t *testing.T, p Parameter) {
				assert.Equal(t, "checkbox", p.(*BooleanParameter).Variant)
			},
		},
		{
			name: "select",
			cfg:  ParameterConfig{ID: "mode", Type: TypeSelect},
			check: func(t *testing.T, p Parameter) {
				s, ok := p.(*SelectParameter)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, "dropdown", s.Variant)
				assert.NotNil(t, s.Options)
				assert.False(t, s.Multiple)
				assert.False(t, s.Searchable)
			},
		},
		{
			name: "multiselect",
			cfg:  ParameterConfig{ID: "kinds", Type: TypeMultiselect, Min: Float(0)},
			check: func(t *testing.T, p Parameter) {
				m, ok := p.(*MultiselectParameter)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, "checkboxes", m.Variant)
				assert.True(t, m.AllowSelectAll)
				require.NotNil(t, m.Min)
				assert.Equal(t, 0, *m.Min)
				assert.Nil(t, m.Max)
			},
		},
		{
			name: "multiselect select-all disabled",
			cfg:  ParameterConfig{ID: "kinds", Type: TypeMultiselect, AllowSelectAll: Bool(false)},
			check: func(t *testing.T, p Parameter) {
				assert.False(t, p.(*MultiselectParameter).AllowSelectAll)
			},
		},
		{
			name: "group",
			cfg:  ParameterConfig{ID: "style", Type: TypeGroup},
			check: func(t *testing.T, p Parameter) {
				g, ok := p.(*GroupParameter)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, "toggle-group", g.Variant)
				assert.True(t, g.Exclusive)
			},
		},
		{
			name: "unknown type falls back to generic",
			cfg:  ParameterConfig{ID: "mystery", Type: "colour-wheel", Label: "Mystery", Min: Float(3)},
			check: func(t *testing.T, p Parameter) {
				g, ok := p.(*GenericParameter)
				require.True(t, ok, "got %T", p)
				assert.Equal(t, ParameterType("colour-wheel"), g.Type)
				assert.Equal(t, "Mystery", g.Label)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewParameter(tt.cfg))
		})
	}
}

func TestNewParameterCommonAttributes(t *testing.T) {
	p := NewParameter(ParameterConfig{
		ID:          "diagramSize",
		Type:        TypeSelect,
		Label:       "Diagram Size",
		Description: "How large diagrams are drawn",
		Required:    true,
		Order:       3,
		DependsOn: ConditionList{
			{Parameter: "showVisualDiagrams", Value: true},
		},
	})

	base := p.Common()
	assert.Equal(t, "diagramSize", base.ID)
	assert.Equal(t, "Diagram Size", base.Label)
	assert.Equal(t, "How large diagrams are drawn", base.Description)
	assert.True(t, base.Required)
	assert.Equal(t, 3, base.Order)
	require.Len(t, base.DependsOn, 1)
	assert.Equal(t, ConditionEquals, base.DependsOn[0].Type)
	assert.Equal(t, OperatorAnd, base.DependsOn[0].Operator)
}

func TestNewCondition(t *testing.T) {
	c := NewCondition(ConditionConfig{Parameter: "a", Value: 1})
	assert.Equal(t, ConditionEquals, c.Type)
	assert.Equal(t, OperatorAnd, c.Operator)

	c = NewCondition(ConditionConfig{Type: ConditionGreaterThan, Parameter: "a", Value: 1, Operator: OperatorOr})
	assert.Equal(t, ConditionGreaterThan, c.Type)
	assert.Equal(t, OperatorOr, c.Operator)
}

func TestNewCategoryDefaults(t *testing.T) {
	c := NewCategory(CategoryConfig{ID: "basic", Label: "Basic"})
	assert.Equal(t, "settings", c.Icon)
	assert.Equal(t, "blue", c.Color)
	assert.Equal(t, "default", c.Variant)
	assert.Equal(t, 0, c.Order)
	assert.True(t, c.Expanded)
	assert.NotNil(t, c.Parameters)
	assert.Empty(t, c.Parameters)

	collapsed := NewCategory(CategoryConfig{ID: "advanced", Expanded: Bool(false)})
	assert.False(t, collapsed.Expanded)
}

func TestNewPresetDefaults(t *testing.T) {
	p := NewPreset(PresetConfig{ID: "quick", Values: Values{"problemCount": 5}})
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, Values{"problemCount": 5}, p.Values)
}

func TestNewSchema(t *testing.T) {
	t.Run("stamps version", func(t *testing.T) {
		s, err := NewSchema([]*Category{NewCategory(CategoryConfig{ID: "a"})}, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Version)
		assert.NotNil(t, s.Presets)
	})

	t.Run("duplicate category", func(t *testing.T) {
		_, err := NewSchema([]*Category{
			NewCategory(CategoryConfig{ID: "a"}),
			NewCategory(CategoryConfig{ID: "a"}),
		}, nil)
		assert.True(t, errors.Is(err, ErrDuplicateCategory), "got %v", err)
	})

	t.Run("parameter shared across categories", func(t *testing.T) {
		_, err := NewSchema([]*Category{
			NewCategory(CategoryConfig{ID: "a", Parameters: ParameterList{{ID: "count", Type: TypeNumber}}}),
			NewCategory(CategoryConfig{ID: "b", Parameters: ParameterList{{ID: "count", Type: TypeBoolean}}}),
		}, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateParameter)
		assert.Contains(t, err.Error(), `"a" and "b"`)
	})

	t.Run("parameter repeated inside one category", func(t *testing.T) {
		_, err := NewSchema([]*Category{
			NewCategory(CategoryConfig{ID: "a", Parameters: ParameterList{
				{ID: "count", Type: TypeNumber},
				{ID: "count", Type: TypeNumber},
			}}),
		}, nil)
		assert.ErrorIs(t, err, ErrDuplicateParameter)
	})
}

func TestSchemaLookups(t *testing.T) {
	s := MustBuild(SchemaConfig{
		Name: "lookup",
		Categories: CategoryList{
			{ID: "basic", Parameters: ParameterList{
				{ID: "problemCount", Type: TypeNumber, Default: 10},
				{ID: "showAnswers", Type: TypeBoolean},
			}},
		},
		Presets: []PresetConfig{{ID: "quick", Values: Values{"problemCount": 5}}},
	})

	param, ok := s.Parameter("showAnswers")
	require.True(t, ok)
	assert.IsType(t, &BooleanParameter{}, param)

	_, ok = s.Parameter("missing")
	assert.False(t, ok)

	preset, ok := s.Preset("quick")
	require.True(t, ok)
	assert.Equal(t, 5, preset.Values["problemCount"])

	category, ok := s.Category("basic")
	require.True(t, ok)
	assert.Len(t, category.Parameters, 2)

	assert.Equal(t, Values{"problemCount": 10}, s.Defaults())
}

func TestMustBuildPanicsOnDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		MustBuild(SchemaConfig{Categories: CategoryList{{ID: "a"}, {ID: "a"}}})
	})
}
