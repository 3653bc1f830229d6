package schema

import "fmt"

// Defaults applied by the builder when a field is omitted
const (
	DefaultCategoryIcon    = "settings"
	DefaultCategoryColor   = "blue"
	DefaultCategoryVariant = "default"

	DefaultBooleanVariant     = "switch"
	DefaultSelectVariant      = "dropdown"
	DefaultMultiselectVariant = "checkboxes"
	DefaultGroupVariant       = "toggle-group"

	DefaultStep = 1.0
)

// ParameterConfig is the authoring form of a parameter. Fields that do not
// apply to Type are ignored by NewParameter.
type ParameterConfig struct {
	ID          string        `json:"id" yaml:"id" jsonschema:"description=Key of the parameter in the value map"`
	Type        ParameterType `json:"type" yaml:"type" jsonschema:"enum=number,enum=boolean,enum=select,enum=multiselect,enum=range,enum=group"`
	Label       string        `json:"label" yaml:"label"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Order       int           `json:"order,omitempty" yaml:"order,omitempty"`
	Default     any           `json:"default,omitempty" yaml:"default,omitempty"`
	DependsOn   ConditionList `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty" jsonschema:"description=Conditions that must all hold for the parameter to be shown"`

	// number and range
	Min     *float64  `json:"min,omitempty" yaml:"min,omitempty" jsonschema:"description=Lower bound; selection count for multiselect"`
	Max     *float64  `json:"max,omitempty" yaml:"max,omitempty" jsonschema:"description=Upper bound; selection count for multiselect"`
	Step    *float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Unit    string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	Slider  bool      `json:"slider,omitempty" yaml:"slider,omitempty"`
	Presets []float64 `json:"presets,omitempty" yaml:"presets,omitempty"`
	Dual    bool      `json:"dual,omitempty" yaml:"dual,omitempty"`

	// boolean
	Variant  string `json:"variant,omitempty" yaml:"variant,omitempty"`
	HelpText string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// select, multiselect and group
	Options        []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Multiple       bool     `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Searchable     bool     `json:"searchable,omitempty" yaml:"searchable,omitempty"`
	AllowSelectAll *bool    `json:"allowSelectAll,omitempty" yaml:"allowSelectAll,omitempty"`
	Exclusive      *bool    `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`
}

// ConditionConfig is the authoring form of a condition
type ConditionConfig struct {
	Type      ConditionType `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"enum=equals,enum=not-equals,enum=includes,enum=excludes,enum=greater-than,enum=less-than"`
	Parameter string        `json:"parameter" yaml:"parameter"`
	Value     any           `json:"value" yaml:"value"`
	Operator  Operator      `json:"operator,omitempty" yaml:"operator,omitempty" jsonschema:"enum=and,enum=or"`
}

// CategoryConfig is the authoring form of a category
type CategoryConfig struct {
	ID          string        `json:"id" yaml:"id"`
	Label       string        `json:"label" yaml:"label"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color       string        `json:"color,omitempty" yaml:"color,omitempty"`
	Variant     string        `json:"variant,omitempty" yaml:"variant,omitempty"`
	Order       int           `json:"order,omitempty" yaml:"order,omitempty"`
	Expanded    *bool         `json:"expanded,omitempty" yaml:"expanded,omitempty"`
	Parameters  ParameterList `json:"parameters" yaml:"parameters"`
}

// PresetConfig is the authoring form of a preset
type PresetConfig struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Values      Values   `json:"values" yaml:"values"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// SchemaConfig is the authoring form of a whole schema, as found in
// definition files
type SchemaConfig struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Categories  CategoryList   `json:"categories" yaml:"categories" jsonschema:"description=Categories in display order; a mapping keyed by category id is also accepted"`
	Presets     []PresetConfig `json:"presets,omitempty" yaml:"presets,omitempty"`
}

// Float returns a pointer to v, for optional numeric config fields
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional boolean config fields
func Bool(v bool) *bool { return &v }

// NewCondition fills condition defaults: type equals, operator and
func NewCondition(cfg ConditionConfig) Condition {
	c := Condition{
		Type:      cfg.Type,
		Parameter: cfg.Parameter,
		Value:     cfg.Value,
		Operator:  cfg.Operator,
	}
	if c.Type == "" {
		c.Type = ConditionEquals
	}
	if c.Operator == "" {
		c.Operator = OperatorAnd
	}
	return c
}

// NewParameter fills the common attributes and then the defaults for the
// parameter's type. Unknown types silently get a GenericParameter.
func NewParameter(cfg ParameterConfig) Parameter {
	base := ParameterBase{
		ID:          cfg.ID,
		Type:        cfg.Type,
		Label:       cfg.Label,
		Description: cfg.Description,
		Required:    cfg.Required,
		Order:       cfg.Order,
		Default:     cfg.Default,
	}
	if len(cfg.DependsOn) > 0 {
		base.DependsOn = make([]Condition, 0, len(cfg.DependsOn))
		for _, c := range cfg.DependsOn {
			base.DependsOn = append(base.DependsOn, NewCondition(c))
		}
	}

	switch cfg.Type {
	case TypeNumber:
		return &NumberParameter{ParameterBase: base, NumericSettings: newNumericSettings(cfg)}

	case TypeRange:
		return &RangeParameter{ParameterBase: base, NumericSettings: newNumericSettings(cfg), Dual: cfg.Dual}

	case TypeBoolean:
		return &BooleanParameter{
			ParameterBase: base,
			Variant:       orDefault(cfg.Variant, DefaultBooleanVariant),
			HelpText:      cfg.HelpText,
			Icon:          cfg.Icon,
		}

	case TypeSelect:
		return &SelectParameter{
			ParameterBase: base,
			Options:       cloneOptions(cfg.Options),
			Variant:       orDefault(cfg.Variant, DefaultSelectVariant),
			Multiple:      cfg.Multiple,
			Searchable:    cfg.Searchable,
		}

	case TypeMultiselect:
		return &MultiselectParameter{
			ParameterBase:  base,
			Options:        cloneOptions(cfg.Options),
			Variant:        orDefault(cfg.Variant, DefaultMultiselectVariant),
			Min:            toCount(cfg.Min),
			Max:            toCount(cfg.Max),
			AllowSelectAll: cfg.AllowSelectAll == nil || *cfg.AllowSelectAll,
		}

	case TypeGroup:
		return &GroupParameter{
			ParameterBase: base,
			Options:       cloneOptions(cfg.Options),
			Variant:       orDefault(cfg.Variant, DefaultGroupVariant),
			Exclusive:     cfg.Exclusive == nil || *cfg.Exclusive,
		}

	default:
		return &GenericParameter{ParameterBase: base}
	}
}

// NewCategory fills category defaults and builds its parameters.
// Ids are not checked here; NewSchema rejects duplicates.
func NewCategory(cfg CategoryConfig) *Category {
	c := &Category{
		ID:          cfg.ID,
		Label:       cfg.Label,
		Description: cfg.Description,
		Icon:        orDefault(cfg.Icon, DefaultCategoryIcon),
		Color:       orDefault(cfg.Color, DefaultCategoryColor),
		Variant:     orDefault(cfg.Variant, DefaultCategoryVariant),
		Order:       cfg.Order,
		Expanded:    cfg.Expanded == nil || *cfg.Expanded,
		Parameters:  make([]Parameter, 0, len(cfg.Parameters)),
	}
	for _, p := range cfg.Parameters {
		c.Parameters = append(c.Parameters, NewParameter(p))
	}
	return c
}

// NewPreset fills preset defaults. Values are kept as given.
func NewPreset(cfg PresetConfig) *Preset {
	tags := cfg.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Preset{
		ID:          cfg.ID,
		Label:       cfg.Label,
		Description: cfg.Description,
		Icon:        cfg.Icon,
		Values:      cfg.Values,
		Tags:        tags,
		Category:    cfg.Category,
	}
}

// NewSchema assembles categories and presets into a schema.
// Category ids must be unique, and parameter ids must be unique across the
// whole schema. Nothing else is checked; see Lint for the rest.
func NewSchema(categories []*Category, presets []*Preset) (*Schema, error) {
	seenCategories := make(map[string]bool, len(categories))
	owners := make(map[string]string)

	for _, category := range categories {
		if seenCategories[category.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, category.ID)
		}
		seenCategories[category.ID] = true

		for _, param := range category.Parameters {
			id := param.Common().ID
			if owner, exists := owners[id]; exists {
				return nil, fmt.Errorf(
					"%w: %q declared in categories %q and %q",
					ErrDuplicateParameter, id, owner, category.ID,
				)
			}
			owners[id] = category.ID
		}
	}

	if presets == nil {
		presets = []*Preset{}
	}
	return &Schema{
		Version:    SchemaVersion,
		Categories: categories,
		Presets:    presets,
	}, nil
}

// Build creates a schema from its authoring form
func Build(cfg SchemaConfig) (*Schema, error) {
	categories := make([]*Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		categories = append(categories, NewCategory(c))
	}

	presets := make([]*Preset, 0, len(cfg.Presets))
	for _, p := range cfg.Presets {
		presets = append(presets, NewPreset(p))
	}

	s, err := NewSchema(categories, presets)
	if err != nil {
		return nil, err
	}
	s.Name = cfg.Name
	s.Description = cfg.Description
	return s, nil
}

// MustBuild is like Build but panics on error. It is meant for schemas
// declared in code at package initialization.
func MustBuild(cfg SchemaConfig) *Schema {
	s, err := Build(cfg)
	if err != nil {
		panic(fmt.Sprintf("schema %q: %v", cfg.Name, err))
	}
	return s
}

func newNumericSettings(cfg ParameterConfig) NumericSettings {
	step := DefaultStep
	if cfg.Step != nil {
		step = *cfg.Step
	}
	return NumericSettings{
		Min:     cfg.Min,
		Max:     cfg.Max,
		Step:    step,
		Unit:    cfg.Unit,
		Slider:  cfg.Slider,
		Presets: cfg.Presets,
	}
}

func toCount(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func cloneOptions(options []Option) []Option {
	if options == nil {
		return []Option{}
	}
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
