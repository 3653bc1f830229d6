// Package schema implements the declarative parameter schema shared by every
// problem generator: categories of typed parameters, presets, conditional
// visibility and value validation.
package schema

import "errors"

// SchemaVersion is stamped on every schema built by this package
const SchemaVersion = 2

// ParameterType identifies the shape of a parameter
type ParameterType string

const (
	TypeNumber      ParameterType = "number"
	TypeBoolean     ParameterType = "boolean"
	TypeSelect      ParameterType = "select"
	TypeMultiselect ParameterType = "multiselect"
	TypeRange       ParameterType = "range"
	TypeGroup       ParameterType = "group"
)

// Known reports whether t is one of the parameter types with a dedicated shape
func (t ParameterType) Known() bool {
	switch t {
	case TypeNumber, TypeBoolean, TypeSelect, TypeMultiselect, TypeRange, TypeGroup:
		return true
	}
	return false
}

var (
	// ErrDuplicateCategory is returned when two categories share an id
	ErrDuplicateCategory = errors.New("duplicate category id")
	// ErrDuplicateParameter is returned when a parameter id appears twice
	// anywhere in a schema. Values are a flat map keyed by parameter id, so
	// ids must be unique across categories, not only within one.
	ErrDuplicateParameter = errors.New("duplicate parameter id")
)

// Values maps parameter ids to the values chosen for one request.
// It is owned by the caller and never modified by this package.
type Values map[string]any

// Clone returns a shallow copy of v
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Option is a selectable choice for select, multiselect and group parameters
type Option struct {
	Value       any    `json:"value" yaml:"value" jsonschema:"description=Value stored in the value map when chosen"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Parameter is one typed configuration leaf. The concrete type is one of
// *NumberParameter, *RangeParameter, *BooleanParameter, *SelectParameter,
// *MultiselectParameter, *GroupParameter or *GenericParameter.
type Parameter interface {
	// Common returns the attributes shared by every parameter type
	Common() ParameterBase
	parameter()
}

// ParameterBase holds the attributes every parameter carries
type ParameterBase struct {
	ID          string        `json:"id" yaml:"id"`
	Type        ParameterType `json:"type" yaml:"type"`
	Label       string        `json:"label" yaml:"label"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool          `json:"required" yaml:"required"`
	Order       int           `json:"order" yaml:"order"`
	Default     any           `json:"default,omitempty" yaml:"default,omitempty"`
	DependsOn   []Condition   `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

// Common implements Parameter
func (b ParameterBase) Common() ParameterBase { return b }

func (ParameterBase) parameter() {}

// NumericSettings are shared by number and range parameters
type NumericSettings struct {
	Min     *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Step    float64   `json:"step" yaml:"step"`
	Unit    string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	Slider  bool      `json:"slider" yaml:"slider"`
	Presets []float64 `json:"presets,omitempty" yaml:"presets,omitempty"`
}

// NumberParameter is a single numeric value with optional inclusive bounds
type NumberParameter struct {
	ParameterBase   `yaml:",inline"`
	NumericSettings `yaml:",inline"`
}

// RangeParameter is a slider with one or two handles
type RangeParameter struct {
	ParameterBase   `yaml:",inline"`
	NumericSettings `yaml:",inline"`
	Dual            bool `json:"dual" yaml:"dual"`
}

// BooleanParameter is an on/off flag
type BooleanParameter struct {
	ParameterBase `yaml:",inline"`
	Variant       string `json:"variant" yaml:"variant"`
	HelpText      string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Icon          string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// SelectParameter picks one value out of Options
type SelectParameter struct {
	ParameterBase `yaml:",inline"`
	Options       []Option `json:"options" yaml:"options"`
	Variant       string   `json:"variant" yaml:"variant"`
	Multiple      bool     `json:"multiple" yaml:"multiple"`
	Searchable    bool     `json:"searchable" yaml:"searchable"`
}

// MultiselectParameter picks a list of values out of Options.
// Min and Max bound the number of selections when set; zero is a real bound.
type MultiselectParameter struct {
	ParameterBase  `yaml:",inline"`
	Options        []Option `json:"options" yaml:"options"`
	Variant        string   `json:"variant" yaml:"variant"`
	Min            *int     `json:"min,omitempty" yaml:"min,omitempty"`
	Max            *int     `json:"max,omitempty" yaml:"max,omitempty"`
	AllowSelectAll bool     `json:"allowSelectAll" yaml:"allowSelectAll"`
}

// GroupParameter renders Options as a toggle group
type GroupParameter struct {
	ParameterBase `yaml:",inline"`
	Options       []Option `json:"options" yaml:"options"`
	Variant       string   `json:"variant" yaml:"variant"`
	Exclusive     bool     `json:"exclusive" yaml:"exclusive"`
}

// GenericParameter is produced for unrecognized types and carries only the
// common attributes
type GenericParameter struct {
	ParameterBase `yaml:",inline"`
}

// Category is an ordered, display-tagged group of parameters
type Category struct {
	ID          string      `json:"id" yaml:"id"`
	Label       string      `json:"label" yaml:"label"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string      `json:"icon" yaml:"icon"`
	Color       string      `json:"color" yaml:"color"`
	Variant     string      `json:"variant" yaml:"variant"`
	Order       int         `json:"order" yaml:"order"`
	Expanded    bool        `json:"expanded" yaml:"expanded"`
	Parameters  []Parameter `json:"parameters" yaml:"parameters"`
}

// Preset is a named shortcut that maps directly to a value map
type Preset struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Values      Values   `json:"values" yaml:"values"`
	Tags        []string `json:"tags" yaml:"tags"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// Schema is the full parameter description for one generator. It is built
// once and only read afterwards, so it is safe for concurrent use.
type Schema struct {
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Version     int         `json:"version" yaml:"version"`
	Categories  []*Category `json:"categories" yaml:"categories"`
	Presets     []*Preset   `json:"presets" yaml:"presets"`
}

// Category returns the category with the given id
func (s *Schema) Category(id string) (*Category, bool) {
	for _, category := range s.Categories {
		if category.ID == id {
			return category, true
		}
	}
	return nil, false
}

// Parameter returns the parameter with the given id from any category
func (s *Schema) Parameter(id string) (Parameter, bool) {
	for _, category := range s.Categories {
		for _, param := range category.Parameters {
			if param.Common().ID == id {
				return param, true
			}
		}
	}
	return nil, false
}

// Preset returns the preset with the given id
func (s *Schema) Preset(id string) (*Preset, bool) {
	for _, preset := range s.Presets {
		if preset.ID == id {
			return preset, true
		}
	}
	return nil, false
}

// Defaults collects the declared default value of every parameter that has one
func (s *Schema) Defaults() Values {
	defaults := Values{}
	for _, category := range s.Categories {
		for _, param := range category.Parameters {
			base := param.Common()
			if base.Default != nil {
				defaults[base.ID] = base.Default
			}
		}
	}
	return defaults
}

// Validate checks values against the schema, see Validate
func (s *Schema) Validate(values Values) ValidationResult {
	return Validate(s, values)
}

// HiddenParameterIDs lists parameters hidden for values, see HiddenParameterIDs
func (s *Schema) HiddenParameterIDs(values Values) []string {
	return HiddenParameterIDs(s, values)
}

// CategorizedParameters builds the presentation view, see CategorizedParameters
func (s *Schema) CategorizedParameters(values Values) []CategoryView {
	return CategorizedParameters(s, values)
}
