// Package generator is the contract between parameter schemas and the
// problem generators that consume them: defaults, presets and caller values
// are layered, validated, and handed over as one value map.
package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/n1rna/paramschema/internal/schema"
)

// ErrUnknownPreset is returned when a preset id is not declared by the schema
var ErrUnknownPreset = errors.New("unknown preset")

// InvalidParametersError reports a value map that failed validation
type InvalidParametersError struct {
	Errors []string
}

func (e *InvalidParametersError) Error() string {
	return "invalid parameters: " + strings.Join(e.Errors, ", ")
}

// Merge layers value maps left to right; keys in later maps override earlier
// ones. The inputs are not modified.
func Merge(layers ...schema.Values) schema.Values {
	merged := schema.Values{}
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}

// Resolve merges params over defaults and validates the result against s.
// A nil defaults map falls back to the schema's declared defaults.
func Resolve(s *schema.Schema, defaults, params schema.Values) (schema.Values, error) {
	if defaults == nil {
		defaults = s.Defaults()
	}
	return check(s, Merge(defaults, params))
}

// ResolveWithPreset layers defaults, then the preset's values, then params
func ResolveWithPreset(s *schema.Schema, defaults schema.Values, presetID string, params schema.Values) (schema.Values, error) {
	preset, ok := s.Preset(presetID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, presetID)
	}
	if defaults == nil {
		defaults = s.Defaults()
	}
	return check(s, Merge(defaults, preset.Values, params))
}

func check(s *schema.Schema, values schema.Values) (schema.Values, error) {
	result := s.Validate(values)
	if !result.IsValid {
		return nil, &InvalidParametersError{Errors: result.Errors}
	}
	return values, nil
}

// Base is embedded by generators to carry their schema and defaults
type Base struct {
	Schema   *schema.Schema
	Defaults schema.Values
}

// NewBase creates a Base whose defaults are the schema's declared defaults
// overlaid with extra
func NewBase(s *schema.Schema, extra schema.Values) Base {
	return Base{
		Schema:   s,
		Defaults: Merge(s.Defaults(), extra),
	}
}

// Params returns the validated parameters for one generation run
func (b Base) Params(params schema.Values) (schema.Values, error) {
	return Resolve(b.Schema, b.Defaults, params)
}

// PresetParams is Params with a preset layered between defaults and params
func (b Base) PresetParams(presetID string, params schema.Values) (schema.Values, error) {
	return ResolveWithPreset(b.Schema, b.Defaults, presetID, params)
}
