package schema

import (
	"fmt"
	"math"
)

// ValidationResult is the outcome of checking a value map against a schema.
// Warnings is reserved and currently always empty.
type ValidationResult struct {
	IsValid  bool     `json:"isValid" yaml:"isValid"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// Validate checks values against every parameter of the schema, in
// declaration order, and collects one message per violation.
// It never fails; callers decide whether an invalid result is an error.
func Validate(s *Schema, values Values) ValidationResult {
	errs := []string{}

	for _, category := range s.Categories {
		for _, param := range category.Parameters {
			base := param.Common()
			value, present := values[base.ID]

			if base.Required && isEmptyValue(value, present) {
				errs = append(errs, fmt.Sprintf("%s is required", base.Label))
			}

			errs = append(errs, validateParameterType(param, value)...)
		}
	}

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: []string{},
	}
}

// isEmptyValue reports whether a value counts as missing for required checks
func isEmptyValue(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// validateParameterType applies the type-specific checks. Unset values are
// never type errors, only the required check can flag them.
func validateParameterType(param Parameter, value any) []string {
	if value == nil {
		return nil
	}

	var errs []string
	switch p := param.(type) {
	case *NumberParameter:
		n, ok := toNumber(value)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return []string{fmt.Sprintf("%s must be a number", p.Label)}
		}
		if p.Min != nil && n < *p.Min {
			errs = append(errs, fmt.Sprintf("%s must be at least %s", p.Label, formatNumber(*p.Min)))
		}
		if p.Max != nil && n > *p.Max {
			errs = append(errs, fmt.Sprintf("%s must be at most %s", p.Label, formatNumber(*p.Max)))
		}

	case *SelectParameter:
		allowed := optionValues(p.Options)
		if !containsValue(allowed, value) {
			errs = append(errs, fmt.Sprintf("%s must be one of: %s", p.Label, joinValues(allowed)))
		}

	case *MultiselectParameter:
		items, ok := toList(value)
		if !ok {
			return []string{fmt.Sprintf("%s must be an array", p.Label)}
		}

		allowed := optionValues(p.Options)
		var invalid []any
		for _, item := range items {
			if !containsValue(allowed, item) {
				invalid = append(invalid, item)
			}
		}
		if len(invalid) > 0 {
			errs = append(errs, fmt.Sprintf("%s contains invalid values: %s", p.Label, joinValues(invalid)))
		}
		if p.Min != nil && len(items) < *p.Min {
			errs = append(errs, fmt.Sprintf("%s must have at least %d selections", p.Label, *p.Min))
		}
		if p.Max != nil && len(items) > *p.Max {
			errs = append(errs, fmt.Sprintf("%s must have at most %d selections", p.Label, *p.Max))
		}

	case *BooleanParameter, *RangeParameter, *GroupParameter, *GenericParameter:
		// presence is the only check for these
	}

	return errs
}
