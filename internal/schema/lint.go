package schema

import (
	"fmt"
	"sort"
)

// LintWarning describes a schema authoring problem. The engine tolerates all
// of these at runtime; Lint exists so a build or test step can catch them.
type LintWarning struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

func (w LintWarning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return w.Path + ": " + w.Message
}

// Lint inspects a schema for problems the builder lets through: empty ids,
// unknown types, dangling dependsOn references, impossible bounds and presets
// that set parameters the schema does not declare
func Lint(s *Schema) []LintWarning {
	var warnings []LintWarning
	warn := func(path, format string, args ...any) {
		warnings = append(warnings, LintWarning{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	declared := make(map[string]bool)
	for _, category := range s.Categories {
		for _, param := range category.Parameters {
			declared[param.Common().ID] = true
		}
	}

	for ci, category := range s.Categories {
		categoryPath := category.ID
		if categoryPath == "" {
			categoryPath = fmt.Sprintf("categories[%d]", ci)
			warn(categoryPath, "category id is empty")
		}
		if category.Label == "" {
			warn(categoryPath, "category label is empty")
		}

		seen := make(map[string]bool)
		for pi, param := range category.Parameters {
			base := param.Common()
			path := categoryPath + "." + base.ID
			if base.ID == "" {
				path = fmt.Sprintf("%s.parameters[%d]", categoryPath, pi)
				warn(path, "parameter id is empty")
			} else if seen[base.ID] {
				warn(path, "parameter id is declared more than once")
			}
			seen[base.ID] = true

			if !base.Type.Known() {
				warn(path, "unknown parameter type %q, only common attributes apply", base.Type)
			}
			if base.Label == "" {
				warn(path, "parameter label is empty, validation messages will be unreadable")
			}

			for i, condition := range base.DependsOn {
				conditionPath := fmt.Sprintf("%s.dependsOn[%d]", path, i)
				if !condition.Type.Known() {
					warn(conditionPath, "unknown condition type %q always evaluates to true", condition.Type)
				}
				switch {
				case condition.Parameter == "":
					warn(conditionPath, "condition does not name a parameter")
				case condition.Parameter == base.ID:
					warn(conditionPath, "parameter depends on itself")
				case !declared[condition.Parameter]:
					warn(conditionPath, "condition references unknown parameter %q", condition.Parameter)
				}
				if condition.Operator == OperatorOr {
					warn(conditionPath, "operator \"or\" is not evaluated, conditions are always combined with and")
				}
			}

			lintParameter(param, path, warn)
		}
	}

	seenPresets := make(map[string]bool)
	for i, preset := range s.Presets {
		path := "presets." + preset.ID
		if preset.ID == "" {
			path = fmt.Sprintf("presets[%d]", i)
			warn(path, "preset id is empty")
		} else if seenPresets[preset.ID] {
			warn(path, "preset id is declared more than once")
		}
		seenPresets[preset.ID] = true

		keys := make([]string, 0, len(preset.Values))
		for key := range preset.Values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if !declared[key] {
				warn(path, "preset sets unknown parameter %q", key)
			}
		}
	}

	return warnings
}

func lintParameter(param Parameter, path string, warn func(path, format string, args ...any)) {
	switch p := param.(type) {
	case *NumberParameter:
		lintBounds(p.NumericSettings, path, warn)
	case *RangeParameter:
		lintBounds(p.NumericSettings, path, warn)
	case *SelectParameter:
		lintOptions(p.Options, path, warn)
	case *GroupParameter:
		lintOptions(p.Options, path, warn)
	case *MultiselectParameter:
		lintOptions(p.Options, path, warn)
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			warn(path, "min selections %d is greater than max selections %d", *p.Min, *p.Max)
		}
		if p.Max != nil && *p.Max > len(p.Options) {
			warn(path, "max selections %d exceeds the %d available options", *p.Max, len(p.Options))
		}
	}
}

func lintBounds(n NumericSettings, path string, warn func(path, format string, args ...any)) {
	if n.Min != nil && n.Max != nil && *n.Min > *n.Max {
		warn(path, "min %s is greater than max %s", formatNumber(*n.Min), formatNumber(*n.Max))
	}
	if n.Step <= 0 {
		warn(path, "step %s must be positive", formatNumber(n.Step))
	}
}

func lintOptions(options []Option, path string, warn func(path, format string, args ...any)) {
	if len(options) == 0 {
		warn(path, "no options declared")
		return
	}
	for i, option := range options {
		for _, other := range options[:i] {
			if strictEqual(option.Value, other.Value) {
				warn(path, "option value %s is declared more than once", FormatValue(option.Value))
				break
			}
		}
	}
}
