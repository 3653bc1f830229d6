package schema

import "sort"

// ConditionType selects the test a Condition applies
type ConditionType string

const (
	ConditionEquals      ConditionType = "equals"
	ConditionNotEquals   ConditionType = "not-equals"
	ConditionIncludes    ConditionType = "includes"
	ConditionExcludes    ConditionType = "excludes"
	ConditionGreaterThan ConditionType = "greater-than"
	ConditionLessThan    ConditionType = "less-than"
)

// Known reports whether t is a recognized condition type
func (t ConditionType) Known() bool {
	switch t {
	case ConditionEquals, ConditionNotEquals, ConditionIncludes,
		ConditionExcludes, ConditionGreaterThan, ConditionLessThan:
		return true
	}
	return false
}

// Operator is the and/or tag carried by a condition.
// It is recorded but not consulted: a list of conditions is always ANDed.
type Operator string

const (
	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
)

// Condition tests the current value of one parameter
type Condition struct {
	Type      ConditionType `json:"type" yaml:"type"`
	Parameter string        `json:"parameter" yaml:"parameter"`
	Value     any           `json:"value" yaml:"value"`
	Operator  Operator      `json:"operator" yaml:"operator"`
}

// Evaluate applies the condition to values.
// Unrecognized condition types evaluate to true.
func (c Condition) Evaluate(values Values) bool {
	paramValue := values[c.Parameter]

	switch c.Type {
	case ConditionEquals:
		return strictEqual(paramValue, c.Value)
	case ConditionNotEquals:
		return !strictEqual(paramValue, c.Value)
	case ConditionIncludes:
		items, ok := toList(paramValue)
		return ok && containsValue(items, c.Value)
	case ConditionExcludes:
		items, ok := toList(paramValue)
		return !ok || !containsValue(items, c.Value)
	case ConditionGreaterThan:
		left, lok := toNumber(paramValue)
		right, rok := toNumber(c.Value)
		return lok && rok && left > right
	case ConditionLessThan:
		left, lok := toNumber(paramValue)
		right, rok := toNumber(c.Value)
		return lok && rok && left < right
	default:
		return true
	}
}

// EvaluateConditions reports whether every condition holds for values.
// The per-condition Operator is ignored.
func EvaluateConditions(conditions []Condition, values Values) bool {
	for _, condition := range conditions {
		if !condition.Evaluate(values) {
			return false
		}
	}
	return true
}

// HiddenParameterIDs returns, in schema order, the ids of parameters that
// declare dependsOn conditions which do not all hold for values
func HiddenParameterIDs(s *Schema, values Values) []string {
	hidden := []string{}
	for _, category := range s.Categories {
		for _, param := range category.Parameters {
			base := param.Common()
			if len(base.DependsOn) > 0 && !EvaluateConditions(base.DependsOn, values) {
				hidden = append(hidden, base.ID)
			}
		}
	}
	return hidden
}

// CategoryView is a category as presented for one value map: only visible
// parameters, ordered by their Order field
type CategoryView struct {
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

// CategorizedParameters projects the schema into an ordered view for values.
// Hidden parameters are dropped; categories and parameters are sorted by
// Order with ties kept in declaration order. The schema is not modified.
func CategorizedParameters(s *Schema, values Values) []CategoryView {
	hidden := make(map[string]bool)
	for _, id := range HiddenParameterIDs(s, values) {
		hidden[id] = true
	}

	views := make([]CategoryView, 0, len(s.Categories))
	for _, category := range s.Categories {
		params := make([]Parameter, 0, len(category.Parameters))
		for _, param := range category.Parameters {
			if hidden[param.Common().ID] {
				continue
			}
			params = append(params, param)
		}
		sort.SliceStable(params, func(i, j int) bool {
			return params[i].Common().Order < params[j].Common().Order
		})

		views = append(views, CategoryView{
			ID:          category.ID,
			Label:       category.Label,
			Description: category.Description,
			Icon:        category.Icon,
			Color:       category.Color,
			Variant:     category.Variant,
			Order:       category.Order,
			Expanded:    category.Expanded,
			Parameters:  params,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Order < views[j].Order
	})
	return views
}
