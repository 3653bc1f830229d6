package tui

import (
	"math"

	"github.com/n1rna/paramschema/internal/schema"
)

// step moves a numeric parameter by its step in direction dir, clamped to
// the declared bounds
func step(n schema.NumericSettings, current any, dir int) any {
	size := n.Step
	if size <= 0 {
		size = 1
	}

	value, ok := schema.AsNumber(current)
	if !ok {
		switch {
		case n.Min != nil:
			return tidy(*n.Min)
		case n.Max != nil && *n.Max < 0:
			return tidy(*n.Max)
		}
		return 0
	}

	value += float64(dir) * size
	if n.Min != nil && value < *n.Min {
		value = *n.Min
	}
	if n.Max != nil && value > *n.Max {
		value = *n.Max
	}
	return tidy(value)
}

// tidy stores whole numbers as int so they print and save without a
// fractional part
func tidy(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
		return int(f)
	}
	return f
}

// cycle returns the option after (dir 1) or before (dir -1) current,
// wrapping around. An unset or unknown value starts at the first option.
func cycle(options []schema.Option, current any, dir int) any {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if schema.Equal(o.Value, current) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return options[0].Value
	}
	idx = (idx + dir + len(options)) % len(options)
	return options[idx].Value
}

// toggleItem adds value to the selection or removes it when already present,
// keeping option order
func toggleItem(options []schema.Option, current any, value any) []any {
	selected := map[int]bool{}
	items := asList(current)
	for i, o := range options {
		for _, item := range items {
			if schema.Equal(o.Value, item) {
				selected[i] = true
			}
		}
	}

	for i, o := range options {
		if schema.Equal(o.Value, value) {
			selected[i] = !selected[i]
		}
	}

	out := []any{}
	for i, o := range options {
		if selected[i] {
			out = append(out, o.Value)
		}
	}
	return out
}

func asList(v any) []any {
	switch items := v.(type) {
	case []any:
		return items
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out
	}
	return nil
}

func isSelected(current any, value any) bool {
	for _, item := range asList(current) {
		if schema.Equal(item, value) {
			return true
		}
	}
	return false
}
