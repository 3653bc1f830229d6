package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// toNumber converts any Go numeric kind to float64. Strings and booleans are
// not numbers.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// toList returns the elements of any slice or array value
func toList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if items, ok := v.([]any); ok {
		return items, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// strictEqual compares two values without coercion, except that numbers of
// different Go kinds compare by value (3 and 3.0 are equal)
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, ok := toNumber(a); ok {
		y, ok := toNumber(b)
		return ok && x == y
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func containsValue(items []any, value any) bool {
	for _, item := range items {
		if strictEqual(item, value) {
			return true
		}
	}
	return false
}

func optionValues(options []Option) []any {
	values := make([]any, 0, len(options))
	for _, option := range options {
		values = append(values, option.Value)
	}
	return values
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatValue renders a value the way validation messages do: numbers in
// their shortest form, lists bracketed, everything else with fmt
func FormatValue(v any) string {
	if n, ok := toNumber(v); ok {
		return formatNumber(n)
	}
	if items, ok := toList(v); ok {
		return "[" + joinValues(items) + "]"
	}
	return fmt.Sprint(v)
}

func joinValues(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, FormatValue(v))
	}
	return strings.Join(parts, ", ")
}

// AsNumber reports v as a float64 when it holds any Go numeric kind
func AsNumber(v any) (float64, bool) {
	return toNumber(v)
}

// Equal compares two values the way equals conditions do
func Equal(a, b any) bool {
	return strictEqual(a, b)
}
