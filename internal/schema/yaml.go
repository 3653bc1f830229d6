package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CategoryList holds categories in declaration order. In YAML it may be
// written as a sequence or as a mapping keyed by category id.
type CategoryList []CategoryConfig

// UnmarshalYAML implements yaml.Unmarshaler
func (l *CategoryList) UnmarshalYAML(node *yaml.Node) error {
	items, err := decodeKeyed(node, "categories", func(c *CategoryConfig, key string) {
		if c.ID == "" {
			c.ID = key
		}
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// ParameterList holds parameters in declaration order. In YAML it may be
// written as a sequence or as a mapping keyed by parameter id.
type ParameterList []ParameterConfig

// UnmarshalYAML implements yaml.Unmarshaler
func (l *ParameterList) UnmarshalYAML(node *yaml.Node) error {
	items, err := decodeKeyed(node, "parameters", func(p *ParameterConfig, key string) {
		if p.ID == "" {
			p.ID = key
		}
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// ConditionList is the dependsOn of a parameter. In YAML it may be a single
// condition mapping or a sequence of them.
type ConditionList []ConditionConfig

// UnmarshalYAML implements yaml.Unmarshaler
func (l *ConditionList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var c ConditionConfig
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("dependsOn: %w", err)
		}
		*l = ConditionList{c}
	case yaml.SequenceNode:
		var items []ConditionConfig
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("dependsOn: %w", err)
		}
		*l = items
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: dependsOn must be a condition or a list of conditions", node.Line)
		}
		*l = nil
	default:
		return fmt.Errorf("line %d: dependsOn must be a condition or a list of conditions", node.Line)
	}
	return nil
}

// decodeKeyed decodes a sequence of T, or a mapping whose keys are handed to
// setKey in document order
func decodeKeyed[T any](node *yaml.Node, field string, setKey func(*T, string)) ([]T, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []T
		if err := node.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil

	case yaml.MappingNode:
		items := make([]T, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			var item T
			if err := node.Content[i+1].Decode(&item); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", field, key, err)
			}
			setKey(&item, key)
			items = append(items, item)
		}
		return items, nil

	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("line %d: %s must be a list or a mapping", node.Line, field)
}
