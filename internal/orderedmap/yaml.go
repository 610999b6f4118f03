package orderedmap

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotAMapping  = errors.New("expected a mapping")
	ErrDuplicateKey = errors.New("duplicate key")
)

// MarshalYAML emits a mapping node whose keys keep insertion order.
func (o *OrderedMap[K, V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for it := o.Front(); it != nil; it = it.Next() {
		var k, v yaml.Node
		if err := k.Encode(it.Key()); err != nil {
			return nil, err
		}
		if err := v.Encode(it.Value()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &k, &v)
	}

	return node, nil
}

// UnmarshalYAML reads a mapping node in document order. A null node yields an
// empty map; a repeated key is an error rather than a silent overwrite.
func (o *OrderedMap[K, V]) UnmarshalYAML(value *yaml.Node) error {
	o.init()

	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %w", value.Line, ErrNotAMapping)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valueNode := value.Content[i], value.Content[i+1]

		var key K
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		if o.Has(key) {
			return fmt.Errorf("line %d: %w %v", keyNode.Line, ErrDuplicateKey, key)
		}

		var val V
		if err := valueNode.Decode(&val); err != nil {
			return err
		}
		o.Set(key, val)
	}

	return nil
}
