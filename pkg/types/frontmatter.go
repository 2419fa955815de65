// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// FrontMatter is an insertion-ordered mapping of front-matter keys to scalar
// values. Topic front matter is declared by the documentation author and is
// serialized back out in the order it was written, so a plain Go map (with
// randomized iteration) is not suitable here.
type FrontMatter []FrontMatterField

// FrontMatterField is a single key/value pair in a front-matter block.
type FrontMatterField struct {
	Key   string
	Value any
}

// UnmarshalYAML decodes a YAML mapping into an ordered FrontMatter.
func (fm *FrontMatter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("front matter must be a mapping, got %s", nodeKindName(node.Kind))
	}
	fields := make(FrontMatter, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var value any
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("decoding front-matter field %q: %w", keyNode.Value, err)
		}
		fields = append(fields, FrontMatterField{Key: keyNode.Value, Value: value})
	}
	*fm = fields
	return nil
}

// MarshalYAML encodes the FrontMatter as a mapping node, preserving field order.
func (fm FrontMatter) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fm {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
		valNode, err := scalarNode(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding front-matter field %q: %w", f.Key, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// Get returns the value for key and whether it is present.
func (fm FrontMatter) Get(key string) (any, bool) {
	for _, f := range fm {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key in place, keeping the field's position.
// A key not yet present is appended.
func (fm *FrontMatter) Set(key string, value any) {
	for i := range *fm {
		if (*fm)[i].Key == key {
			(*fm)[i].Value = value
			return
		}
	}
	*fm = append(*fm, FrontMatterField{Key: key, Value: value})
}

// String returns the value for key as a string, or "" when the key is absent
// or not a string.
func (fm FrontMatter) String(key string) string {
	v, ok := fm.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Bool returns the value for key as a bool. Absent or non-boolean values
// return fallback.
func (fm FrontMatter) Bool(key string, fallback bool) bool {
	v, ok := fm.Get(key)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

// Strings returns the value for key as a string slice. Scalar entries of
// other types are stringified; an absent key yields nil.
func (fm FrontMatter) Strings(key string) []string {
	v, ok := fm.Get(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// Clone returns a shallow copy of the front matter. Field values are scalars
// or small slices, so a per-field copy is sufficient for placeholder
// resolution to leave the source configuration untouched.
func (fm FrontMatter) Clone() FrontMatter {
	out := make(FrontMatter, len(fm))
	copy(out, fm)
	return out
}

// scalarNode converts a decoded scalar (or scalar sequence) back into a YAML
// node with an explicit tag, so serialization stays deterministic.
func scalarNode(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: vv}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(vv)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(vv)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(vv, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(vv, 'g', -1, 64)}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			n, err := scalarNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported front-matter value type %T", v)
	}
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
