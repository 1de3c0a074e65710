package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse reads a JSON or YAML document and returns its root mapping. Empty
// input yields an empty mapping.
func Parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be an object")
	}
	return root, nil
}

// Merge deep-merges override over base and returns a new tree; neither input
// is modified. Mappings merge key by key: keys present in base keep their
// position and new keys are appended in override order. Sequences merge
// index by index and extra override items are appended. Anything else in
// override (scalars, null, or a kind mismatch) replaces the base value
// wholesale.
func Merge(base, override *yaml.Node) *yaml.Node {
	base, override = resolve(base), resolve(override)
	if override == nil {
		return clone(base)
	}
	if base != nil && base.Kind == yaml.SequenceNode && override.Kind == yaml.SequenceNode {
		out := clone(base)
		for i, item := range override.Content {
			if i < len(out.Content) {
				out.Content[i] = Merge(out.Content[i], item)
				continue
			}
			out.Content = append(out.Content, clone(item))
		}
		return out
	}
	if base == nil || base.Kind != yaml.MappingNode || override.Kind != yaml.MappingNode {
		return clone(override)
	}

	out := clone(base)
	for i := 0; i+1 < len(override.Content); i += 2 {
		key, val := override.Content[i], override.Content[i+1]
		if idx := mappingIndex(out, key.Value); idx >= 0 {
			out.Content[idx+1] = Merge(out.Content[idx+1], val)
			continue
		}
		out.Content = append(out.Content, clone(key), clone(val))
	}
	return out
}

func mappingIndex(m *yaml.Node, key string) int {
	if m == nil || m.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func clone(n *yaml.Node) *yaml.Node {
	n = resolve(n)
	if n == nil {
		return nil
	}
	c := *n
	c.Content = make([]*yaml.Node, len(n.Content))
	for i, child := range n.Content {
		c.Content[i] = clone(child)
	}
	return &c
}
