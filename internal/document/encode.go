package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeJSON writes the tree as indented JSON, keeping mapping order.
func EncodeJSON(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, resolve(node), ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EncodeYAML writes the tree as YAML, keeping mapping order.
func EncodeYAML(node *yaml.Node) ([]byte, error) {
	return yaml.Marshal(resolve(node))
}

func encodeJSON(buf *bytes.Buffer, n *yaml.Node, indent string) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	next := indent + "  "
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, _ := json.Marshal(n.Content[i].Value)
			buf.WriteString(next)
			buf.Write(key)
			buf.WriteString(": ")
			if err := encodeJSON(buf, resolve(n.Content[i+1]), next); err != nil {
				return err
			}
			if i+2 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "}")
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, child := range n.Content {
			buf.WriteString(next)
			if err := encodeJSON(buf, resolve(child), next); err != nil {
				return err
			}
			if i+1 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "]")
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			buf.WriteString("null")
		case "!!bool", "!!int", "!!float":
			var v interface{}
			if err := n.Decode(&v); err != nil {
				return fmt.Errorf("error encoding %q: %w", n.Value, err)
			}
			out, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("error encoding %q: %w", n.Value, err)
			}
			buf.Write(out)
		default:
			out, _ := json.Marshal(n.Value)
			buf.Write(out)
		}
	default:
		return fmt.Errorf("unsupported node kind %d", n.Kind)
	}
	return nil
}
