package content

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"

	"github.com/karthickk/splash-screen/internal/document"
)

type fragmentOp func(b *Block, arg *yaml.Node) error

// fragmentOps are the operations a markup object may name.
var fragmentOps = map[string]fragmentOp{
	"html":         opHTML,
	"append":       opAppend,
	"text":         opText,
	"css":          opCSS,
	"attr":         opAttr,
	"addClass":     opAddClass,
	"add-class":    opAddClass,
	"removeClass":  opRemoveClass,
	"remove-class": opRemoveClass,
	"show":         opShow,
	"hide":         opHide,
}

// IsFragmentOp reports whether name is an operation markup objects may use.
func IsFragmentOp(name string) bool {
	_, ok := fragmentOps[name]
	return ok
}

func scalar(arg *yaml.Node) (string, error) {
	if arg == nil || arg.Kind != yaml.ScalarNode || arg.ShortTag() == "!!null" {
		return "", fmt.Errorf("argument must be a string")
	}
	return arg.Value, nil
}

func opHTML(b *Block, arg *yaml.Node) error {
	s, err := scalar(arg)
	if err != nil {
		return err
	}
	b.text = ""
	return appendMarkup(b, s)
}

func opAppend(b *Block, arg *yaml.Node) error {
	s, err := scalar(arg)
	if err != nil {
		return err
	}
	return appendMarkup(b, s)
}

func opText(b *Block, arg *yaml.Node) error {
	s, err := scalar(arg)
	if err != nil {
		return err
	}
	b.text = s
	return nil
}

func opCSS(b *Block, arg *yaml.Node) error {
	if arg == nil || arg.Kind != yaml.MappingNode {
		return fmt.Errorf("argument must be a style object")
	}
	b.style = append(b.style, document.ParseStyle(arg)...)
	return nil
}

func opAttr(b *Block, arg *yaml.Node) error {
	if arg == nil || arg.Kind != yaml.MappingNode {
		return fmt.Errorf("argument must be an object")
	}
	for i := 0; i+1 < len(arg.Content); i += 2 {
		name, val := arg.Content[i].Value, arg.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			continue
		}
		setAttr(b, name, val.Value)
	}
	return nil
}

func opAddClass(b *Block, arg *yaml.Node) error {
	s, err := scalar(arg)
	if err != nil {
		return err
	}
	b.addClasses(s)
	return nil
}

func opRemoveClass(b *Block, arg *yaml.Node) error {
	s, err := scalar(arg)
	if err != nil {
		return err
	}
	b.removeClasses(s)
	return nil
}

func opShow(b *Block, _ *yaml.Node) error {
	b.hidden = false
	b.style = append(b.style, document.Declaration{Property: "display", Value: "block"})
	return nil
}

func opHide(b *Block, _ *yaml.Node) error {
	b.hidden = true
	return nil
}

func setAttr(b *Block, name, value string) {
	switch name {
	case "class":
		b.addClasses(value)
	case "style":
		b.style = append(b.style, parseInlineStyle(value)...)
	default:
		b.attrs[name] = value
	}
}

// appendMarkup parses s as an HTML fragment and appends its text to the
// block. Element attributes are folded into the block: class and style are
// honoured and <br> becomes a line break.
func appendMarkup(b *Block, s string) error {
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return fmt.Errorf("error parsing markup: %w", err)
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		case html.ElementNode:
			for _, a := range n.Attr {
				setAttr(b, a.Key, a.Val)
			}
			if n.DataAtom == atom.Br {
				sb.WriteByte('\n')
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	if b.text != "" && sb.Len() > 0 {
		b.text += " "
	}
	b.text += sb.String()
	return nil
}

// parseInlineStyle reads a "prop: value; prop: value" attribute.
func parseInlineStyle(s string) document.Style {
	var style document.Style
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(strings.ToLower(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		style = append(style, document.Declaration{Property: prop, Value: val})
	}
	return style
}
