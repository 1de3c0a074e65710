// Package document holds the splash screen's configuration document: the
// built-in defaults, the deep merge of a user document over them, and the
// normalisation into the canonical model the rest of the program consumes.
//
// Documents are JSON (or YAML) parsed into yaml.v3 nodes so that mapping
// order survives; the order of the content mapping decides what is drawn
// first.
package document

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Transition selects the effect used when the overlay opens or closes.
type Transition string

const (
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
)

// ContentKind identifies a content-type builder.
type ContentKind int

const (
	KindUnknown ContentKind = iota
	KindClock
	KindHTML
)

func (k ContentKind) String() string {
	switch k {
	case KindClock:
		return "clock"
	case KindHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Document is the merged, normalised configuration.
type Document struct {
	Fit           bool
	Filter        bool
	Vignette      bool
	ActiveTimeout time.Duration
	Transition    Transition
	// Image is the background image location; empty means none.
	Image   string
	Content []ContentEntry
	// Issues lists top-level keys that had the wrong type and fell back to
	// their defaults.
	Issues []error
	// Raw is the merged document tree.
	Raw *yaml.Node
}

// ContentEntry is one content-type entry in document order.
type ContentEntry struct {
	Name      string
	Kind      ContentKind
	Clocks    []ClockSpec
	Fragments []Fragment
	// Issues are the sub-entries that were skipped while normalising.
	Issues []error
}

// ClockSpec is one clock line. Styles is index-aligned with Formats and may
// be shorter; a nil Style means no per-segment styling.
type ClockSpec struct {
	Formats []string
	Styles  []Style
	Parent  Style
}

// StyleAt returns the style for format segment i, or nil.
func (c ClockSpec) StyleAt(i int) Style {
	if i < len(c.Styles) {
		return c.Styles[i]
	}
	return nil
}

// Fragment is a markup element. Text elements carry only Text; object
// elements carry the operations to apply, in document order.
type Fragment struct {
	Text   string
	IsText bool
	Ops    []FragmentOp
}

// FragmentOp names a renderer operation and its argument.
type FragmentOp struct {
	Name string
	Arg  *yaml.Node
}

// Declaration is a single style property.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered list of declarations.
type Style []Declaration

// Get returns the last value declared for property.
func (s Style) Get(property string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Property == property {
			return s[i].Value, true
		}
	}
	return "", false
}

// Normalize converts a merged document tree into a Document. Top-level keys
// with the wrong type keep the value from defaults and are reported in
// Document.Issues.
func Normalize(root *yaml.Node) *Document {
	doc := &Document{
		Fit:           true,
		Vignette:      true,
		ActiveTimeout: 15 * time.Second,
		Transition:    TransitionFade,
		Raw:           root,
	}
	if root == nil || root.Kind != yaml.MappingNode {
		doc.Issues = append(doc.Issues, fmt.Errorf("document is not an object"))
		return doc
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, resolve(root.Content[i+1])
		switch key {
		case "fit":
			doc.Fit = doc.boolField(key, val, doc.Fit)
		case "filter":
			doc.Filter = doc.boolField(key, val, doc.Filter)
		case "vignette":
			doc.Vignette = doc.boolField(key, val, doc.Vignette)
		case "active-timeout":
			if secs, ok := number(val); ok && secs >= 0 {
				doc.ActiveTimeout = time.Duration(secs * float64(time.Second))
			} else {
				doc.Issues = append(doc.Issues, fmt.Errorf("active-timeout must be a non-negative number"))
			}
		case "transition":
			switch Transition(val.Value) {
			case TransitionFade, TransitionSlide:
				doc.Transition = Transition(val.Value)
			default:
				doc.Issues = append(doc.Issues, fmt.Errorf("transition %q is not one of fade, slide", val.Value))
			}
		case "img":
			switch {
			case isString(val):
				doc.Image = val.Value
			case isNull(val) || val.ShortTag() == "!!bool":
				doc.Image = ""
			default:
				doc.Issues = append(doc.Issues, fmt.Errorf("img must be a string"))
			}
		case "content":
			if val.Kind != yaml.MappingNode {
				doc.Issues = append(doc.Issues, fmt.Errorf("content must be an object"))
				continue
			}
			doc.Content = ParseContent(val)
		}
	}
	return doc
}

func (d *Document) boolField(key string, val *yaml.Node, def bool) bool {
	if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!bool" {
		b, err := strconv.ParseBool(val.Value)
		if err == nil {
			return b
		}
	}
	d.Issues = append(d.Issues, fmt.Errorf("%s must be a boolean", key))
	return def
}

// ParseContent normalises a content mapping into ordered entries.
func ParseContent(node *yaml.Node) []ContentEntry {
	node = resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	entries := make([]ContentEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		val := resolve(node.Content[i+1])
		entry := ContentEntry{Name: name}
		switch name {
		case "clock":
			entry.Kind = KindClock
			entry.Clocks, entry.Issues = parseClocks(val)
		case "html":
			entry.Kind = KindHTML
			entry.Fragments, entry.Issues = parseFragments(val)
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseClocks(val *yaml.Node) ([]ClockSpec, []error) {
	var items []*yaml.Node
	switch val.Kind {
	case yaml.MappingNode:
		items = []*yaml.Node{val}
	case yaml.SequenceNode:
		items = val.Content
	default:
		return nil, []error{fmt.Errorf("clock must be an object or a list of objects")}
	}

	var specs []ClockSpec
	var issues []error
	for i, item := range items {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			issues = append(issues, fmt.Errorf("clock %d is not an object", i))
			continue
		}
		spec, err := parseClock(item)
		if err != nil {
			issues = append(issues, fmt.Errorf("clock %d: %w", i, err))
			continue
		}
		specs = append(specs, spec)
	}
	return specs, issues
}

func parseClock(item *yaml.Node) (ClockSpec, error) {
	var spec ClockSpec

	format := lookup(item, "format")
	switch {
	case format == nil:
		return spec, fmt.Errorf("format is missing")
	case isString(format):
		spec.Formats = []string{format.Value}
	case format.Kind == yaml.SequenceNode:
		for _, f := range format.Content {
			f = resolve(f)
			if !isString(f) {
				return spec, fmt.Errorf("format entries must be strings")
			}
			spec.Formats = append(spec.Formats, f.Value)
		}
	default:
		return spec, fmt.Errorf("format must be a string or a list of strings")
	}
	if len(spec.Formats) == 0 {
		return spec, fmt.Errorf("format is empty")
	}

	if css := lookup(item, "css"); css != nil {
		switch css.Kind {
		case yaml.MappingNode:
			spec.Styles = []Style{ParseStyle(css)}
		case yaml.SequenceNode:
			for _, c := range css.Content {
				spec.Styles = append(spec.Styles, ParseStyle(resolve(c)))
			}
		}
	}
	if parent := lookup(item, "parent-css"); parent != nil {
		spec.Parent = ParseStyle(parent)
	}
	return spec, nil
}

func parseFragments(val *yaml.Node) ([]Fragment, []error) {
	items := []*yaml.Node{val}
	if val.Kind == yaml.SequenceNode {
		items = val.Content
	}

	var frags []Fragment
	var issues []error
	for i, item := range items {
		item = resolve(item)
		switch {
		case isString(item):
			frags = append(frags, Fragment{Text: item.Value, IsText: true})
		case item.Kind == yaml.MappingNode:
			var f Fragment
			for j := 0; j+1 < len(item.Content); j += 2 {
				f.Ops = append(f.Ops, FragmentOp{Name: item.Content[j].Value, Arg: resolve(item.Content[j+1])})
			}
			frags = append(frags, f)
		default:
			issues = append(issues, fmt.Errorf("html element %d is neither a string nor an object", i))
		}
	}
	return frags, issues
}

// ParseStyle reads a style object. Non-scalar values are dropped; anything
// that is not a mapping yields a nil style.
func ParseStyle(node *yaml.Node) Style {
	node = resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	style := make(Style, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		v := resolve(node.Content[i+1])
		if v.Kind != yaml.ScalarNode {
			continue
		}
		style = append(style, Declaration{Property: node.Content[i].Value, Value: v.Value})
	}
	return style
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	if idx := mappingIndex(m, key); idx >= 0 {
		return resolve(m.Content[idx+1])
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func number(n *yaml.Node) (float64, bool) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		return f, err == nil
	}
	return 0, false
}
