// Package content turns the document's content entries into live elements:
// clocks that re-render on every tick and static markup fragments.
package content

import (
	"strings"

	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/signal"
)

// ActiveAppearClass marks elements that are only shown while the user is
// active.
const ActiveAppearClass = "active-appear"

// Segment is an inline run of text with its own style.
type Segment struct {
	Text  string
	Style document.Style
}

// Element is a block in the content container.
type Element interface {
	// Segments returns the inline runs, left to right.
	Segments() []Segment
	// Style returns the block-level style.
	Style() document.Style
	// Visible reports whether the element is drawn given the user's
	// activity classification.
	Visible(active bool) bool
}

// Container holds rendered elements in order and the tick subscriptions
// they own.
type Container struct {
	elements []Element
	subs     signal.Group
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Append adds an element after the existing ones.
func (c *Container) Append(e Element) {
	c.elements = append(c.elements, e)
}

// Track hands a subscription to the container; it is released with the
// container.
func (c *Container) Track(sub signal.Subscription) {
	c.subs.Add(sub)
}

// Elements returns the elements in order.
func (c *Container) Elements() []Element {
	return c.elements
}

// Len returns the number of elements.
func (c *Container) Len() int {
	return len(c.elements)
}

// Subscriptions returns the number of subscriptions the container holds.
func (c *Container) Subscriptions() int {
	return c.subs.Len()
}

// ClockFields returns every clock field across all clock elements.
func (c *Container) ClockFields() []*ClockField {
	var out []*ClockField
	for _, e := range c.elements {
		if clock, ok := e.(*Clock); ok {
			out = append(out, clock.Fields()...)
		}
	}
	return out
}

// Reset releases all subscriptions and drops all elements.
func (c *Container) Reset() {
	c.subs.Release()
	c.elements = nil
}

// TextNode is a plain text element.
type TextNode struct {
	text string
}

// Text returns the literal text.
func (t *TextNode) Text() string { return t.text }

// Segments returns the text as a single unstyled segment.
func (t *TextNode) Segments() []Segment {
	return []Segment{{Text: t.text}}
}

// Style returns nil; text nodes carry no style of their own.
func (t *TextNode) Style() document.Style { return nil }

// Visible always reports true.
func (t *TextNode) Visible(bool) bool { return true }

// Block is an element built from a markup object.
type Block struct {
	text    string
	style   document.Style
	classes []string
	attrs   map[string]string
	hidden  bool
}

// Text returns the block's text content.
func (b *Block) Text() string { return b.text }

// Segments returns the text as a single segment. The block style applies to
// the whole line.
func (b *Block) Segments() []Segment {
	return []Segment{{Text: b.text}}
}

// Style returns the declarations applied to the block.
func (b *Block) Style() document.Style { return b.style }

// Attr returns an attribute set through the attr operation.
func (b *Block) Attr(name string) (string, bool) {
	v, ok := b.attrs[name]
	return v, ok
}

// HasClass reports whether the block carries class.
func (b *Block) HasClass(class string) bool {
	for _, c := range b.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Visible reports whether the block is drawn. Blocks with the active-appear
// class show only while the user is active.
func (b *Block) Visible(active bool) bool {
	if b.HasClass(ActiveAppearClass) {
		return active
	}
	if b.hidden {
		return false
	}
	display, _ := b.style.Get("display")
	return strings.TrimSpace(display) != "none"
}

func (b *Block) addClasses(list string) {
	for _, c := range strings.Fields(list) {
		if !b.HasClass(c) {
			b.classes = append(b.classes, c)
		}
	}
}

func (b *Block) removeClasses(list string) {
	for _, c := range strings.Fields(list) {
		for i, have := range b.classes {
			if have == c {
				b.classes = append(b.classes[:i], b.classes[i+1:]...)
				break
			}
		}
	}
}
