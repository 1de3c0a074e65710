package content

import (
	"time"

	"github.com/nleeper/goment"

	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/signal"
)

// ClockField is one formatted-time text segment. It re-renders itself on
// every tick it is subscribed to.
type ClockField struct {
	format string
	style  document.Style
	text   string
}

// NewClockField creates a field showing now in format and subscribes it to
// tick. The returned subscription detaches it.
func NewClockField(format string, style document.Style, tick *signal.Signal[time.Time], now time.Time) (*ClockField, signal.Subscription) {
	f := &ClockField{format: format, style: style}
	f.Render(now)
	return f, tick.Subscribe(f.Render)
}

// Render formats t into the field's text using moment.js layout tokens
// ("dddd, MMMM Do", "h:mm", "A").
func (f *ClockField) Render(t time.Time) {
	g, err := goment.New(t)
	if err != nil {
		f.text = ""
		return
	}
	f.text = g.Format(f.format)
}

// Format returns the moment layout the field renders with.
func (f *ClockField) Format() string { return f.format }

// Text returns the text of the last render.
func (f *ClockField) Text() string { return f.text }

// FieldStyle returns the per-segment style, or nil.
func (f *ClockField) FieldStyle() document.Style { return f.style }

// Clock groups the fields of one clock entry on a single line.
type Clock struct {
	fields []*ClockField
	parent document.Style
}

// Fields returns the clock's fields in format order.
func (c *Clock) Fields() []*ClockField { return c.fields }

// Segments returns one styled segment per field.
func (c *Clock) Segments() []Segment {
	segs := make([]Segment, 0, len(c.fields))
	for _, f := range c.fields {
		segs = append(segs, Segment{Text: f.text, Style: f.style})
	}
	return segs
}

// Style returns the parent-css of the clock line.
func (c *Clock) Style() document.Style { return c.parent }

// Visible reports whether the line is drawn; display: none hides it.
func (c *Clock) Visible(bool) bool {
	display, _ := c.parent.Get("display")
	return display != "none"
}
