package content

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/signal"
	"github.com/karthickk/splash-screen/pkg/logger"
)

// Renderer builds container elements from content entries.
type Renderer struct {
	tick  *signal.Signal[time.Time]
	clock clockwork.Clock
	log   *logger.Logger
}

// NewRenderer creates a renderer whose clocks follow tick.
func NewRenderer(tick *signal.Signal[time.Time], clock clockwork.Clock, log *logger.Logger) *Renderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{tick: tick, clock: clock, log: log.With("component", "content")}
}

// Render resets c and fills it from content in order. Bad entries are
// logged and skipped; rendering always continues with the next entry.
func (r *Renderer) Render(content []document.ContentEntry, c *Container) {
	c.Reset()
	for _, entry := range content {
		for _, issue := range entry.Issues {
			r.log.Warn("skipping invalid content", "type", entry.Name, "error", issue.Error())
		}
		switch entry.Kind {
		case document.KindClock:
			r.renderClocks(entry.Clocks, c)
		case document.KindHTML:
			r.renderFragments(entry.Fragments, c)
		default:
			r.log.Warn("specified content is not valid", "type", entry.Name)
		}
	}
	r.log.Debug("content rendered", "elements", c.Len(), "subscriptions", c.Subscriptions())
}

func (r *Renderer) renderClocks(specs []document.ClockSpec, c *Container) {
	now := r.clock.Now()
	for _, spec := range specs {
		clock := &Clock{parent: spec.Parent}
		for i, format := range spec.Formats {
			field, sub := NewClockField(format, spec.StyleAt(i), r.tick, now)
			c.Track(sub)
			clock.fields = append(clock.fields, field)
		}
		c.Append(clock)
	}
}

func (r *Renderer) renderFragments(frags []document.Fragment, c *Container) {
	for _, frag := range frags {
		if frag.IsText {
			c.Append(&TextNode{text: frag.Text})
			continue
		}
		block := &Block{attrs: map[string]string{}}
		for _, op := range frag.Ops {
			apply, ok := fragmentOps[op.Name]
			if !ok {
				r.log.Warn("unknown html operation", "operation", op.Name)
				continue
			}
			if err := apply(block, op.Arg); err != nil {
				r.log.Warn("skipping html operation", "operation", op.Name, "error", err.Error())
			}
		}
		c.Append(block)
	}
}
