package splash

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/karthickk/splash-screen/internal/overlay"
	"github.com/karthickk/splash-screen/internal/ui/components"
)

// maxPreviewSteps bounds the message pump in Preview.
const maxPreviewSteps = 1000

// immediate delivers scheduled messages without waiting.
type immediate struct{}

func (immediate) After(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Preview renders a single frame of the fully open overlay at width by
// height cells without starting a program. The activity cadence is not run;
// the user counts as active, as right after start.
func Preview(opts Options, width, height int) string {
	opts.Scheduler = immediate{}
	opts.StartOpen = false
	c := New(opts)
	defer c.Release()

	c.Update(tea.WindowSizeMsg{Width: width, Height: height})
	c.Update(c.load())
	c.Start()
	if c.doc.Image != "" {
		c.Update(components.LoadBackground(c.opts.Context, c.doc.Image)())
	}

	pump(c, c.machine.RequestOpen())
	return c.View()
}

// pump runs cmd and feeds its messages back into c until the queue drains.
// Auto-close fires are dropped so the overlay stays open.
func pump(c *Controller, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxPreviewSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case overlay.AutoCloseMsg:
		case nil:
		default:
			_, follow := c.Update(msg)
			queue = append(queue, follow)
		}
	}
}
