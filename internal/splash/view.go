package splash

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/karthickk/splash-screen/internal/content"
	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/overlay"
	"github.com/karthickk/splash-screen/internal/ui/components"
)

// blockProperties are laid out by the compositor rather than styled.
var blockProperties = map[string]bool{
	"text-align":   true,
	"margin-top":   true,
	"margin-left":  true,
	"margin-right": true,
	"display":      true,
}

// View implements tea.Model. It draws the overlay over an empty host.
func (c *Controller) View() string {
	return c.Compose("")
}

// Compose draws the overlay over the host's view. While closed, or before
// the overlay is ready, the host view is returned unchanged.
func (c *Controller) Compose(host string) string {
	if !c.ready || c.machine.State() == overlay.Closed || c.width <= 0 || c.height <= 0 {
		return host
	}

	visibility := c.machine.Visibility()
	slide := c.machine.Transition() == document.TransitionSlide

	brightness := 1.0
	if !slide {
		brightness = visibility
	}
	lines := c.background.Lines(brightness)

	// fade hides content until the overlay has settled
	if slide || c.machine.State() == overlay.Open {
		backdrop := c.background.Backdrop(brightness)
		lines = components.Composite(lines, c.width, c.layers(backdrop)...)
	}

	if slide {
		lines = components.Slide(lines, components.Fit(host, c.width, c.height), visibility)
	}
	return strings.Join(lines, "\n")
}

// layers lays the visible content elements out top to bottom.
func (c *Controller) layers(backdrop colorful.Color) []components.Layer {
	active := c.monitor.IsActive()
	var out []components.Layer
	y := 0
	for _, e := range c.container.Elements() {
		if !e.Visible(active) {
			continue
		}
		place := components.BlockLayout(e.Style(), c.width, c.height)
		y += place.MarginTop
		layer := components.Place(c.renderElement(e, backdrop), place, c.width, y)
		out = append(out, layer)
		y += len(layer.Lines)
	}
	return out
}

func (c *Controller) renderElement(e content.Element, backdrop colorful.Color) string {
	inherited := inheritable(e.Style())
	parts := make([]string, 0, len(e.Segments()))
	for _, seg := range e.Segments() {
		decls := append(append(document.Style{}, inherited...), seg.Style...)
		style := components.TextStyle(decls, backdrop)
		if _, ok := style.GetBackground().(lipgloss.NoColor); ok {
			bg := lipgloss.Color(backdrop.Hex())
			style = style.Background(bg).MarginBackground(bg)
		}
		parts = append(parts, style.Render(seg.Text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// inheritable drops the block-level properties of a parent style so only
// text properties flow to its segments.
func inheritable(s document.Style) document.Style {
	out := make(document.Style, 0, len(s))
	for _, d := range s {
		if !blockProperties[d.Property] {
			out = append(out, d)
		}
	}
	return out
}
