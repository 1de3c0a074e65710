package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Logo represents the application logo
type Logo struct {
	Title    string
	Subtitle string
}

// NewLogo creates a new logo component
func NewLogo(title string) *Logo {
	return &Logo{Title: title}
}

// logoArt is the block-letter banner; screens narrower than it get the plain
// title instead.
var logoArt = []string{
	"███████ ██████  ██       █████  ███████ ██   ██",
	"██      ██   ██ ██      ██   ██ ██      ██   ██",
	"███████ ██████  ██      ███████ ███████ ███████",
	"     ██ ██      ██      ██   ██      ██ ██   ██",
	"███████ ██      ███████ ██   ██ ███████ ██   ██",
}

// Render returns the logo centred in width cells. A non-positive width
// leaves it unpadded.
func (l *Logo) Render(width int) string {
	var b strings.Builder

	art := logoArt
	if width > 0 && width < lipgloss.Width(logoArt[0])+4 {
		art = []string{TitleStyle.Render(l.Title)}
	}

	// Apply gradient colors (purple to cyan)
	colors := []string{"#8B5CF6", "#7C3AED", "#6D28D9", "#5B21B6", "#4C1D95"}
	for i, line := range art {
		if len(art) == len(colors) {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i])).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if l.Subtitle != "" {
		b.WriteString("\n")
		subtitleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
		b.WriteString(subtitleStyle.Render(l.Subtitle))
		b.WriteString("\n")
	}

	// Center everything
	lines := strings.Split(b.String(), "\n")
	var centered strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if lineWidth := lipgloss.Width(line); width > 0 && lineWidth < width {
			centered.WriteString(strings.Repeat(" ", (width-lineWidth)/2))
		}
		centered.WriteString(line)
		centered.WriteString("\n")
	}

	return centered.String()
}
