package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Layer is a block of rendered lines placed at a cell position.
type Layer struct {
	Lines []string
	X, Y  int
}

// Width returns the widest line of the layer in cells.
func (l Layer) Width() int {
	w := 0
	for _, line := range l.Lines {
		if n := xansi.StringWidth(line); n > w {
			w = n
		}
	}
	return w
}

// Place positions a rendered block on a screen width cells wide, at row y,
// honouring the placement's alignment and side margins.
func Place(block string, p Placement, width, y int) Layer {
	lines := strings.Split(block, "\n")
	layer := Layer{Lines: lines, Y: y}
	w := layer.Width()

	left, right := p.Left, width-p.Right
	if right < left {
		right = left
	}
	switch p.Align {
	case lipgloss.Center:
		layer.X = left + (right-left-w)/2
	case lipgloss.Right:
		layer.X = right - w
	default:
		layer.X = left
	}
	if layer.X < 0 {
		layer.X = 0
	}
	return layer
}

// Composite draws layers over base, in order. base holds one line per
// screen row and is not modified.
func Composite(base []string, width int, layers ...Layer) []string {
	out := make([]string, len(base))
	copy(out, base)
	for _, l := range layers {
		w := l.Width()
		if l.X+w > width {
			w = width - l.X
		}
		overlayAt(out, l.Lines, width, l.X, l.Y, w)
	}
	return out
}

// overlayAt splices fg into bg at column x, row y. Each fg line is padded or
// cut to fgW cells.
func overlayAt(bg []string, fg []string, w, x, y, fgW int) {
	if fgW <= 0 {
		return
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i := 0; i < len(fg) && y+i < len(bg); i++ {
		bgLine := bg[y+i]
		left := xansi.Cut(bgLine, 0, x)
		right := xansi.Cut(bgLine, x+fgW, w)

		fgLine := fg[i]
		if n := xansi.StringWidth(fgLine); n < fgW {
			fgLine += xansi.Cut(bgLine, x+n, x+fgW)
		} else if n > fgW {
			fgLine = xansi.Cut(fgLine, 0, fgW)
		}

		bg[y+i] = left + fgLine + right
	}
}

// Fit pads or truncates s to exactly width by height cells.
func Fit(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = xansi.Truncate(lines[i], width, "")
		}
		if n := xansi.StringWidth(line); n < width {
			line += strings.Repeat(" ", width-n)
		}
		out[i] = line
	}
	return out
}

// Slide draws the overlay sliding down over host. At visibility 0 only the
// host shows; at 1 the overlay covers the screen.
func Slide(overlay, host []string, visibility float64) []string {
	height := len(overlay)
	shown := int(math.Round(clamp(visibility, 0, 1) * float64(height)))
	out := make([]string, 0, height)
	out = append(out, overlay[height-shown:]...)
	for row := shown; row < height; row++ {
		if row < len(host) {
			out = append(out, host[row])
		} else {
			out = append(out, "")
		}
	}
	return out
}
