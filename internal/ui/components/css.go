package components

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/karthickk/splash-screen/internal/document"
)

// Terminal cell size in CSS pixels, used to convert px and pt lengths.
const (
	cellWidthPx  = 8.0
	cellHeightPx = 16.0
)

// namedColors are the CSS colour keywords the overlay understands.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"aqua":    "#00ffff",
	"magenta": "#ff00ff",
	"fuchsia": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"navy":    "#000080",
	"teal":    "#008080",
}

// ParseColor reads a CSS colour: a keyword, #rgb, #rrggbb, rgb() or rgba().
// It returns the colour and its alpha.
func ParseColor(value string) (colorful.Color, float64, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}

	switch {
	case strings.HasPrefix(v, "#"):
		if len(v) == 4 {
			v = "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2)
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		return c, 1, true

	case strings.HasPrefix(v, "rgb"):
		lp, rp := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
		if lp < 0 || rp < lp {
			return colorful.Color{}, 0, false
		}
		parts := strings.Split(v[lp+1:rp], ",")
		if len(parts) != 3 && len(parts) != 4 {
			return colorful.Color{}, 0, false
		}
		var rgb [3]float64
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
			if err != nil {
				return colorful.Color{}, 0, false
			}
			rgb[i] = clamp(n, 0, 255) / 255
		}
		alpha := 1.0
		if len(parts) == 4 {
			a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
			if err != nil {
				return colorful.Color{}, 0, false
			}
			alpha = clamp(a, 0, 1)
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, alpha, true
	}
	return colorful.Color{}, 0, false
}

// ResolveColor turns a CSS colour into a terminal colour. Translucent
// colours are blended over the backdrop.
func ResolveColor(value string, backdrop colorful.Color) (lipgloss.Color, bool) {
	c, alpha, ok := ParseColor(value)
	if !ok {
		return "", false
	}
	if alpha < 1 {
		c = backdrop.BlendRgb(c, alpha).Clamped()
	}
	return lipgloss.Color(c.Hex()), true
}

// TextStyle converts the inline properties of a style object into a lipgloss
// style. Unknown properties are ignored.
func TextStyle(s document.Style, backdrop colorful.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, d := range s {
		v := strings.ToLower(strings.TrimSpace(d.Value))
		switch d.Property {
		case "color":
			if c, ok := ResolveColor(d.Value, backdrop); ok {
				style = style.Foreground(c)
			}
		case "background", "background-color":
			if c, ok := ResolveColor(d.Value, backdrop); ok {
				style = style.Background(c)
			}
		case "font-weight":
			bold, faint := fontWeight(v)
			style = style.Bold(bold).Faint(faint)
		case "font-style":
			style = style.Italic(v == "italic" || v == "oblique")
		case "text-decoration", "text-decoration-line":
			style = style.Underline(strings.Contains(v, "underline")).
				Strikethrough(strings.Contains(v, "line-through"))
		case "margin-left":
			if n, ok := Length(d.Value, false, 0, 0); ok {
				style = style.MarginLeft(n)
			}
		case "margin-right":
			if n, ok := Length(d.Value, false, 0, 0); ok {
				style = style.MarginRight(n)
			}
		}
	}
	return style
}

func fontWeight(v string) (bold, faint bool) {
	switch v {
	case "bold", "bolder":
		return true, false
	case "lighter", "thin", "light":
		return false, true
	case "normal", "regular":
		return false, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, false
	}
	return n >= 600, n <= 300
}

// Placement is the position of a content block on screen.
type Placement struct {
	Align     lipgloss.Position
	MarginTop int
	Left      int
	Right     int
}

// BlockLayout reads text-align and the margins of a style object for a
// screen of width by height cells.
func BlockLayout(s document.Style, width, height int) Placement {
	b := Placement{Align: lipgloss.Left}
	for _, d := range s {
		switch d.Property {
		case "text-align":
			switch strings.ToLower(strings.TrimSpace(d.Value)) {
			case "center":
				b.Align = lipgloss.Center
			case "right", "end":
				b.Align = lipgloss.Right
			default:
				b.Align = lipgloss.Left
			}
		case "margin-top":
			if n, ok := Length(d.Value, true, width, height); ok {
				b.MarginTop = n
			}
		case "margin-left":
			if n, ok := Length(d.Value, false, width, height); ok {
				b.Left = n
			}
		case "margin-right":
			if n, ok := Length(d.Value, false, width, height); ok {
				b.Right = n
			}
		}
	}
	return b
}

// Length converts a CSS length to cells. Bare numbers and em are cells; px
// and pt use the nominal cell size; vh and vw are percentages of the screen.
// Anything else, calc() included, is rejected.
func Length(value string, vertical bool, width, height int) (int, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := strings.TrimLeft(v, "0123456789.+-")
	num, err := strconv.ParseFloat(strings.TrimSuffix(v, unit), 64)
	if err != nil {
		return 0, false
	}

	cellPx := cellWidthPx
	if vertical {
		cellPx = cellHeightPx
	}

	var cells float64
	switch unit {
	case "", "em", "rem", "ch", "lh":
		cells = num
	case "px":
		cells = num / cellPx
	case "pt":
		cells = num * 4 / 3 / cellPx
	case "vh":
		cells = num / 100 * float64(height)
	case "vw":
		cells = num / 100 * float64(width)
	case "%":
		if vertical {
			cells = num / 100 * float64(height)
		} else {
			cells = num / 100 * float64(width)
		}
	default:
		return 0, false
	}
	return int(math.Round(cells)), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
