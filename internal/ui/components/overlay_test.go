package components

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = xansi.Strip(l)
	}
	return out
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name  string
		p     Placement
		wantX int
	}{
		{"left", Placement{Align: lipgloss.Left}, 0},
		{"left with margin", Placement{Align: lipgloss.Left, Left: 3}, 3},
		{"center", Placement{Align: lipgloss.Center}, 8},
		{"right", Placement{Align: lipgloss.Right}, 16},
		{"right with margin", Placement{Align: lipgloss.Right, Right: 2}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Place("abcd", tt.p, 20, 5)
			assert.Equal(t, tt.wantX, l.X)
			assert.Equal(t, 5, l.Y)
		})
	}
}

func TestComposite(t *testing.T) {
	base := []string{"..........", "..........", ".........."}

	out := Composite(base, 10,
		Layer{Lines: []string{"ab", "c"}, X: 2, Y: 1},
		Layer{Lines: []string{"overflow"}, X: 6, Y: 0},
	)

	assert.Equal(t, []string{
		"......over",
		"..ab......",
		"..c.......",
	}, plain(out))
	assert.Equal(t, "..........", base[0], "base must not change")
}

func TestCompositeKeepsStyledBackground(t *testing.T) {
	bg := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Render("xxxxxx")

	out := Composite([]string{bg}, 6, Layer{Lines: []string{"hi"}, X: 2})

	require.Len(t, out, 1)
	assert.Equal(t, "xxhixx", xansi.Strip(out[0]))
	assert.Equal(t, 6, xansi.StringWidth(out[0]))
}

func TestFit(t *testing.T) {
	out := Fit("hello world\nx", 5, 3)
	assert.Equal(t, []string{"hello", "x    ", "     "}, out)
}

func TestSlide(t *testing.T) {
	overlay := []string{"O0", "O1", "O2", "O3"}
	host := []string{"h0", "h1", "h2", "h3"}

	tests := []struct {
		visibility float64
		want       []string
	}{
		{0, []string{"h0", "h1", "h2", "h3"}},
		{0.5, []string{"O2", "O3", "h2", "h3"}},
		{1, []string{"O0", "O1", "O2", "O3"}},
		{1.5, []string{"O0", "O1", "O2", "O3"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slide(overlay, host, tt.visibility))
	}
}

func TestHalfblocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	lines := Halfblocks(img, 1)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 3, xansi.StringWidth(l))
		assert.Equal(t, "▀▀▀", xansi.Strip(l))
		assert.Contains(t, l, "38;2;200;100;50")
		assert.Equal(t, 1, strings.Count(l, "38;2;"), "repeated colours are not re-emitted")
	}

	dark := Halfblocks(img, 0)
	assert.Contains(t, dark[0], "38;2;0;0;0")
}

func TestBackgroundSolid(t *testing.T) {
	b := NewBackground(true, false, false)
	b.Resize(12, 5)

	px := b.Pixels()
	assert.Equal(t, 12, px.Bounds().Dx())
	assert.Equal(t, 10, px.Bounds().Dy())

	lines := b.Lines(1)
	require.Len(t, lines, 5)
	assert.Equal(t, 12, xansi.StringWidth(lines[0]))
	assert.False(t, b.HasImage())
}

func TestBackgroundImageFitAndFill(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 100; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	fill := NewBackground(true, false, false)
	fill.SetImage(src)
	fill.Resize(10, 10)
	assert.Greater(t, fill.Pixels().NRGBAAt(5, 0).R, uint8(200), "fill covers the screen")

	fit := NewBackground(false, false, false)
	fit.SetImage(src)
	fit.Resize(10, 10)
	px := fit.Pixels()
	assert.Equal(t, image.Rect(0, 0, 10, 20), px.Bounds())
	assert.Equal(t, uint8(0), px.NRGBAAt(5, 0).R, "fit letterboxes with black")
	assert.Greater(t, px.NRGBAAt(5, 10).R, uint8(200))
}

func TestBackgroundVignetteDarkensCorners(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	b := NewBackground(true, false, true)
	b.SetImage(src)
	b.Resize(20, 10)
	px := b.Pixels()

	center := px.NRGBAAt(10, 10).R
	corner := px.NRGBAAt(0, 0).R
	assert.Greater(t, center, corner)
}
