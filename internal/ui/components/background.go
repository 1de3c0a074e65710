package components

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// maxImageSize caps a downloaded background image.
	maxImageSize = 32 << 20

	filterSigma      = 3.0
	filterBrightness = -15.0
	vignetteStrength = 0.6
)

// DefaultBackdrop is drawn when no image is configured or it fails to load.
var DefaultBackdrop = colorful.Color{R: 0.09, G: 0.09, B: 0.12}

// BackgroundLoadedMsg carries the decoded background image.
type BackgroundLoadedMsg struct {
	Source string
	Image  image.Image
	Err    error
}

// LoadBackground decodes the image at location off the UI goroutine.
// Locations starting with http:// or https:// are downloaded.
func LoadBackground(ctx context.Context, location string) tea.Cmd {
	return func() tea.Msg {
		img, err := loadImage(ctx, location)
		return BackgroundLoadedMsg{Source: location, Image: img, Err: err}
	}
}

func loadImage(ctx context.Context, location string) (image.Image, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		img, err := imaging.Open(location, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("error opening image %s: %w", location, err)
		}
		return img, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", location, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading image %s: %w", location, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading image %s: %s", location, resp.Status)
	}
	img, err := imaging.Decode(io.LimitReader(resp.Body, maxImageSize), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("error decoding image %s: %w", location, err)
	}
	return img, nil
}

// Background is the overlay backdrop: an image scaled to the screen, or a
// solid colour, drawn with half blocks so each cell holds two pixels.
type Background struct {
	fit      bool
	filter   bool
	vignette bool

	source image.Image
	width  int
	height int
	pixels *image.NRGBA
	avg    color.NRGBA
}

// NewBackground creates a solid backdrop with the document's image options.
func NewBackground(fit, filter, vignette bool) *Background {
	return &Background{fit: fit, filter: filter, vignette: vignette}
}

// SetImage replaces the source image; nil reverts to the solid backdrop.
func (b *Background) SetImage(img image.Image) {
	b.source = img
	b.pixels = nil
}

// HasImage reports whether an image is loaded.
func (b *Background) HasImage() bool {
	return b.source != nil
}

// Resize sets the screen size in cells.
func (b *Background) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.pixels = nil
}

// Size returns the screen size in cells.
func (b *Background) Size() (int, int) {
	return b.width, b.height
}

// Pixels returns the processed image at full brightness, two pixel rows per
// cell row.
func (b *Background) Pixels() *image.NRGBA {
	if b.pixels == nil {
		b.pixels = b.prepare()
		if !b.pixels.Bounds().Empty() {
			b.avg = imaging.Resize(b.pixels, 1, 1, imaging.Box).NRGBAAt(0, 0)
		}
	}
	return b.pixels
}

func (b *Background) prepare() *image.NRGBA {
	w, h := b.width, b.height*2
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	var img *image.NRGBA
	switch {
	case b.source == nil:
		img = imaging.New(w, h, toNRGBA(DefaultBackdrop))
	case b.fit:
		img = imaging.Fill(b.source, w, h, imaging.Center, imaging.Lanczos)
	default:
		fitted := imaging.Fit(b.source, w, h, imaging.Lanczos)
		img = imaging.PasteCenter(imaging.New(w, h, color.NRGBA{A: 255}), fitted)
	}

	if b.filter && b.source != nil {
		img = imaging.Blur(img, filterSigma)
		img = imaging.AdjustBrightness(img, filterBrightness)
	}
	if b.vignette {
		applyVignette(img)
	}
	return img
}

// applyVignette darkens the image toward its edges.
func applyVignette(img *image.NRGBA) {
	bounds := img.Bounds()
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2
	if cx == 0 || cy == 0 {
		return
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := (float64(x-bounds.Min.X) + 0.5 - cx) / cx
			dy := (float64(y-bounds.Min.Y) + 0.5 - cy) / cy
			d := (dx*dx + dy*dy) / 2
			f := 1 - vignetteStrength*d
			if f < 0 {
				f = 0
			}
			c := img.NRGBAAt(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(float64(c.R) * f),
				G: uint8(float64(c.G) * f),
				B: uint8(float64(c.B) * f),
				A: c.A,
			})
		}
	}
}

// Lines renders the backdrop as one string per cell row with every pixel
// scaled by brightness (0 black, 1 full).
func (b *Background) Lines(brightness float64) []string {
	return Halfblocks(b.Pixels(), brightness)
}

// Halfblocks renders img with upper half blocks in 24-bit colour: the top
// pixel is the foreground and the bottom pixel the background.
func Halfblocks(img *image.NRGBA, brightness float64) []string {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	brightness = clamp(brightness, 0, 1)

	lines := make([]string, 0, (h+1)/2)
	for y := 0; y < h; y += 2 {
		var sb strings.Builder
		sb.Grow(w * 20)
		var lastTop, lastBot color.NRGBA
		for x := 0; x < w; x++ {
			top := scale(img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y), brightness)
			bot := top
			if y+1 < h {
				bot = scale(img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1), brightness)
			}
			if x == 0 || top != lastTop {
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm", top.R, top.G, top.B)
			}
			if x == 0 || bot != lastBot {
				fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm", bot.R, bot.G, bot.B)
			}
			sb.WriteString("▀")
			lastTop, lastBot = top, bot
		}
		sb.WriteString("\x1b[0m")
		lines = append(lines, sb.String())
	}
	return lines
}

// Backdrop returns the average colour of the backdrop at brightness, used to
// blend translucent text colours.
func (b *Background) Backdrop(brightness float64) colorful.Color {
	if b.source == nil {
		c := DefaultBackdrop
		return colorful.Color{R: c.R * brightness, G: c.G * brightness, B: c.B * brightness}
	}
	px := b.Pixels()
	if px.Bounds().Empty() {
		return colorful.Color{}
	}
	c, _ := colorful.MakeColor(scale(b.avg, brightness))
	return c
}

func scale(c color.NRGBA, f float64) color.NRGBA {
	if f >= 1 {
		return c
	}
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
