package visualize

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/spraycard-mcp/internal/spray"
)

// Style controls how section borders and labels are drawn.
type Style struct {
	// BorderColor and LabelColor are hex colors such as "#FF0000".
	BorderColor string
	LabelColor  string

	// BorderWidth in pixels. 0 picks width/200 (at least 1).
	BorderWidth int

	// Title, when set, is written in BorderColor on a white strip added
	// above the mask.
	Title string
}

// DefaultStyle draws black borders, red labels and the standard title.
func DefaultStyle() Style {
	return Style{BorderColor: "#000000", LabelColor: "#FF0000", Title: Title}
}

// withDefaults fills empty colors from DefaultStyle.
func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.BorderColor == "" {
		s.BorderColor = def.BorderColor
	}
	if s.LabelColor == "" {
		s.LabelColor = def.LabelColor
	}
	return s
}

// labelFill is the share of a section's width a label may occupy and
// titleFill the share of the image width the title may occupy.
const (
	labelFill = 0.8
	titleFill = 0.6
)

// RenderOverlay draws the mask in black and white, outlines every section
// of report and writes "Sec i: xx.x%" across the middle of each band. A
// band too narrow for that label gets just "xx.x%", or no label at all.
// With a Title the result is taller than the mask by the title strip; the
// mask sits at the bottom.
func RenderOverlay(mask *spray.Mask, report *spray.CoverageReport, style Style) (*image.NRGBA, error) {
	if mask == nil || report == nil {
		return nil, fmt.Errorf("overlay needs both a mask and a report")
	}
	width, height := mask.Width(), mask.Height()
	if report.Width != width || report.Height != height {
		return nil, fmt.Errorf("report is %dx%d but mask is %dx%d",
			report.Width, report.Height, width, height)
	}

	style = style.withDefaults()
	border, err := parseColor(style.BorderColor)
	if err != nil {
		return nil, fmt.Errorf("invalid border color: %w", err)
	}
	label, err := parseColor(style.LabelColor)
	if err != nil {
		return nil, fmt.Errorf("invalid label color: %w", err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), mask.Image(), image.Point{}, draw.Src)

	bw := borderWidth(style.BorderWidth, width, report.Sections)
	for _, s := range report.Sections {
		outline(dst, image.Rect(s.X0, 0, s.X1, height), bw, border)
	}

	for _, s := range report.Sections {
		full := fmt.Sprintf("Sec %d: %.1f%%", s.Index+1, s.Coverage)
		short := fmt.Sprintf("%.1f%%", s.Coverage)
		drawLabel(dst, s.Bounds, label, full, short)
	}

	if style.Title == "" {
		return dst, nil
	}
	return addTitle(dst, style.Title, border), nil
}

// parseColor accepts "#RRGGBB" (or the short "#RGB") and returns an
// opaque color.
func parseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// borderWidth returns the configured width, or width/200 when unset,
// never thicker than a quarter of the narrowest section.
func borderWidth(configured, width int, sections []spray.Section) int {
	bw := configured
	if bw <= 0 {
		bw = width / 200
	}
	narrowest := width
	for _, s := range sections {
		if s.Width() < narrowest {
			narrowest = s.Width()
		}
	}
	if limit := narrowest / 4; bw > limit {
		bw = limit
	}
	if bw < 1 {
		bw = 1
	}
	return bw
}

// outline draws a rectangle border of thickness t just inside r.
func outline(dst draw.Image, r image.Rectangle, t int, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}

// renderText draws text at 1x with the 7x13 bitmap face on a transparent
// background with a 1px margin.
func renderText(text string, c color.Color) *image.NRGBA {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	tw := d.MeasureString(text).Ceil() + 2
	th := face.Height + 2

	glyphs := image.NewNRGBA(image.Rect(0, 0, tw, th))
	d.Dst = glyphs
	d.Src = image.NewUniform(c)
	d.Dot = fixed.P(1, 1+face.Ascent)
	d.DrawString(text)
	return glyphs
}

// upscale enlarges glyphs by an integer factor, keeping pixels sharp.
func upscale(glyphs *image.NRGBA, scale int) image.Image {
	if scale <= 1 {
		return glyphs
	}
	size := glyphs.Bounds().Size()
	return imaging.Resize(glyphs, size.X*scale, size.Y*scale, imaging.NearestNeighbor)
}

// drawLabel writes the first of texts that fits inside band b, scaled up
// to fit the section and centred on the band's vertical midpoint. It
// reports whether anything was drawn.
func drawLabel(dst *image.NRGBA, b spray.Bounds, c color.Color, texts ...string) bool {
	height := dst.Bounds().Dy()
	for _, text := range texts {
		glyphs := renderText(text, c)
		tw, th := glyphs.Bounds().Dx(), glyphs.Bounds().Dy()
		if tw > b.Width() || th > height {
			continue
		}

		scale := int(labelFill * float64(b.Width()) / float64(tw))
		if maxByHeight := height / (4 * th); scale > maxByHeight {
			scale = maxByHeight
		}
		img := upscale(glyphs, scale)

		size := img.Bounds().Size()
		pos := image.Point{
			X: b.X0 + (b.Width()-size.X)/2,
			Y: (height - size.Y) / 2,
		}
		draw.Draw(dst, image.Rectangle{Min: pos, Max: pos.Add(size)}, img, image.Point{}, draw.Over)
		return true
	}
	return false
}

// addTitle returns panel with a white strip holding title stacked on top.
// A title wider than the panel is left off.
func addTitle(panel *image.NRGBA, title string, c color.Color) *image.NRGBA {
	glyphs := renderText(title, c)
	width, height := panel.Bounds().Dx(), panel.Bounds().Dy()
	tw, th := glyphs.Bounds().Dx(), glyphs.Bounds().Dy()
	if tw > width {
		return panel
	}

	scale := int(titleFill * float64(width) / float64(tw))
	if maxByHeight := height / (6 * th); scale > maxByHeight {
		scale = maxByHeight
	}
	img := upscale(glyphs, scale)
	size := img.Bounds().Size()
	pad := size.Y / 2

	out := imaging.New(width, height+size.Y+2*pad, color.White)
	pos := image.Point{X: (width - size.X) / 2, Y: pad}
	draw.Draw(out, image.Rectangle{Min: pos, Max: pos.Add(size)}, img, image.Point{}, draw.Over)
	draw.Draw(out, image.Rect(0, size.Y+2*pad, width, height+size.Y+2*pad), panel, image.Point{}, draw.Src)
	return out
}
