package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	cardimg "github.com/ironsheep/spraycard-mcp/internal/imaging"
)

// cardWithLabel renders text in the top strip of a white card, scaled up
// so Tesseract has something legible to work with.
func cardWithLabel(text string, scale int) *image.NRGBA {
	face := basicfont.Face7x13
	w := len(text)*face.Advance + 20
	h := face.Height + 10

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(small, small.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(10, 5+face.Ascent),
	}
	d.DrawString(text)

	label := imaging.Resize(small, w*scale, h*scale, imaging.NearestNeighbor)
	card := imaging.New(w*scale, h*scale*4, color.White)
	return imaging.Paste(card, label, image.Point{})
}

func tesseractMissing(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "tesseract") || strings.Contains(msg, "library") ||
		strings.Contains(msg, "language")
}

func TestReadLabel(t *testing.T) {
	card := cardWithLabel("BN187", 4)
	region := &cardimg.Region{X1: 0, Y1: 0, X2: card.Bounds().Dx(), Y2: card.Bounds().Dy() / 4}

	result, err := ReadLabel(card, region, "")
	if err != nil {
		if tesseractMissing(err) {
			t.Skip("Tesseract not available")
		}
		t.Fatalf("ReadLabel failed: %v", err)
	}
	if result == nil {
		t.Fatal("ReadLabel returned nil result")
	}
	t.Logf("label text: %q (%d words)", result.Text, len(result.Words))

	for _, w := range result.Words {
		if w.Bounds.Y2 > region.Y2+1 {
			t.Errorf("word %q bounds %+v fall outside the label strip", w.Text, w.Bounds)
		}
	}
}

func TestReadLabel_RegionOutsideImage(t *testing.T) {
	card := cardWithLabel("X", 1)

	_, err := ReadLabel(card, &cardimg.Region{X1: 0, Y1: 0, X2: 10000, Y2: 10}, "eng")
	if err == nil {
		t.Fatal("expected error for region outside image")
	}
	if !strings.Contains(err.Error(), "label region") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPrepare(t *testing.T) {
	short := image.NewNRGBA(image.Rect(0, 0, 100, 20))
	out, scale := prepare(short)
	if scale != 4 {
		t.Errorf("scale: got %d, want 4", scale)
	}
	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 80 {
		t.Errorf("size: got %v, want 400x80", out.Bounds().Size())
	}

	tall := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	out, scale = prepare(tall)
	if scale != 1 {
		t.Errorf("scale: got %d, want 1", scale)
	}
	if out.Bounds().Dy() != 100 {
		t.Errorf("height: got %d, want 100", out.Bounds().Dy())
	}
}

func TestToImageBounds(t *testing.T) {
	got := toImageBounds(image.Rect(40, 8, 81, 30), 4, image.Point{X: 100, Y: 50})
	want := Bounds{X1: 110, Y1: 52, X2: 121, Y2: 58}
	if got != want {
		t.Errorf("toImageBounds: got %+v, want %+v", got, want)
	}
}
