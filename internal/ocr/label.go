package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	cardimg "github.com/ironsheep/spraycard-mcp/internal/imaging"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// minLabelHeight is the strip height below which the crop is upscaled
// before recognition; Tesseract does poorly on glyphs under ~20px.
const minLabelHeight = 64

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Word is one recognized word with its location on the card photo.
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Bounds     Bounds  `json:"bounds"`
}

// LabelResult is the text read from a card's identifier strip.
type LabelResult struct {
	// Text is the recognized text with surrounding whitespace removed.
	Text string `json:"text"`

	// Words carries word-level detail. It may be empty when Tesseract
	// cannot report bounding boxes; Text is still filled in.
	Words []Word `json:"words"`
}

// ReadLabel runs OCR over the label strip of a card photo.
//
// region selects the strip (nil reads the whole image). The strip is
// converted to grayscale and upscaled when short, then passed to Tesseract
// in memory. Word bounds are reported in the coordinates of img.
//
// # Errors
//
//   - Returns error if region lies outside img
//   - Returns error if Tesseract cannot load language
//   - Returns error if recognition fails
func ReadLabel(img image.Image, region *cardimg.Region, language string) (*LabelResult, error) {
	if language == "" {
		language = DefaultLanguage
	}

	var strip image.Image = img
	offset := image.Point{}
	if region != nil {
		cropped, err := cardimg.CropRegion(img, *region)
		if err != nil {
			return nil, fmt.Errorf("label region: %w", err)
		}
		strip = cropped
		offset = image.Point{X: region.X1, Y: region.Y1}
	}

	prepared, scale := prepare(strip)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, prepared, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode label image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &LabelResult{
		Text:  strings.TrimSpace(text),
		Words: []Word{},
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		result.Words = append(result.Words, Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds:     toImageBounds(box.Box, scale, offset),
		})
	}

	return result, nil
}

// prepare converts the strip to grayscale and upscales it by an integer
// factor when it is shorter than minLabelHeight.
func prepare(strip image.Image) (image.Image, int) {
	gray := imaging.Grayscale(strip)
	h := gray.Bounds().Dy()
	if h <= 0 || h >= minLabelHeight {
		return gray, 1
	}
	scale := (minLabelHeight + h - 1) / h
	size := gray.Bounds().Size()
	return imaging.Resize(gray, size.X*scale, size.Y*scale, imaging.Lanczos), scale
}

// toImageBounds maps a box found on the prepared strip back to the
// original image.
func toImageBounds(r image.Rectangle, scale int, offset image.Point) Bounds {
	return Bounds{
		X1: r.Min.X/scale + offset.X,
		Y1: r.Min.Y/scale + offset.Y,
		X2: (r.Max.X+scale-1)/scale + offset.X,
		Y2: (r.Max.Y+scale-1)/scale + offset.Y,
	}
}
