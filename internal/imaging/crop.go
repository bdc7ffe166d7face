package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1" yaml:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1" yaml:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2" yaml:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2" yaml:"y2"` // Bottom edge Y coordinate (exclusive)
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Validate checks the region is non-empty and lies inside bounds, where
// bounds is expressed relative to the image origin.
func (r Region) Validate(width, height int) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > width || r.Y2 > height {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, width, height)
	}
	return nil
}

// CropRegion extracts the card area of a photo.
//
// Region coordinates are relative to the image's top-left pixel, even when
// img.Bounds().Min is not (0,0). The result is a new *image.NRGBA with its
// origin at (0,0).
func CropRegion(img image.Image, region Region) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if err := region.Validate(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}
	return imaging.Crop(img, region.Rect().Add(bounds.Min)), nil
}
