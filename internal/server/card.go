package server

import (
	"fmt"
	"image"

	cardimg "github.com/ironsheep/spraycard-mcp/internal/imaging"
	"github.com/ironsheep/spraycard-mcp/internal/spray"
)

// cardImage is a decoded card photo and its file metadata.
type cardImage struct {
	img  image.Image
	info *cardimg.ImageInfo
}

// region returns the whole image, or the given card area of it.
func (c *cardImage) region(r *cardimg.Region) (image.Image, error) {
	if r == nil {
		return c.img, nil
	}
	cropped, err := cardimg.CropRegion(c.img, *r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spray.ErrInvalidConfiguration, err)
	}
	return cropped, nil
}
