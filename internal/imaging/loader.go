package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Load decodes the image file at path.
//
// EXIF orientation is applied, so the returned image is upright as the
// photographer saw it. The image must have a non-zero width and height.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image format
//   - Returns error if the decoded image is empty
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	if err := checkNotEmpty(img); err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image from r, applying EXIF orientation.
//
// It accepts the same formats as Load and is used for uploaded files.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if err := checkNotEmpty(img); err != nil {
		return nil, err
	}
	return img, nil
}

func checkNotEmpty(img image.Image) error {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("image has zero width or height (%dx%d)", b.Dx(), b.Dy())
	}
	return nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels, after orientation.
	Width int `json:"width"`

	// Height is the image height in pixels, after orientation.
	Height int `json:"height"`

	// Format is the detected image format from the file extension:
	// "png", "jpeg", "gif", "bmp", "tiff", "webp", or "unknown".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// Channels is 1 for grayscale sources, 3 for color, 4 when alpha is present.
	Channels int `json:"channels"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// The returned image is the same one Load would produce, so callers can
// inspect the metadata and analyze the pixels without decoding twice.
func LoadImageInfo(path string) (image.Image, *ImageInfo, error) {
	img, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := Describe(img)
	info.Format = FormatFromPath(path)
	info.FileSizeBytes = stat.Size()

	return img, info, nil
}

// Describe reports dimensions, bit depth and channel count of an
// in-memory image. Format and FileSizeBytes are left empty.
//
// # Color Depth Detection
//
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func Describe(img image.Image) *ImageInfo {
	bounds := img.Bounds()

	channels := 3
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.Gray:
		channels = 1
	case *image.Gray16:
		channels = 1
		colorDepth = "16-bit"
	case *image.RGBA, *image.NRGBA:
		channels = 4
	case *image.RGBA64, *image.NRGBA64:
		channels = 4
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     "unknown",
		ColorDepth: colorDepth,
		Channels:   channels,
	}
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	}
	return "unknown"
}
