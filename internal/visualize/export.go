package visualize

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// AnalyzedPath derives an output path from an input path by inserting
// suffix before the extension: "cards/a.jpeg" -> "cards/a_analyzed.jpeg".
// A non-empty ext replaces the input's extension.
func AnalyzedPath(input, suffix, ext string) string {
	inExt := filepath.Ext(input)
	if ext == "" {
		ext = inExt
	}
	return strings.TrimSuffix(input, inExt) + suffix + ext
}

// SaveImage writes img to path, creating the parent directory. The
// encoder follows the extension: .jpg/.jpeg (with jpegQuality), .bmp, and
// PNG for anything else.
func SaveImage(path string, img image.Image, jpegQuality int) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(jpegQuality)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		enc = imgio.PNGEncoder()
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
