package spray

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// grayFrom builds a grayscale image whose pixel values come from fn.
func grayFrom(width, height int, fn func(x, y int) uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.SetGray(x, y, color.Gray{Y: fn(x, y)})
		}
	}
	return g
}

// columnMask builds a mask where every pixel of a column is sprayed when
// sprayed(x) is true.
func columnMask(t *testing.T, width, height int, sprayed func(x int) bool) *Mask {
	t.Helper()
	g := grayFrom(width, height, func(x, _ int) uint8 {
		if sprayed(x) {
			return 0
		}
		return 255
	})
	m, err := Classify(g, 128)
	require.NoError(t, err)
	return m
}
