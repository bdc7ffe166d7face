package spray

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGrayscale_PrimaryColors(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want uint8
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, 255},
		{"black", color.NRGBA{0, 0, 0, 255}, 0},
		{"red", color.NRGBA{255, 0, 0, 255}, 76},
		{"green", color.NRGBA{0, 255, 0, 255}, 150},
		{"blue", color.NRGBA{0, 0, 255, 255}, 29},
		{"mid gray", color.NRGBA{128, 128, 128, 255}, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 3; x++ {
					img.SetNRGBA(x, y, tt.c)
				}
			}

			gray, err := ToGrayscale(img)
			require.NoError(t, err)
			assert.Equal(t, 3, gray.Bounds().Dx())
			assert.Equal(t, 2, gray.Bounds().Dy())
			for _, v := range gray.Pix {
				assert.Equal(t, tt.want, v)
			}
		})
	}
}

func TestToGrayscale_RGBAMatchesNRGBA(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{uint8(x * 60), uint8(y * 60), uint8((x + y) * 30), 255}
			nrgba.SetNRGBA(x, y, c)
			rgba.Set(x, y, c)
		}
	}

	a, err := ToGrayscale(nrgba)
	require.NoError(t, err)
	b, err := ToGrayscale(rgba)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestToGrayscale_GrayCopiedVerbatim(t *testing.T) {
	src := grayFrom(5, 3, func(x, y int) uint8 { return uint8(x*40 + y) })

	gray, err := ToGrayscale(src)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, gray.Pix)

	gray.Pix[0] = 99
	assert.Equal(t, uint8(0), src.Pix[0], "source must not share storage")
}

func TestToGrayscale_SubImageRebased(t *testing.T) {
	src := grayFrom(10, 10, func(x, y int) uint8 { return uint8(x + 10*y) })
	sub := src.SubImage(image.Rect(2, 3, 6, 5))

	gray, err := ToGrayscale(sub)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), gray.Bounds())
	assert.Equal(t, uint8(32), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(45), gray.GrayAt(3, 1).Y)
}

func TestToGrayscale_InvalidInput(t *testing.T) {
	_, err := ToGrayscale(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ToGrayscale(image.NewRGBA(image.Rect(0, 0, 0, 10)))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ToGrayscale(image.NewRGBA(image.Rect(0, 0, 10, 0)))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// opaqueImage hides the concrete image type so ToGrayscale takes its
// generic per-pixel path.
type opaqueImage struct{ image.Image }

func TestToGrayscale_YCbCrMatchesGeneric(t *testing.T) {
	ratios := []image.YCbCrSubsampleRatio{
		image.YCbCrSubsampleRatio444,
		image.YCbCrSubsampleRatio422,
		image.YCbCrSubsampleRatio420,
	}

	for _, ratio := range ratios {
		t.Run(ratio.String(), func(t *testing.T) {
			img := image.NewYCbCr(image.Rect(3, 5, 40, 27), ratio)
			for i := range img.Y {
				img.Y[i] = uint8(i * 7)
			}
			for i := range img.Cb {
				img.Cb[i] = uint8(i * 13)
				img.Cr[i] = uint8(255 - i*5)
			}

			fast, err := ToGrayscale(img)
			require.NoError(t, err)
			generic, err := ToGrayscale(opaqueImage{img})
			require.NoError(t, err)

			assert.Equal(t, image.Rect(0, 0, 37, 22), fast.Bounds())
			assert.Equal(t, generic.Pix, fast.Pix)
		})
	}
}
