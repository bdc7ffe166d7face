package spray

import (
	"fmt"
	"image"
	"image/color"
)

// BT.601 luma weights in 14-bit fixed point (0.299, 0.587, 0.114).
const (
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaShift = 14
	lumaRound = 1 << (lumaShift - 1)
)

// ToGrayscale reduces an image to one 8-bit intensity channel.
//
// Each pixel becomes Y = 0.299*R + 0.587*G + 0.114*B, evaluated in fixed
// point with rounding on the non-premultiplied 8-bit color samples.
// *image.Gray sources are copied unchanged. Gray, NRGBA and YCbCr (JPEG)
// images are read straight from their pixel buffers.
//
// The result always has its origin at (0,0) and the same width and height
// as img. A nil image or one with zero area wraps ErrInvalidInput.
func ToGrayscale(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidInput, width, height)
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < height; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+width], src.Pix[off:off+width])
		}
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x := range row {
				p := src.Pix[off+4*x : off+4*x+3]
				row[x] = luma(p[0], p[1], p[2])
			}
		}
	case *image.YCbCr:
		for y := 0; y < height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x := range row {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				row[x] = luma(r, g, bl)
			}
		}
	default:
		for y := 0; y < height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x := range row {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				row[x] = luma(c.R, c.G, c.B)
			}
		}
	}

	return gray, nil
}

func luma(r, g, b uint8) uint8 {
	return uint8((lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b) + lumaRound) >> lumaShift)
}
