package spray

import (
	"fmt"
	"image"
)

// Histogram counts the pixels of each intensity level in gray.
func Histogram(gray *image.Gray) [256]int {
	var hist [256]int
	b := gray.Bounds()
	width := b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := gray.PixOffset(b.Min.X, y)
		for _, v := range gray.Pix[off : off+width] {
			hist[v]++
		}
	}
	return hist
}

// OtsuThreshold picks the global threshold that best separates the two
// intensity populations of hist.
//
// For every split k the histogram is divided into a dark class [0, k] and
// a light class [k+1, 255], and the between-class variance
//
//	wDark * wLight * (meanDark - meanLight)^2
//
// is evaluated. Maximising it is equivalent to minimising the weighted
// within-class variance. The first k reaching the maximum wins.
//
// The returned threshold T = k+1 is the classification boundary: levels
// strictly below T are dark (sprayed). T is always in [0, 255]. When no
// split leaves both classes populated (empty or single-level histogram)
// T is 0, so every pixel is classified as background.
func OtsuThreshold(hist [256]int) int {
	var total, weighted float64
	for level, n := range hist {
		total += float64(n)
		weighted += float64(level) * float64(n)
	}

	var (
		wDark, sumDark float64
		best           = -1.0
		split          = -1
	)
	for level, n := range hist {
		wDark += float64(n)
		sumDark += float64(level) * float64(n)
		if wDark == 0 {
			continue
		}
		wLight := total - wDark
		if wLight == 0 {
			break
		}

		meanDark := sumDark / wDark
		meanLight := (weighted - sumDark) / wLight
		d := meanDark - meanLight
		between := wDark * wLight * d * d
		if between > best {
			best = between
			split = level
		}
	}

	if split < 0 {
		return 0
	}
	return split + 1
}

// Binarize thresholds gray at its own Otsu threshold.
//
// It returns the mask together with the threshold used. The result is
// deterministic, and Classify(gray, t) reproduces the same mask.
func Binarize(gray *image.Gray) (*Mask, int, error) {
	if err := checkGray(gray); err != nil {
		return nil, 0, err
	}
	t := OtsuThreshold(Histogram(gray))
	mask, err := Classify(gray, t)
	if err != nil {
		return nil, 0, err
	}
	return mask, t, nil
}

// Classify labels pixels with intensity below t as Sprayed and the rest as
// Background. t must be in [0, 255].
func Classify(gray *image.Gray, t int) (*Mask, error) {
	if err := checkGray(gray); err != nil {
		return nil, err
	}
	if t < 0 || t > 255 {
		return nil, fmt.Errorf("%w: threshold %d outside [0, 255]", ErrInvalidConfiguration, t)
	}

	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := gray.Pix[gray.PixOffset(b.Min.X, b.Min.Y+y):][:width]
		dst := out.Pix[y*out.Stride : y*out.Stride+width]
		for x, v := range src {
			if int(v) < t {
				dst[x] = Sprayed
			} else {
				dst[x] = Background
			}
		}
	}

	return &Mask{gray: out}, nil
}

func checkGray(gray *image.Gray) error {
	if gray == nil {
		return fmt.Errorf("%w: nil grayscale image", ErrInvalidInput)
	}
	if b := gray.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: grayscale image is %dx%d", ErrInvalidInput, b.Dx(), b.Dy())
	}
	return nil
}
