package spray

import "image"

// Pixel values stored in a Mask image.
const (
	Sprayed    uint8 = 0
	Background uint8 = 255
)

// Mask is a two-level image produced by thresholding a grayscale card.
//
// Every pixel is either Sprayed or Background. A Mask is never modified
// after construction; its origin is always (0,0).
type Mask struct {
	gray *image.Gray
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.gray.Rect.Dx() }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.gray.Rect.Dy() }

// IsSprayed reports whether the pixel at (x, y) is classified as deposit.
// Coordinates outside the mask report false.
func (m *Mask) IsSprayed(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.gray.Rect) {
		return false
	}
	return m.gray.Pix[y*m.gray.Stride+x] == Sprayed
}

// SprayedCount returns the number of deposit pixels in the whole mask.
func (m *Mask) SprayedCount() int {
	total := 0
	for _, n := range m.columnCounts() {
		total += n
	}
	return total
}

// Image returns a copy of the mask as a grayscale image, with Sprayed
// pixels black and Background pixels white.
func (m *Mask) Image() *image.Gray {
	out := image.NewGray(m.gray.Rect)
	copy(out.Pix, m.gray.Pix)
	return out
}

// columnCounts returns the number of Sprayed pixels in each column.
func (m *Mask) columnCounts() []int {
	width, height := m.Width(), m.Height()
	counts := make([]int, width)
	for y := 0; y < height; y++ {
		row := m.gray.Pix[y*m.gray.Stride : y*m.gray.Stride+width]
		for x, v := range row {
			if v == Sprayed {
				counts[x]++
			}
		}
	}
	return counts
}
