package spray

import "fmt"

// DefaultSectionCount is the number of vertical bands used when the caller
// does not choose one.
const DefaultSectionCount = 10

// Bounds is the column range [X0, X1) covered by one section.
type Bounds struct {
	Index int `json:"index"` // 0 = leftmost band
	X0    int `json:"x0"`    // first column (inclusive)
	X1    int `json:"x1"`    // last column (exclusive)
}

// Width returns the number of columns in the section.
func (b Bounds) Width() int { return b.X1 - b.X0 }

// Section holds the coverage measured for one vertical band.
type Section struct {
	Bounds
	PixelCount    int     `json:"pixel_count"`
	SprayedPixels int     `json:"sprayed_pixels"`
	Coverage      float64 `json:"coverage_percent"`
}

// CoverageReport is the per-section result for one card.
type CoverageReport struct {
	// SectionCount is N, the number of bands.
	SectionCount int `json:"section_count"`

	// Width and Height are the mask dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Coverage holds the sprayed percentage per band, left to right.
	Coverage []float64 `json:"coverage"`

	// Sections carries the geometry and raw counts behind Coverage.
	Sections []Section `json:"sections"`

	// Summary aggregates the band values.
	Summary Summary `json:"summary"`
}

// SectionBounds splits width columns into n vertical bands.
//
// Bands 0..n-2 are floor(width/n) columns wide and the last band extends
// to width, absorbing the remainder. n must be between 1 and width.
func SectionBounds(width, n int) ([]Bounds, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: section count must be at least 1, got %d", ErrInvalidConfiguration, n)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidInput, width)
	}
	if n > width {
		return nil, fmt.Errorf("%w: section count %d exceeds image width %d", ErrInvalidConfiguration, n, width)
	}

	step := width / n
	bounds := make([]Bounds, n)
	for i := range bounds {
		bounds[i] = Bounds{Index: i, X0: i * step, X1: (i + 1) * step}
	}
	bounds[n-1].X1 = width

	return bounds, nil
}

// AnalyzeSections measures deposit coverage in n vertical bands of mask.
//
// Each band's coverage is 100 * sprayed / pixels, using the band's real
// pixel count. The band pixel counts always sum to width*height.
func AnalyzeSections(mask *Mask, n int) (*CoverageReport, error) {
	if mask == nil || mask.gray == nil {
		return nil, fmt.Errorf("%w: nil mask", ErrInvalidInput)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: section count must be at least 1, got %d", ErrInvalidConfiguration, n)
	}
	width, height := mask.Width(), mask.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: mask is %dx%d", ErrInvalidInput, width, height)
	}

	bounds, err := SectionBounds(width, n)
	if err != nil {
		return nil, err
	}

	columns := mask.columnCounts()
	report := &CoverageReport{
		SectionCount: n,
		Width:        width,
		Height:       height,
		Coverage:     make([]float64, n),
		Sections:     make([]Section, n),
	}

	for i, b := range bounds {
		sprayed := 0
		for _, c := range columns[b.X0:b.X1] {
			sprayed += c
		}
		pixels := b.Width() * height
		coverage := 100 * float64(sprayed) / float64(pixels)

		report.Coverage[i] = coverage
		report.Sections[i] = Section{
			Bounds:        b,
			PixelCount:    pixels,
			SprayedPixels: sprayed,
			Coverage:      coverage,
		}
	}
	report.Summary = Summarize(report.Sections)

	return report, nil
}
