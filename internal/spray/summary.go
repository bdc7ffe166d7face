package spray

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates section coverage across a card.
//
// Overall is computed from raw pixel counts, so a wider final band weighs
// proportionally more. Mean, StdDev and CV treat every band equally and
// describe how evenly the deposit is spread across the swath.
type Summary struct {
	Overall float64 `json:"overall_coverage_percent"`
	Mean    float64 `json:"mean_percent"`
	StdDev  float64 `json:"stddev_percent"`
	CV      float64 `json:"cv_percent"` // StdDev/Mean*100, 0 when Mean is 0
	Min     float64 `json:"min_percent"`
	Max     float64 `json:"max_percent"`
}

// Summarize computes the Summary for a set of sections.
func Summarize(sections []Section) Summary {
	if len(sections) == 0 {
		return Summary{}
	}

	values := make([]float64, len(sections))
	var pixels, sprayed int
	for i, s := range sections {
		values[i] = s.Coverage
		pixels += s.PixelCount
		sprayed += s.SprayedPixels
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	s := Summary{
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
	if pixels > 0 {
		s.Overall = 100 * float64(sprayed) / float64(pixels)
	}
	if mean > 0 {
		s.CV = std / mean * 100
	}
	return s
}
