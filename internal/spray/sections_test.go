package spray

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionBounds(t *testing.T) {
	tests := []struct {
		name  string
		width int
		n     int
		want  []Bounds
	}{
		{"single", 7, 1, []Bounds{{0, 0, 7}}},
		{"even", 100, 4, []Bounds{{0, 0, 25}, {1, 25, 50}, {2, 50, 75}, {3, 75, 100}}},
		{"remainder", 10, 3, []Bounds{{0, 0, 3}, {1, 3, 6}, {2, 6, 10}}},
		{"one column each", 3, 3, []Bounds{{0, 0, 1}, {1, 1, 2}, {2, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SectionBounds(tt.width, tt.n)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SectionBounds(%d, %d) mismatch (-want +got):\n%s", tt.width, tt.n, diff)
			}
		})
	}
}

func TestSectionBounds_Invalid(t *testing.T) {
	_, err := SectionBounds(10, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = SectionBounds(10, -3)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = SectionBounds(10, 11)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = SectionBounds(0, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyzeSections_HalfSprayed(t *testing.T) {
	mask := columnMask(t, 100, 10, func(x int) bool { return x < 50 })

	two, err := AnalyzeSections(mask, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 0}, two.Coverage)

	four, err := AnalyzeSections(mask, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100, 0, 0}, four.Coverage)
	assert.Equal(t, 25, four.Sections[1].Width())
}

func TestAnalyzeSections_RemainderBand(t *testing.T) {
	mask := columnMask(t, 103, 10, func(int) bool { return true })

	report, err := AnalyzeSections(mask, 10)
	require.NoError(t, err)
	require.Len(t, report.Coverage, 10)
	for i, c := range report.Coverage {
		assert.Equal(t, 100.0, c, "section %d", i)
	}

	last := report.Sections[9]
	assert.Equal(t, 90, last.X0)
	assert.Equal(t, 103, last.X1)
	assert.Equal(t, 130, last.PixelCount)
	assert.Equal(t, 130, last.SprayedPixels)
}

func TestAnalyzeSections_RemainderDenominator(t *testing.T) {
	// Only the three remainder columns of the last band are sprayed.
	mask := columnMask(t, 13, 2, func(x int) bool { return x >= 10 })

	report, err := AnalyzeSections(mask, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Coverage[0])
	assert.InDelta(t, 100*3.0/7.0, report.Coverage[1], 1e-12)
}

func TestAnalyzeSections_SingleSection(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := grayFrom(57, 31, func(_, _ int) uint8 { return uint8(rng.Intn(256)) })
	mask, _, err := Binarize(g)
	require.NoError(t, err)

	report, err := AnalyzeSections(mask, 1)
	require.NoError(t, err)
	require.Len(t, report.Coverage, 1)
	want := 100 * float64(mask.SprayedCount()) / float64(57*31)
	assert.Equal(t, want, report.Coverage[0])
	assert.Equal(t, want, report.Summary.Overall)
}

func TestAnalyzeSections_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 25; trial++ {
		width := 1 + rng.Intn(120)
		height := 1 + rng.Intn(40)
		g := grayFrom(width, height, func(_, _ int) uint8 { return uint8(rng.Intn(256)) })
		mask, _, err := Binarize(g)
		require.NoError(t, err)

		n := 1 + rng.Intn(width)
		report, err := AnalyzeSections(mask, n)
		require.NoError(t, err)

		assert.Equal(t, n, report.SectionCount)
		assert.Equal(t, width, report.Width)
		assert.Equal(t, height, report.Height)

		pixels, sprayed := 0, 0
		for i, s := range report.Sections {
			assert.Equal(t, i, s.Index)
			assert.GreaterOrEqual(t, s.Coverage, 0.0)
			assert.LessOrEqual(t, s.Coverage, 100.0)
			pixels += s.PixelCount
			sprayed += s.SprayedPixels
		}
		assert.Equal(t, width*height, pixels, "pixel conservation")
		assert.Equal(t, mask.SprayedCount(), sprayed)

		again, err := AnalyzeSections(mask, n)
		require.NoError(t, err)
		if diff := cmp.Diff(report, again); diff != "" {
			t.Errorf("repeated analysis differs (-first +second):\n%s", diff)
		}
	}
}

func TestAnalyzeSections_UniformImage(t *testing.T) {
	for _, level := range []uint8{0, 200} {
		g := grayFrom(40, 10, func(_, _ int) uint8 { return level })
		mask, _, err := Binarize(g)
		require.NoError(t, err)

		report, err := AnalyzeSections(mask, 7)
		require.NoError(t, err)
		for _, c := range report.Coverage {
			assert.True(t, c == 0 || c == 100, "intermediate coverage %v", c)
		}
	}
}

func TestAnalyzeSections_Invalid(t *testing.T) {
	mask := columnMask(t, 5, 5, func(int) bool { return false })

	_, err := AnalyzeSections(mask, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = AnalyzeSections(mask, 6)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = AnalyzeSections(nil, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// A zero Mask built outside Classify has no pixels behind it.
	_, err = AnalyzeSections(&Mask{}, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyzeSections_FreshReportPerCall(t *testing.T) {
	mask := columnMask(t, 10, 2, func(x int) bool { return x%2 == 0 })

	first, err := AnalyzeSections(mask, 2)
	require.NoError(t, err)
	second, err := AnalyzeSections(mask, 5)
	require.NoError(t, err)

	assert.Len(t, first.Coverage, 2)
	assert.Len(t, second.Coverage, 5)
	first.Coverage[0] = -1
	assert.NotEqual(t, -1.0, second.Coverage[0])
}

func TestSummarize(t *testing.T) {
	sections := []Section{
		{Bounds: Bounds{0, 0, 10}, PixelCount: 100, SprayedPixels: 20, Coverage: 20},
		{Bounds: Bounds{1, 10, 20}, PixelCount: 100, SprayedPixels: 60, Coverage: 60},
	}

	s := Summarize(sections)
	assert.InDelta(t, 40, s.Overall, 1e-9)
	assert.InDelta(t, 40, s.Mean, 1e-9)
	assert.InDelta(t, 20, s.StdDev, 1e-9)
	assert.InDelta(t, 50, s.CV, 1e-9)
	assert.Equal(t, 20.0, s.Min)
	assert.Equal(t, 60.0, s.Max)

	assert.Equal(t, Summary{}, Summarize(nil))

	zero := Summarize([]Section{{PixelCount: 10}})
	assert.Equal(t, 0.0, zero.CV)
}
