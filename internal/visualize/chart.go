package visualize

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ironsheep/spraycard-mcp/internal/spray"
)

// Chart dimensions used by SaveChart and WriteChart.
const (
	ChartWidth  = 10 * vg.Inch
	ChartHeight = 4 * vg.Inch
)

// Title heads both the chart and, by default, the overlay.
const Title = "Spray Coverage percentage in each section"

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// NewChart builds a bar chart of the coverage per section.
func NewChart(report *spray.CoverageReport) (*plot.Plot, error) {
	if report == nil || len(report.Coverage) == 0 {
		return nil, fmt.Errorf("chart needs a report with at least one section")
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = "Section"
	p.Y.Label.Text = "Coverage (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	barWidth := (ChartWidth - vg.Inch) / vg.Length(len(report.Coverage)) * 0.7
	bars, err := plotter.NewBarChart(plotter.Values(report.Coverage), barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	names := make([]string, len(report.Coverage))
	for i := range names {
		names[i] = fmt.Sprintf("Sec %d", i+1)
	}
	p.NominalX(names...)

	return p, nil
}

// SaveChart writes the chart to path. The format follows the extension
// (png, jpg, svg, pdf, ...).
func SaveChart(path string, report *spray.CoverageReport) error {
	p, err := NewChart(report)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(ChartWidth, ChartHeight, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

// WriteChart renders the chart in the given format ("png", "svg", ...) to w.
func WriteChart(w io.Writer, report *spray.CoverageReport, format string) error {
	p, err := NewChart(report)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ChartWidth, ChartHeight, format)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
