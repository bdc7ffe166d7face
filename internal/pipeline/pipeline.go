// Package pipeline runs the full card analysis: load, optional crop,
// grayscale, binarize, section coverage, optional label OCR and the
// overlay/chart exports.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/spraycard-mcp/internal/config"
	"github.com/ironsheep/spraycard-mcp/internal/imaging"
	"github.com/ironsheep/spraycard-mcp/internal/logging"
	"github.com/ironsheep/spraycard-mcp/internal/ocr"
	"github.com/ironsheep/spraycard-mcp/internal/spray"
	"github.com/ironsheep/spraycard-mcp/internal/visualize"
)

// Export defaults used when Options leaves them unset. An empty suffix
// would overwrite the input image.
const (
	DefaultSuffix      = "_analyzed"
	DefaultJPEGQuality = 90
)

// Options selects what one analysis run does.
type Options struct {
	// SectionCount is the number of vertical bands.
	SectionCount int

	// Region, when set, crops the card area out of the photo before
	// analysis. Coordinates are relative to the loaded image.
	Region *imaging.Region

	// ReadLabel runs OCR over LabelRegion of the uncropped photo.
	ReadLabel     bool
	LabelRegion   *imaging.Region
	LabelLanguage string

	// WriteOverlay and WriteChart export files next to the input image.
	WriteOverlay bool
	WriteChart   bool
	Suffix       string
	JPEGQuality  int
	Style        visualize.Style
}

// OptionsFromConfig maps file configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SectionCount:  cfg.Analysis.SectionCount,
		ReadLabel:     cfg.Label.Enabled,
		LabelRegion:   cfg.Label.Region,
		LabelLanguage: cfg.Label.Language,
		WriteOverlay:  cfg.Output.WriteOverlay,
		WriteChart:    cfg.Output.WriteChart,
		Suffix:        cfg.Output.Suffix,
		JPEGQuality:   cfg.Output.JPEGQuality,
		Style: visualize.Style{
			BorderColor: cfg.Output.BorderColor,
			LabelColor:  cfg.Output.LabelColor,
			BorderWidth: cfg.Output.BorderWidth,
			Title:       cfg.Output.Title,
		},
	}
}

// Result is the outcome of analyzing one in-memory image.
type Result struct {
	// Threshold is the Otsu threshold; intensities below it are sprayed.
	Threshold int `json:"threshold"`

	Report *spray.CoverageReport `json:"report"`

	// Mask is kept for rendering and is not serialized.
	Mask *spray.Mask `json:"-"`

	Label      *ocr.LabelResult `json:"label,omitempty"`
	LabelError string           `json:"label_error,omitempty"`
}

// FileResult is the outcome of analyzing one image file.
type FileResult struct {
	Path string             `json:"path"`
	Info *imaging.ImageInfo `json:"info,omitempty"`

	*Result

	OverlayPath string `json:"overlay_path,omitempty"`
	ChartPath   string `json:"chart_path,omitempty"`

	// Err is set when the file could not be analyzed; Error mirrors it
	// for serialization.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// Runner executes analyses. It holds no per-image state and is safe for
// concurrent use.
type Runner struct {
	log     zerolog.Logger
	workers int
}

// NewRunner returns a Runner that analyzes at most workers files at once
// in AnalyzeFiles.
func NewRunner(log zerolog.Logger, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{log: logging.Component(log, "pipeline"), workers: workers}
}

// AnalyzeImage runs the coverage pipeline on a decoded image.
func (r *Runner) AnalyzeImage(ctx context.Context, img image.Image, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", spray.ErrInvalidInput)
	}
	start := time.Now()

	result := &Result{}
	if opts.ReadLabel {
		label, err := ocr.ReadLabel(img, opts.LabelRegion, opts.LabelLanguage)
		if err != nil {
			r.log.Warn().Err(err).Msg("card label could not be read")
			result.LabelError = err.Error()
		} else {
			result.Label = label
		}
	}

	card := img
	if opts.Region != nil {
		cropped, err := imaging.CropRegion(img, *opts.Region)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", spray.ErrInvalidConfiguration, err)
		}
		card = cropped
	}

	gray, err := spray.ToGrayscale(card)
	if err != nil {
		return nil, err
	}
	mask, threshold, err := spray.Binarize(gray)
	if err != nil {
		return nil, err
	}
	report, err := spray.AnalyzeSections(mask, opts.SectionCount)
	if err != nil {
		return nil, err
	}

	result.Threshold = threshold
	result.Report = report
	result.Mask = mask

	r.log.Debug().
		Int("width", report.Width).
		Int("height", report.Height).
		Int("threshold", threshold).
		Int("sections", report.SectionCount).
		Float64("overall", report.Summary.Overall).
		Dur("elapsed_ms", time.Since(start)).
		Msg("card analyzed")

	return result, nil
}

// AnalyzeFile loads path, analyzes it and writes the requested exports.
// A file that cannot be decoded is reported as spray.ErrInvalidInput.
func (r *Runner) AnalyzeFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, info, err := imaging.LoadImageInfo(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spray.ErrInvalidInput, err)
	}

	res, err := r.AnalyzeImage(ctx, img, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := &FileResult{Path: path, Info: info, Result: res}

	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	quality := opts.JPEGQuality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}

	if opts.WriteOverlay {
		overlay, err := visualize.RenderOverlay(res.Mask, res.Report, opts.Style)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out.OverlayPath = visualize.AnalyzedPath(path, suffix, overlayExt(path))
		if err := visualize.SaveImage(out.OverlayPath, overlay, quality); err != nil {
			return nil, err
		}
	}

	if opts.WriteChart {
		out.ChartPath = visualize.AnalyzedPath(path, suffix+"_chart", ".png")
		if err := visualize.SaveChart(out.ChartPath, res.Report); err != nil {
			return nil, err
		}
	}

	r.log.Info().
		Str("path", path).
		Float64("overall", res.Report.Summary.Overall).
		Str("overlay", out.OverlayPath).
		Msg("card processed")

	return out, nil
}

// AnalyzeFiles analyzes paths concurrently, bounded by the runner's worker
// count. Results are returned in input order. A file that fails does not
// stop the others; its FileResult carries the error. The returned error is
// non-nil only when ctx is cancelled.
func (r *Runner) AnalyzeFiles(ctx context.Context, paths []string, opts Options) ([]*FileResult, error) {
	results := make([]*FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = &FileResult{Path: path, Err: err, Error: err.Error()}
				return err
			}
			res, err := r.AnalyzeFile(gctx, path, opts)
			if err != nil {
				r.log.Error().Err(err).Str("path", path).Msg("card analysis failed")
				results[i] = &FileResult{Path: path, Err: err, Error: err.Error()}
				return nil
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// overlayExt keeps JPEG, PNG and BMP inputs in their own format and writes
// PNG for everything else.
func overlayExt(path string) string {
	switch ext := filepath.Ext(path); strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".bmp":
		return ext
	}
	return ".png"
}
