package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	cardimg "github.com/ironsheep/spraycard-mcp/internal/imaging"
	"github.com/ironsheep/spraycard-mcp/internal/pipeline"
	"github.com/ironsheep/spraycard-mcp/internal/spray"
	"github.com/ironsheep/spraycard-mcp/internal/visualize"
)

// Form fields accepted by the analysis endpoints.
const (
	imageField    = "image"
	sectionsField = "sections"
)

// HandleAnalyze returns the coverage report for an uploaded card as JSON.
func (h *Handler) HandleAnalyze(c *gin.Context) {
	res, ok := h.analyzeUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request_id": c.GetString(requestIDKey),
		"threshold":  res.Threshold,
		"report":     res.Report,
	})
}

// HandleOverlay returns the annotated mask of an uploaded card as PNG.
func (h *Handler) HandleOverlay(c *gin.Context) {
	res, ok := h.analyzeUpload(c)
	if !ok {
		return
	}

	style := pipeline.OptionsFromConfig(h.cfg).Style
	overlay, err := visualize.RenderOverlay(res.Mask, res.Report, style)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, overlay, imaging.PNG); err != nil {
		h.fail(c, fmt.Errorf("failed to encode overlay: %w", err))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// analyzeUpload runs the pipeline on the multipart upload. On failure it
// writes the error response and returns false.
func (h *Handler) analyzeUpload(c *gin.Context) (*pipeline.Result, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.HTTP.MaxUploadBytes)

	img, err := h.readImage(c)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}

	opts := pipeline.OptionsFromConfig(h.cfg)
	opts.ReadLabel = false
	if v := c.PostForm(sectionsField); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.fail(c, fmt.Errorf("%w: sections must be an integer, got %q", spray.ErrInvalidConfiguration, v))
			return nil, false
		}
		opts.SectionCount = n
	}

	res, err := h.runner.AnalyzeImage(c.Request.Context(), img, opts)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return res, true
}

// readImage decodes the uploaded image file.
func (h *Handler) readImage(c *gin.Context) (image.Image, error) {
	file, _, err := c.Request.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &uploadTooLargeError{limit: tooLarge.Limit}
		}
		return nil, fmt.Errorf("%w: no image uploaded", spray.ErrInvalidInput)
	}
	defer file.Close()

	img, err := cardimg.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spray.ErrInvalidInput, err)
	}
	return img, nil
}

type uploadTooLargeError struct {
	limit int64
}

func (e *uploadTooLargeError) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.limit)
}

// statusFor maps an analysis error to an HTTP status code.
func statusFor(err error) int {
	var tooLarge *uploadTooLargeError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, spray.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, spray.ErrInvalidConfiguration):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("analysis failed")
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"request_id": c.GetString(requestIDKey),
	})
}
