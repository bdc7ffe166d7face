package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cardimg "github.com/ironsheep/spraycard-mcp/internal/imaging"
	"github.com/ironsheep/spraycard-mcp/internal/ocr"
	"github.com/ironsheep/spraycard-mcp/internal/pipeline"
	"github.com/ironsheep/spraycard-mcp/internal/spray"
	"github.com/ironsheep/spraycard-mcp/internal/visualize"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "spraycard_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// The message tells invalid input and invalid configuration apart from
// other failures; data carries the error string.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, failureMessage(err), err.Error())
	}
	s.log.Debug().Str("tool", params.Name).Dur("elapsed_ms", time.Since(start)).Msg("tool completed")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "spraycard_load":
		return s.handleLoad(args)
	case "spraycard_binarize":
		return s.handleBinarize(args)
	case "spraycard_analyze":
		return s.handleAnalyze(ctx, args)
	case "spraycard_section_bounds":
		return s.handleSectionBounds(args)
	case "spraycard_read_label":
		return s.handleReadLabel(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// failureMessage classifies a tool error for the JSON-RPC message field.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, spray.ErrInvalidInput):
		return "Invalid input"
	case errors.Is(err, spray.ErrInvalidConfiguration):
		return "Invalid configuration"
	default:
		return "Tool execution failed"
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments; a missing argument object is
// treated as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: invalid arguments: %v", spray.ErrInvalidInput, err)
	}
	return nil
}

// loadCard reads an image, reporting unreadable files as invalid input.
func loadCard(path string) (*cardImage, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", spray.ErrInvalidInput)
	}
	img, info, err := cardimg.LoadImageInfo(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spray.ErrInvalidInput, err)
	}
	return &cardImage{img: img, info: info}, nil
}

// === spraycard_load ===

type spraycardLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a spraycardLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	card, err := loadCard(a.Path)
	if err != nil {
		return nil, err
	}
	return card.info, nil
}

// === spraycard_binarize ===

type spraycardBinarizeArgs struct {
	Path        string          `json:"path"`
	Region      *cardimg.Region `json:"region"`
	IncludeMask bool            `json:"include_mask"`
}

// BinarizeResult is the output of spraycard_binarize.
type BinarizeResult struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Threshold      int     `json:"threshold"`
	SprayedPixels  int     `json:"sprayed_pixels"`
	SprayedPercent float64 `json:"sprayed_percent"`
	MaskBase64     string  `json:"mask_base64,omitempty"`
}

func (s *Server) handleBinarize(args json.RawMessage) (interface{}, error) {
	var a spraycardBinarizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	card, err := loadCard(a.Path)
	if err != nil {
		return nil, err
	}
	img, err := card.region(a.Region)
	if err != nil {
		return nil, err
	}

	gray, err := spray.ToGrayscale(img)
	if err != nil {
		return nil, err
	}
	mask, threshold, err := spray.Binarize(gray)
	if err != nil {
		return nil, err
	}

	total := mask.Width() * mask.Height()
	result := &BinarizeResult{
		Width:          mask.Width(),
		Height:         mask.Height(),
		Threshold:      threshold,
		SprayedPixels:  mask.SprayedCount(),
		SprayedPercent: 100 * float64(mask.SprayedCount()) / float64(total),
	}

	if a.IncludeMask {
		encoded, err := visualize.EncodePNGBase64(mask.Image())
		if err != nil {
			return nil, err
		}
		result.MaskBase64 = encoded
	}

	return result, nil
}

// === spraycard_analyze ===

type spraycardAnalyzeArgs struct {
	Path           string          `json:"path"`
	Sections       *int            `json:"sections"`
	Region         *cardimg.Region `json:"region"`
	LabelRegion    *cardimg.Region `json:"label_region"`
	WriteOverlay   bool            `json:"write_overlay"`
	WriteChart     bool            `json:"write_chart"`
	IncludeOverlay bool            `json:"include_overlay"`
}

// AnalyzeResult is the output of spraycard_analyze.
type AnalyzeResult struct {
	*pipeline.FileResult
	OverlayBase64 string `json:"overlay_base64,omitempty"`
}

func (s *Server) handleAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a spraycardAnalyzeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", spray.ErrInvalidInput)
	}

	opts := pipeline.OptionsFromConfig(s.cfg)
	opts.WriteOverlay = a.WriteOverlay
	opts.WriteChart = a.WriteChart
	opts.Region = a.Region
	if a.Sections != nil {
		opts.SectionCount = *a.Sections
	}
	if a.LabelRegion != nil {
		opts.ReadLabel = true
		opts.LabelRegion = a.LabelRegion
	}

	res, err := s.runner.AnalyzeFile(ctx, a.Path, opts)
	if err != nil {
		return nil, err
	}

	out := &AnalyzeResult{FileResult: res}
	if a.IncludeOverlay {
		overlay, err := visualize.RenderOverlay(res.Mask, res.Report, opts.Style)
		if err != nil {
			return nil, err
		}
		encoded, err := visualize.EncodePNGBase64(overlay)
		if err != nil {
			return nil, err
		}
		out.OverlayBase64 = encoded
	}

	return out, nil
}

// === spraycard_section_bounds ===

type spraycardSectionBoundsArgs struct {
	Width    int  `json:"width"`
	Sections *int `json:"sections"`
}

// SectionBoundsResult is the output of spraycard_section_bounds.
type SectionBoundsResult struct {
	Width        int            `json:"width"`
	SectionCount int            `json:"section_count"`
	Sections     []spray.Bounds `json:"sections"`
}

func (s *Server) handleSectionBounds(args json.RawMessage) (interface{}, error) {
	var a spraycardSectionBoundsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	// Only an absent count falls back to the configured one; an explicit 0
	// is rejected by SectionBounds.
	n := s.cfg.Analysis.SectionCount
	if a.Sections != nil {
		n = *a.Sections
	}

	bounds, err := spray.SectionBounds(a.Width, n)
	if err != nil {
		return nil, err
	}
	return &SectionBoundsResult{
		Width:        a.Width,
		SectionCount: n,
		Sections:     bounds,
	}, nil
}

// === spraycard_read_label ===

type spraycardReadLabelArgs struct {
	Path     string          `json:"path"`
	Region   *cardimg.Region `json:"region"`
	Language string          `json:"language"`
}

func (s *Server) handleReadLabel(args json.RawMessage) (interface{}, error) {
	var a spraycardReadLabelArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Region == nil {
		a.Region = s.cfg.Label.Region
	}
	if a.Language == "" {
		a.Language = s.cfg.Label.Language
	}

	card, err := loadCard(a.Path)
	if err != nil {
		return nil, err
	}
	return ocr.ReadLabel(card.img, a.Region, a.Language)
}
