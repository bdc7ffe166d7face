package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool that reads a card image.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the spray card image",
}

// regionProperty describes an optional rectangle in image pixels.
func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (inclusive)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (inclusive)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "spraycard_load",
			Description: "Load a spray card image and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "spraycard_binarize",
			Description: "Convert a spray card to a black/white deposit mask with Otsu's threshold. Returns the threshold, the sprayed pixel count and percentage, and optionally the mask as base64-encoded PNG (black = sprayed).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty,
					"region": regionProperty("Optional card area to analyze instead of the whole image"),
					"include_mask": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the mask image as base64 PNG. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "spraycard_analyze",
			Description: "Measure spray coverage of a card. The card is split into vertical sections and the percentage of sprayed pixels is reported per section, left to right, with overall coverage, mean, standard deviation and coefficient of variation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"sections": map[string]interface{}{
						"type":        "integer",
						"description": "Number of vertical sections (1 to image width). Defaults to the configured count (10)",
						"minimum":     1,
					},
					"region":       regionProperty("Optional card area to analyze instead of the whole image"),
					"label_region": regionProperty("Optional identifier strip to read with OCR"),
					"write_overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Save the annotated mask next to the input (card.jpeg -> card_analyzed.jpeg). Default false",
						"default":     false,
					},
					"write_chart": map[string]interface{}{
						"type":        "boolean",
						"description": "Save a coverage bar chart next to the input as PNG. Default false",
						"default":     false,
					},
					"include_overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the annotated mask as base64 PNG. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "spraycard_section_bounds",
			Description: "Compute the column ranges used to split an image of the given width into sections. The last section absorbs any remainder columns.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Image width in pixels",
						"minimum":     1,
					},
					"sections": map[string]interface{}{
						"type":        "integer",
						"description": "Number of vertical sections. Default 10",
						"minimum":     1,
					},
				},
				"required": []string{"width"},
			},
		},
		{
			Name:        "spraycard_read_label",
			Description: "Read the identifier written or printed on a spray card using Tesseract OCR.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty,
					"region": regionProperty("Label strip to read. Defaults to the configured label region, then the whole image"),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default 'eng'",
						"default":     "eng",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
