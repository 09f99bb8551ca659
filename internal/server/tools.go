package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema is the JSON schema shared by tools that accept an optional region.
func regionSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge (inclusive)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge (inclusive)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge (exclusive)"},
		},
		"required":    []string{"x1", "y1", "x2", "y2"},
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Shape Detection
		{
			Name: "image_detect_shapes",
			Description: "Detect filled geometric shapes (circle, triangle, rectangle, pentagon, star) on a plain background. " +
				"Returns each shape's type, confidence, bounding box, centroid, area, and fill color in image pixel coordinates, " +
				"plus the binarization strategy that produced the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region": regionSchema("Optional region to analyze. If omitted, analyzes entire image."),
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale the analyzed area to fit this size before detection. 0 uses the server default.",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_threshold",
			Description: "Report the automatic (Otsu) threshold, mean brightness, foreground polarity, and foreground fraction the shape detector would use.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region": regionSchema("Optional region to analyze. If omitted, analyzes entire image."),
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
