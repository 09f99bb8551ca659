package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/shape-detect-mcp/internal/detection"
	"github.com/ironsheep/shape-detect-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_detect_shapes").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Info().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool completed")

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Shape Detection
	case "image_detect_shapes":
		return s.handleImageDetectShapes(args)
	case "image_threshold":
		return s.handleImageThreshold(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Shape Detection Handlers ===

type imageDetectShapesArgs struct {
	Path         string          `json:"path"`
	Region       *imaging.Region `json:"region,omitempty"`
	MaxDimension int             `json:"max_dimension"`
}

func (s *Server) handleImageDetectShapes(args json.RawMessage) (interface{}, error) {
	var a imageDetectShapesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxDimension == 0 {
		a.MaxDimension = s.cfg.MaxDimension
	}
	return s.DetectFile(a.Path, a.Region, a.MaxDimension)
}

type imageThresholdArgs struct {
	Path   string          `json:"path"`
	Region *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	frame, err := s.loadFrame(a.Path, a.Region, s.cfg.MaxDimension)
	if err != nil {
		return nil, err
	}
	buf, err := frame.PixelBuffer()
	if err != nil {
		return nil, err
	}
	return detection.AnalyzeThreshold(buf)
}

// DetectFile runs shape detection on an image file, optionally restricted to
// a region and downscaled to maxDimension, and reports shapes in the file's
// own pixel coordinates.
func (s *Server) DetectFile(path string, region *imaging.Region, maxDimension int) (*detection.DetectionResult, error) {
	frame, err := s.loadFrame(path, region, maxDimension)
	if err != nil {
		return nil, err
	}

	buf, err := frame.PixelBuffer()
	if err != nil {
		return nil, err
	}

	res, err := s.detector.Detect(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to detect shapes: %w", err)
	}

	return frame.MapResult(res), nil
}

func (s *Server) loadFrame(path string, region *imaging.Region, maxDimension int) (*imaging.Frame, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.PrepareFrame(img, region, maxDimension)
}
