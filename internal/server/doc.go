// Package server implements the MCP (Model Context Protocol) server for shape detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the detection
// pipeline through the MCP protocol, so MCP-compatible clients can ask which
// geometric shapes appear in an image file and where.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: zerolog output on stderr, never on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Shape Detection:
//   - image_detect_shapes: Find and classify filled shapes
//   - image_threshold: Inspect the automatic binarization threshold
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime of
// the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, _ := config.Load()
//	logger, _ := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
