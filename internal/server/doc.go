// Package server implements an MCP (Model Context Protocol) server that exposes
// the PPM editor as tools.
//
// This package provides a JSON-RPC 2.0 server so MCP clients can run the same
// decode, filter, encode pipeline as the command-line shell.
//
// # Protocol
//
// The server communicates over a line-oriented stream, normally stdio:
//   - Input: JSON-RPC requests (one per line)
//   - Output: JSON-RPC responses (one per line)
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - ppm_info: Header layout and color summary
//   - ppm_blur: Parallel box blur, written back to disk
//   - ppm_invert: Color negative, written back to disk
//   - ppm_preview: Downscaled PNG as base64
//
// Optional tool arguments (radius, workers, remainder, max_width) fall back to
// the config.Config the server was created with.
//
// # State
//
// No image is kept between calls. Every tool call reads its file from disk,
// and edits are written back before the response is sent.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "failed to decode image: ppm: truncated data: ..."
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
//	    logger.Fatal(err)
//	}
package server
