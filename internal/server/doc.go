// Package server implements the MCP (Model Context Protocol) server for spray card analysis.
//
// The server exposes the coverage pipeline as MCP tools so an assistant can
// inspect spray cards, measure deposit per section and read card labels.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - spraycard_load: Image metadata
//   - spraycard_binarize: Otsu threshold and deposit mask
//   - spraycard_analyze: Per-section coverage report, optional overlay and chart
//   - spraycard_section_bounds: Section geometry for a given width
//   - spraycard_read_label: OCR of the card identifier
//
// Every call decodes the image afresh; nothing is kept between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: "Invalid input", "Invalid configuration" or "Tool execution failed"
//   - data: the Go error string
//
// # Usage
//
//	srv := server.New(cfg, logger, version)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
