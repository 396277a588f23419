// Package server implements the MCP (Model Context Protocol) server for note
// page diagram extraction.
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
//   - notes_page_info: Page dimensions, format and color depth
//   - notes_classify_shapes: Label every traced shape and preview the clusters
//   - notes_extract_diagrams: Write one transparent PNG per diagram plus manifest.json
//   - notes_preview_clusters: Cluster or shape boxes drawn over the page, as base64 PNG
//
// # Page Caching
//
// Pages are decoded once and cached by path for the lifetime of the server
// process, so classifying and then extracting the same page reads it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Diagnostics are logged to stderr; stdout carries only protocol traffic.
package server
