// Package pipeline wires the page stages together.
//
// For one page it runs preprocessing, classification, connector
// partitioning, clustering and overlap resolution (Analyze), then cuts
// every cluster out as a transparent PNG and writes manifest.json (Run).
// RunBatch processes several pages concurrently. The CLI, the HTTP API and
// the MCP server all go through this package.
package pipeline
