// Package cluster groups classified diagram shapes into extraction regions.
//
// A page's diagram shapes become nodes of a sparse graph. Two shapes are
// linked when their bounding boxes are within the proximity threshold, or
// when a connector shape (arrow, link line) lies between them. Candidate
// pairs come from a uniform grid index, so large pages avoid comparing every
// pair. Each connected component becomes a cluster:
//
//  1. Member boxes (diagrams plus bridging connectors) are merged, padded
//     and clipped to the page.
//  2. Clusters mostly covered by a handwriting box are dropped.
//  3. Survivors are ordered by area or reading order, capped, and given
//     dense ids 0..N-1.
//
// ResolveOverlaps is a separate pass that shrinks smaller clusters out of
// larger ones. It never modifies its input.
package cluster
