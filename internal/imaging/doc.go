// Package imaging loads note pages and renders what the pipeline found on
// them.
//
// It covers three concerns:
//   - loading: PageCache decodes pages once and is safe for concurrent use
//   - extraction: Extract cuts a cluster out of its page as an RGBA image
//     whose alpha is the filled mask of the member contours
//   - debugging: Overlay draws labeled shape and cluster boxes on a page
//
// # Coordinate System
//
// All coordinates are 0-based pixels with (0,0) at the top-left corner of
// the page, X increasing rightward and Y increasing downward. Boxes follow
// geometry.Box: (X, Y) is the top-left pixel and W, H count pixels.
//
// Extracted images and masks are always anchored at (0,0), whatever the
// bounds of the source page.
//
// # Colors
//
// Colors are given and reported as hex strings ("#RRGGBB", optionally with
// a trailing alpha byte on input). Ink colors are averaged in CIE L*a*b*
// using go-colorful.
package imaging
