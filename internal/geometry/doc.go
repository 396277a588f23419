// Package geometry provides the planar primitives shared by the note-page
// pipeline: integer pixel points, axis-aligned boxes, and closed contours with
// the measurements the descriptor and clusterer rely on.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at the top-left corner
//   - X increases rightward
//   - Y increases downward
//
// A Box is stored as (X, Y, W, H). Following the OpenCV bounding-rectangle
// convention, a contour whose extreme points are x=10 and x=19 has W=10, so a
// Box covers the half-open pixel range [X, X+W) x [Y, Y+H).
//
// # Contours
//
// A Contour is an ordered, implicitly closed sequence of pixel points as
// produced by border following. Measurements treat the points as polygon
// vertices (shoelace area, Euclidean arc length), so a filled w x h pixel
// rectangle measures (w-1)*(h-1) square pixels, matching OpenCV.
//
// Every ratio computed here guards its denominator: degenerate inputs yield 0
// rather than NaN or Inf.
package geometry
