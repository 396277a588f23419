// Package descriptor measures the geometric and stroke features of a single
// contour.
//
// Measure computes the primitive record produced during preprocessing (area,
// perimeter, bounding box, aspect ratio, solidity, circularity, extent and
// centroid). Describe extends it with the secondary features the classifier
// votes on:
//
//   - Straightness: end-to-end distance of the polygon approximation over the
//     open arc length.
//   - Curvature variation: standard deviation of the normalized turn at up to
//     20 evenly spaced samples.
//   - Stroke width variation: area/perimeter against an expected width of
//     min(w, h)/20, capped at 2.
//   - Corner, line and curve segment counts from the approximation.
//   - Regularity score, the perfect-curve test (ellipse fit) and the
//     straight-line test.
//   - Rectangularity, circularity fit (against the minimum enclosing circle)
//     and triangularity.
//
// The polygon approximation is Douglas-Peucker with a tolerance of 2% of the
// closed perimeter.
//
// Both functions are pure and never fail. A contour with zero perimeter or
// fewer than three points yields the zero Properties record; features that
// need a curve (curvature variation, ellipse fit) stay zero below five points.
package descriptor
