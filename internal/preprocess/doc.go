// Package preprocess turns a scanned note page into the external contours of
// its ink strokes.
//
// The pipeline is:
//
//  1. Grayscale conversion.
//  2. Adaptive thresholding: a pixel is ink when it is darker than the
//     Gaussian-weighted mean of its BlockSize neighborhood minus C. The
//     result is inverted so ink is white (255).
//  3. Morphological close then open with a square kernel, joining broken
//     strokes and removing speckle.
//  4. External contour tracing. Only outer borders are returned; shapes
//     nested inside the holes of other shapes are skipped. Runs of points in
//     the same direction are compressed to their end points.
//  5. Contours enclosing less than MinContourArea are dropped.
//
// Two backends implement the same steps. The default build is pure Go and
// uses github.com/anthonynsimon/bild for filtering. Building with the gocv
// tag switches to OpenCV through gocv.io/x/gocv.
package preprocess
