package descriptor

import (
	"math"

	"github.com/ironsheep/notesplit/internal/geometry"
)

const (
	approxFraction    = 0.02
	curvatureSamples  = 20
	minCurvePoints    = 5
	maxStraightPoints = 8
	maxCornerPoints   = 12
	strokeWidthCap    = 2.0
	ellipseFitLow     = 0.7
	ellipseFitHigh    = 1.3
	maxTriangularity  = 2.0
)

// Properties is the feature record attached to one contour.
type Properties struct {
	Area        float64         `json:"area"`
	Perimeter   float64         `json:"perimeter"`
	BBox        geometry.Box    `json:"bbox"`
	AspectRatio float64         `json:"aspect_ratio"`
	Solidity    float64         `json:"solidity"`
	Circularity float64         `json:"circularity"`
	Extent      float64         `json:"extent"`
	Centroid    geometry.PointF `json:"centroid"`

	Straightness         float64 `json:"straightness"`
	CurvatureVariation   float64 `json:"curvature_variation"`
	StrokeWidthVariation float64 `json:"stroke_width_variation"`
	CornerCount          int     `json:"corner_count"`
	LineSegments         int     `json:"line_segments"`
	CurveSegments        int     `json:"curve_segments"`
	HasStraightLines     bool    `json:"has_straight_lines"`
	HasPerfectCurves     bool    `json:"has_perfect_curves"`
	HasCorners           bool    `json:"has_corners"`
	RegularityScore      float64 `json:"regularity_score"`
	Rectangularity       float64 `json:"rectangularity"`
	CircularityFit       float64 `json:"circularity_fit"`
	// Triangularity is area over half the box area, capped at 2 for
	// contours that wind over themselves.
	Triangularity        float64 `json:"triangularity"`
}

// Elongation returns max(w,h)/min(w,h) of the bounding box, 0 when empty.
func (p Properties) Elongation() float64 {
	w, h := float64(p.BBox.W), float64(p.BBox.H)
	if w <= 0 || h <= 0 {
		return 0
	}
	return math.Max(w, h) / math.Min(w, h)
}

// Measure computes the primitive properties of a contour.
func Measure(c geometry.Contour) Properties {
	area := c.Area()
	perimeter := c.ArcLength(true)
	bbox := c.Bounds()

	p := Properties{
		Area:      area,
		Perimeter: perimeter,
		BBox:      bbox,
		Centroid:  c.Centroid(),
	}
	p.AspectRatio = ratio(float64(bbox.W), float64(bbox.H))
	p.Extent = ratio(area, float64(bbox.Area()))
	p.Solidity = ratio(area, c.ConvexHull().Area())
	if perimeter > 0 {
		p.Circularity = 4 * math.Pi * area / (perimeter * perimeter)
	}
	return p
}

// Describe computes the full feature record for a contour.
func Describe(c geometry.Contour) Properties {
	p := Measure(c)
	if p.Perimeter == 0 || len(c) < 3 {
		return Properties{}
	}

	approx := c.Simplify(approxFraction * p.Perimeter)
	corners := len(approx)

	if corners >= 2 {
		p.Straightness = ratio(
			math.Hypot(float64(approx[0].X-approx[corners-1].X), float64(approx[0].Y-approx[corners-1].Y)),
			c.ArcLength(false),
		)
	}
	p.CurvatureVariation = curvatureVariation(c)
	p.StrokeWidthVariation = strokeWidthVariation(p)

	p.CornerCount = corners
	if corners >= 3 {
		if corners <= maxStraightPoints {
			p.LineSegments = corners
		} else {
			p.CurveSegments = corners
		}
	}
	p.HasStraightLines = corners >= 2 && corners <= maxStraightPoints
	p.HasPerfectCurves = perfectCurve(c, p.Area)
	p.HasCorners = corners >= 3 && corners <= maxCornerPoints
	p.RegularityScore = regularity(len(c), corners, p)

	bboxArea := float64(p.BBox.Area())
	p.Rectangularity = ratio(p.Area, bboxArea)
	p.CircularityFit = ratio(p.Area, c.MinEnclosingCircle().Area())
	p.Triangularity = math.Min(ratio(p.Area, 0.5*bboxArea), maxTriangularity)
	return p
}

// curvatureVariation samples up to 20 evenly spaced points and returns the
// population standard deviation of |v1 x v2|/(|v1||v2|) at interior samples.
func curvatureVariation(c geometry.Contour) float64 {
	if len(c) < minCurvePoints {
		return 0
	}
	n := len(c)
	k := curvatureSamples
	if n < k {
		k = n
	}
	samples := make([]geometry.Point, k)
	for i := 0; i < k; i++ {
		samples[i] = c[i*(n-1)/(k-1)]
	}

	var values []float64
	for i := 1; i < k-1; i++ {
		p1, p2, p3 := samples[i-1], samples[i], samples[i+1]
		v1x, v1y := float64(p2.X-p1.X), float64(p2.Y-p1.Y)
		v2x, v2y := float64(p3.X-p2.X), float64(p3.Y-p2.Y)
		n1, n2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
		if n1 > 0 && n2 > 0 {
			values = append(values, math.Abs(v1x*v2y-v1y*v2x)/(n1*n2))
		}
	}
	return stddev(values)
}

func strokeWidthVariation(p Properties) float64 {
	if p.Perimeter <= 0 {
		return 0
	}
	width := p.Area / p.Perimeter
	expected := math.Max(1, float64(minInt(p.BBox.W, p.BBox.H))/20)
	return math.Min(math.Abs(width-expected)/expected, strokeWidthCap)
}

func perfectCurve(c geometry.Contour, area float64) bool {
	if len(c) < minCurvePoints {
		return false
	}
	e, ok := c.FitEllipse()
	if !ok {
		return false
	}
	fit := ratio(area, e.Area())
	return fit >= ellipseFitLow && fit <= ellipseFitHigh
}

func regularity(points, corners int, p Properties) float64 {
	var scores []float64
	if points > 0 {
		scores = append(scores, 1-float64(corners)/float64(points))
	}
	if p.Solidity > 0 {
		scores = append(scores, p.Solidity)
	}
	if p.BBox.H > 0 {
		scores = append(scores, aspectScore(p.AspectRatio))
	}
	return mean(scores)
}

func aspectScore(aspect float64) float64 {
	switch {
	case aspect >= 0.8 && aspect <= 1.2:
		return 1.0
	case aspect >= 0.4 && aspect <= 2.5:
		return 0.7
	default:
		return 0.3
	}
}

// ratio divides, returning 0 for a non-positive or non-finite denominator.
func ratio(num, den float64) float64 {
	if den <= 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	return num / den
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(values)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
