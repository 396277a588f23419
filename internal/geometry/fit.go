package geometry

import (
	"math"
	"math/rand"
)

// Ellipse describes a fitted ellipse. SemiMajor >= SemiMinor; Angle is the
// major axis direction in degrees.
type Ellipse struct {
	Center    PointF
	SemiMajor float64
	SemiMinor float64
	Angle     float64
}

// Area returns pi*a*b.
func (e Ellipse) Area() float64 {
	return math.Pi * e.SemiMajor * e.SemiMinor
}

// FitEllipse fits an ellipse to the contour vertices from their second order
// moments. A point set spread evenly around an ellipse with semi-axes a and b
// has variances a^2/2 and b^2/2 along its axes. Fewer than five points, or a
// collinear point set, reports false.
func (c Contour) FitEllipse() (Ellipse, bool) {
	n := len(c)
	if n < 5 {
		return Ellipse{}, false
	}
	var sx, sy float64
	for _, p := range c {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	mx, my := sx/float64(n), sy/float64(n)

	var cxx, cyy, cxy float64
	for _, p := range c {
		dx, dy := float64(p.X)-mx, float64(p.Y)-my
		cxx += dx * dx
		cyy += dy * dy
		cxy += dx * dy
	}
	cxx /= float64(n)
	cyy /= float64(n)
	cxy /= float64(n)

	tr := cxx + cyy
	det := cxx*cyy - cxy*cxy
	disc := math.Sqrt(math.Max(0, tr*tr/4-det))
	l1 := tr/2 + disc
	l2 := tr/2 - disc
	if l2 <= 0 {
		return Ellipse{}, false
	}
	return Ellipse{
		Center:    PointF{X: mx, Y: my},
		SemiMajor: math.Sqrt(2 * l1),
		SemiMinor: math.Sqrt(2 * l2),
		Angle:     0.5 * math.Atan2(2*cxy, cxx-cyy) * 180 / math.Pi,
	}, true
}

// Circle is a center and radius.
type Circle struct {
	Center PointF
	Radius float64
}

// Area returns pi*r^2.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) contains(p PointF) bool {
	return math.Hypot(p.X-c.Center.X, p.Y-c.Center.Y) <= c.Radius*(1+1e-9)+1e-9
}

// MinEnclosingCircle returns the smallest circle containing every vertex,
// using Welzl's incremental algorithm over a fixed-seed shuffle so the
// result is reproducible.
func (c Contour) MinEnclosingCircle() Circle {
	if len(c) == 0 {
		return Circle{}
	}
	pts := make([]PointF, len(c))
	for i, p := range c {
		pts[i] = PointF{X: float64(p.X), Y: float64(p.Y)}
	}
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })

	circ := Circle{Center: pts[0]}
	for i := 1; i < len(pts); i++ {
		if circ.contains(pts[i]) {
			continue
		}
		circ = Circle{Center: pts[i]}
		for j := 0; j < i; j++ {
			if circ.contains(pts[j]) {
				continue
			}
			circ = circleFrom2(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if !circ.contains(pts[k]) {
					circ = circleFrom3(pts[i], pts[j], pts[k])
				}
			}
		}
	}
	return circ
}

func circleFrom2(a, b PointF) Circle {
	center := PointF{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return Circle{Center: center, Radius: math.Hypot(a.X-b.X, a.Y-b.Y) / 2}
}

func circleFrom3(a, b, c PointF) Circle {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		// collinear: the circle over the two farthest points
		best := circleFrom2(a, b)
		for _, cand := range []Circle{circleFrom2(a, c), circleFrom2(b, c)} {
			if cand.Radius > best.Radius {
				best = cand
			}
		}
		return best
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return Circle{
		Center: PointF{X: a.X + ux, Y: a.Y + uy},
		Radius: math.Hypot(ux, uy),
	}
}
