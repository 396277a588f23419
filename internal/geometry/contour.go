package geometry

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Contour is an ordered, implicitly closed outline of pixel points.
type Contour []Point

// Bounds returns the bounding rectangle using the OpenCV pixel convention:
// W and H count pixels, so a single point yields a 1x1 box.
func (c Contour) Bounds() Box {
	if len(c) == 0 {
		return Box{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := minX, minY
	for _, p := range c[1:] {
		minX = minInt(minX, p.X)
		minY = minInt(minY, p.Y)
		maxX = maxInt(maxX, p.X)
		maxY = maxInt(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
}

// Ring converts the contour to a closed orb ring.
func (c Contour) Ring() orb.Ring {
	if len(c) == 0 {
		return nil
	}
	r := make(orb.Ring, 0, len(c)+1)
	for _, p := range c {
		r = append(r, orb.Point{float64(p.X), float64(p.Y)})
	}
	return append(r, r[0])
}

// LineString converts the contour to an open orb line string.
func (c Contour) LineString() orb.LineString {
	ls := make(orb.LineString, len(c))
	for i, p := range c {
		ls[i] = orb.Point{float64(p.X), float64(p.Y)}
	}
	return ls
}

// Area returns the enclosed polygon area.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	return math.Abs(planar.Area(c.Ring()))
}

// ArcLength returns the length of the outline, including the closing segment
// when closed is true.
func (c Contour) ArcLength(closed bool) float64 {
	if len(c) < 2 {
		return 0
	}
	if closed {
		return planar.Length(orb.LineString(c.Ring()))
	}
	return planar.Length(c.LineString())
}

// Moments holds the raw spatial moments of the polygon.
type Moments struct {
	M00, M10, M01 float64
}

// PolygonMoments computes the zeroth and first order moments of the contour
// treated as a polygon (Green's theorem).
func (c Contour) PolygonMoments() Moments {
	var m Moments
	n := len(c)
	if n < 3 {
		return m
	}
	for i := 0; i < n; i++ {
		p, q := c[i], c[(i+1)%n]
		cross := float64(p.X*q.Y - q.X*p.Y)
		m.M00 += cross
		m.M10 += float64(p.X+q.X) * cross
		m.M01 += float64(p.Y+q.Y) * cross
	}
	m.M00 /= 2
	m.M10 /= 6
	m.M01 /= 6
	return m
}

// Centroid returns the polygon centroid, or (0,0) when the area is zero.
func (c Contour) Centroid() PointF {
	m := c.PolygonMoments()
	if m.M00 == 0 {
		return PointF{}
	}
	return PointF{X: m.M10 / m.M00, Y: m.M01 / m.M00}
}

// ConvexHull returns the hull vertices in counter-clockwise order using the
// monotone chain algorithm. Collinear points are dropped.
func (c Contour) ConvexHull() Contour {
	if len(c) < 3 {
		out := make(Contour, len(c))
		copy(out, c)
		return out
	}
	pts := make([]Point, len(c))
	copy(pts, c)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	hull := make(Contour, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// turn is the z component of (b-a) x (c-a).
func turn(a, b, c Point) int {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func dist(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
