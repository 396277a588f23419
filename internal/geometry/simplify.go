package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify returns the Douglas-Peucker approximation of the closed contour
// with the given tolerance in pixels.
//
// The contour is split at two mutually distant vertices and each half is
// simplified as an open chain, so the split points always survive. The result
// does not repeat its first point.
func (c Contour) Simplify(epsilon float64) Contour {
	n := len(c)
	if n < 3 {
		out := make(Contour, n)
		copy(out, c)
		return out
	}

	a := farthestFrom(c, 0)
	b := farthestFrom(c, a)
	if c[a] == c[b] {
		return Contour{c[a]}
	}

	first := chain(c, a, b)
	second := chain(c, b, a)

	out := make(Contour, 0, n)
	out = append(out, douglasPeucker(first, epsilon)...)
	tail := douglasPeucker(second, epsilon)
	// both chains share their end points
	out = append(out, tail[1:len(tail)-1]...)
	return out
}

// chain returns the closed-contour vertices from index i to j inclusive,
// walking forward and wrapping around.
func chain(c Contour, i, j int) Contour {
	n := len(c)
	out := Contour{c[i]}
	for k := (i + 1) % n; ; k = (k + 1) % n {
		out = append(out, c[k])
		if k == j {
			break
		}
	}
	return out
}

func farthestFrom(c Contour, i int) int {
	best, bestD := i, -1.0
	for k, p := range c {
		if d := dist(c[i], p); d > bestD {
			best, bestD = k, d
		}
	}
	return best
}

func douglasPeucker(open Contour, epsilon float64) Contour {
	if len(open) <= 2 {
		return open
	}
	s := simplify.DouglasPeucker(epsilon).Simplify(open.LineString().Clone())
	ls, ok := s.(orb.LineString)
	if !ok || len(ls) < 2 {
		return Contour{open[0], open[len(open)-1]}
	}
	out := make(Contour, len(ls))
	for i, p := range ls {
		out[i] = Point{X: int(math.Round(p[0])), Y: int(math.Round(p[1]))}
	}
	return out
}
