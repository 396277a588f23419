package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareOutline returns every boundary pixel of an axis-aligned square, in
// clockwise image order starting at (x, y).
func squareOutline(x, y, side int) Contour {
	var c Contour
	for i := 0; i < side; i++ {
		c = append(c, Point{x + i, y})
	}
	for i := 0; i < side; i++ {
		c = append(c, Point{x + side, y + i})
	}
	for i := 0; i < side; i++ {
		c = append(c, Point{x + side - i, y + side})
	}
	for i := 0; i < side; i++ {
		c = append(c, Point{x, y + side - i})
	}
	return c
}

func circleOutline(cx, cy, r float64, n int) Contour {
	c := make(Contour, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c[i] = Point{X: int(math.Round(cx + r*math.Cos(a))), Y: int(math.Round(cy + r*math.Sin(a)))}
	}
	return c
}

func TestContourMeasurements(t *testing.T) {
	rect := Contour{{0, 0}, {9, 0}, {9, 4}, {0, 4}}

	assert.Equal(t, Box{X: 0, Y: 0, W: 10, H: 5}, rect.Bounds())
	assert.InDelta(t, 36.0, rect.Area(), 1e-9)
	assert.InDelta(t, 26.0, rect.ArcLength(true), 1e-9)
	assert.InDelta(t, 22.0, rect.ArcLength(false), 1e-9)

	c := rect.Centroid()
	assert.InDelta(t, 4.5, c.X, 1e-9)
	assert.InDelta(t, 2.0, c.Y, 1e-9)
}

func TestContourDegenerate(t *testing.T) {
	var empty Contour
	assert.Equal(t, Box{}, empty.Bounds())
	assert.Zero(t, empty.Area())
	assert.Zero(t, empty.ArcLength(true))
	assert.Equal(t, PointF{}, empty.Centroid())

	line := Contour{{0, 0}, {10, 0}, {20, 0}}
	assert.Zero(t, line.Area())
	assert.Equal(t, PointF{}, line.Centroid(), "zero-area centroid falls back to origin")
	assert.Equal(t, Box{X: 0, Y: 0, W: 21, H: 1}, line.Bounds())
}

func TestConvexHull(t *testing.T) {
	c := Contour{{0, 0}, {5, 2}, {10, 0}, {8, 5}, {10, 10}, {5, 5}, {0, 10}}
	hull := c.ConvexHull()

	require.Len(t, hull, 4)
	assert.ElementsMatch(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, []Point(hull))
	assert.InDelta(t, 100.0, hull.Area(), 1e-9)
	assert.Less(t, c.Area(), hull.Area())
}

func TestSimplifySquare(t *testing.T) {
	c := squareOutline(0, 0, 10)
	approx := c.Simplify(0.02 * c.ArcLength(true))

	require.Len(t, approx, 4)
	assert.ElementsMatch(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, []Point(approx))
}

func TestSimplifyCircleKeepsManyVertices(t *testing.T) {
	c := circleOutline(100, 100, 60, 120)
	approx := c.Simplify(0.02 * c.ArcLength(true))

	assert.GreaterOrEqual(t, len(approx), 6)
	assert.Less(t, len(approx), len(c)/4)
}

func TestSimplifyTiny(t *testing.T) {
	c := Contour{{1, 1}, {2, 2}}
	assert.Equal(t, c, c.Simplify(1))

	same := Contour{{3, 3}, {3, 3}, {3, 3}}
	assert.Equal(t, Contour{{3, 3}}, same.Simplify(1))
}

func TestFitEllipse(t *testing.T) {
	_, ok := Contour{{0, 0}, {1, 0}, {1, 1}, {0, 1}}.FitEllipse()
	assert.False(t, ok, "fewer than five points")

	_, ok = Contour{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}.FitEllipse()
	assert.False(t, ok, "collinear points")

	e, ok := circleOutline(50, 40, 30, 90).FitEllipse()
	require.True(t, ok)
	assert.InDelta(t, 50, e.Center.X, 0.5)
	assert.InDelta(t, 40, e.Center.Y, 0.5)
	assert.InDelta(t, 30, e.SemiMajor, 1)
	assert.InDelta(t, 30, e.SemiMinor, 1)
}

func TestMinEnclosingCircle(t *testing.T) {
	c := Contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}}
	circ := c.MinEnclosingCircle()

	assert.InDelta(t, 5, circ.Center.X, 1e-6)
	assert.InDelta(t, 5, circ.Center.Y, 1e-6)
	assert.InDelta(t, math.Sqrt(50), circ.Radius, 1e-6)

	single := Contour{{7, 3}}.MinEnclosingCircle()
	assert.Equal(t, PointF{X: 7, Y: 3}, single.Center)
	assert.Zero(t, single.Radius)
}

func TestBoxDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want float64
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, 0},
		{"touching", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, 0},
		{"horizontal gap", Box{0, 0, 10, 10}, Box{30, 0, 10, 10}, 20},
		{"vertical gap", Box{0, 0, 10, 10}, Box{0, 25, 10, 10}, 15},
		{"diagonal gap", Box{0, 0, 10, 10}, Box{13, 14, 5, 5}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), 1e-9)
			assert.InDelta(t, tt.want, tt.b.Distance(tt.a), 1e-9)
		})
	}
}

func TestBoxPadAndClamp(t *testing.T) {
	page := Size{Width: 100, Height: 80}

	assert.Equal(t, Box{X: 10, Y: 10, W: 40, H: 30}, Box{20, 20, 20, 10}.Pad(10, page))
	assert.Equal(t, Box{X: 0, Y: 0, W: 30, H: 30}, Box{5, 5, 10, 10}.Pad(10, page))
	assert.Equal(t, Box{X: 85, Y: 65, W: 15, H: 15}, Box{95, 75, 5, 5}.Pad(10, page))

	assert.Equal(t, Box{X: 90, Y: 70, W: 10, H: 10}, Box{95, 75, 10, 10}.Clamp(page))
	assert.Equal(t, Box{X: 0, Y: 0, W: 100, H: 80}, Box{-5, -5, 200, 200}.Clamp(page))
	assert.True(t, Box{95, 75, 10, 10}.Clamp(page).Within(page))
}

func TestBoxOverlap(t *testing.T) {
	a := Box{0, 0, 10, 10}
	assert.True(t, a.Overlaps(Box{5, 5, 10, 10}))
	assert.False(t, a.Overlaps(Box{10, 0, 10, 10}), "shared edge is not an overlap")
	assert.Equal(t, 25, a.OverlapArea(Box{5, 5, 10, 10}))
	assert.Zero(t, a.OverlapArea(Box{20, 20, 5, 5}))

	assert.Equal(t, Box{0, 0, 30, 25}, Merge([]Box{a, {20, 15, 10, 10}}))
	assert.Equal(t, Box{}, Merge(nil))
}
