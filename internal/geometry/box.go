package geometry

import (
	"fmt"
	"math"
)

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointF is a sub-pixel coordinate, used for centroids and fit centers.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a page or image size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Box is an axis-aligned rectangle covering [X, X+W) x [Y, Y+H).
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the exclusive right edge.
func (b Box) Right() int { return b.X + b.W }

// Bottom returns the exclusive bottom edge.
func (b Box) Bottom() int { return b.Y + b.H }

// Area returns W*H, or 0 for an empty box.
func (b Box) Area() int {
	if b.W <= 0 || b.H <= 0 {
		return 0
	}
	return b.W * b.H
}

// Empty reports whether the box has no positive extent.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Center returns the geometric center of the box.
func (b Box) Center() PointF {
	return PointF{X: float64(b.X) + float64(b.W)/2, Y: float64(b.Y) + float64(b.H)/2}
}

// Slice returns the box as [x, y, w, h] for manifests.
func (b Box) Slice() [4]int {
	return [4]int{b.X, b.Y, b.W, b.H}
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.X, b.Y, b.W, b.H)
}

// Union returns the smallest box containing both a and b.
func (b Box) Union(o Box) Box {
	x1 := minInt(b.X, o.X)
	y1 := minInt(b.Y, o.Y)
	x2 := maxInt(b.Right(), o.Right())
	y2 := maxInt(b.Bottom(), o.Bottom())
	return Box{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Merge returns the envelope of all boxes. It returns the zero Box for an
// empty slice.
func Merge(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out
}

// Pad grows the box by p pixels on every side and clips the result to page.
func (b Box) Pad(p int, page Size) Box {
	x := maxInt(0, b.X-p)
	y := maxInt(0, b.Y-p)
	w := minInt(page.Width-x, b.W+2*p)
	h := minInt(page.Height-y, b.H+2*p)
	return Box{X: x, Y: y, W: w, H: h}
}

// Overlaps reports whether the interiors of two boxes intersect.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X &&
		b.Y < o.Bottom() && b.Bottom() > o.Y
}

// OverlapArea returns the area of the intersection of two boxes.
func (b Box) OverlapArea(o Box) int {
	ox := maxInt(0, minInt(b.Right(), o.Right())-maxInt(b.X, o.X))
	oy := maxInt(0, minInt(b.Bottom(), o.Bottom())-maxInt(b.Y, o.Y))
	return ox * oy
}

// Distance returns the edge-to-edge Euclidean gap between two boxes, 0 when
// they touch or overlap.
func (b Box) Distance(o Box) float64 {
	if b.Right() >= o.X && b.X <= o.Right() &&
		b.Bottom() >= o.Y && b.Y <= o.Bottom() {
		return 0
	}
	dx := maxInt(0, maxInt(b.X-o.Right(), o.X-b.Right()))
	dy := maxInt(0, maxInt(b.Y-o.Bottom(), o.Y-b.Bottom()))
	return math.Hypot(float64(dx), float64(dy))
}

// Within reports whether the box lies fully inside the page.
func (b Box) Within(page Size) bool {
	return b.X >= 0 && b.Y >= 0 && b.Right() <= page.Width && b.Bottom() <= page.Height
}

// Clamp moves and, if needed, shrinks the box so it lies inside the page.
func (b Box) Clamp(page Size) Box {
	if b.W > page.Width {
		b.W = page.Width
	}
	if b.H > page.Height {
		b.H = page.Height
	}
	if b.X < 0 {
		b.X = 0
	}
	if b.Y < 0 {
		b.Y = 0
	}
	if b.Right() > page.Width {
		b.X = page.Width - b.W
	}
	if b.Bottom() > page.Height {
		b.Y = page.Height - b.H
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
