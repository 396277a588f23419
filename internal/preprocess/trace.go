package preprocess

import (
	"image"
	"sort"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// Moore neighborhood, clockwise on screen, starting west.
var directions = [8]geometry.Point{
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
}

func directionOf(dx, dy int) int {
	for i, d := range directions {
		if d.X == dx && d.Y == dy {
			return i
		}
	}
	return -1
}

// inkMask is a binary raster with component labels.
type inkMask struct {
	w, h   int
	ink    []bool
	labels []int32
}

func newInkMask(bin *image.Gray) *inkMask {
	b := bin.Bounds()
	m := &inkMask{w: b.Dx(), h: b.Dy()}
	m.ink = make([]bool, m.w*m.h)
	m.labels = make([]int32, m.w*m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.ink[y*m.w+x] = bin.GrayAt(b.Min.X+x, b.Min.Y+y).Y >= 128
		}
	}
	return m
}

func (m *inkMask) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.w && y < m.h
}

func (m *inkMask) isInk(x, y int) bool {
	return m.in(x, y) && m.ink[y*m.w+x]
}

// label assigns 8-connected component ids starting at 1 and returns the
// first pixel, in raster order, of each component.
func (m *inkMask) label() []geometry.Point {
	var starts []geometry.Point
	var next int32
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			i := y*m.w + x
			if !m.ink[i] || m.labels[i] != 0 {
				continue
			}
			next++
			starts = append(starts, geometry.Point{X: x, Y: y})
			m.fill(x, y, next)
		}
	}
	return starts
}

// fill floods one component using an explicit stack.
func (m *inkMask) fill(x, y int, id int32) {
	stack := []geometry.Point{{X: x, Y: y}}
	m.labels[y*m.w+x] = id
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range directions {
			nx, ny := p.X+d.X, p.Y+d.Y
			if !m.isInk(nx, ny) {
				continue
			}
			j := ny*m.w + nx
			if m.labels[j] != 0 {
				continue
			}
			m.labels[j] = id
			stack = append(stack, geometry.Point{X: nx, Y: ny})
		}
	}
}

// outside marks background pixels 4-connected to the image border.
func (m *inkMask) outside() []bool {
	seen := make([]bool, m.w*m.h)
	var stack []geometry.Point
	push := func(x, y int) {
		if !m.in(x, y) {
			return
		}
		i := y*m.w + x
		if m.ink[i] || seen[i] {
			return
		}
		seen[i] = true
		stack = append(stack, geometry.Point{X: x, Y: y})
	}
	for x := 0; x < m.w; x++ {
		push(x, 0)
		push(x, m.h-1)
	}
	for y := 0; y < m.h; y++ {
		push(0, y)
		push(m.w-1, y)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X-1, p.Y)
		push(p.X+1, p.Y)
		push(p.X, p.Y-1)
		push(p.X, p.Y+1)
	}
	return seen
}

// TraceExternal returns the compressed outer border of every ink component
// that does not sit inside a hole of another component, in raster order of
// the component's first pixel.
func TraceExternal(bin *image.Gray) []geometry.Contour {
	m := newInkMask(bin)
	starts := m.label()
	if len(starts) == 0 {
		return nil
	}
	outer := m.outside()

	contours := make([]geometry.Contour, 0, len(starts))
	for _, s := range starts {
		// the first pixel's west neighbor is background; inside a hole it
		// is not reachable from the border
		if s.X > 0 && !outer[s.Y*m.w+s.X-1] {
			continue
		}
		contours = append(contours, compress(m.trace(s)))
	}
	return contours
}

// trace follows the border of the component containing s clockwise,
// starting with the west neighbor as the backtrack.
func (m *inkMask) trace(s geometry.Point) geometry.Contour {
	id := m.labels[s.Y*m.w+s.X]
	member := func(x, y int) bool {
		return m.isInk(x, y) && m.labels[y*m.w+x] == id
	}
	// step searches clockwise around p after the backtrack direction and
	// returns the next border pixel with its new backtrack direction.
	step := func(p geometry.Point, back int) (geometry.Point, int, bool) {
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			q := geometry.Point{X: p.X + directions[d].X, Y: p.Y + directions[d].Y}
			if !member(q.X, q.Y) {
				continue
			}
			prev := directions[(d+7)%8]
			nb := directionOf(p.X+prev.X-q.X, p.Y+prev.Y-q.Y)
			return q, nb, true
		}
		return geometry.Point{}, 0, false
	}

	contour := geometry.Contour{s}
	p, back := s, 0
	second, nb, ok := step(p, back)
	if !ok {
		return contour
	}
	p, back = second, nb

	limit := 4*m.w*m.h + 8
	for i := 0; i < limit; i++ {
		if p == s {
			q, _, ok := step(p, back)
			if !ok || q == second {
				break
			}
		}
		contour = append(contour, p)
		q, nb, ok := step(p, back)
		if !ok {
			break
		}
		p, back = q, nb
	}
	return contour
}

// compress drops points that continue a straight run, keeping the ends.
func compress(c geometry.Contour) geometry.Contour {
	n := len(c)
	if n < 3 {
		return c
	}
	out := make(geometry.Contour, 0, n)
	for i := 0; i < n; i++ {
		prev, cur, next := c[(i+n-1)%n], c[i], c[(i+1)%n]
		if directionOf(sign(cur.X-prev.X), sign(cur.Y-prev.Y)) != directionOf(sign(next.X-cur.X), sign(next.Y-cur.Y)) {
			out = append(out, cur)
		}
	}
	if len(out) == 0 {
		return c[:1]
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// sortRaster orders contours by their topmost, then leftmost, point.
func sortRaster(contours []geometry.Contour) {
	first := func(c geometry.Contour) geometry.Point {
		best := c[0]
		for _, p := range c[1:] {
			if p.Y < best.Y || (p.Y == best.Y && p.X < best.X) {
				best = p
			}
		}
		return best
	}
	sort.SliceStable(contours, func(i, j int) bool {
		if len(contours[i]) == 0 || len(contours[j]) == 0 {
			return len(contours[i]) > len(contours[j])
		}
		a, b := first(contours[i]), first(contours[j])
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
