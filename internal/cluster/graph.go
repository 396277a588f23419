package cluster

import (
	"math"
	"sort"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// minCellSize keeps the grid coarse when the proximity threshold is tiny.
const minCellSize = 64

// gridIndex buckets boxes into uniform square cells.
type gridIndex struct {
	cell  int
	boxes []geometry.Box
	cells map[[2]int][]int
}

func newGridIndex(boxes []geometry.Box, cellSize float64) *gridIndex {
	cell := int(math.Ceil(cellSize))
	if cell < minCellSize {
		cell = minCellSize
	}
	g := &gridIndex{cell: cell, boxes: boxes, cells: make(map[[2]int][]int)}
	for i, b := range boxes {
		g.each(b.X, b.Y, b.Right(), b.Bottom(), func(key [2]int) {
			g.cells[key] = append(g.cells[key], i)
		})
	}
	return g
}

// each visits every cell touched by the inclusive rectangle [x1,x2]x[y1,y2].
func (g *gridIndex) each(x1, y1, x2, y2 int, fn func([2]int)) {
	for cx := floorDiv(x1, g.cell); cx <= floorDiv(x2, g.cell); cx++ {
		for cy := floorDiv(y1, g.cell); cy <= floorDiv(y2, g.cell); cy++ {
			fn([2]int{cx, cy})
		}
	}
}

// near returns, in ascending order, the indices of boxes sharing a cell with
// b grown by margin on every side.
func (g *gridIndex) near(b geometry.Box, margin int) []int {
	seen := make(map[int]struct{})
	g.each(b.X-margin, b.Y-margin, b.Right()+margin, b.Bottom()+margin, func(key [2]int) {
		for _, i := range g.cells[key] {
			seen[i] = struct{}{}
		}
	})
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// graph is an undirected graph stored as sparse adjacency sets.
type graph struct {
	adj []map[int]struct{}
}

func newGraph(n int) *graph {
	g := &graph{adj: make([]map[int]struct{}, n)}
	for i := range g.adj {
		g.adj[i] = make(map[int]struct{})
	}
	return g
}

func (g *graph) connect(i, j int) {
	g.adj[i][j] = struct{}{}
	g.adj[j][i] = struct{}{}
}

func (g *graph) adjacent(i, j int) bool {
	_, ok := g.adj[i][j]
	return ok
}

func (g *graph) neighbors(i int) []int {
	out := make([]int, 0, len(g.adj[i]))
	for j := range g.adj[i] {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// components returns the connected components, each in visit order, with
// components ordered by their lowest node.
func (g *graph) components() [][]int {
	n := len(g.adj)
	visited := make([]bool, n)
	var out [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[cur] {
				continue
			}
			visited[cur] = true
			comp = append(comp, cur)
			for _, j := range g.neighbors(cur) {
				if !visited[j] {
					stack = append(stack, j)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}
