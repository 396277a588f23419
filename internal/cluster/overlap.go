package cluster

import (
	"sort"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// ResolveOverlaps returns a copy of clusters, in the same order, in which
// boxes no longer overlap a larger cluster's box.
//
// Clusters are visited largest total area first. Each later cluster that
// overlaps the current one is shrunk along the axis with the smaller overlap:
// its nearer edge moves past the larger box by one pixel, with the side
// floored at MinSide, and the result is kept on the page. This is a single
// greedy pass; three or more mutually overlapping clusters may keep residual
// overlap.
func (c *Clusterer) ResolveOverlaps(clusters []Cluster, page geometry.Size) []Cluster {
	out := make([]Cluster, len(clusters))
	copy(out, clusters)
	if len(out) < 2 {
		return out
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return out[order[a]].TotalArea > out[order[b]].TotalArea
	})

	for a, i := range order {
		big := out[i].Box
		for _, j := range order[a+1:] {
			small := out[j].Box
			if !big.Overlaps(small) {
				continue
			}
			shrunk := shrinkAway(big, small, c.cfg.MinSide).Clamp(page)
			c.logger.Debug("shrinking overlapping cluster",
				"cluster", out[j].ID, "against", out[i].ID,
				"from", small.String(), "to", shrunk.String())
			out[j].Box = shrunk
		}
	}
	return out
}

// shrinkAway moves the nearer edge of small out of big along the axis with
// the smaller overlap extent.
func shrinkAway(big, small geometry.Box, minSide int) geometry.Box {
	overlapX := minInt(big.Right(), small.Right()) - maxInt(big.X, small.X)
	overlapY := minInt(big.Bottom(), small.Bottom()) - maxInt(big.Y, small.Y)

	if overlapX < overlapY {
		if small.X < big.X {
			small.W = maxInt(minSide, big.X-small.X-1)
		} else {
			shift := big.Right() - small.X + 1
			small.X += shift
			small.W = maxInt(minSide, small.W-shift)
		}
		return small
	}
	if small.Y < big.Y {
		small.H = maxInt(minSide, big.Y-small.Y-1)
	} else {
		shift := big.Bottom() - small.Y + 1
		small.Y += shift
		small.H = maxInt(minSide, small.H-shift)
	}
	return small
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
