package cluster

import (
	"math"
	"sort"
)

// Sort orders clusters by the configured method. Unknown methods fall back
// to area order. The input slice is not modified.
func (c *Clusterer) Sort(clusters []Cluster) []Cluster {
	out := make([]Cluster, len(clusters))
	copy(out, clusters)

	switch c.cfg.SortMethod {
	case SortReadingOrder:
		return readingOrder(out, c.cfg.RowBandFactor)
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalArea > out[j].TotalArea
		})
		return out
	}
}

// readingOrder sorts by top edge, groups clusters whose top lies within
// bandFactor * mean height of the first cluster of the current row, and
// orders each row left to right.
func readingOrder(clusters []Cluster, bandFactor float64) []Cluster {
	if len(clusters) == 0 {
		return clusters
	}
	var sumH float64
	for _, cl := range clusters {
		sumH += float64(cl.Box.H)
	}
	band := bandFactor * sumH / float64(len(clusters))

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Box.Y < clusters[j].Box.Y
	})

	out := make([]Cluster, 0, len(clusters))
	rowStart := 0
	anchor := clusters[0].Box.Y
	flush := func(end int) {
		row := clusters[rowStart:end]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].Box.X < row[j].Box.X
		})
		out = append(out, row...)
	}
	for i := 1; i < len(clusters); i++ {
		y := clusters[i].Box.Y
		if math.Abs(float64(y-anchor)) <= band {
			continue
		}
		flush(i)
		rowStart = i
		anchor = y
	}
	flush(len(clusters))
	return out
}
