package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/notesplit/internal/classifier"
	"github.com/ironsheep/notesplit/internal/geometry"
)

func boxCluster(id int, x, y, w, h int) Cluster {
	return Cluster{ID: id, MemberIDs: []int{id}, Box: geometry.Box{X: x, Y: y, W: w, H: h}, TotalArea: float64(w * h)}
}

func clusterIDs(clusters []Cluster) []int {
	out := make([]int, len(clusters))
	for i, cl := range clusters {
		out[i] = cl.ID
	}
	return out
}

func TestReadingOrder(t *testing.T) {
	const (
		topRight = iota
		topLeft
		bottomLeft
		bottomRight
		topMiddle
	)
	clusters := []Cluster{
		boxCluster(topRight, 200, 50, 50, 30),
		boxCluster(topLeft, 20, 60, 40, 25),
		boxCluster(bottomLeft, 30, 120, 60, 35),
		boxCluster(bottomRight, 150, 110, 45, 28),
		boxCluster(topMiddle, 100, 55, 45, 30),
	}
	cfg := DefaultConfig()
	cfg.SortMethod = SortReadingOrder

	got := New(cfg, nil).Sort(clusters)

	assert.Equal(t, []int{topLeft, topMiddle, topRight, bottomLeft, bottomRight}, clusterIDs(got))
	assert.Equal(t, topRight, clusters[0].ID, "input is not reordered")
}

func TestReadingOrderRowsAnchorOnFirstCluster(t *testing.T) {
	// heights of 20 give a band of 10: 0 and 8 share a row, 16 starts a new one
	clusters := []Cluster{
		boxCluster(0, 300, 0, 20, 20),
		boxCluster(1, 200, 8, 20, 20),
		boxCluster(2, 100, 16, 20, 20),
	}
	cfg := DefaultConfig()
	cfg.SortMethod = SortReadingOrder

	got := New(cfg, nil).Sort(clusters)
	assert.Equal(t, []int{1, 0, 2}, clusterIDs(got))
}

func TestAreaOrderIsStable(t *testing.T) {
	clusters := []Cluster{
		{ID: 0, TotalArea: 1000},
		{ID: 1, TotalArea: 800},
		{ID: 2, TotalArea: 1500},
		{ID: 3, TotalArea: 1000},
	}
	got := New(DefaultConfig(), nil).Sort(clusters)
	assert.Equal(t, []int{2, 0, 3, 1}, clusterIDs(got))
}

func TestClusterReadingOrderEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SortMethod = SortReadingOrder
	cfg.Proximity = 20
	cfg.Padding = 0
	c := New(cfg, nil)

	diagrams := []classifier.Shape{
		diagram(0, geometry.Box{X: 200, Y: 50, W: 50, H: 30}),
		diagram(1, geometry.Box{X: 20, Y: 60, W: 40, H: 25}),
		diagram(2, geometry.Box{X: 30, Y: 120, W: 60, H: 35}),
		diagram(3, geometry.Box{X: 150, Y: 110, W: 45, H: 28}),
		diagram(4, geometry.Box{X: 100, Y: 55, W: 45, H: 30}),
	}
	out := c.Cluster(diagrams, nil, nil, testPage)

	require.Len(t, out, 5)
	var members []int
	for i, cl := range out {
		assert.Equal(t, i, cl.ID)
		members = append(members, cl.MemberIDs...)
	}
	assert.Equal(t, []int{1, 4, 0, 2, 3}, members)
}

func TestParseSortMethod(t *testing.T) {
	m, err := ParseSortMethod("reading_order")
	require.NoError(t, err)
	assert.Equal(t, SortReadingOrder, m)

	_, err = ParseSortMethod("size")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Proximity = -1
	assert.ErrorContains(t, cfg.Validate(), "clustering_proximity")

	cfg = DefaultConfig()
	cfg.SortMethod = "random"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxDiagrams = 0
	assert.ErrorContains(t, cfg.Validate(), "max_diagrams")
}
