package cluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/notesplit/internal/geometry"
)

func TestResolveOverlaps(t *testing.T) {
	page := geometry.Size{Width: 2000, Height: 2000}
	tests := []struct {
		name      string
		big       Cluster
		small     Cluster
		wantSmall geometry.Box
	}{
		{
			name:      "push right",
			big:       boxCluster(0, 0, 0, 100, 100),
			small:     boxCluster(1, 80, 20, 60, 50),
			wantSmall: geometry.Box{X: 101, Y: 20, W: 39, H: 50},
		},
		{
			name:      "pull right edge left",
			big:       boxCluster(0, 100, 0, 100, 100),
			small:     boxCluster(1, 40, 20, 80, 50),
			wantSmall: geometry.Box{X: 40, Y: 20, W: 59, H: 50},
		},
		{
			name:      "push down",
			big:       boxCluster(0, 0, 0, 100, 100),
			small:     boxCluster(1, 10, 90, 60, 50),
			wantSmall: geometry.Box{X: 10, Y: 101, W: 60, H: 39},
		},
		{
			name:      "pull bottom edge up",
			big:       boxCluster(0, 0, 100, 100, 100),
			small:     boxCluster(1, 10, 60, 60, 50),
			wantSmall: geometry.Box{X: 10, Y: 60, W: 60, H: 39},
		},
		{
			name:      "floor at minimum side",
			big:       boxCluster(0, 0, 0, 100, 100),
			small:     boxCluster(1, 95, 10, 12, 80),
			wantSmall: geometry.Box{X: 101, Y: 10, W: 10, H: 80},
		},
	}
	c := New(DefaultConfig(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// smaller cluster first to show the pass ranks by area, not position
			in := []Cluster{tt.small, tt.big}
			out := c.ResolveOverlaps(in, page)

			require.Len(t, out, 2)
			assert.Equal(t, []int{1, 0}, clusterIDs(out), "input order is kept")
			assert.Equal(t, tt.wantSmall, out[0].Box)
			assert.Equal(t, tt.big.Box, out[1].Box)
			assert.Equal(t, tt.small.Box, in[0].Box, "input is not modified")
		})
	}
}

func TestResolveOverlapsClampsToPage(t *testing.T) {
	page := geometry.Size{Width: 150, Height: 150}
	c := New(DefaultConfig(), nil)
	out := c.ResolveOverlaps([]Cluster{
		boxCluster(0, 0, 0, 140, 140),
		boxCluster(1, 120, 10, 30, 50),
	}, page)

	assert.True(t, out[1].Box.Within(page))
	assert.Equal(t, geometry.Box{X: 140, Y: 10, W: 10, H: 50}, out[1].Box)
}

func TestResolveOverlapsTwoClusterFixedPoint(t *testing.T) {
	page := geometry.Size{Width: 2000, Height: 2000}
	c := New(DefaultConfig(), nil)
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 500; i++ {
		in := []Cluster{randomCluster(rng, 0), randomCluster(rng, 1)}
		once := c.ResolveOverlaps(in, page)
		twice := c.ResolveOverlaps(once, page)
		require.Equal(t, once, twice, "input %v %v", in[0].Box, in[1].Box)
	}
}

func TestResolveOverlapsSingle(t *testing.T) {
	c := New(DefaultConfig(), nil)
	in := []Cluster{boxCluster(0, 5, 5, 50, 50)}
	assert.Equal(t, in, c.ResolveOverlaps(in, testPage))
	assert.Empty(t, c.ResolveOverlaps(nil, testPage))
}

func randomCluster(rng *rand.Rand, id int) Cluster {
	w, h := 10+rng.Intn(290), 10+rng.Intn(290)
	return Cluster{
		ID:        id,
		Box:       geometry.Box{X: rng.Intn(1000), Y: rng.Intn(1000), W: w, H: h},
		TotalArea: rng.Float64() * 10000,
	}
}
