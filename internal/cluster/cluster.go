package cluster

import (
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/ironsheep/notesplit/internal/classifier"
	"github.com/ironsheep/notesplit/internal/geometry"
)

// Cluster is one extracted diagram region.
type Cluster struct {
	ID int `json:"id"`
	// MemberIDs lists the diagram shape ids, ascending, followed by the ids of
	// the connectors that bridged them.
	MemberIDs    []int           `json:"member_ids"`
	ConnectorIDs []int           `json:"connector_ids"`
	Box          geometry.Box    `json:"bbox"`
	Centroid     geometry.PointF `json:"centroid"`
	TotalArea    float64         `json:"total_area"`
	Confidence   float64         `json:"confidence"`
}

// bridge records that connector c linked diagrams i and j.
type bridge struct {
	i, j, c int
}

// Clusterer groups diagram shapes into regions.
type Clusterer struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a clusterer. A nil logger discards output.
func New(cfg Config, logger *slog.Logger) *Clusterer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Clusterer{cfg: cfg, logger: logger}
}

// Config returns the configuration the clusterer was built with.
func (c *Clusterer) Config() Config {
	return c.cfg
}

// Cluster builds the ordered, capped list of diagram regions for one page.
//
// Diagram shapes are linked when their boxes lie within the proximity
// threshold or when a connector sits between them. Each connected component
// becomes a padded region; regions dominated by a handwriting box are
// dropped. Input order determines tie-breaking.
func (c *Clusterer) Cluster(diagrams, connectors, handwriting []classifier.Shape, page geometry.Size) []Cluster {
	if len(diagrams) == 0 {
		return []Cluster{}
	}
	if c.cfg.LargeShapeCount > 0 && len(diagrams) > c.cfg.LargeShapeCount {
		c.logger.Warn("diagram shape count exceeds the bridging scaling limit",
			"count", len(diagrams), "limit", c.cfg.LargeShapeCount)
	}
	c.logger.Debug("clustering diagram shapes",
		"diagrams", len(diagrams), "connectors", len(connectors), "handwriting", len(handwriting))

	boxes := make([]geometry.Box, len(diagrams))
	for i, d := range diagrams {
		boxes[i] = d.Properties.BBox
	}
	g, bridges := c.link(boxes, connectors)

	var clusters []Cluster
	for _, comp := range g.components() {
		cl, ok := c.build(comp, diagrams, connectors, bridges, handwriting, page)
		if !ok {
			continue
		}
		cl.ID = len(clusters)
		clusters = append(clusters, cl)
	}

	clusters = c.Sort(clusters)
	if c.cfg.MaxDiagrams > 0 && len(clusters) > c.cfg.MaxDiagrams {
		c.logger.Debug("limiting clusters", "found", len(clusters), "max", c.cfg.MaxDiagrams)
		clusters = clusters[:c.cfg.MaxDiagrams]
	}
	for i := range clusters {
		clusters[i].ID = i
	}
	if clusters == nil {
		clusters = []Cluster{}
	}
	c.logger.Debug("created diagram clusters", "count", len(clusters))
	return clusters
}

// link builds the proximity graph and adds connector bridges between pairs
// that are not already adjacent. A pair is bridged by the first connector,
// in input order, that sits between it.
func (c *Clusterer) link(boxes []geometry.Box, connectors []classifier.Shape) (*graph, []bridge) {
	g := newGraph(len(boxes))
	index := newGridIndex(boxes, c.cfg.Proximity)
	margin := int(math.Ceil(c.cfg.Proximity))

	for i, b := range boxes {
		for _, j := range index.near(b, margin) {
			if j <= i {
				continue
			}
			if b.Distance(boxes[j]) <= c.cfg.Proximity {
				g.connect(i, j)
			}
		}
	}

	t := c.cfg.ConnectorBridgeThreshold
	bridged := make(map[[2]int]bool)
	var bridges []bridge
	for ci, conn := range connectors {
		cb := conn.Properties.BBox
		near := index.near(cb, t)
		for a := 0; a < len(near); a++ {
			i := near[a]
			if !nearBox(boxes[i], cb, t) {
				continue
			}
			for _, j := range near[a+1:] {
				if g.adjacent(i, j) || bridged[[2]int{i, j}] {
					continue
				}
				if !nearBox(boxes[j], cb, t) || !spansBetween(boxes[i], boxes[j], cb, t) {
					continue
				}
				bridged[[2]int{i, j}] = true
				bridges = append(bridges, bridge{i: i, j: j, c: ci})
				c.logger.Debug("connector bridges diagrams", "connector", conn.ID, "a", i, "b", j)
			}
		}
	}
	for _, br := range bridges {
		g.connect(br.i, br.j)
	}
	return g, bridges
}

// nearBox reports whether the connector box comes within t pixels of b on
// both axes.
func nearBox(b, conn geometry.Box, t int) bool {
	horizontal := conn.X < b.Right()+t && conn.Right() > b.X-t
	vertical := conn.Y < b.Bottom()+t && conn.Bottom() > b.Y-t
	return horizontal && vertical
}

// spansBetween reports whether the connector's horizontal extent reaches
// from one box toward the other.
func spansBetween(a, b, conn geometry.Box, t int) bool {
	return (conn.X <= a.Right()+t && conn.Right() >= b.X-t) ||
		(conn.X <= b.Right()+t && conn.Right() >= a.X-t)
}

// build turns a connected component into a cluster. It reports false when
// the padded region is rejected as text.
func (c *Clusterer) build(comp []int, diagrams, connectors []classifier.Shape, bridges []bridge,
	handwriting []classifier.Shape, page geometry.Size) (Cluster, bool) {

	sort.Ints(comp)
	inComp := make(map[int]bool, len(comp))
	for _, i := range comp {
		inComp[i] = true
	}
	connSet := make(map[int]bool)
	for _, br := range bridges {
		if inComp[br.i] && inComp[br.j] {
			connSet[br.c] = true
		}
	}
	connIdx := make([]int, 0, len(connSet))
	for ci := range connSet {
		connIdx = append(connIdx, ci)
	}
	sort.Ints(connIdx)

	var (
		memberBoxes []geometry.Box
		members     []int
		connIDs     []int
		totalArea   float64
		confSum     float64
	)
	for _, i := range comp {
		d := diagrams[i]
		memberBoxes = append(memberBoxes, d.Properties.BBox)
		members = append(members, d.ID)
		totalArea += d.Properties.Area
		confSum += d.Confidence
	}
	for _, ci := range connIdx {
		conn := connectors[ci]
		memberBoxes = append(memberBoxes, conn.Properties.BBox)
		members = append(members, conn.ID)
		connIDs = append(connIDs, conn.ID)
		totalArea += conn.Properties.Area
	}

	box := geometry.Merge(memberBoxes).Pad(c.cfg.Padding, page)
	box = ensureMinSide(box, c.cfg.MinSide, page)

	if hw, ok := c.textOverlap(box, handwriting); ok {
		c.logger.Debug("cluster rejected, overlaps handwriting",
			"bbox", box.String(), "handwriting", hw, "members", members)
		return Cluster{}, false
	}

	return Cluster{
		MemberIDs:    members,
		ConnectorIDs: connIDs,
		Box:          box,
		Centroid:     box.Center(),
		TotalArea:    totalArea,
		Confidence:   confSum / float64(len(comp)),
	}, true
}

// textOverlap returns the id of the first handwriting shape, within the
// buffer of box, whose overlap exceeds the rejection fraction of box.
func (c *Clusterer) textOverlap(box geometry.Box, handwriting []classifier.Shape) (int, bool) {
	buf := c.cfg.TextBuffer
	limit := c.cfg.TextOverlapRejection * float64(box.Area())
	for _, h := range handwriting {
		hb := h.Properties.BBox
		if box.X < hb.Right()+buf && box.Right() > hb.X-buf &&
			box.Y < hb.Bottom()+buf && box.Bottom() > hb.Y-buf {
			if float64(box.OverlapArea(hb)) > limit {
				return h.ID, true
			}
		}
	}
	return 0, false
}

// ensureMinSide grows a box narrower or shorter than minSide around its
// center, then keeps it on the page.
func ensureMinSide(b geometry.Box, minSide int, page geometry.Size) geometry.Box {
	if b.W < minSide {
		b.X -= (minSide - b.W) / 2
		b.W = minSide
	}
	if b.H < minSide {
		b.Y -= (minSide - b.H) / 2
		b.H = minSide
	}
	return b.Clamp(page)
}
