package classifier

import "github.com/ironsheep/notesplit/internal/geometry"

// Partition groups classified shapes by label. It is the only input the
// clusterer needs.
type Partition struct {
	Diagrams    []Shape `json:"diagrams"`
	Connectors  []Shape `json:"connectors"`
	Handwriting []Shape `json:"handwriting"`
	Uncertain   []Shape `json:"uncertain"`
}

// Counts returns the number of shapes per label.
func (p Partition) Counts() map[Label]int {
	return map[Label]int{
		Diagram:     len(p.Diagrams),
		Connector:   len(p.Connectors),
		Handwriting: len(p.Handwriting),
		Uncertain:   len(p.Uncertain),
	}
}

// Partition splits shapes by label, promoting straight, elongated
// handwriting strokes to connectors. Strokes spanning more than the
// configured fraction of the page (ruled lines, underlines) stay handwriting.
// Input order is preserved within each group.
func (c *Classifier) Partition(shapes []Shape, page geometry.Size) Partition {
	var p Partition
	for _, s := range shapes {
		switch s.Label {
		case Diagram:
			p.Diagrams = append(p.Diagrams, s)
		case Connector:
			p.Connectors = append(p.Connectors, s)
		case Handwriting:
			if c.IsConnector(s, page) {
				s.Label = Connector
				p.Connectors = append(p.Connectors, s)
				continue
			}
			p.Handwriting = append(p.Handwriting, s)
		case Uncertain:
			p.Uncertain = append(p.Uncertain, s)
		}
	}
	c.logger.Debug("partitioned shapes",
		"diagrams", len(p.Diagrams),
		"connectors", len(p.Connectors),
		"handwriting", len(p.Handwriting),
		"uncertain", len(p.Uncertain))
	return p
}

// IsConnector reports whether a shape looks like an arrow or link stroke.
func (c *Classifier) IsConnector(s Shape, page geometry.Size) bool {
	cc := c.cfg.Connector
	if !cc.Enabled {
		return false
	}
	props := s.Properties
	if props.Elongation() < cc.MinElongation || props.Straightness < cc.MinStraightness {
		return false
	}

	w, h := props.BBox.W, props.BBox.H
	length, span := w, page.Width
	if h > w {
		length, span = h, page.Height
	}
	if length < cc.MinLength {
		return false
	}
	if span > 0 && float64(length) > cc.MaxPageFraction*float64(span) {
		return false
	}
	return true
}
