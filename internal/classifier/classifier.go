package classifier

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ironsheep/notesplit/internal/descriptor"
	"github.com/ironsheep/notesplit/internal/geometry"
)

// ErrEmptyContour is returned, wrapped in a ShapeError, for a contour with
// no points.
var ErrEmptyContour = errors.New("contour has no points")

// ShapeError identifies the shape that could not be classified.
type ShapeError struct {
	ID  int
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape %d: %v", e.ID, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Shape is a contour with its features and classification.
type Shape struct {
	ID         int                   `json:"id"`
	Contour    geometry.Contour      `json:"-"`
	Properties descriptor.Properties `json:"properties"`
	Label      Label                 `json:"label"`
	Confidence float64               `json:"confidence"`
}

// Scores are the two vote accumulators behind a decision.
type Scores struct {
	Diagram     float64 `json:"diagram"`
	Handwriting float64 `json:"handwriting"`
}

// Classifier applies weighted heuristic voting to shape features.
type Classifier struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a classifier. A nil logger discards output.
func New(cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Classifier{cfg: cfg, logger: logger}
}

// Config returns the configuration the classifier was built with.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Score runs every feature check and returns the accumulated votes.
func (c *Classifier) Score(p descriptor.Properties) Scores {
	w := c.cfg.Weights
	var s Scores

	switch {
	case p.Area > c.cfg.LargeArea:
		s.Diagram += w.LargeArea
	case p.Area < c.cfg.SmallArea:
		s.Handwriting += w.SmallArea
	}

	switch {
	case p.RegularityScore > c.cfg.HighRegularity:
		s.Diagram += w.Regular
	case p.RegularityScore < c.cfg.LowRegularity:
		s.Handwriting += w.Irregular
	}

	if p.HasStraightLines && p.CornerCount <= 8 {
		s.Diagram += w.StraightLines
	}
	if p.HasPerfectCurves {
		s.Diagram += w.PerfectCurve
	}

	aspect := p.AspectRatio
	switch {
	case aspect >= 0.8 && aspect <= 1.2:
		s.Diagram += w.SquareAspect
	case aspect > 10 || aspect < 0.1:
		s.Handwriting += w.ExtremeAspect
	case aspect > 5 || aspect < 0.2:
		s.Handwriting += w.ElongatedAspect
	}

	switch {
	case p.Solidity > 0.9:
		s.Diagram += w.Solid
	case p.Solidity < 0.5:
		s.Handwriting += w.Hollow
	}

	switch {
	case p.Circularity > 0.7:
		s.Diagram += w.Circular
	case p.Circularity < 0.1 && !p.HasStraightLines:
		s.Handwriting += w.NonCircular
	}

	switch {
	case p.Extent > 0.8:
		s.Diagram += w.Dense
	case p.Extent < 0.3:
		s.Handwriting += w.Sparse
	}

	complexShape := p.Area > 800 &&
		aspect >= 0.15 && aspect <= 6.0 &&
		p.Extent > 0.1 &&
		p.CornerCount >= 3 &&
		p.RegularityScore < 0.9
	if complexShape {
		s.Diagram += w.ComplexShape
	}

	simpleLine := (aspect > 8 || aspect < 0.125) &&
		p.Straightness > 0.7 &&
		p.CornerCount <= 4
	if simpleLine {
		s.Handwriting += w.SimpleLine
	}

	if p.Area > 1500 && aspect > 0.3 && aspect < 3.0 && p.Extent > 0.2 && !simpleLine {
		s.Diagram += w.MediumBoost
	}
	return s
}

// Classify labels a feature record. Ambiguous votes fall back to
// handwriting; Connector is never returned here (see Partition).
func (c *Classifier) Classify(p descriptor.Properties) (Label, float64) {
	return c.Decide(c.Score(p))
}

// Decide turns accumulated votes into a label and confidence.
func (c *Classifier) Decide(s Scores) (Label, float64) {
	total := s.Diagram + s.Handwriting
	if total == 0 {
		return Uncertain, 0.5
	}
	conf := s.Diagram / total
	switch {
	case conf >= c.cfg.DiagramThreshold:
		return Diagram, conf
	case conf <= c.cfg.HandwritingThreshold:
		return Handwriting, 1 - conf
	default:
		return Handwriting, c.cfg.AmbiguousConfidence
	}
}

// ClassifyContour describes and classifies one contour.
func (c *Classifier) ClassifyContour(id int, contour geometry.Contour) (Shape, error) {
	if len(contour) == 0 {
		return Shape{}, &ShapeError{ID: id, Err: ErrEmptyContour}
	}
	props := descriptor.Describe(contour)
	label, conf := c.Classify(props)
	return Shape{
		ID:         id,
		Contour:    contour,
		Properties: props,
		Label:      label,
		Confidence: conf,
	}, nil
}

// ClassifyAll classifies every contour, using its index as the shape id.
func (c *Classifier) ClassifyAll(contours []geometry.Contour) ([]Shape, error) {
	shapes := make([]Shape, 0, len(contours))
	for i, contour := range contours {
		s, err := c.ClassifyContour(i, contour)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	c.logger.Debug("classified contours", "count", len(shapes))
	return shapes, nil
}
