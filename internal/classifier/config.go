package classifier

import (
	"errors"
	"fmt"
)

// Weights are the votes each feature check adds to its accumulator.
type Weights struct {
	LargeArea       float64 `yaml:"large_area" json:"large_area"`
	SmallArea       float64 `yaml:"small_area" json:"small_area"`
	Regular         float64 `yaml:"regular" json:"regular"`
	Irregular       float64 `yaml:"irregular" json:"irregular"`
	StraightLines   float64 `yaml:"straight_lines" json:"straight_lines"`
	PerfectCurve    float64 `yaml:"perfect_curve" json:"perfect_curve"`
	SquareAspect    float64 `yaml:"square_aspect" json:"square_aspect"`
	ExtremeAspect   float64 `yaml:"extreme_aspect" json:"extreme_aspect"`
	ElongatedAspect float64 `yaml:"elongated_aspect" json:"elongated_aspect"`
	Solid           float64 `yaml:"solid" json:"solid"`
	Hollow          float64 `yaml:"hollow" json:"hollow"`
	Circular        float64 `yaml:"circular" json:"circular"`
	NonCircular     float64 `yaml:"non_circular" json:"non_circular"`
	Dense           float64 `yaml:"dense" json:"dense"`
	Sparse          float64 `yaml:"sparse" json:"sparse"`
	ComplexShape    float64 `yaml:"complex_shape" json:"complex_shape"`
	SimpleLine      float64 `yaml:"simple_line" json:"simple_line"`
	MediumBoost     float64 `yaml:"medium_boost" json:"medium_boost"`
}

// ConnectorConfig controls which handwriting-labeled shapes are promoted to
// connectors by Partition.
type ConnectorConfig struct {
	Enabled         bool    `yaml:"enabled" json:"enabled"`
	MinElongation   float64 `yaml:"min_elongation" json:"min_elongation"`
	MinStraightness float64 `yaml:"min_straightness" json:"min_straightness"`
	MinLength       int     `yaml:"min_length" json:"min_length"`
	MaxPageFraction float64 `yaml:"max_page_fraction" json:"max_page_fraction"`
}

// Config holds the classifier thresholds.
type Config struct {
	LargeArea            float64         `yaml:"large_area" json:"large_area"`
	SmallArea            float64         `yaml:"small_area" json:"small_area"`
	HighRegularity       float64         `yaml:"high_regularity" json:"high_regularity"`
	LowRegularity        float64         `yaml:"low_regularity" json:"low_regularity"`
	DiagramThreshold     float64         `yaml:"diagram_threshold" json:"diagram_threshold"`
	HandwritingThreshold float64         `yaml:"handwriting_threshold" json:"handwriting_threshold"`
	AmbiguousConfidence  float64         `yaml:"ambiguous_confidence" json:"ambiguous_confidence"`
	Weights              Weights         `yaml:"weights" json:"weights"`
	Connector            ConnectorConfig `yaml:"connector" json:"connector"`
}

// DefaultWeights returns the hand-tuned vote weights.
func DefaultWeights() Weights {
	return Weights{
		LargeArea:       1,
		SmallArea:       0.5,
		Regular:         2,
		Irregular:       1,
		StraightLines:   2,
		PerfectCurve:    2,
		SquareAspect:    1,
		ExtremeAspect:   2,
		ElongatedAspect: 1,
		Solid:           1,
		Hollow:          1,
		Circular:        2,
		NonCircular:     1,
		Dense:           1,
		Sparse:          1,
		ComplexShape:    5,
		SimpleLine:      3,
		MediumBoost:     2,
	}
}

// DefaultConnectorConfig returns the connector promotion defaults.
func DefaultConnectorConfig() ConnectorConfig {
	return ConnectorConfig{
		Enabled:         true,
		MinElongation:   3,
		MinStraightness: 0.4,
		MinLength:       30,
		MaxPageFraction: 0.5,
	}
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{
		LargeArea:            5000,
		SmallArea:            1500,
		HighRegularity:       0.7,
		LowRegularity:        0.3,
		DiagramThreshold:     0.7,
		HandwritingThreshold: 0.3,
		AmbiguousConfidence:  0.6,
		Weights:              DefaultWeights(),
		Connector:            DefaultConnectorConfig(),
	}
}

// Validate rejects negative weights and inconsistent thresholds.
func (c Config) Validate() error {
	if c.LargeArea < 0 || c.SmallArea < 0 {
		return errors.New("area thresholds must not be negative")
	}
	if c.HandwritingThreshold < 0 || c.DiagramThreshold > 1 || c.HandwritingThreshold > c.DiagramThreshold {
		return fmt.Errorf("decision thresholds must satisfy 0 <= handwriting (%v) <= diagram (%v) <= 1",
			c.HandwritingThreshold, c.DiagramThreshold)
	}
	if c.AmbiguousConfidence < 0 || c.AmbiguousConfidence > 1 {
		return fmt.Errorf("ambiguous_confidence %v outside [0,1]", c.AmbiguousConfidence)
	}
	for name, w := range c.Weights.byName() {
		if w < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", name, w)
		}
	}
	if c.Connector.MaxPageFraction < 0 || c.Connector.MaxPageFraction > 1 {
		return fmt.Errorf("connector max_page_fraction %v outside [0,1]", c.Connector.MaxPageFraction)
	}
	if c.Connector.MinLength < 0 || c.Connector.MinElongation < 0 {
		return errors.New("connector minimums must not be negative")
	}
	return nil
}

func (w Weights) byName() map[string]float64 {
	return map[string]float64{
		"large_area":       w.LargeArea,
		"small_area":       w.SmallArea,
		"regular":          w.Regular,
		"irregular":        w.Irregular,
		"straight_lines":   w.StraightLines,
		"perfect_curve":    w.PerfectCurve,
		"square_aspect":    w.SquareAspect,
		"extreme_aspect":   w.ExtremeAspect,
		"elongated_aspect": w.ElongatedAspect,
		"solid":            w.Solid,
		"hollow":           w.Hollow,
		"circular":         w.Circular,
		"non_circular":     w.NonCircular,
		"dense":            w.Dense,
		"sparse":           w.Sparse,
		"complex_shape":    w.ComplexShape,
		"simple_line":      w.SimpleLine,
		"medium_boost":     w.MediumBoost,
	}
}
