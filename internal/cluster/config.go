package cluster

import (
	"errors"
	"fmt"
)

// SortMethod selects the output order of clusters.
type SortMethod string

const (
	// SortByArea orders clusters by total area, largest first.
	SortByArea SortMethod = "area"
	// SortReadingOrder orders clusters in rows, top to bottom, left to right.
	SortReadingOrder SortMethod = "reading_order"
)

// ParseSortMethod validates a sort method name.
func ParseSortMethod(s string) (SortMethod, error) {
	switch m := SortMethod(s); m {
	case SortByArea, SortReadingOrder:
		return m, nil
	default:
		return "", fmt.Errorf("unknown sorting method %q (want %q or %q)", s, SortByArea, SortReadingOrder)
	}
}

// Config holds the clustering parameters.
type Config struct {
	// Proximity is the largest edge-to-edge gap, in pixels, at which two
	// diagram shapes join the same cluster.
	Proximity float64 `yaml:"clustering_proximity" json:"clustering_proximity"`
	// Padding is added around each merged cluster box.
	Padding     int        `yaml:"padding" json:"padding"`
	MaxDiagrams int        `yaml:"max_diagrams" json:"max_diagrams"`
	SortMethod  SortMethod `yaml:"sorting_method" json:"sorting_method"`
	// TextOverlapRejection drops a cluster when a handwriting box covers more
	// than this fraction of it.
	TextOverlapRejection float64 `yaml:"text_overlap_rejection" json:"text_overlap_rejection"`
	TextBuffer           int     `yaml:"text_buffer" json:"text_buffer"`
	// ConnectorBridgeThreshold is how far, in pixels, a connector may sit
	// from the two shapes it links.
	ConnectorBridgeThreshold int     `yaml:"connector_bridge_threshold" json:"connector_bridge_threshold"`
	MinSide                  int     `yaml:"min_side" json:"min_side"`
	RowBandFactor            float64 `yaml:"row_band_factor" json:"row_band_factor"`
	// LargeShapeCount is the diagram count above which a page is logged as
	// expensive to bridge.
	LargeShapeCount int `yaml:"large_page_shape_count" json:"large_page_shape_count"`
}

// DefaultConfig returns the default clustering parameters.
func DefaultConfig() Config {
	return Config{
		Proximity:                150,
		Padding:                  10,
		MaxDiagrams:              10,
		SortMethod:               SortByArea,
		TextOverlapRejection:     0.75,
		TextBuffer:               5,
		ConnectorBridgeThreshold: 70,
		MinSide:                  10,
		RowBandFactor:            0.5,
		LargeShapeCount:          500,
	}
}

// Validate rejects negative distances and out-of-range fractions.
func (c Config) Validate() error {
	if c.Proximity < 0 {
		return fmt.Errorf("clustering_proximity must not be negative, got %v", c.Proximity)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", c.Padding)
	}
	if c.MaxDiagrams < 1 {
		return fmt.Errorf("max_diagrams must be at least 1, got %d", c.MaxDiagrams)
	}
	if _, err := ParseSortMethod(string(c.SortMethod)); err != nil {
		return err
	}
	if c.TextOverlapRejection <= 0 || c.TextOverlapRejection > 1 {
		return fmt.Errorf("text_overlap_rejection must be in (0,1], got %v", c.TextOverlapRejection)
	}
	if c.TextBuffer < 0 || c.ConnectorBridgeThreshold < 0 || c.MinSide < 0 {
		return errors.New("text_buffer, connector_bridge_threshold and min_side must not be negative")
	}
	if c.RowBandFactor < 0 {
		return fmt.Errorf("row_band_factor must not be negative, got %v", c.RowBandFactor)
	}
	return nil
}
