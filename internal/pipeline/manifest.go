package pipeline

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// ManifestName is the file name of the manifest in an output directory.
const ManifestName = "manifest.json"

// Manifest describes everything extracted from one page.
type Manifest struct {
	OriginalFile   string         `json:"original_file"`
	Diagrams       []DiagramEntry `json:"diagrams"`
	ProcessingInfo ProcessingInfo `json:"processing_info"`
	Summary        Summary        `json:"summary"`
	DebugImages    []string       `json:"debug_images,omitempty"`
}

// DiagramEntry is one extracted cluster.
type DiagramEntry struct {
	ID           int             `json:"id"`
	File         string          `json:"file"`
	BBox         [4]int          `json:"bbox"`
	Confidence   float64         `json:"confidence"`
	ContourCount int             `json:"contour_count"`
	MemberIDs    []int           `json:"member_ids"`
	ConnectorIDs []int           `json:"connector_ids,omitempty"`
	TotalArea    float64         `json:"total_area"`
	Centroid     geometry.PointF `json:"centroid"`
	Extracted    bool            `json:"extracted"`
	Error        string          `json:"error,omitempty"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Coverage     float64         `json:"coverage"`
	ContentBBox  [4]int          `json:"content_bbox"`
	InkColor     string          `json:"ink_color,omitempty"`
}

// ProcessingInfo records how the page was processed.
type ProcessingInfo struct {
	// ImageSize is [width, height].
	ImageSize    [2]int         `json:"image_size"`
	Backend      string         `json:"backend"`
	TracedCount  int            `json:"traced_count"`
	ContourCount int            `json:"contour_count"`
	Labels       map[string]int `json:"labels"`
	ClusterCount int            `json:"cluster_count"`
	Config       map[string]any `json:"config"`
	DurationMS   int64          `json:"duration_ms"`
}

// Summary aggregates the extraction results.
type Summary struct {
	Total              int      `json:"total_diagrams"`
	Successful         int      `json:"successful_extractions"`
	Failed             int      `json:"failed_extractions"`
	SuccessRate        float64  `json:"success_rate"`
	TotalExtractedArea float64  `json:"total_extracted_area"`
	AverageCoverage    float64  `json:"average_coverage"`
	ExtractedFiles     []string `json:"extracted_files"`
}

// Summarize aggregates entries. Area and coverage count successful
// extractions only.
func Summarize(entries []DiagramEntry) Summary {
	s := Summary{
		Total:          len(entries),
		ExtractedFiles: []string{},
	}
	var coverage float64
	for _, e := range entries {
		if !e.Extracted {
			s.Failed++
			continue
		}
		s.Successful++
		s.TotalExtractedArea += e.TotalArea
		coverage += e.Coverage
		s.ExtractedFiles = append(s.ExtractedFiles, e.File)
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Successful) / float64(s.Total)
	}
	if s.Successful > 0 {
		s.AverageCoverage = round(coverage/float64(s.Successful), 3)
	}
	s.TotalExtractedArea = round(s.TotalExtractedArea, 1)
	return s
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
