package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/notesplit/internal/geometry"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		entries []DiagramEntry
		want    Summary
	}{
		{
			name:    "empty",
			entries: nil,
			want:    Summary{ExtractedFiles: []string{}},
		},
		{
			name: "mixed",
			entries: []DiagramEntry{
				{File: "diagram_0.png", Extracted: true, TotalArea: 1000.04, Coverage: 0.5},
				{File: "diagram_1.png", Error: "extraction region outside page"},
				{File: "diagram_2.png", Extracted: true, TotalArea: 500.02, Coverage: 0.25},
				{File: "diagram_3.png", Extracted: true, TotalArea: 250, Coverage: 0.1},
			},
			want: Summary{
				Total:              4,
				Successful:         3,
				Failed:             1,
				SuccessRate:        0.75,
				TotalExtractedArea: 1750.1,
				AverageCoverage:    0.283,
				ExtractedFiles:     []string{"diagram_0.png", "diagram_2.png", "diagram_3.png"},
			},
		},
		{
			name:    "all failed",
			entries: []DiagramEntry{{File: "diagram_0.png", Error: "boom"}},
			want:    Summary{Total: 1, Failed: 1, ExtractedFiles: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.entries))
		})
	}
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	m := &Manifest{
		OriginalFile: "page.png",
		Diagrams: []DiagramEntry{{
			ID:           0,
			File:         "diagram_0.png",
			BBox:         [4]int{10, 20, 300, 200},
			Confidence:   0.8,
			ContourCount: 3,
			MemberIDs:    []int{1, 4, 7},
			ConnectorIDs: []int{7},
			TotalArea:    5120.5,
			Centroid:     geometry.PointF{X: 160, Y: 120},
			Extracted:    true,
			Width:        300,
			Height:       200,
			Coverage:     0.125,
			ContentBBox:  [4]int{2, 3, 290, 190},
			InkColor:     "#102070",
		}},
		ProcessingInfo: ProcessingInfo{
			ImageSize:    [2]int{1000, 800},
			Backend:      "native",
			TracedCount:  12,
			ContourCount: 9,
			Labels:       map[string]int{"diagram": 2, "connector": 1},
			ClusterCount: 1,
			DurationMS:   42,
		},
		DebugImages: []string{DebugBinary},
	}
	m.Summary = Summarize(m.Diagrams)

	require.NoError(t, WriteManifest(path, m))
	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"successful_extractions": 1`)
	assert.Contains(t, string(data), `"bbox": [`)
}

func TestReadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadManifest(filepath.Join(dir, "nope.json"))
	assert.ErrorContains(t, err, "failed to read manifest")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = ReadManifest(bad)
	assert.ErrorContains(t, err, "failed to parse manifest")
}
