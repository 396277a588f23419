package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/notesplit/internal/classifier"
	"github.com/ironsheep/notesplit/internal/cluster"
	"github.com/ironsheep/notesplit/internal/config"
	"github.com/ironsheep/notesplit/internal/geometry"
	"github.com/ironsheep/notesplit/internal/imaging"
	"github.com/ironsheep/notesplit/internal/preprocess"
)

// Pipeline runs preprocessing, classification, clustering and extraction
// for note pages. It is safe for concurrent use.
type Pipeline struct {
	cfg        *config.Config
	classifier *classifier.Classifier
	clusterer  *cluster.Clusterer
	cache      *imaging.PageCache
	logger     *slog.Logger
}

// New creates a pipeline. A nil cache gets a private one; a nil logger
// discards output.
func New(cfg *config.Config, cache *imaging.PageCache, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cache == nil {
		cache = imaging.NewPageCache()
	}
	return &Pipeline{
		cfg:        cfg,
		classifier: classifier.New(cfg.Classifier, logger.With("component", "classifier")),
		clusterer:  cluster.New(cfg.Cluster, logger.With("component", "cluster")),
		cache:      cache,
		logger:     logger,
	}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Cache returns the page cache.
func (p *Pipeline) Cache() *imaging.PageCache {
	return p.cache
}

// Analysis is the in-memory result of analyzing one page.
type Analysis struct {
	Size geometry.Size
	// Binary is the cleaned ink mask.
	Binary *image.Gray
	// Traced counts contours before the area filter.
	Traced int
	// Shapes holds one entry per kept contour; Shapes[i].ID == i.
	Shapes    []classifier.Shape
	Partition classifier.Partition
	// Clusters are ordered, capped and free of overlaps.
	Clusters []cluster.Cluster
}

// Analyze finds the diagram clusters on a page.
func (p *Pipeline) Analyze(ctx context.Context, img image.Image) (*Analysis, error) {
	pre, err := preprocess.Process(img, p.cfg.Preprocess)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shapes, err := p.classifier.ClassifyAll(pre.Contours)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	part := p.classifier.Partition(shapes, pre.Size)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clusters := p.clusterer.Cluster(part.Diagrams, part.Connectors, part.Handwriting, pre.Size)
	clusters = p.clusterer.ResolveOverlaps(clusters, pre.Size)

	p.logger.Debug("analyzed page",
		"size", fmt.Sprintf("%dx%d", pre.Size.Width, pre.Size.Height),
		"traced", pre.Traced,
		"contours", len(pre.Contours),
		"diagrams", len(part.Diagrams),
		"connectors", len(part.Connectors),
		"handwriting", len(part.Handwriting),
		"uncertain", len(part.Uncertain),
		"clusters", len(clusters))

	return &Analysis{
		Size:      pre.Size,
		Binary:    pre.Binary,
		Traced:    pre.Traced,
		Shapes:    shapes,
		Partition: part,
		Clusters:  clusters,
	}, nil
}

// MemberContours returns the contours of a cluster's members.
func (a *Analysis) MemberContours(c cluster.Cluster) []geometry.Contour {
	out := make([]geometry.Contour, 0, len(c.MemberIDs))
	for _, id := range c.MemberIDs {
		if id >= 0 && id < len(a.Shapes) {
			out = append(out, a.Shapes[id].Contour)
		}
	}
	return out
}

// RunOptions controls what Run writes besides the diagrams and manifest.
type RunOptions struct {
	Debug bool
}

// Run analyzes the PNG page at input and writes one transparent PNG per
// cluster plus manifest.json into outDir. A cluster that fails to extract
// is recorded in the manifest and does not fail the run.
func (p *Pipeline) Run(ctx context.Context, input, outDir string, opts RunOptions) (*Manifest, error) {
	start := time.Now()
	logger := p.logger.With("page", filepath.Base(input))

	page, err := p.cache.LoadPNG(input)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	a, err := p.Analyze(ctx, page)
	if err != nil {
		return nil, err
	}

	entries := make([]DiagramEntry, 0, len(a.Clusters))
	for _, c := range a.Clusters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry := p.extract(page, a, c, outDir)
		if entry.Error != "" {
			logger.Warn("diagram extraction failed", "diagram", c.ID, "error", entry.Error)
		} else {
			logger.Info("extracted diagram", "file", entry.File, "bbox", c.Box.String(), "coverage", entry.Coverage)
		}
		entries = append(entries, entry)
	}

	m := &Manifest{
		OriginalFile: filepath.Base(input),
		Diagrams:     entries,
		ProcessingInfo: ProcessingInfo{
			ImageSize:    [2]int{a.Size.Width, a.Size.Height},
			Backend:      preprocess.Backend,
			TracedCount:  a.Traced,
			ContourCount: len(a.Shapes),
			Labels:       labelCounts(a.Partition),
			ClusterCount: len(a.Clusters),
			Config:       p.cfg.ToMap(),
		},
		Summary: Summarize(entries),
	}

	if opts.Debug {
		names, err := p.writeDebug(page, a, outDir)
		if err != nil {
			logger.Warn("debug images incomplete", "error", err)
		}
		m.DebugImages = names
	}

	m.ProcessingInfo.DurationMS = time.Since(start).Milliseconds()
	if err := WriteManifest(filepath.Join(outDir, ManifestName), m); err != nil {
		return nil, err
	}
	return m, nil
}

// extract cuts one cluster out of the page and saves it.
func (p *Pipeline) extract(page image.Image, a *Analysis, c cluster.Cluster, outDir string) DiagramEntry {
	entry := DiagramEntry{
		ID:           c.ID,
		File:         fmt.Sprintf("diagram_%d.png", c.ID),
		BBox:         c.Box.Slice(),
		Confidence:   c.Confidence,
		ContourCount: len(c.MemberIDs),
		MemberIDs:    c.MemberIDs,
		ConnectorIDs: c.ConnectorIDs,
		TotalArea:    c.TotalArea,
		Centroid:     c.Centroid,
	}

	ext, err := imaging.Extract(page, a.MemberContours(c), c.Box, p.cfg.Extract)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	if err := imaging.Save(ext.Image, filepath.Join(outDir, entry.File)); err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Extracted = true
	entry.Width = ext.Stats.Width
	entry.Height = ext.Stats.Height
	entry.Coverage = ext.Stats.Coverage
	entry.ContentBBox = ext.Stats.ContentBox.Slice()
	entry.InkColor = ext.Stats.InkColor
	return entry
}

func labelCounts(part classifier.Partition) map[string]int {
	out := make(map[string]int, len(classifier.Labels))
	for l, n := range part.Counts() {
		out[l.String()] = n
	}
	return out
}
