package pipeline

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/ironsheep/notesplit/internal/classifier"
	"github.com/ironsheep/notesplit/internal/imaging"
)

// Debug image file names.
const (
	DebugBinary   = "debug_binary.png"
	DebugShapes   = "debug_shapes.png"
	DebugClusters = "debug_clusters.png"
)

// ShapesOverlay draws every classified shape box in its label color.
func (p *Pipeline) ShapesOverlay(page image.Image, a *Analysis) (*image.RGBA, error) {
	boxes := make([]imaging.OverlayBox, 0, len(a.Shapes))
	for _, group := range [][]classifier.Shape{
		a.Partition.Handwriting, a.Partition.Uncertain, a.Partition.Connectors, a.Partition.Diagrams,
	} {
		for _, s := range group {
			boxes = append(boxes, imaging.OverlayBox{
				Box:   s.Properties.BBox,
				Label: fmt.Sprintf("%c%d", s.Label.String()[0], s.ID),
				Color: p.labelColor(s.Label),
			})
		}
	}
	return imaging.Overlay(page, boxes, p.overlayOptions())
}

// ClustersOverlay draws the final cluster boxes with id and confidence.
func (p *Pipeline) ClustersOverlay(page image.Image, a *Analysis) (*image.RGBA, error) {
	boxes := make([]imaging.OverlayBox, 0, len(a.Clusters))
	for _, c := range a.Clusters {
		boxes = append(boxes, imaging.OverlayBox{
			Box:   c.Box,
			Label: fmt.Sprintf("diagram %d (%.2f)", c.ID, c.Confidence),
			Color: p.cfg.Debug.ClusterColor,
		})
	}
	return imaging.Overlay(page, boxes, p.overlayOptions())
}

func (p *Pipeline) overlayOptions() imaging.OverlayOptions {
	opts := imaging.DefaultOverlayOptions()
	opts.Thickness = p.cfg.Debug.Thickness
	opts.GridSpacing = p.cfg.Debug.GridSpacing
	return opts
}

func (p *Pipeline) labelColor(l classifier.Label) string {
	switch l {
	case classifier.Diagram:
		return p.cfg.Debug.DiagramColor
	case classifier.Connector:
		return p.cfg.Debug.ConnectorColor
	case classifier.Handwriting:
		return p.cfg.Debug.HandwritingColor
	default:
		return p.cfg.Debug.UncertainColor
	}
}

// writeDebug saves the binary mask and both overlays. It returns the names
// of the files written and the joined errors of those that were not.
func (p *Pipeline) writeDebug(page image.Image, a *Analysis, outDir string) ([]string, error) {
	var (
		names []string
		errs  []error
	)
	save := func(name string, img image.Image, err error) {
		if err == nil {
			err = imaging.Save(img, filepath.Join(outDir, name))
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		names = append(names, name)
	}

	save(DebugBinary, a.Binary, nil)
	shapes, err := p.ShapesOverlay(page, a)
	save(DebugShapes, shapes, err)
	clusters, err := p.ClustersOverlay(page, a)
	save(DebugClusters, clusters, err)

	return names, errors.Join(errs...)
}
