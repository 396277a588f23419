package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/notesplit/internal/geometry"
	"github.com/ironsheep/notesplit/internal/preprocess"
)

// ExtractOptions controls how a cluster region is cut out of its page.
type ExtractOptions struct {
	// MaskKernel is the close/open kernel applied to the contour mask.
	MaskKernel int `yaml:"mask_kernel_size" json:"mask_kernel_size"`
	// Enhance replaces the color crop with a contrast-stretched grayscale.
	Enhance bool `yaml:"enhance_contrast" json:"enhance_contrast"`
	// Contrast is the percentage passed to imaging.AdjustContrast.
	Contrast float64 `yaml:"contrast" json:"contrast"`
}

// DefaultExtractOptions returns the options used by the command line tools.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		MaskKernel: 3,
		Enhance:    true,
		Contrast:   20,
	}
}

// Stats describes an extracted region.
type Stats struct {
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	NonTransparent int          `json:"non_transparent_pixels"`
	TotalPixels    int          `json:"total_pixels"`
	Coverage       float64      `json:"coverage"`
	ContentBox     geometry.Box `json:"content_bbox"`
	InkColor       string       `json:"ink_color,omitempty"`
}

// Extraction is a cut-out region with transparent background.
type Extraction struct {
	Image *image.NRGBA
	Stats Stats
}

// Extract cuts box out of page and makes every pixel outside the filled
// member contours transparent. Contours are in page coordinates.
func Extract(page image.Image, contours []geometry.Contour, box geometry.Box, opts ExtractOptions) (*Extraction, error) {
	bounds := page.Bounds()
	size := geometry.Size{Width: bounds.Dx(), Height: bounds.Dy()}
	if box.Empty() {
		return nil, fmt.Errorf("invalid extraction region %s", box)
	}
	if !box.Within(size) {
		return nil, fmt.Errorf("extraction region %s outside page bounds %dx%d", box, size.Width, size.Height)
	}

	rect := image.Rect(box.X, box.Y, box.Right(), box.Bottom()).Add(bounds.Min)
	cropped := imaging.Crop(page, rect)

	mask := ContourMask(contours, box)
	if opts.MaskKernel > 1 {
		mask = preprocess.Clean(mask, opts.MaskKernel)
	}

	src := cropped
	if opts.Enhance {
		src = imaging.AdjustContrast(imaging.Grayscale(cropped), opts.Contrast)
	}

	out := image.NewNRGBA(image.Rect(0, 0, box.W, box.H))
	for y := 0; y < box.H; y++ {
		for x := 0; x < box.W; x++ {
			i := out.PixOffset(x, y)
			j := src.PixOffset(x, y)
			copy(out.Pix[i:i+3], src.Pix[j:j+3])
			out.Pix[i+3] = mask.Pix[mask.PixOffset(x, y)]
		}
	}

	stats := RegionStats(out)
	if ink, ok := InkColor(cropped, mask); ok {
		stats.InkColor = ink.Hex
	}
	return &Extraction{Image: out, Stats: stats}, nil
}

// RegionStats measures the opaque content of an RGBA region.
func RegionStats(img *image.NRGBA) Stats {
	b := img.Bounds()
	s := Stats{
		Width:       b.Dx(),
		Height:      b.Dy(),
		TotalPixels: b.Dx() * b.Dy(),
	}

	minX, minY, maxX, maxY := b.Dx(), b.Dy(), -1, -1
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3] == 0 {
				continue
			}
			s.NonTransparent++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if s.TotalPixels > 0 {
		s.Coverage = math.Round(float64(s.NonTransparent)/float64(s.TotalPixels)*1000) / 1000
	}
	if s.NonTransparent > 0 {
		s.ContentBox = geometry.Box{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
	}
	return s
}

// Save writes img to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG returns img as base64 PNG data.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
