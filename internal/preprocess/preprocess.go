package preprocess

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// Config holds the preprocessing parameters.
type Config struct {
	BlockSize      int     `yaml:"adaptive_block_size" json:"adaptive_block_size"`
	C              float64 `yaml:"adaptive_c" json:"adaptive_c"`
	KernelSize     int     `yaml:"kernel_size" json:"kernel_size"`
	MinContourArea float64 `yaml:"min_contour_area" json:"min_contour_area"`
}

// DefaultConfig returns the default preprocessing parameters.
func DefaultConfig() Config {
	return Config{
		BlockSize:      11,
		C:              2,
		KernelSize:     3,
		MinContourArea: 500,
	}
}

// Validate checks the block and kernel sizes.
func (c Config) Validate() error {
	if c.BlockSize < 3 || c.BlockSize%2 == 0 {
		return fmt.Errorf("adaptive_block_size must be odd and at least 3, got %d", c.BlockSize)
	}
	if c.KernelSize < 1 || c.KernelSize%2 == 0 {
		return fmt.Errorf("kernel_size must be odd and positive, got %d", c.KernelSize)
	}
	if c.MinContourArea < 0 {
		return fmt.Errorf("min_contour_area must not be negative, got %v", c.MinContourArea)
	}
	return nil
}

// Result is the output of Process.
type Result struct {
	Size geometry.Size
	// Binary is the cleaned ink mask, ink = 255.
	Binary *image.Gray
	// Contours are the external contours that passed the area filter, in
	// raster order of their first pixel.
	Contours []geometry.Contour
	// Traced counts contours before the area filter.
	Traced int
}

// ErrEmptyImage is returned for an image with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Process runs the full preprocessing pipeline on img.
func Process(img image.Image, cfg Config) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bin, contours, err := binarizeAndTrace(img, cfg)
	if err != nil {
		return nil, err
	}

	kept := make([]geometry.Contour, 0, len(contours))
	for _, c := range contours {
		if c.Area() >= cfg.MinContourArea {
			kept = append(kept, c)
		}
	}
	b := img.Bounds()
	return &Result{
		Size:     geometry.Size{Width: b.Dx(), Height: b.Dy()},
		Binary:   bin,
		Contours: kept,
		Traced:   len(contours),
	}, nil
}
