package preprocess

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPage returns a white RGBA page.
func createPage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

func drawInk(img *image.RGBA, r image.Rectangle) {
	draw.Draw(img, r, &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
}

func drawOutline(img *image.RGBA, r image.Rectangle, thickness int) {
	drawInk(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness))
	drawInk(img, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y))
	drawInk(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y))
	drawInk(img, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y))
}

func TestProcessFindsOutline(t *testing.T) {
	img := createPage(300, 300)
	drawOutline(img, image.Rect(50, 50, 150, 150), 4)
	// nested inside the outline
	drawInk(img, image.Rect(85, 85, 115, 115))
	// below the area filter
	drawInk(img, image.Rect(220, 220, 228, 228))

	res, err := Process(img, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 300, res.Size.Width)
	assert.Equal(t, 300, res.Size.Height)
	assert.Equal(t, 2, res.Traced)
	require.Len(t, res.Contours, 1)

	box := res.Contours[0].Bounds()
	assert.InDelta(t, 50, box.X, 2)
	assert.InDelta(t, 50, box.Y, 2)
	assert.InDelta(t, 100, box.W, 3)
	assert.InDelta(t, 100, box.H, 3)

	require.NotNil(t, res.Binary)
	assert.Equal(t, image.Rect(0, 0, 300, 300), res.Binary.Bounds())
	assert.Equal(t, uint8(255), res.Binary.GrayAt(51, 100).Y)
	assert.Equal(t, uint8(0), res.Binary.GrayAt(10, 10).Y)
}

func TestProcessBlankPage(t *testing.T) {
	res, err := Process(createPage(120, 80), DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, res.Contours)
	assert.Zero(t, res.Traced)
}

func TestProcessErrors(t *testing.T) {
	_, err := Process(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Process(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultConfig())
	assert.ErrorIs(t, err, ErrEmptyImage)

	cfg := DefaultConfig()
	cfg.BlockSize = 10
	_, err = Process(createPage(10, 10), cfg)
	assert.ErrorContains(t, err, "adaptive_block_size")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"even block", func(c *Config) { c.BlockSize = 12 }, "adaptive_block_size"},
		{"tiny block", func(c *Config) { c.BlockSize = 1 }, "adaptive_block_size"},
		{"even kernel", func(c *Config) { c.KernelSize = 4 }, "kernel_size"},
		{"zero kernel", func(c *Config) { c.KernelSize = 0 }, "kernel_size"},
		{"negative area", func(c *Config) { c.MinContourArea = -1 }, "min_contour_area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errMsg)
			}
		})
	}
}
