package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMask(w, h int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func TestInkColorIgnoresPaper(t *testing.T) {
	img := createInMemoryImage(20, 20, color.White)
	draw.Draw(img, image.Rect(0, 0, 20, 3), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	ink, ok := InkColor(img, fullMask(20, 20))

	require.True(t, ok)
	assert.Equal(t, "#000000", ink.Hex)
	assert.Equal(t, 60, ink.Pixels)
	assert.Equal(t, 0, ink.HSL.L)
}

func TestInkColorUniformRegion(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	ink, ok := InkColor(img, fullMask(10, 10))

	require.True(t, ok)
	assert.Equal(t, 100, ink.Pixels)
	assert.Equal(t, 0, ink.HSL.H)
	assert.InDelta(t, 100, ink.HSL.S, 1)
	assert.InDelta(t, 50, ink.HSL.L, 1)
}

func TestInkColorEmptyMask(t *testing.T) {
	img := createInMemoryImage(10, 10, color.Black)

	_, ok := InkColor(img, image.NewGray(image.Rect(0, 0, 10, 10)))
	assert.False(t, ok)

	_, ok = InkColor(image.NewNRGBA(image.Rect(0, 0, 10, 10)), fullMask(10, 10))
	assert.False(t, ok, "transparent pixels carry no ink")
}
