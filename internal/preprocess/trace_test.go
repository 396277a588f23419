package preprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/notesplit/internal/geometry"
)

func createMask(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

func fillMask(m *image.Gray, x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			m.Pix[y*m.Stride+x] = 255
		}
	}
}

func clearMask(m *image.Gray, x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			m.Pix[y*m.Stride+x] = 0
		}
	}
}

func TestTraceFilledRectangle(t *testing.T) {
	m := createMask(20, 12)
	fillMask(m, 2, 3, 11, 7)

	contours := TraceExternal(m)

	require.Len(t, contours, 1)
	c := contours[0]
	assert.Equal(t, geometry.Contour{{2, 3}, {11, 3}, {11, 7}, {2, 7}}, c)
	assert.Equal(t, geometry.Box{X: 2, Y: 3, W: 10, H: 5}, c.Bounds())
	assert.InDelta(t, 36, c.Area(), 1e-9)
}

func TestTraceSinglePixelAndLine(t *testing.T) {
	m := createMask(10, 10)
	fillMask(m, 1, 1, 1, 1)
	fillMask(m, 3, 5, 7, 5)

	contours := TraceExternal(m)

	require.Len(t, contours, 2)
	assert.Equal(t, geometry.Contour{{1, 1}}, contours[0])
	assert.Equal(t, geometry.Contour{{3, 5}, {7, 5}}, contours[1])
}

func TestTraceDiagonalIsOneComponent(t *testing.T) {
	m := createMask(10, 10)
	for i := 0; i < 5; i++ {
		fillMask(m, 2+i, 2+i, 2+i, 2+i)
	}

	contours := TraceExternal(m)

	require.Len(t, contours, 1)
	assert.Equal(t, geometry.Contour{{2, 2}, {6, 6}}, contours[0])
}

func TestTraceSkipsNestedShapes(t *testing.T) {
	m := createMask(60, 60)
	// ring
	fillMask(m, 5, 5, 40, 40)
	clearMask(m, 9, 9, 36, 36)
	// dot inside the ring's hole
	fillMask(m, 20, 20, 24, 24)
	// shape outside
	fillMask(m, 48, 10, 55, 15)

	contours := TraceExternal(m)

	require.Len(t, contours, 2)
	assert.Equal(t, geometry.Box{X: 5, Y: 5, W: 36, H: 36}, contours[0].Bounds())
	assert.Equal(t, geometry.Box{X: 48, Y: 10, W: 8, H: 6}, contours[1].Bounds())
}

func TestTraceOpenRingIsNotAHole(t *testing.T) {
	m := createMask(60, 60)
	fillMask(m, 5, 5, 40, 40)
	clearMask(m, 9, 9, 36, 36)
	// a gap in the right wall lets the background in
	clearMask(m, 37, 20, 40, 24)
	fillMask(m, 20, 20, 24, 24)

	contours := TraceExternal(m)
	assert.Len(t, contours, 2)
}

func TestTraceBorderTouchingShape(t *testing.T) {
	m := createMask(10, 10)
	fillMask(m, 0, 0, 3, 9)

	contours := TraceExternal(m)

	require.Len(t, contours, 1)
	assert.Equal(t, geometry.Box{X: 0, Y: 0, W: 4, H: 10}, contours[0].Bounds())
}

func TestTraceEmpty(t *testing.T) {
	assert.Empty(t, TraceExternal(createMask(5, 5)))
}

func TestSortRaster(t *testing.T) {
	contours := []geometry.Contour{
		{{50, 40}, {60, 40}, {60, 50}},
		{{5, 10}, {9, 10}, {9, 12}},
		{{30, 10}, {40, 10}, {40, 20}},
	}
	sortRaster(contours)
	assert.Equal(t, geometry.Point{X: 5, Y: 10}, contours[0][0])
	assert.Equal(t, geometry.Point{X: 30, Y: 10}, contours[1][0])
	assert.Equal(t, geometry.Point{X: 50, Y: 40}, contours[2][0])
}
