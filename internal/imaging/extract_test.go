package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/notesplit/internal/geometry"
)

var inkBlue = color.RGBA{10, 20, 120, 255}

// createNotePage returns a white page with one filled ink square at
// (20,20)-(39,39) and its traced contour.
func createNotePage() (*image.RGBA, geometry.Contour) {
	img := createInMemoryImage(100, 80, color.White)
	draw.Draw(img, image.Rect(20, 20, 40, 40), &image.Uniform{C: inkBlue}, image.Point{}, draw.Src)
	return img, geometry.Contour{{20, 20}, {39, 20}, {39, 39}, {20, 39}}
}

func TestExtractMasksOutsideContours(t *testing.T) {
	page, square := createNotePage()
	box := geometry.Box{X: 10, Y: 10, W: 40, H: 40}
	opts := DefaultExtractOptions()
	opts.Enhance = false

	ext, err := Extract(page, []geometry.Contour{square}, box, opts)
	require.NoError(t, err)

	require.Equal(t, image.Rect(0, 0, 40, 40), ext.Image.Bounds())
	assert.Equal(t, uint8(0), ext.Image.NRGBAAt(2, 2).A)
	assert.Equal(t, color.NRGBA{10, 20, 120, 255}, ext.Image.NRGBAAt(20, 20))

	s := ext.Stats
	assert.Equal(t, 40, s.Width)
	assert.Equal(t, 40, s.Height)
	assert.Equal(t, 1600, s.TotalPixels)
	assert.InDelta(t, 400, s.NonTransparent, 4)
	assert.InDelta(t, 0.25, s.Coverage, 0.003)
	assert.Equal(t, geometry.Box{X: 10, Y: 10, W: 20, H: 20}, s.ContentBox)

	got, err := colorful.Hex(s.InkColor)
	require.NoError(t, err)
	want, _ := colorful.MakeColor(inkBlue)
	assert.Less(t, got.DistanceRgb(want), 0.02)
}

func TestExtractEnhanceProducesGray(t *testing.T) {
	page, square := createNotePage()
	box := geometry.Box{X: 15, Y: 15, W: 30, H: 30}

	ext, err := Extract(page, []geometry.Contour{square}, box, DefaultExtractOptions())
	require.NoError(t, err)

	c := ext.Image.NRGBAAt(15, 15)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
	assert.NotEmpty(t, ext.Stats.InkColor)
}

func TestExtractHonorsPageOrigin(t *testing.T) {
	page, square := createNotePage()
	shifted := image.NewRGBA(image.Rect(100, 200, 200, 280))
	draw.Draw(shifted, shifted.Bounds(), page, image.Point{}, draw.Src)

	opts := DefaultExtractOptions()
	opts.Enhance = false
	ext, err := Extract(shifted, []geometry.Contour{square}, geometry.Box{X: 20, Y: 20, W: 20, H: 20}, opts)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{10, 20, 120, 255}, ext.Image.NRGBAAt(10, 10))
}

func TestExtractRejectsBadRegions(t *testing.T) {
	page, square := createNotePage()

	_, err := Extract(page, []geometry.Contour{square}, geometry.Box{X: 80, Y: 60, W: 40, H: 40}, DefaultExtractOptions())
	assert.ErrorContains(t, err, "outside page bounds")

	_, err = Extract(page, []geometry.Contour{square}, geometry.Box{X: 10, Y: 10}, DefaultExtractOptions())
	assert.ErrorContains(t, err, "invalid extraction region")
}

func TestRegionStatsEmpty(t *testing.T) {
	s := RegionStats(image.NewNRGBA(image.Rect(0, 0, 8, 4)))
	assert.Equal(t, 32, s.TotalPixels)
	assert.Zero(t, s.NonTransparent)
	assert.Zero(t, s.Coverage)
	assert.Equal(t, geometry.Box{}, s.ContentBox)
}

func TestSaveAndEncode(t *testing.T) {
	page, square := createNotePage()
	ext, err := Extract(page, []geometry.Contour{square}, geometry.Box{X: 10, Y: 10, W: 40, H: 40}, DefaultExtractOptions())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "diagram_0.png")
	require.NoError(t, Save(ext.Image, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, ext.Image.Bounds(), decoded.Bounds())
	_, _, _, a := decoded.At(0, 0).RGBA()
	assert.Zero(t, a)

	data, err := EncodePNG(ext.Image)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)

	assert.Error(t, Save(ext.Image, filepath.Join(t.TempDir(), "missing", "x.png")))
}
