package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/notesplit/internal/geometry"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestOverlayDrawsFrames(t *testing.T) {
	page := createInMemoryImage(100, 100, color.White)
	opts := DefaultOverlayOptions()
	opts.ShowLabels = false

	out, err := Overlay(page, []OverlayBox{{Box: geometry.Box{X: 10, Y: 10, W: 30, H: 20}, Color: "#FF0000"}}, opts)
	require.NoError(t, err)

	assert.Equal(t, red, out.RGBAAt(10, 10))
	assert.Equal(t, red, out.RGBAAt(11, 15))
	assert.Equal(t, white, out.RGBAAt(12, 15))
	assert.Equal(t, red, out.RGBAAt(39, 29))
	assert.Equal(t, white, out.RGBAAt(40, 30))
	assert.Equal(t, white, out.RGBAAt(20, 20))

	// the page itself is not modified
	assert.Equal(t, white, page.RGBAAt(10, 10))
}

func TestOverlayLabelsAndGrid(t *testing.T) {
	page := createInMemoryImage(100, 100, color.White)
	opts := DefaultOverlayOptions()
	opts.GridSpacing = 25
	opts.GridColor = "#0000FF"

	out, err := Overlay(page, []OverlayBox{{Box: geometry.Box{X: 50, Y: 50, W: 40, H: 30}, Label: "d0", Color: "#FF0000"}}, opts)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, out.RGBAAt(25, 3))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, out.RGBAAt(3, 75))
	// tag above the box
	assert.Equal(t, red, out.RGBAAt(50, 38))
}

func TestOverlayRejectsBadColor(t *testing.T) {
	page := createInMemoryImage(10, 10, color.White)

	_, err := Overlay(page, []OverlayBox{{Box: geometry.Box{W: 5, H: 5}, Color: "red"}}, DefaultOverlayOptions())
	assert.Error(t, err)

	opts := DefaultOverlayOptions()
	opts.GridSpacing = 5
	opts.GridColor = "#12"
	_, err = Overlay(page, nil, opts)
	assert.ErrorContains(t, err, "grid color")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"00ff00", color.NRGBA{0, 255, 0, 255}, false},
		{"#0000FF80", color.NRGBA{0, 0, 255, 128}, false},
		{"#12", color.NRGBA{}, true},
		{"#GG0000", color.NRGBA{}, true},
		{"#FF0000ZZ", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
