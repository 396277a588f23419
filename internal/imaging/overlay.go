package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// OverlayBox is one rectangle to draw on a debug overlay.
type OverlayBox struct {
	Box   geometry.Box
	Label string
	// Color is "#RRGGBB" or "#RRGGBBAA".
	Color string
}

// OverlayOptions controls the debug overlay.
type OverlayOptions struct {
	// Thickness of box outlines in pixels, drawn inside the box.
	Thickness int
	// GridSpacing draws a coordinate grid when positive.
	GridSpacing int
	GridColor   string
	ShowLabels  bool
}

// DefaultOverlayOptions returns labeled 2 px outlines without a grid.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		Thickness:  2,
		GridColor:  "#FF000040",
		ShowLabels: true,
	}
}

// Overlay draws the boxes over a copy of page, in order.
func Overlay(page image.Image, boxes []OverlayBox, opts OverlayOptions) (*image.RGBA, error) {
	b := page.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), page, b.Min, draw.Src)

	if opts.GridSpacing > 0 {
		gc, err := ParseColor(opts.GridColor)
		if err != nil {
			return nil, fmt.Errorf("grid color: %w", err)
		}
		drawGrid(out, opts.GridSpacing, gc)
	}

	thickness := opts.Thickness
	if thickness < 1 {
		thickness = 1
	}
	for _, ob := range boxes {
		c, err := ParseColor(ob.Color)
		if err != nil {
			return nil, fmt.Errorf("box %s: %w", ob.Box, err)
		}
		drawFrame(out, ob.Box, thickness, c)
		if opts.ShowLabels && ob.Label != "" {
			drawLabel(out, ob.Box.X, ob.Box.Y-basicfont.Face7x13.Height, ob.Label, c)
		}
	}
	return out, nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseColor(hex string) (color.NRGBA, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	alpha := uint8(255)
	switch len(hex) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, bl := c.RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: alpha}, nil
}

func drawGrid(img *image.RGBA, spacing int, c color.NRGBA) {
	b := img.Bounds()
	src := image.NewUniform(c)
	for x := spacing; x < b.Dx(); x += spacing {
		draw.Draw(img, image.Rect(x, 0, x+1, b.Dy()), src, image.Point{}, draw.Over)
	}
	for y := spacing; y < b.Dy(); y += spacing {
		draw.Draw(img, image.Rect(0, y, b.Dx(), y+1), src, image.Point{}, draw.Over)
	}
}

func drawFrame(img *image.RGBA, box geometry.Box, t int, c color.NRGBA) {
	src := image.NewUniform(c)
	r := image.Rect(box.X, box.Y, box.Right(), box.Bottom())
	t = minInt(t, minInt(box.W, box.H))
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+t, r.Min.X+t, r.Max.Y-t),
		image.Rect(r.Max.X-t, r.Min.Y+t, r.Max.X, r.Max.Y-t),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(img.Bounds()), src, image.Point{}, draw.Over)
	}
}

// drawLabel writes text on a filled tag at (x, y), moved inside the image
// when it would fall off an edge.
func drawLabel(img *image.RGBA, x, y int, text string, bg color.NRGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelInk(bg)),
		Face: face,
	}
	w := d.MeasureString(text).Ceil() + 4
	h := face.Height + 2

	b := img.Bounds()
	if x+w > b.Max.X {
		x = b.Max.X - w
	}
	if x < b.Min.X {
		x = b.Min.X
	}
	if y < b.Min.Y {
		y = b.Min.Y
	}
	tag := image.Rect(x, y, x+w, y+h).Intersect(b)
	bg.A = 255
	draw.Draw(img, tag, image.NewUniform(bg), image.Point{}, draw.Src)

	d.Dot = fixed.P(x+2, y+1+face.Ascent)
	d.DrawString(text)
}

// labelInk picks black or white text for the tag color.
func labelInk(bg color.NRGBA) color.Color {
	c, _ := colorful.MakeColor(color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
	if l, _, _ := c.Lab(); l > 0.6 {
		return color.Black
	}
	return color.White
}
