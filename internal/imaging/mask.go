package imaging

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// ContourMask rasterizes the filled contours into a mask covering box.
// Pixel (0,0) of the mask is page pixel (box.X, box.Y); covered pixels are
// 255. Contour pixels themselves are always set, so lines and single points
// survive even though they enclose no area.
func ContourMask(contours []geometry.Contour, box geometry.Box) *image.Gray {
	if box.Empty() {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	mask := image.NewGray(image.Rect(0, 0, box.W, box.H))

	z := vector.NewRasterizer(box.W, box.H)
	filled := false
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		z.MoveTo(float32(c[0].X-box.X)+0.5, float32(c[0].Y-box.Y)+0.5)
		for _, p := range c[1:] {
			z.LineTo(float32(p.X-box.X)+0.5, float32(p.Y-box.Y)+0.5)
		}
		z.ClosePath()
		filled = true
	}
	if filled {
		cover := image.NewAlpha(mask.Bounds())
		z.Draw(cover, cover.Bounds(), image.Opaque, image.Point{})
		for i, a := range cover.Pix {
			if a > 0 {
				mask.Pix[i] = 255
			}
		}
	}

	for _, c := range contours {
		for i := range c {
			a, b := c[i], c[(i+1)%len(c)]
			drawSegment(mask, a.X-box.X, a.Y-box.Y, b.X-box.X, b.Y-box.Y)
		}
	}
	return mask
}

// drawSegment sets every pixel on the Bresenham line from (x0,y0) to
// (x1,y1) that falls inside the mask.
func drawSegment(mask *image.Gray, x0, y0, x1, y1 int) {
	b := mask.Bounds()
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if image.Pt(x0, y0).In(b) {
			mask.Pix[mask.PixOffset(x0, y0)] = 255
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
