package imaging

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// InkSample is the dominant ink color of a masked region.
type InkSample struct {
	Hex string   `json:"hex"`
	HSL HSLColor `json:"hsl"`
	// Pixels is the number of pixels averaged.
	Pixels int `json:"pixels"`
}

// InkColor estimates the ink color of img under the set pixels of mask.
//
// The masked pixels include the paper enclosed by a drawn outline, so only
// pixels darker than the masked mean lightness are averaged, in CIE L*a*b*.
// A region of uniform color averages all of its pixels. The mask is aligned
// with the top-left corner of img. ok is false when the mask is empty.
func InkColor(img image.Image, mask *image.Gray) (InkSample, bool) {
	b := img.Bounds()
	w := minInt(b.Dx(), mask.Bounds().Dx())
	h := minInt(b.Dy(), mask.Bounds().Dy())

	type lab struct{ l, a, b float64 }
	samples := make([]lab, 0, w*h/4)
	var sumL float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.GrayAt(mask.Bounds().Min.X+x, mask.Bounds().Min.Y+y).Y == 0 {
				continue
			}
			c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			if !ok {
				// fully transparent
				continue
			}
			l, a, bb := c.Lab()
			samples = append(samples, lab{l, a, bb})
			sumL += l
		}
	}
	if len(samples) == 0 {
		return InkSample{}, false
	}

	meanL := sumL / float64(len(samples))
	var acc lab
	n := 0
	for _, s := range samples {
		if s.l < meanL-1e-6 {
			acc.l += s.l
			acc.a += s.a
			acc.b += s.b
			n++
		}
	}
	if n == 0 {
		for _, s := range samples {
			acc.l += s.l
			acc.a += s.a
			acc.b += s.b
		}
		n = len(samples)
	}

	c := colorful.Lab(acc.l/float64(n), acc.a/float64(n), acc.b/float64(n)).Clamped()
	hh, ss, ll := c.Hsl()
	if math.IsNaN(hh) {
		hh = 0
	}
	return InkSample{
		Hex: c.Hex(),
		HSL: HSLColor{
			H: int(math.Round(hh)) % 360,
			S: int(math.Round(ss * 100)),
			L: int(math.Round(ll * 100)),
		},
		Pixels: n,
	}, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
