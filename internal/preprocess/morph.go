package preprocess

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// Clean applies a morphological close followed by an open.
func Clean(bin *image.Gray, kernelSize int) *image.Gray {
	radius := float64(kernelSize / 2)
	if radius <= 0 {
		return bin
	}
	closed := effect.Erode(effect.Dilate(bin, radius), radius)
	opened := effect.Dilate(effect.Erode(closed, radius), radius)

	b := opened.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if opened.RGBAAt(b.Min.X+x, b.Min.Y+y).R >= 128 {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
