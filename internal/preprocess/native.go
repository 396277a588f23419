//go:build !gocv
// +build !gocv

package preprocess

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// Backend names the active implementation.
const Backend = "native"

func binarizeAndTrace(img image.Image, cfg Config) (*image.Gray, []geometry.Contour, error) {
	bin := Threshold(img, cfg.BlockSize, cfg.C)
	bin = Clean(bin, cfg.KernelSize)
	return bin, TraceExternal(bin), nil
}

// Threshold applies an inverted Gaussian adaptive threshold. The returned
// mask is anchored at (0,0).
func Threshold(img image.Image, blockSize int, c float64) *image.Gray {
	gray := effect.Grayscale(img)
	mean := blur.Gaussian(gray, float64(blockSize/2))

	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			src := float64(gray.RGBAAt(b.Min.X+x, b.Min.Y+y).R)
			m := mean.RGBAAt(mean.Bounds().Min.X+x, mean.Bounds().Min.Y+y)
			if src <= float64(m.R)-c {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
