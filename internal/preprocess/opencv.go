//go:build gocv
// +build gocv

package preprocess

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/notesplit/internal/geometry"
)

// Backend names the active implementation.
const Backend = "opencv"

func binarizeAndTrace(img image.Image, cfg Config) (*image.Gray, []geometry.Contour, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, nil, errors.New("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.AdaptiveThreshold(gray, &bin, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv,
		cfg.BlockSize, float32(cfg.C))

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(cfg.KernelSize, cfg.KernelSize))
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(bin, &closed, gocv.MorphClose, kernel)

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(closed, &opened, gocv.MorphOpen, kernel)

	found := gocv.FindContours(opened, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]geometry.Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		pts := found.At(i).ToPoints()
		c := make(geometry.Contour, len(pts))
		for j, p := range pts {
			c[j] = geometry.Point{X: p.X, Y: p.Y}
		}
		contours = append(contours, c)
	}
	sortRaster(contours)

	out, err := opened.ToImage()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert mask: %w", err)
	}
	g, ok := out.(*image.Gray)
	if !ok {
		return nil, nil, errors.New("unexpected mask type")
	}
	return g, contours, nil
}
