package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/savra0923/skillreal-go/roi"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestROICanvas_ColorsByOverlapMembership(t *testing.T) {
	rois := []roi.ROI{
		{X: 10, Y: 10, W: 20, H: 20},
		{X: 15, Y: 15, W: 20, H: 20},
		{X: 60, Y: 60, W: 10, H: 10},
	}
	stats := roi.Analyze(rois)
	img := ROICanvas(100, 100, rois, stats)
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Fatalf("canvas bounds %v", img.Bounds())
	}
	// top edge midpoint of an overlapping ROI
	c := rgbaAt(img, 20, 10)
	if c.R <= c.B {
		t.Fatalf("overlapping ROI edge not red: %+v", c)
	}
	// top edge midpoint of the isolated ROI
	c = rgbaAt(img, 65, 60)
	if c.B <= c.R {
		t.Fatalf("isolated ROI edge not blue: %+v", c)
	}
	// background stays white
	c = rgbaAt(img, 95, 5)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("background not white: %+v", c)
	}
}

func TestRegionOverlay_DrawsBoxesWithoutMutatingBase(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for i := range base.Pix {
		base.Pix[i] = 128
	}
	out := RegionOverlay(base, []image.Rectangle{image.Rect(10, 10, 30, 30)})
	c := rgbaAt(out, 20, 10)
	if c.R <= c.G {
		t.Fatalf("box edge not red: %+v", c)
	}
	// base untouched
	if base.Pix[(10*50+20)*4] != 128 {
		t.Fatalf("base image mutated")
	}
}
