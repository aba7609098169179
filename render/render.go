// Package render draws analysis results onto image canvases with gg.
package render

import (
	"image"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/savra0923/skillreal-go/roi"
)

// ROICanvas renders the generated ROIs onto a white canvas: red outlines for
// ROIs in the overlapping set, blue for the rest, each labeled with its
// 1-based index at the top-left corner.
func ROICanvas(width, height int, rois []roi.ROI, stats *roi.Stats) image.Image {
	ctx := gg.NewContext(width, height)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()
	ctx.SetLineWidth(1)
	for i, r := range rois {
		if stats != nil && stats.IsOverlapping(i) {
			ctx.SetRGB(1, 0, 0)
		} else {
			ctx.SetRGB(0, 0, 1)
		}
		ctx.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		ctx.Stroke()
		ctx.SetRGB(0, 0, 0)
		ctx.DrawString(strconv.Itoa(i+1), float64(r.X)+2, float64(r.Y)+12)
	}
	return ctx.Image()
}

// RegionOverlay draws red boxes around the given rectangles on a copy of
// base. The input image is not modified.
func RegionOverlay(base image.Image, rects []image.Rectangle) image.Image {
	ctx := gg.NewContextForImage(base)
	ctx.SetRGB(1, 0, 0)
	ctx.SetLineWidth(2)
	for _, r := range rects {
		ctx.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		ctx.Stroke()
	}
	return ctx.Image()
}
