package imaging

import (
	"image"

	"github.com/nfnt/resize"
)

// ScaleToFit shrinks img to fit within maxW x maxH preserving aspect ratio.
// Images already within bounds are returned unchanged; it never upscales.
func ScaleToFit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return resize.Thumbnail(uint(maxW), uint(maxH), img, resize.Bilinear)
}
