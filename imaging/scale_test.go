package imaging

import (
	"image"
	"testing"
)

func TestScaleToFit_PreservesSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if got := ScaleToFit(img, 200, 200); got != image.Image(img) {
		t.Fatalf("small image should be returned unchanged")
	}
}

func TestScaleToFit_ShrinksKeepingAspect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	got := ScaleToFit(img, 500, 500)
	b := got.Bounds()
	if b.Dx() > 500 || b.Dy() > 500 {
		t.Fatalf("not within bounds: %v", b)
	}
	if b.Dx() != 500 || b.Dy() != 250 {
		t.Fatalf("aspect not preserved: %v", b)
	}
}
