package imaging

import (
	"image"
	"image/color"
	"math/bits"

	"github.com/nfnt/resize"
)

const hashScaleSize = 8

// AverageHash computes the 64-bit average hash of img: the image is scaled
// to 8x8, and each bit records whether that cell is brighter than the mean.
func AverageHash(img image.Image) uint64 {
	scaled := resize.Resize(hashScaleSize, hashScaleSize, img, resize.Bilinear)
	b := scaled.Bounds()
	var brightness [hashScaleSize * hashScaleSize]float64
	var sum float64
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray := color.GrayModel.Convert(scaled.At(x, y))
			r, _, _, _ := gray.RGBA()
			v := float64(r) / 0xffff
			brightness[i] = v
			sum += v
			i++
		}
	}
	mean := sum / float64(len(brightness))
	var hash uint64
	for i, v := range brightness {
		if v > mean {
			hash |= 1 << uint(i)
		}
	}
	return hash
}

// HashSimilarity returns the fraction of matching bits between two hashes,
// 1.0 for identical hashes.
func HashSimilarity(a, b uint64) float64 {
	return float64(64-bits.OnesCount64(a^b)) / 64
}
