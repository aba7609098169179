package imaging

import (
	"image"
	"image/color"
)

// Plane is an 8-bit single-channel pixel plane with row-major layout.
// It is the working representation for the diff pipeline.
type Plane struct {
	Pix []byte
	W   int
	H   int
}

// At returns the value at (x, y). The caller must keep coordinates in bounds.
func (p *Plane) At(x, y int) byte { return p.Pix[y*p.W+x] }

// Set writes the value at (x, y).
func (p *Plane) Set(x, y int, v byte) { p.Pix[y*p.W+x] = v }

// ToGray copies the plane into a stdlib *image.Gray for encoding.
func (p *Plane) ToGray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, p.W, p.H))
	copy(out.Pix, p.Pix)
	return out
}

// Clone returns an unpooled copy of the plane.
func (p *Plane) Clone() *Plane {
	out := &Plane{Pix: make([]byte, len(p.Pix)), W: p.W, H: p.H}
	copy(out.Pix, p.Pix)
	return out
}

// GrayPlane reduces img to an 8-bit luma plane using BT.601 integer weights.
// The fast path walks RGBA backing pixels directly; other formats go through
// the color model. The returned plane comes from the pool; hand it back with
// RecyclePlane when done.
func GrayPlane(img image.Image) *Plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := AcquirePlane(w, h)
	if rgba, ok := img.(*image.RGBA); ok {
		idx := 0
		for y := 0; y < h; y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
			for x := 0; x < w; x++ {
				i := x * 4
				r, g, bb := row[i], row[i+1], row[i+2]
				p.Pix[idx] = byte((77*uint32(r) + 150*uint32(g) + 29*uint32(bb)) >> 8)
				idx++
			}
		}
		return p
	}
	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			copy(p.Pix[y*w:(y+1)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
		}
		return p
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			p.Pix[idx] = byte((77*uint32(c.R) + 150*uint32(c.G) + 29*uint32(c.B)) >> 8)
			idx++
		}
	}
	return p
}
