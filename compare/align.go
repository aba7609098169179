package compare

import (
	"math"

	"github.com/savra0923/skillreal-go/imaging"
)

// BestAlignment searches translations of b within ±maxOffset pixels and
// returns the offset minimizing mean absolute difference over the
// overlapping area, with that mean. Offset (0,0) is returned for
// maxOffset <= 0.
func BestAlignment(a, b *imaging.Plane, maxOffset int) (dx, dy int, score float64) {
	if maxOffset <= 0 {
		return 0, 0, meanAbsDiffAt(a, b, 0, 0)
	}
	best := math.Inf(1)
	for oy := -maxOffset; oy <= maxOffset; oy++ {
		for ox := -maxOffset; ox <= maxOffset; ox++ {
			m := meanAbsDiffAt(a, b, ox, oy)
			if m < best {
				best, dx, dy = m, ox, oy
			}
		}
	}
	return dx, dy, best
}

// meanAbsDiffAt compares a(x, y) against b(x-dx, y-dy) over the overlap.
// Returns +Inf when the overlap is empty.
func meanAbsDiffAt(a, b *imaging.Plane, dx, dy int) float64 {
	x0, y0 := max(0, dx), max(0, dy)
	x1 := min(a.W, b.W+dx)
	y1 := min(a.H, b.H+dy)
	if x0 >= x1 || y0 >= y1 {
		return math.Inf(1)
	}
	sum := 0
	for y := y0; y < y1; y++ {
		av := a.Pix[y*a.W:]
		bv := b.Pix[(y-dy)*b.W:]
		for x := x0; x < x1; x++ {
			d := int(av[x]) - int(bv[x-dx])
			if d < 0 {
				d = -d
			}
			sum += d
		}
	}
	return float64(sum) / float64((x1-x0)*(y1-y0))
}

// AlignedDiff returns |a - shift(b, dx, dy)| sized like a. Pixels with no
// counterpart under the shift count as fully different (255).
func AlignedDiff(a, b *imaging.Plane, dx, dy int) *imaging.Plane {
	out := imaging.AcquirePlane(a.W, a.H)
	for y := 0; y < a.H; y++ {
		by := y - dy
		for x := 0; x < a.W; x++ {
			bx := x - dx
			i := y*a.W + x
			if bx < 0 || by < 0 || bx >= b.W || by >= b.H {
				out.Pix[i] = 255
				continue
			}
			d := int(a.Pix[i]) - int(b.Pix[by*b.W+bx])
			if d < 0 {
				d = -d
			}
			out.Pix[i] = byte(d)
		}
	}
	return out
}
