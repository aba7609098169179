// Package compare implements the image difference pipeline: absolute
// difference planes, threshold masking, connected difference regions, and
// the per-test-case runner behind the imagecomp tool.
package compare

import (
	"errors"
	"fmt"

	"github.com/savra0923/skillreal-go/imaging"
)

// ErrDimensionMismatch is returned when two images cannot be compared
// because their dimensions differ.
var ErrDimensionMismatch = errors.New("images must have the same dimensions")

func dimensionMismatch(a, b *imaging.Plane) error {
	return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.W, a.H, b.W, b.H)
}

// AbsDiff returns |a-b| as a new plane. The planes must be the same size.
func AbsDiff(a, b *imaging.Plane) (*imaging.Plane, error) {
	if a.W != b.W || a.H != b.H {
		return nil, dimensionMismatch(a, b)
	}
	out := imaging.AcquirePlane(a.W, a.H)
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		out.Pix[i] = byte(d)
	}
	return out, nil
}

// Threshold zeroes every pixel at or below t, in place. Surviving pixels
// keep their difference value, matching the original thresholded-diff image.
func Threshold(p *imaging.Plane, t int) {
	if t < 0 {
		t = 0
	}
	for i, v := range p.Pix {
		if int(v) <= t {
			p.Pix[i] = 0
		}
	}
}
