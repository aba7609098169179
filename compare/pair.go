package compare

import (
	"image"

	"github.com/savra0923/skillreal-go/imaging"
)

// PairOptions configures one pairwise comparison.
type PairOptions struct {
	// Threshold is the per-pixel significance cutoff (0-255, strict).
	Threshold int
	// MinArea drops components with this many pixels or fewer.
	MinArea int
	// AlignMaxOffset enables a translation search within ±N pixels before
	// diffing; 0 compares in place.
	AlignMaxOffset int
}

// PairResult holds the outcome of one pairwise comparison. Diff is the
// thresholded difference plane; recycle it with imaging.RecyclePlane when
// done.
type PairResult struct {
	Regions []Region
	Diff    *imaging.Plane
	AlignDX int
	AlignDY int
}

// Rects returns the bounding boxes of the detected regions.
func (r *PairResult) Rects() []image.Rectangle {
	rects := make([]image.Rectangle, len(r.Regions))
	for i, reg := range r.Regions {
		rects[i] = reg.Rect
	}
	return rects
}

// ComparePlanes runs the diff pipeline on two grayscale planes.
func ComparePlanes(a, b *imaging.Plane, opts PairOptions) (*PairResult, error) {
	res := &PairResult{}
	if opts.AlignMaxOffset > 0 {
		if a.W != b.W || a.H != b.H {
			// Alignment assumes a shared coordinate space.
			return nil, dimensionMismatch(a, b)
		}
		res.AlignDX, res.AlignDY, _ = BestAlignment(a, b, opts.AlignMaxOffset)
		res.Diff = AlignedDiff(a, b, res.AlignDX, res.AlignDY)
	} else {
		diff, err := AbsDiff(a, b)
		if err != nil {
			return nil, err
		}
		res.Diff = diff
	}
	Threshold(res.Diff, opts.Threshold)
	res.Regions = FindRegions(res.Diff, opts.MinArea)
	return res, nil
}

// ComparePair reduces two images to grayscale and runs ComparePlanes.
func ComparePair(a, b image.Image, opts PairOptions) (*PairResult, error) {
	pa := imaging.GrayPlane(a)
	defer imaging.RecyclePlane(pa)
	pb := imaging.GrayPlane(b)
	defer imaging.RecyclePlane(pb)
	return ComparePlanes(pa, pb, opts)
}
