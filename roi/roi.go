// Package roi implements random region-of-interest generation and the
// pairwise overlap geometry the overlap tool reports on.
package roi

import "image"

// ROI is an axis-aligned rectangle inside a canvas. Immutable once generated.
type ROI struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"width"`
	H int `json:"height"`
}

// Bounds returns the ROI as a stdlib rectangle.
func (r ROI) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Area returns the ROI area in pixels.
func (r ROI) Area() int { return r.W * r.H }

// Touches reports whether two ROIs overlap or share an edge/corner.
// The comparison is inclusive: rectangles that merely touch count.
func (r ROI) Touches(o ROI) bool {
	if r.X+r.W < o.X || o.X+o.W < r.X {
		return false
	}
	if r.Y+r.H < o.Y || o.Y+o.H < r.Y {
		return false
	}
	return true
}

// Intersection returns the intersection area of two ROIs; 0 when they are
// disjoint or only touch edges.
func (r ROI) Intersection(o ROI) int {
	w := min(r.X+r.W, o.X+o.W) - max(r.X, o.X)
	h := min(r.Y+r.H, o.Y+o.H) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// OverlapRatio returns the intersection area normalized by the smaller ROI's
// area: 0 without geometric intersection, 1 when one ROI contains the other.
func (r ROI) OverlapRatio(o ROI) float64 {
	inter := r.Intersection(o)
	if inter <= 0 {
		return 0
	}
	smaller := min(r.Area(), o.Area())
	if smaller <= 0 {
		return 0
	}
	return float64(inter) / float64(smaller)
}
