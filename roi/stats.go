package roi

// PairOverlap records the overlap of one ROI pair (by index).
type PairOverlap struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	Area  int     `json:"area"`
	Ratio float64 `json:"ratio"`
}

// Stats aggregates the pairwise overlap analysis of one generation run.
type Stats struct {
	Generated      int           `json:"generated"`
	Overlapping    []int         `json:"overlapping"`
	NonOverlapping int           `json:"non_overlapping"`
	Pairs          []PairOverlap `json:"pairs,omitempty"`
	TotalArea      int           `json:"total_intersection_area"`
	MeanRatio      float64       `json:"mean_ratio"`
	MaxRatio       float64       `json:"max_ratio"`
}

// IsOverlapping reports whether the ROI at index i touches any other ROI.
func (s *Stats) IsOverlapping(i int) bool {
	for _, idx := range s.Overlapping {
		if idx == i {
			return true
		}
	}
	return false
}

// Analyze runs the all-pairs overlap test. A pair that merely touches edges
// is counted in the overlapping set but contributes area 0 and ratio 0; the
// mean ratio is taken over pairs with positive intersection.
func Analyze(rois []ROI) *Stats {
	s := &Stats{Generated: len(rois)}
	overlapping := make(map[int]bool)
	intersecting := 0
	for i := 0; i < len(rois); i++ {
		for j := i + 1; j < len(rois); j++ {
			if !rois[i].Touches(rois[j]) {
				continue
			}
			overlapping[i] = true
			overlapping[j] = true
			area := rois[i].Intersection(rois[j])
			ratio := rois[i].OverlapRatio(rois[j])
			s.Pairs = append(s.Pairs, PairOverlap{I: i, J: j, Area: area, Ratio: ratio})
			s.TotalArea += area
			if area > 0 {
				intersecting++
				s.MeanRatio += ratio
			}
			if ratio > s.MaxRatio {
				s.MaxRatio = ratio
			}
		}
	}
	for i := 0; i < len(rois); i++ {
		if overlapping[i] {
			s.Overlapping = append(s.Overlapping, i)
		}
	}
	s.NonOverlapping = len(rois) - len(s.Overlapping)
	if intersecting > 0 {
		s.MeanRatio /= float64(intersecting)
	}
	return s
}
