package roi

import (
	"fmt"
	"math/rand"
	"time"
)

// Params describes one generation run: how many ROIs, the canvas, and the
// size range. A CSV batch row parses into one Params.
type Params struct {
	NumROIs     int  `json:"num_rois"`
	ImageWidth  int  `json:"image_width"`
	ImageHeight int  `json:"image_height"`
	MinSize     int  `json:"min_size"`
	MaxSize     int  `json:"max_size"`
	Rect        bool `json:"rect,omitempty"`
}

// Validate reports the first violated constraint, or nil.
func (p Params) Validate() error {
	if p.NumROIs < 1 {
		return fmt.Errorf("num_rois must be >= 1, got %d", p.NumROIs)
	}
	if p.ImageWidth < 1 || p.ImageHeight < 1 {
		return fmt.Errorf("canvas must be at least 1x1, got %dx%d", p.ImageWidth, p.ImageHeight)
	}
	if p.MinSize < 1 {
		return fmt.Errorf("min_size must be >= 1, got %d", p.MinSize)
	}
	if p.MaxSize < p.MinSize {
		return fmt.Errorf("max_size %d is smaller than min_size %d", p.MaxSize, p.MinSize)
	}
	if p.MaxSize > p.ImageWidth || p.MaxSize > p.ImageHeight {
		return fmt.Errorf("max_size %d does not fit a %dx%d canvas", p.MaxSize, p.ImageWidth, p.ImageHeight)
	}
	return nil
}

// Generator produces uniformly random ROIs. Not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed; seed 0 means a time
// based source, so results vary run to run.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces p.NumROIs random ROIs fully inside the canvas. Sizes are
// uniform in [MinSize, MaxSize]; squares unless p.Rect, in which case width
// and height are sampled independently.
func (g *Generator) Generate(p Params) ([]ROI, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rois := make([]ROI, 0, p.NumROIs)
	for i := 0; i < p.NumROIs; i++ {
		w := p.MinSize + g.rng.Intn(p.MaxSize-p.MinSize+1)
		h := w
		if p.Rect {
			h = p.MinSize + g.rng.Intn(p.MaxSize-p.MinSize+1)
		}
		x := g.rng.Intn(p.ImageWidth - w + 1)
		y := g.rng.Intn(p.ImageHeight - h + 1)
		rois = append(rois, ROI{X: x, Y: y, W: w, H: h})
	}
	return rois, nil
}
