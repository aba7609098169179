package compare

import (
	"image"

	"github.com/savra0923/skillreal-go/imaging"
)

// Region is one connected area of significant difference.
type Region struct {
	ID       int             `json:"change_id"`
	Rect     image.Rectangle `json:"-"`
	X        int             `json:"x"`
	Y        int             `json:"y"`
	W        int             `json:"width"`
	H        int             `json:"height"`
	Pixels   int             `json:"pixels"`
	MeanDiff float64         `json:"mean_diff"`
}

// FindRegions labels 8-connected components of nonzero pixels in the diff
// plane and returns those with more than minArea pixels, numbered in scan
// order starting at 1.
func FindRegions(diff *imaging.Plane, minArea int) []Region {
	w, h := diff.W, diff.H
	if w <= 0 || h <= 0 {
		return nil
	}
	visited := make([]bool, w*h)
	stack := make([]int, 0, 256)
	var regions []Region
	for start := 0; start < w*h; start++ {
		if visited[start] || diff.Pix[start] == 0 {
			continue
		}
		// flood fill one component
		minX, minY := start%w, start/w
		maxX, maxY := minX, minY
		pixels, sum := 0, 0
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%w, idx/w
			pixels++
			sum += int(diff.Pix[idx])
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					nidx := ny*w + nx
					if visited[nidx] || diff.Pix[nidx] == 0 {
						continue
					}
					visited[nidx] = true
					stack = append(stack, nidx)
				}
			}
		}
		if pixels <= minArea {
			continue
		}
		r := Region{
			Rect:     image.Rect(minX, minY, maxX+1, maxY+1),
			X:        minX,
			Y:        minY,
			W:        maxX - minX + 1,
			H:        maxY - minY + 1,
			Pixels:   pixels,
			MeanDiff: float64(sum) / float64(pixels),
		}
		regions = append(regions, r)
	}
	for i := range regions {
		regions[i].ID = i + 1
	}
	return regions
}
