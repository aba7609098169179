package imaging

import "sync"

// Lightweight reusable plane pool to reduce heap churn when a batch run
// processes many same-sized images. If consumers never recycle, behavior
// degrades gracefully to plain allocation.

var planePool sync.Pool // stores *Plane

// AcquirePlane returns a reusable plane sized w x h with zeroed pixels.
func AcquirePlane(w, h int) *Plane {
	if w <= 0 || h <= 0 {
		return &Plane{}
	}
	needed := w * h
	var p *Plane
	if v := planePool.Get(); v != nil {
		p = v.(*Plane)
	}
	if p == nil || cap(p.Pix) < needed {
		p = &Plane{Pix: make([]byte, needed), W: w, H: h}
		return p
	}
	p.Pix = p.Pix[:needed]
	p.W, p.H = w, h
	clear(p.Pix)
	return p
}

// RecyclePlane returns the plane to the pool for potential reuse. The plane
// must no longer be accessed by the caller after invoking RecyclePlane.
func RecyclePlane(p *Plane) {
	if p == nil || p.Pix == nil {
		return
	}
	planePool.Put(p)
}
