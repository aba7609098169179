package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/savra0923/skillreal-go/compare"
	"github.com/savra0923/skillreal-go/imaging"
)

// Change reports the difference regions between one frame and its
// predecessor. Frame is the 1-based index of the newer frame.
type Change struct {
	Frame   int
	Regions []compare.Region
}

// Watcher diffs consecutive frames from a FrameSource using the same
// pipeline as the folder comparison. Not safe for concurrent use.
type Watcher struct {
	source FrameSource
	opts   compare.PairOptions
	logger *slog.Logger
}

// NewWatcher returns a Watcher reading from source.
func NewWatcher(source FrameSource, opts compare.PairOptions, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{source: source, opts: opts, logger: logger}
}

// Watch captures frames every interval and calls onChange for each frame
// pair with significant difference regions. frames bounds the number of
// captures; 0 means run until ctx is cancelled. A failed capture is logged
// and skipped; a dimension change between frames resets the baseline.
func (w *Watcher) Watch(ctx context.Context, interval time.Duration, frames int, onChange func(Change)) error {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev *imaging.Plane
	defer func() { imaging.RecyclePlane(prev) }()
	count := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		frame, err := w.source()
		if err != nil {
			w.logger.Warn("capture failed", "frame", count+1, "err", err)
			continue
		}
		count++
		cur := imaging.GrayPlane(frame)
		if prev != nil {
			if prev.W == cur.W && prev.H == cur.H {
				res, err := compare.ComparePlanes(prev, cur, w.opts)
				if err != nil {
					w.logger.Warn("frame diff failed", "frame", count, "err", err)
				} else {
					if len(res.Regions) > 0 {
						w.logger.Info("change detected", "frame", count, "regions", len(res.Regions))
						if onChange != nil {
							onChange(Change{Frame: count, Regions: res.Regions})
						}
					}
					imaging.RecyclePlane(res.Diff)
				}
			} else {
				w.logger.Debug("frame size changed, baseline reset", "frame", count)
			}
			imaging.RecyclePlane(prev)
		}
		prev = cur
		if frames > 0 && count >= frames {
			return nil
		}
	}
}
