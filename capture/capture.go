// Package capture provides screen frame acquisition and the watch-mode
// loop that diffs consecutive captures.
package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabRect returns a capture of the given screen rectangle.
func GrabRect(area image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// FrameSource supplies one frame per call. Watch mode takes its frames
// through this so tests can inject synthetic sequences.
type FrameSource func() (*image.RGBA, error)

// ScreenSource returns a FrameSource over the whole screen, or over region
// when non-nil.
func ScreenSource(region *image.Rectangle) FrameSource {
	if region != nil {
		r := *region
		return func() (*image.RGBA, error) { return GrabRect(r) }
	}
	return func() (*image.RGBA, error) { return Grab() }
}
