// Package viewer shows rendered results in a Tk window. It is the optional
// interactive surface behind the -show flag; the tools work headless
// without it.
package viewer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	tk "modernc.org/tk9.0"

	"github.com/savra0923/skillreal-go/imaging"
)

// Previews are scaled down to fit a reasonable window; full-size output
// lives in the result files.
const (
	maxPreviewW = 1000
	maxPreviewH = 700
)

// Show opens a window titled title displaying img and blocks until the
// window is closed.
func Show(title string, img image.Image) error {
	return ShowAll(title, []image.Image{img})
}

// ShowAll stacks several images in one window and blocks until it is
// closed. Tk owns a single root window per process; batch results go into
// one window rather than one window per image.
func ShowAll(title string, imgs []image.Image) error {
	tk.App.WmTitle(title)
	for _, img := range imgs {
		img = imaging.ScaleToFit(img, maxPreviewW, maxPreviewH)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode preview: %w", err)
		}
		tk.Pack(tk.Label(tk.Image(tk.NewPhoto(tk.Data(buf.Bytes()))), tk.Borderwidth(1), tk.Relief("groove")), tk.Padx("1m"), tk.Pady("1m"))
	}
	tk.Pack(tk.Button(tk.Txt("Close"), tk.Command(func() { tk.Destroy(tk.App) })), tk.Pady("1m"))
	tk.App.Wait()
	return nil
}
