// Command imagecomp compares the image pair in every test-case sub-folder
// of a root directory and reports regions of significant difference. With
// -watch it runs the same pipeline over consecutive screen captures.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/savra0923/skillreal-go/capture"
	"github.com/savra0923/skillreal-go/compare"
	"github.com/savra0923/skillreal-go/config"
	"github.com/savra0923/skillreal-go/debug"
	"github.com/savra0923/skillreal-go/imaging"
	"github.com/savra0923/skillreal-go/logging"
	"github.com/savra0923/skillreal-go/viewer"
)

func main() {
	var (
		root       = flag.String("r", "test_cases", "root folder containing test case subfolders, each with exactly two images")
		threshold  = flag.Int("t", 50, "threshold for significant differences (0-255)")
		minArea    = flag.Int("a", 50, "minimum region area in pixels; smaller components are noise")
		align      = flag.Int("align", 0, "search translations within ±N px before diffing (0 disables)")
		outDir     = flag.String("o", "", "results directory (default <root>/results)")
		show       = flag.Bool("show", false, "display annotated results in a window")
		configPath = flag.String("config", "", "JSON config file; flags override its values")
		debugFlag  = flag.Bool("debug", false, "enable debug logging")
		watch      = flag.Bool("watch", false, "diff consecutive screen captures instead of folders")
		interval   = flag.Duration("interval", 500*time.Millisecond, "capture interval in watch mode")
		region     = flag.String("region", "", "screen region x,y,w,h for watch mode (default full screen)")
		frames     = flag.Int("frames", 0, "number of captures in watch mode (0 = until interrupted)")
	)
	flag.Parse()

	cfg, err := config.LoadCompare(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r":
			cfg.Root = *root
		case "t":
			cfg.Threshold = *threshold
		case "a":
			cfg.MinArea = *minArea
		case "align":
			cfg.AlignMaxOffset = *align
		case "o":
			cfg.ResultsDir = *outDir
		case "show":
			cfg.Show = *show
		case "debug":
			cfg.Debug = *debugFlag
		case "interval":
			cfg.WatchInterval = *interval
		case "frames":
			cfg.WatchFrames = *frames
		}
	})
	_ = cfg.Validate()
	logger := logging.NewLogger(logging.Level(cfg.Debug))

	if *watch {
		if err := runWatch(cfg, *region, logger); err != nil {
			logger.Error("watch failed", "err", err)
			os.Exit(1)
		}
		return
	}

	runner := compare.NewRunner(cfg, logger)
	summary, err := runner.Run()
	if err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
	logger.Info("run complete", "run_id", summary.RunID, "cases", len(summary.Cases), "failed", summary.Failed())
	if cfg.Show {
		if err := showResults(summary); err != nil {
			logger.Warn("viewer failed", "err", err)
		}
	}
}

func runWatch(cfg *config.CompareConfig, regionSpec string, logger *slog.Logger) error {
	region, err := parseRegion(regionSpec)
	if err != nil {
		return err
	}
	if cfg.Debug {
		debug.StartMemLogger(2*time.Second, logger)
		debug.StartGoroutineLogger(2*time.Second, logger)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	w := capture.NewWatcher(capture.ScreenSource(region), compare.PairOptions{
		Threshold: cfg.Threshold,
		MinArea:   cfg.MinArea,
	}, logger)
	err = w.Watch(ctx, cfg.WatchInterval, cfg.WatchFrames, func(c capture.Change) {
		fmt.Printf("Frame %d: %d change region(s)\n", c.Frame, len(c.Regions))
		for _, r := range c.Regions {
			fmt.Printf("  change %d: %d px at (%d,%d) %dx%d\n", r.ID, r.Pixels, r.X, r.Y, r.W, r.H)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// parseRegion parses "x,y,w,h" into a screen rectangle.
func parseRegion(spec string) (*image.Rectangle, error) {
	if spec == "" {
		return nil, nil
	}
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("region must be x,y,w,h, got %q", spec)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("region component %q is not an integer", p)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return nil, fmt.Errorf("region size must be positive, got %dx%d", vals[2], vals[3])
	}
	r := image.Rect(vals[0], vals[1], vals[0]+vals[2], vals[1]+vals[3])
	return &r, nil
}

func showResults(summary *compare.RunSummary) error {
	var imgs []image.Image
	for _, c := range summary.Cases {
		if c.Error != "" || c.RegionsImage == "" {
			continue
		}
		img, err := imaging.Load(c.RegionsImage)
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
	}
	if len(imgs) == 0 {
		return nil
	}
	return viewer.ShowAll("imagecomp results", imgs)
}
