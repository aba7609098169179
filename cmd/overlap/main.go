// Command overlap generates random rectangular ROIs on a canvas and
// reports pairwise overlap statistics, either for one parameter set from
// flags or for a batch of sets read from a CSV file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/savra0923/skillreal-go/config"
	"github.com/savra0923/skillreal-go/imaging"
	"github.com/savra0923/skillreal-go/logging"
	"github.com/savra0923/skillreal-go/render"
	"github.com/savra0923/skillreal-go/roi"
	"github.com/savra0923/skillreal-go/viewer"
)

// rowOutcome records one batch row (or the single run) in the summary.
type rowOutcome struct {
	Line           int        `json:"line,omitempty"`
	Params         roi.Params `json:"params"`
	Error          string     `json:"error,omitempty"`
	Overlapping    int        `json:"overlapping"`
	NonOverlapping int        `json:"non_overlapping"`
	TotalArea      int        `json:"total_intersection_area"`
	MeanRatio      float64    `json:"mean_ratio"`
	MaxRatio       float64    `json:"max_ratio"`
}

// batchSummary is written next to the batch CSV when -o is set.
type batchSummary struct {
	RunID     string       `json:"run_id"`
	StartedAt time.Time    `json:"started_at"`
	CSVFile   string       `json:"csv_file,omitempty"`
	Seed      int64        `json:"seed,omitempty"`
	Rows      []rowOutcome `json:"rows"`
}

func main() {
	var (
		numROIs     = flag.Int("n", 50, "number of ROIs to generate")
		imageWidth  = flag.Int("iw", 1000, "width of the canvas")
		imageHeight = flag.Int("ih", 1000, "height of the canvas")
		minSize     = flag.Int("m", 10, "minimum size of ROI")
		maxSize     = flag.Int("M", 100, "maximum size of ROI")
		csvFile     = flag.String("csv_file", "", "CSV file containing test cases (batch mode)")
		seed        = flag.Int64("seed", 0, "random seed (0 = time-based)")
		rect        = flag.Bool("rect", false, "sample width and height independently instead of squares")
		outPath     = flag.String("o", "", "write the rendered canvas PNG here (batch mode: per-row files)")
		show        = flag.Bool("show", false, "display the rendered canvas in a window")
		configPath  = flag.String("config", "", "JSON config file; flags override its values")
		debugFlag   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	cfg, err := config.LoadOverlap(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.NumROIs = *numROIs
		case "iw":
			cfg.ImageWidth = *imageWidth
		case "ih":
			cfg.ImageHeight = *imageHeight
		case "m":
			cfg.MinSize = *minSize
		case "M":
			cfg.MaxSize = *maxSize
		case "seed":
			cfg.Seed = *seed
		case "rect":
			cfg.Rect = *rect
		case "debug":
			cfg.Debug = *debugFlag
		}
	})
	logger := logging.NewLogger(logging.Level(cfg.Debug))

	summary := &batchSummary{RunID: uuid.NewString(), StartedAt: time.Now().UTC(), Seed: cfg.Seed}
	if *csvFile != "" {
		summary.CSVFile = *csvFile
		if err := runBatch(cfg, *csvFile, *outPath, *show, summary, logger); err != nil {
			logger.Error("batch failed", "err", err)
			os.Exit(1)
		}
	} else {
		p := roi.Params{
			NumROIs:     cfg.NumROIs,
			ImageWidth:  cfg.ImageWidth,
			ImageHeight: cfg.ImageHeight,
			MinSize:     cfg.MinSize,
			MaxSize:     cfg.MaxSize,
			Rect:        cfg.Rect,
		}
		fmt.Printf("Running single test with parameters: num_rois=%d, image_width=%d, image_height=%d, min_size=%d, max_size=%d\n",
			p.NumROIs, p.ImageWidth, p.ImageHeight, p.MinSize, p.MaxSize)
		outcome, canvas := runOne(p, cfg.Seed, *outPath, *show, logger)
		summary.Rows = append(summary.Rows, outcome)
		if outcome.Error != "" {
			os.Exit(1)
		}
		if canvas != nil {
			title := fmt.Sprintf("Visualization of %d ROIs", p.NumROIs)
			if err := viewer.Show(title, canvas); err != nil {
				logger.Warn("viewer failed", "err", err)
			}
		}
	}
	printTally(summary)
}

func runBatch(cfg *config.OverlapConfig, csvFile, outPath string, show bool, summary *batchSummary, logger *slog.Logger) error {
	rows, err := roi.ReadBatch(csvFile)
	if err != nil {
		return err
	}
	var canvases []image.Image
	for i, row := range rows {
		if row.Err != nil {
			logger.Warn("invalid batch row", "line", row.Line, "err", row.Err)
			fmt.Printf("Invalid parameters in line %d: %v. Skipping this test case.\n", row.Line, row.Err)
			summary.Rows = append(summary.Rows, rowOutcome{Line: row.Line, Error: row.Err.Error()})
			continue
		}
		p := row.Params
		p.Rect = cfg.Rect
		fmt.Printf("Running test case %d with parameters: num_rois=%d, image_width=%d, image_height=%d, min_size=%d, max_size=%d\n",
			i+1, p.NumROIs, p.ImageWidth, p.ImageHeight, p.MinSize, p.MaxSize)
		rowOut := outPath
		if rowOut != "" {
			ext := filepath.Ext(outPath)
			rowOut = fmt.Sprintf("%s_row%d%s", outPath[:len(outPath)-len(ext)], row.Line, ext)
		}
		outcome, canvas := runOne(p, cfg.Seed, rowOut, show, logger)
		outcome.Line = row.Line
		summary.Rows = append(summary.Rows, outcome)
		if canvas != nil {
			canvases = append(canvases, canvas)
		}
	}
	// Tk owns a single root window per process, so batch results share one.
	if len(canvases) > 0 {
		if err := viewer.ShowAll("overlap batch results", canvases); err != nil {
			logger.Warn("viewer failed", "err", err)
		}
	}
	if outPath != "" {
		path := filepath.Join(filepath.Dir(csvFile), "overlap_summary.json")
		if err := writeSummary(path, summary); err != nil {
			logger.Warn("summary not written", "path", path, "err", err)
		}
	}
	return nil
}

// runOne validates, generates, analyzes, and reports one parameter set.
// Failures come back in the outcome so batch runs keep going. The rendered
// canvas is returned when show is set; the caller decides how to display it.
func runOne(p roi.Params, seed int64, outPath string, show bool, logger *slog.Logger) (rowOutcome, image.Image) {
	outcome := rowOutcome{Params: p}
	gen := roi.NewGenerator(seed)
	rois, err := gen.Generate(p)
	if err != nil {
		logger.Warn("generation rejected", "err", err)
		fmt.Printf("Error: %v\n", err)
		outcome.Error = err.Error()
		return outcome, nil
	}
	stats := roi.Analyze(rois)
	outcome.Overlapping = len(stats.Overlapping)
	outcome.NonOverlapping = stats.NonOverlapping
	outcome.TotalArea = stats.TotalArea
	outcome.MeanRatio = stats.MeanRatio
	outcome.MaxRatio = stats.MaxRatio

	fmt.Printf("Generated %d ROIs\n", stats.Generated)
	fmt.Printf("Number of overlapping ROIs: %d\n", len(stats.Overlapping))
	fmt.Printf("Number of non-overlapping ROIs: %d\n", stats.NonOverlapping)
	fmt.Printf("Overlapping pairs: %d, total intersection area: %d px\n", len(stats.Pairs), stats.TotalArea)
	fmt.Printf("Mean overlap ratio: %.3f, max overlap ratio: %.3f\n\n", stats.MeanRatio, stats.MaxRatio)

	var canvas image.Image
	if outPath != "" || show {
		canvas = render.ROICanvas(p.ImageWidth, p.ImageHeight, rois, stats)
		if outPath != "" {
			if err := imaging.Save(canvas, outPath); err != nil {
				logger.Warn("canvas not saved", "path", outPath, "err", err)
			}
		}
	}
	if !show {
		canvas = nil
	}
	return outcome, canvas
}

func printTally(s *batchSummary) {
	ok := 0
	for _, r := range s.Rows {
		if r.Error == "" {
			ok++
		}
	}
	fmt.Printf("Run %s: %d/%d test case(s) completed\n", s.RunID, ok, len(s.Rows))
}

func writeSummary(path string, s *batchSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
