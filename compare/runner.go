package compare

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/savra0923/skillreal-go/config"
	"github.com/savra0923/skillreal-go/imaging"
	"github.com/savra0923/skillreal-go/render"
)

// Runner walks a root folder of test cases and compares the image pair in
// each sub-folder.
type Runner struct {
	cfg    *config.CompareConfig
	logger *slog.Logger
	out    io.Writer
}

// NewRunner returns a Runner for cfg. If cfg is nil the default
// configuration is used. Report output goes to stdout.
func NewRunner(cfg *config.CompareConfig, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = config.DefaultCompareConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{cfg: cfg, logger: logger, out: os.Stdout}
}

// SetOutput redirects the human-readable report stream.
func (r *Runner) SetOutput(w io.Writer) { r.out = w }

// ResultsDir returns the directory run outputs are written to.
func (r *Runner) ResultsDir() string {
	if r.cfg.ResultsDir != "" {
		return r.cfg.ResultsDir
	}
	return filepath.Join(r.cfg.Root, "results")
}

// Run processes every test-case sub-folder under the root. Per-case
// failures are recorded and the walk continues; only an unusable root or
// results directory is a hard error.
func (r *Runner) Run() (*RunSummary, error) {
	entries, err := os.ReadDir(r.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("read root folder: %w", err)
	}
	resultsDir := r.ResultsDir()
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create results folder: %w", err)
	}
	summary := NewRunSummary(r.cfg)
	for _, e := range entries {
		if !e.IsDir() || e.Name() == "results" {
			continue
		}
		cs := r.runCase(e.Name(), filepath.Join(r.cfg.Root, e.Name()), resultsDir)
		summary.Cases = append(summary.Cases, cs)
		if cs.Error != "" {
			r.logger.Warn("test case failed", "case", cs.Name, "err", cs.Error)
			fmt.Fprintf(r.out, "Error: test case %s: %s\n\n", cs.Name, cs.Error)
			continue
		}
		r.printCase(cs)
	}
	summaryPath := filepath.Join(resultsDir, "summary.json")
	if err := summary.Write(summaryPath); err != nil {
		r.logger.Warn("summary not written", "path", summaryPath, "err", err)
	}
	return summary, nil
}

func (r *Runner) runCase(name, dir, resultsDir string) CaseSummary {
	cs := CaseSummary{Name: name}
	files, err := imaging.ListImages(dir)
	if err != nil {
		cs.Error = err.Error()
		return cs
	}
	if len(files) != 2 {
		cs.Error = fmt.Sprintf("folder should contain exactly 2 images, found %d", len(files))
		return cs
	}
	img1, err := imaging.Load(files[0])
	if err != nil {
		cs.Error = err.Error()
		return cs
	}
	img2, err := imaging.Load(files[1])
	if err != nil {
		cs.Error = err.Error()
		return cs
	}
	res, err := ComparePair(img1, img2, PairOptions{
		Threshold:      r.cfg.Threshold,
		MinArea:        r.cfg.MinArea,
		AlignMaxOffset: r.cfg.AlignMaxOffset,
	})
	if err != nil {
		cs.Error = err.Error()
		return cs
	}
	defer imaging.RecyclePlane(res.Diff)

	cs.Regions = res.Regions
	cs.AlignDX, cs.AlignDY = res.AlignDX, res.AlignDY
	cs.Similarity = imaging.HashSimilarity(imaging.AverageHash(img1), imaging.AverageHash(img2))

	cs.DiffImage = filepath.Join(resultsDir, name+"_diff.png")
	if err := imaging.Save(res.Diff.ToGray(), cs.DiffImage); err != nil {
		cs.Error = err.Error()
		return cs
	}
	cs.RegionsImage = filepath.Join(resultsDir, name+"_regions.png")
	overlay := render.RegionOverlay(img2, res.Rects())
	if err := imaging.Save(overlay, cs.RegionsImage); err != nil {
		cs.Error = err.Error()
		return cs
	}
	cs.ChangesCSV = filepath.Join(resultsDir, name+"_changes.csv")
	if err := WriteChangesCSV(cs.ChangesCSV, res.Regions); err != nil {
		cs.Error = err.Error()
		return cs
	}
	return cs
}

func (r *Runner) printCase(cs CaseSummary) {
	fmt.Fprintf(r.out, "Results for test case: %s\n", cs.Name)
	fmt.Fprintf(r.out, "Thresholded difference image saved as: %s\n", cs.DiffImage)
	fmt.Fprintf(r.out, "Number of significant changes: %d\n", len(cs.Regions))
	for _, reg := range cs.Regions {
		fmt.Fprintf(r.out, "  change %d: %d px at (%d,%d) %dx%d, mean diff %.1f\n",
			reg.ID, reg.Pixels, reg.X, reg.Y, reg.W, reg.H, reg.MeanDiff)
	}
	fmt.Fprintf(r.out, "Average-hash similarity: %.3f\n", cs.Similarity)
	if cs.AlignDX != 0 || cs.AlignDY != 0 {
		fmt.Fprintf(r.out, "Best alignment offset: (%d,%d)\n", cs.AlignDX, cs.AlignDY)
	}
	fmt.Fprintf(r.out, "Per-change details saved in: %s\n\n", cs.ChangesCSV)
}
