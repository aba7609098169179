package compare

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/savra0923/skillreal-go/config"
)

// CaseSummary is the machine-readable record of one test case.
type CaseSummary struct {
	Name         string   `json:"name"`
	Error        string   `json:"error,omitempty"`
	Regions      []Region `json:"regions,omitempty"`
	Similarity   float64  `json:"similarity"`
	AlignDX      int      `json:"align_dx,omitempty"`
	AlignDY      int      `json:"align_dy,omitempty"`
	DiffImage    string   `json:"diff_image,omitempty"`
	RegionsImage string   `json:"regions_image,omitempty"`
	ChangesCSV   string   `json:"changes_csv,omitempty"`
}

// RunSummary is written to results/summary.json after every run.
type RunSummary struct {
	RunID          string        `json:"run_id"`
	StartedAt      time.Time     `json:"started_at"`
	Root           string        `json:"root"`
	Threshold      int           `json:"threshold"`
	MinArea        int           `json:"min_area"`
	AlignMaxOffset int           `json:"align_max_offset,omitempty"`
	Cases          []CaseSummary `json:"cases"`
}

// NewRunSummary returns a summary stamped with a fresh run id and the
// parameters in cfg.
func NewRunSummary(cfg *config.CompareConfig) *RunSummary {
	return &RunSummary{
		RunID:          uuid.NewString(),
		StartedAt:      time.Now().UTC(),
		Root:           cfg.Root,
		Threshold:      cfg.Threshold,
		MinArea:        cfg.MinArea,
		AlignMaxOffset: cfg.AlignMaxOffset,
	}
}

// Failed returns the number of cases that ended in error.
func (s *RunSummary) Failed() int {
	n := 0
	for _, c := range s.Cases {
		if c.Error != "" {
			n++
		}
	}
	return n
}

// Write stores the summary as indented JSON at path.
func (s *RunSummary) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteChangesCSV stores the per-region details of one case, one row per
// significant change.
func WriteChangesCSV(path string, regions []Region) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create changes csv: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"change_id", "pixels", "x", "y", "width", "height", "mean_diff"}); err != nil {
		return err
	}
	for _, r := range regions {
		rec := []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Pixels),
			strconv.Itoa(r.X),
			strconv.Itoa(r.Y),
			strconv.Itoa(r.W),
			strconv.Itoa(r.H),
			strconv.FormatFloat(r.MeanDiff, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
