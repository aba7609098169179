package compare

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/savra0923/skillreal-go/config"
	"github.com/savra0923/skillreal-go/imaging"
)

func mustWritePNG(t *testing.T, path string, base byte, w, h int, mutate func(px []byte, w, h int)) {
	t.Helper()
	if err := imaging.Save(synthFrame(w, h, base, mutate), path); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestRunner(t *testing.T, root string, threshold, minArea int) (*Runner, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultCompareConfig()
	cfg.Root = root
	cfg.Threshold = threshold
	cfg.MinArea = minArea
	r := NewRunner(cfg, nil)
	var out bytes.Buffer
	r.SetOutput(&out)
	return r, &out
}

func TestRunner_ProcessesCasesAndWritesOutputs(t *testing.T) {
	root := t.TempDir()
	// identical pair
	sameDir := filepath.Join(root, "same")
	if err := os.MkdirAll(sameDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWritePNG(t, filepath.Join(sameDir, "a.png"), 100, 40, 40, nil)
	mustWritePNG(t, filepath.Join(sameDir, "b.png"), 100, 40, 40, nil)
	// pair with one injected block
	diffDir := filepath.Join(root, "changed")
	if err := os.MkdirAll(diffDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWritePNG(t, filepath.Join(diffDir, "a.png"), 100, 40, 40, nil)
	mustWritePNG(t, filepath.Join(diffDir, "b.png"), 100, 40, 40, func(px []byte, w, h int) {
		applyRegion(px, w, h, 10, 10, 30, 30, 220)
	})

	r, out := newTestRunner(t, root, 50, 10)
	summary, err := r.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(summary.Cases))
	}
	if summary.Failed() != 0 {
		t.Fatalf("unexpected failures: %+v", summary.Cases)
	}
	if summary.RunID == "" {
		t.Fatalf("missing run id")
	}
	byName := map[string]CaseSummary{}
	for _, c := range summary.Cases {
		byName[c.Name] = c
	}
	if n := len(byName["same"].Regions); n != 0 {
		t.Fatalf("identical pair produced %d regions", n)
	}
	if n := len(byName["changed"].Regions); n != 1 {
		t.Fatalf("changed pair produced %d regions", n)
	}
	if byName["same"].Similarity != 1.0 {
		t.Fatalf("identical similarity = %f", byName["same"].Similarity)
	}
	for _, path := range []string{
		byName["changed"].DiffImage,
		byName["changed"].RegionsImage,
		byName["changed"].ChangesCSV,
		filepath.Join(r.ResultsDir(), "summary.json"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing output %s: %v", path, err)
		}
	}
	if !strings.Contains(out.String(), "Results for test case: changed") {
		t.Fatalf("report missing case section:\n%s", out.String())
	}
}

func TestRunner_ChangesCSVContents(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "case1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWritePNG(t, filepath.Join(dir, "a.png"), 60, 50, 50, nil)
	mustWritePNG(t, filepath.Join(dir, "b.png"), 60, 50, 50, func(px []byte, w, h int) {
		applyRegion(px, w, h, 5, 8, 25, 28, 200)
	})
	r, _ := newTestRunner(t, root, 50, 10)
	summary, err := r.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(summary.Cases[0].ChangesCSV)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "change_id" || records[0][6] != "mean_diff" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][0] != "1" || records[1][1] != "400" || records[1][2] != "5" || records[1][3] != "8" {
		t.Fatalf("row = %v", records[1])
	}
}

func TestRunner_BadCasesReportedWalkContinues(t *testing.T) {
	root := t.TempDir()
	// wrong image count
	oneDir := filepath.Join(root, "one_image")
	if err := os.MkdirAll(oneDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWritePNG(t, filepath.Join(oneDir, "a.png"), 10, 10, 10, nil)
	// mismatched dimensions
	mmDir := filepath.Join(root, "mismatched")
	if err := os.MkdirAll(mmDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWritePNG(t, filepath.Join(mmDir, "a.png"), 10, 20, 20, nil)
	mustWritePNG(t, filepath.Join(mmDir, "b.png"), 10, 30, 20, nil)
	// healthy case
	okDir := filepath.Join(root, "zz_ok")
	if err := os.MkdirAll(okDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWritePNG(t, filepath.Join(okDir, "a.png"), 10, 20, 20, nil)
	mustWritePNG(t, filepath.Join(okDir, "b.png"), 10, 20, 20, nil)

	r, out := newTestRunner(t, root, 50, 0)
	summary, err := r.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(summary.Cases))
	}
	if summary.Failed() != 2 {
		t.Fatalf("expected 2 failures, got %d", summary.Failed())
	}
	byName := map[string]CaseSummary{}
	for _, c := range summary.Cases {
		byName[c.Name] = c
	}
	if !strings.Contains(byName["one_image"].Error, "exactly 2 images") {
		t.Fatalf("one_image error = %q", byName["one_image"].Error)
	}
	if !strings.Contains(byName["mismatched"].Error, "same dimensions") {
		t.Fatalf("mismatched error = %q", byName["mismatched"].Error)
	}
	if byName["zz_ok"].Error != "" {
		t.Fatalf("healthy case failed: %q", byName["zz_ok"].Error)
	}
	if !strings.Contains(out.String(), "Error: test case one_image") {
		t.Fatalf("error not reported:\n%s", out.String())
	}
}

func TestRunner_ResultsFolderSkipped(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "results"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	r, _ := newTestRunner(t, root, 50, 0)
	summary, err := r.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Cases) != 0 {
		t.Fatalf("results folder treated as a case: %+v", summary.Cases)
	}
}
