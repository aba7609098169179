package roi

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerate_BoundsAndSizeRange(t *testing.T) {
	p := Params{NumROIs: 200, ImageWidth: 300, ImageHeight: 150, MinSize: 5, MaxSize: 40}
	rois, err := NewGenerator(1).Generate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rois) != p.NumROIs {
		t.Fatalf("generated %d, want %d", len(rois), p.NumROIs)
	}
	for i, r := range rois {
		if r.W < p.MinSize || r.W > p.MaxSize || r.H < p.MinSize || r.H > p.MaxSize {
			t.Fatalf("roi %d size out of range: %+v", i, r)
		}
		if r.W != r.H {
			t.Fatalf("roi %d not square in square mode: %+v", i, r)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.W > p.ImageWidth || r.Y+r.H > p.ImageHeight {
			t.Fatalf("roi %d outside canvas: %+v", i, r)
		}
	}
}

func TestGenerate_RectModeSamplesIndependently(t *testing.T) {
	p := Params{NumROIs: 100, ImageWidth: 500, ImageHeight: 500, MinSize: 5, MaxSize: 60, Rect: true}
	rois, err := NewGenerator(7).Generate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	nonSquare := 0
	for _, r := range rois {
		if r.W != r.H {
			nonSquare++
		}
	}
	if nonSquare == 0 {
		t.Fatalf("rect mode produced only squares")
	}
}

func TestGenerate_SeedReproducible(t *testing.T) {
	p := Params{NumROIs: 30, ImageWidth: 200, ImageHeight: 200, MinSize: 10, MaxSize: 50}
	a, err := NewGenerator(99).Generate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewGenerator(99).Generate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestParamsValidate_Rejects(t *testing.T) {
	cases := []Params{
		{NumROIs: 0, ImageWidth: 100, ImageHeight: 100, MinSize: 10, MaxSize: 20},
		{NumROIs: 5, ImageWidth: 0, ImageHeight: 100, MinSize: 10, MaxSize: 20},
		{NumROIs: 5, ImageWidth: 100, ImageHeight: 100, MinSize: 0, MaxSize: 20},
		{NumROIs: 5, ImageWidth: 100, ImageHeight: 100, MinSize: 30, MaxSize: 20},
		{NumROIs: 5, ImageWidth: 100, ImageHeight: 100, MinSize: 10, MaxSize: 200},
	}
	for i, p := range cases {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, p)
		}
	}
}

func TestReadBatch_SkipsHeaderAndFlagsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	data := "num_rois,image_width,image_height,min_size,max_size\n" +
		"10,100,100,5,20\n" +
		"oops,100,100,5,20\n" +
		"20,400,300,10,50\n" +
		"1,2,3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := ReadBatch(path)
	if err != nil {
		t.Fatalf("read batch: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 data rows, got %d", len(rows))
	}
	if rows[0].Err != nil || rows[0].Params.NumROIs != 10 {
		t.Fatalf("row 1: %+v", rows[0])
	}
	if rows[1].Err == nil {
		t.Fatalf("row 2 should be malformed")
	}
	if rows[1].Line != 3 {
		t.Fatalf("row 2 line = %d", rows[1].Line)
	}
	if rows[2].Err != nil || rows[2].Params.MaxSize != 50 {
		t.Fatalf("row 3: %+v", rows[2])
	}
	if rows[3].Err == nil {
		t.Fatalf("short row should be malformed")
	}
}

func TestReadBatch_RowEqualsSingleRunWithSameSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	data := "num_rois,image_width,image_height,min_size,max_size\n" +
		"15,250,250,10,40\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := ReadBatch(path)
	if err != nil {
		t.Fatalf("read batch: %v", err)
	}
	if len(rows) != 1 || rows[0].Err != nil {
		t.Fatalf("rows: %+v", rows)
	}
	fromBatch, err := NewGenerator(5).Generate(rows[0].Params)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	single, err := NewGenerator(5).Generate(Params{NumROIs: 15, ImageWidth: 250, ImageHeight: 250, MinSize: 10, MaxSize: 40})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range single {
		if single[i] != fromBatch[i] {
			t.Fatalf("batch row diverges from single run at %d", i)
		}
	}
	sa, sb := Analyze(single), Analyze(fromBatch)
	if len(sa.Overlapping) != len(sb.Overlapping) || sa.TotalArea != sb.TotalArea {
		t.Fatalf("stats diverge: %+v vs %+v", sa, sb)
	}
}
