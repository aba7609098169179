package roi

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// BatchRow is one parameter set read from a batch CSV, or the parse error
// that made the row unusable. Line is 1-based and counts the header.
type BatchRow struct {
	Line   int
	Params Params
	Err    error
}

// ReadBatch reads a batch CSV of parameter sets. The first row is a header
// and is skipped. Malformed rows come back with Err set so the caller can
// report and continue; only an unreadable file is a hard error.
//
// Columns: num_rois,image_width,image_height,min_size,max_size
func ReadBatch(path string) ([]BatchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows []BatchRow
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rows = append(rows, BatchRow{Line: line, Err: err})
			continue
		}
		if line == 1 {
			continue // header
		}
		p, err := parseRow(record)
		rows = append(rows, BatchRow{Line: line, Params: p, Err: err})
	}
	return rows, nil
}

func parseRow(record []string) (Params, error) {
	if len(record) != 5 {
		return Params{}, fmt.Errorf("expected 5 columns, got %d", len(record))
	}
	vals := make([]int, 5)
	for i, field := range record {
		v, err := strconv.Atoi(field)
		if err != nil {
			return Params{}, fmt.Errorf("column %d: %q is not an integer", i+1, field)
		}
		vals[i] = v
	}
	p := Params{
		NumROIs:     vals[0],
		ImageWidth:  vals[1],
		ImageHeight: vals[2],
		MinSize:     vals[3],
		MaxSize:     vals[4],
	}
	return p, nil
}
