package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadCSV reads a headed CSV stream into a Frame. Column types are
// inferred: a column whose every cell parses as an integer becomes an
// IntSeries, then float, then bool; anything else is kept as strings.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one data row")
	}

	header := records[0]
	rows := records[1:]

	cols := make([]Series, len(header))
	for c, name := range header {
		cells := make([]string, len(rows))
		for r, rec := range rows {
			if c >= len(rec) {
				return nil, fmt.Errorf("row %d has %d fields, want %d", r+1, len(rec), len(header))
			}
			cells[r] = rec[c]
		}
		cols[c] = inferSeries(name, cells)
	}

	return New(cols...)
}

// OpenCSV reads a CSV file into a Frame.
func OpenCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	f, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

func inferSeries(name string, cells []string) Series {
	ints := make([]int64, len(cells))
	isInt := true
	for i, s := range cells {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			isInt = false
			break
		}
		ints[i] = v
	}
	if isInt {
		return NewInt(name, ints)
	}

	floats := make([]float64, len(cells))
	isFloat := true
	for i, s := range cells {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			isFloat = false
			break
		}
		floats[i] = v
	}
	if isFloat {
		return NewFloat(name, floats)
	}

	bools := make([]bool, len(cells))
	isBool := true
	for i, s := range cells {
		v, err := strconv.ParseBool(s)
		if err != nil {
			isBool = false
			break
		}
		bools[i] = v
	}
	if isBool {
		return NewBool(name, bools)
	}

	return NewString(name, cells)
}
