// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reshapes the HK 2020 growth survey table into per-gender
// percentile series.
//
// The source CSV has two header rows followed by one row per age. Column 0 is
// the age in months, columns 5-13 hold the girl percentiles and columns 17-25
// the boy percentiles, both in PercentileKeys order.
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/growth-tables/pkg/types"
)

var (
	// ErrFileNotFound reports that the source CSV does not exist.
	ErrFileNotFound = errors.New("source file not found")

	// ErrReadFailure reports any other failure to read the source CSV.
	ErrReadFailure = errors.New("reading source file")
)

const (
	headerRows = 2
	ageColumn  = 0
)

var (
	girlColumns = [9]int{5, 6, 7, 8, 9, 10, 11, 12, 13}
	boyColumns  = [9]int{17, 18, 19, 20, 21, 22, 23, 24, 25}
)

// Extract reads the CSV at path and returns the reshaped record. Rows with a
// missing or non-numeric field in any mapped column are skipped for both
// genders.
func Extract(path string) (*types.GrowthRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w %s: %v", ErrReadFailure, path, err)
	}
	defer f.Close()

	rec, err := ExtractReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// ExtractReader does the work of Extract on an already opened table.
func ExtractReader(r io.Reader) (*types.GrowthRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// Survey exports carry stray quotes such as `Height "cm"` in cells.
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
	}
	if len(rows) < headerRows {
		return nil, fmt.Errorf("%w: expected %d header rows, found %d", ErrReadFailure, headerRows, len(rows))
	}

	rec := &types.GrowthRecord{}
	for _, row := range rows[headerRows:] {
		age, girl, boy, ok := parseRow(row)
		if !ok {
			continue
		}
		rec.Girl.Append(age, girl)
		rec.Boy.Append(age, boy)
	}
	return rec, nil
}

// parseRow converts one data row. ok is false if any mapped field is absent
// or unparseable, in which case nothing from the row may be used.
func parseRow(row []string) (age int, girl, boy [9]float64, ok bool) {
	a, ok := field(row, ageColumn)
	if !ok || math.Abs(a) >= math.MaxInt64 {
		return 0, girl, boy, false
	}
	age = int(math.Trunc(a))

	if girl, ok = fields(row, girlColumns); !ok {
		return 0, girl, boy, false
	}
	if boy, ok = fields(row, boyColumns); !ok {
		return 0, girl, boy, false
	}
	return age, girl, boy, true
}

func fields(row []string, cols [9]int) ([9]float64, bool) {
	var out [9]float64
	for i, c := range cols {
		v, ok := field(row, c)
		if !ok {
			return out, false
		}
		out[i] = v
	}
	return out, true
}

// field parses row[col] as a finite float. NaN and infinities are rejected
// because they cannot be represented in the JSON artifact.
func field(row []string, col int) (float64, bool) {
	if col >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
