package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

// naTokens are the cell texts read as missing values, matching what pandas treats as NaN.
var naTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"NULL": {}, "null": {}, "None": {}, "<NA>": {}, "#N/A": {}, "#NA": {}, "#N/A N/A": {},
	"-1.#IND": {}, "-1.#QNAN": {}, "1.#IND": {}, "1.#QNAN": {},
}

const utf8BOM = "\ufeff"

// ReadCSV loads a CSV file into a Table named after the file. Columns listed in
// numeric are read as numbers regardless of inference; see ParseCSV.
func ReadCSV(path string, numeric ...string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("csv: open %q: %w", path, models.ErrFileNotFound)
		}
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := ParseCSV(name, f, numeric...)
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	return t, nil
}

// ParseCSV reads a header row followed by data rows and infers a kind per column:
// number when every non-missing cell parses as a float, bool when every non-missing
// cell is True/False, string otherwise. Columns named in numeric are always numbers:
// a cell that does not parse becomes null instead of demoting the whole column.
func ParseCSV(name string, r io.Reader, numeric ...string) (*models.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", models.ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", models.ErrMalformedInput, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	t, err := models.NewTable(name, header)
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrMalformedInput, err)
		}
		records = append(records, rec)
	}

	kinds := inferKinds(records, len(header))
	for _, col := range numeric {
		for i, h := range header {
			if h == col {
				kinds[i] = models.KindNumber
			}
		}
	}
	for _, rec := range records {
		values := make([]models.Value, len(rec))
		for i, cell := range rec {
			values[i] = coerce(cell, kinds[i])
		}
		if err := t.Append(values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func isNA(cell string) bool {
	_, ok := naTokens[strings.TrimSpace(cell)]
	return ok
}

func parseBool(cell string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func inferKinds(records [][]string, width int) []models.Kind {
	kinds := make([]models.Kind, width)
	for col := 0; col < width; col++ {
		numeric, boolean, seen := true, true, false
		for _, rec := range records {
			cell := rec[col]
			if isNA(cell) {
				continue
			}
			seen = true
			if numeric {
				if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
					numeric = false
				}
			}
			if boolean {
				if _, ok := parseBool(cell); !ok {
					boolean = false
				}
			}
			if !numeric && !boolean {
				break
			}
		}
		switch {
		case !seen:
			kinds[col] = models.KindNull
		case numeric:
			kinds[col] = models.KindNumber
		case boolean:
			kinds[col] = models.KindBool
		default:
			kinds[col] = models.KindString
		}
	}
	return kinds
}

func coerce(cell string, kind models.Kind) models.Value {
	if isNA(cell) {
		return models.Null()
	}
	switch kind {
	case models.KindNumber:
		return ParseNumber(cell)
	case models.KindBool:
		b, _ := parseBool(cell)
		return models.Bool(b)
	default:
		return models.String(cell)
	}
}

// ParseNumber reads a numeric cell, keeping its text for output. Missing or
// unparseable cells are null.
func ParseNumber(cell string) models.Value {
	if isNA(cell) {
		return models.Null()
	}
	text := strings.TrimSpace(cell)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return models.Null()
	}
	return models.NumberText(f, text)
}
