// Package testkit provides shared fixtures for the analysis and loader tests.
package testkit

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/xuri/excelize/v2"

	"datalens/domain/table"
)

// MiniCSV is the canonical two-column fixture: column a numeric with one
// missing value (row 3), column b categorical with one missing value (row 2).
const MiniCSV = "a,b\n1,x\n2,\n,x\n"

// MustTable builds a Table from columns and panics on invariant violations.
// Test-only convenience.
func MustTable(columns ...table.Column) *table.Table {
	t, err := table.New(columns)
	if err != nil {
		panic(err)
	}
	return t
}

// NumericColumn builds a numeric column from float values; NaN-free input
// assumed.
func NumericColumn(name string, values ...float64) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = table.Cell{Raw: fmt.Sprintf("%g", v), Number: v}
	}
	return table.Column{Name: name, Kind: table.KindNumeric, Cells: cells}
}

// TextColumn builds a categorical column from string values; empty strings
// become missing cells.
func TextColumn(name string, values ...string) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = table.Cell{Missing: true}
		} else {
			cells[i] = table.Cell{Raw: v}
		}
	}
	return table.Column{Name: name, Kind: table.KindCategorical, Cells: cells}
}

// MissingNumericColumn builds a numeric column where empty strings mark
// missing cells.
func MissingNumericColumn(name string, values ...string) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = table.Cell{Missing: true}
		} else {
			var n float64
			fmt.Sscanf(v, "%g", &n)
			cells[i] = table.Cell{Raw: v, Number: n}
		}
	}
	return table.Column{Name: name, Kind: table.KindNumeric, Cells: cells}
}

// UniformCSV generates a single-column CSV of n values drawn uniformly from
// [lo, hi], with a fixed seed for reproducibility.
func UniformCSV(name string, n int, lo, hi float64) []byte {
	rng := rand.New(rand.NewSource(42))
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "%s\n", name)
	for i := 0; i < n; i++ {
		fmt.Fprintf(buf, "%f\n", lo+rng.Float64()*(hi-lo))
	}
	return buf.Bytes()
}

// WorkbookBytes builds an in-memory xlsx workbook with the given sheets.
// Each sheet maps to its rows of cell values.
func WorkbookBytes(sheets map[string][][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			// Rename the default sheet rather than leaving an empty Sheet1.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
