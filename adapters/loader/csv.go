package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"datalens/domain/table"
	"datalens/internal/errors"
)

// missingTokens are cell values treated as the missing marker, beyond the
// empty/whitespace-only cell.
var missingTokens = map[string]bool{
	"NA":  true,
	"N/A": true,
}

// isMissingToken reports whether a raw cell value represents a missing cell.
func isMissingToken(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || missingTokens[trimmed]
}

// parseCSV reads delimited text into a Table using the chosen delimiter and
// header flag. Every field is read as text; each column is then independently
// type-inferred.
func parseCSV(data []byte, opts table.LoadOptions) (*table.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = rune(opts.Delimiter)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, padded below
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("failed to parse delimited text", err)
	}
	if len(records) == 0 {
		return nil, errors.ParseError("file contains no rows", nil)
	}

	var headers []string
	var dataRows [][]string
	if opts.HasHeader {
		headers = normalizeHeaders(records[0])
		dataRows = records[1:]
	} else {
		headers = syntheticHeaders(len(records[0]))
		dataRows = records
	}

	return buildTable(headers, dataRows)
}

// buildTable assembles raw string rows into typed columns. Short rows are
// padded with missing cells; cells beyond the header width are dropped.
func buildTable(headers []string, rows [][]string) (*table.Table, error) {
	columns := make([]table.Column, len(headers))
	for j, name := range headers {
		cells := make([]table.Cell, len(rows))
		for i, row := range rows {
			raw := ""
			if j < len(row) {
				raw = strings.TrimSpace(row[j])
			}
			if isMissingToken(raw) {
				cells[i] = table.Cell{Missing: true}
			} else {
				cells[i] = table.Cell{Raw: raw}
			}
		}
		columns[j] = table.Column{Name: name, Kind: table.KindCategorical, Cells: cells}
	}

	for j := range columns {
		inferKind(&columns[j])
	}

	return table.New(columns)
}

// inferKind classifies a column as numeric iff every non-missing value parses
// as a number and at least one non-missing value exists. All-missing columns
// stay categorical. Integer-coded labels (zip codes) therefore classify as
// numeric; the classification is purely parse-based.
func inferKind(col *table.Column) {
	observed := 0
	parsed := make([]float64, len(col.Cells))
	for i, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		n, err := strconv.ParseFloat(cell.Raw, 64)
		if err != nil {
			return
		}
		parsed[i] = n
		observed++
	}
	if observed == 0 {
		return
	}
	col.Kind = table.KindNumeric
	for i := range col.Cells {
		if !col.Cells[i].Missing {
			col.Cells[i].Number = parsed[i]
		}
	}
}

// normalizeHeaders trims header names, substitutes generated names for blanks
// and deduplicates repeats with numeric suffixes.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = generateColumnName(i)
		}
		headers[i] = h
	}

	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		name := h
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		seen[name] = true
		headers[i] = name
	}
	return headers
}

// syntheticHeaders generates column_1..column_n for headerless files.
func syntheticHeaders(n int) []string {
	headers := make([]string, n)
	for i := range headers {
		headers[i] = generateColumnName(i)
	}
	return headers
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}
