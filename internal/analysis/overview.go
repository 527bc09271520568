// Package analysis implements the diagnostic battery: every function here is
// a pure function of an immutable Table and its request parameters, recomputed
// on each call. Nothing is cached and nothing mutates the Table.
package analysis

import (
	"datalens/domain/diagnostic"
	"datalens/domain/table"
)

// PageSize is the fixed client-side page size of the raw table view.
const PageSize = 10

// Overview computes the dataset shape plus the requested page of raw rows.
// Page numbers are 1-based and clamped to the valid range.
func Overview(t *table.Table, page int) diagnostic.OverviewReport {
	rows := t.RowCount()
	totalPages := (rows + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > rows {
		end = rows
	}

	var pageRows [][]string
	for i := start; i < end; i++ {
		pageRows = append(pageRows, t.Row(i))
	}

	rowStart := 0
	if rows > 0 {
		rowStart = start + 1
	}

	return diagnostic.OverviewReport{
		RowCount:    rows,
		ColumnCount: t.ColumnCount(),
		Columns:     t.ColumnNames(),
		Page: diagnostic.TablePage{
			Number:   page,
			Size:     PageSize,
			Total:    totalPages,
			RowStart: rowStart,
			Rows:     pageRows,
		},
	}
}
