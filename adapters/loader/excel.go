package loader

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"datalens/domain/core"
	"datalens/domain/table"
	"datalens/internal/errors"
)

// listSheets opens the workbook just far enough to enumerate sheet names.
func listSheets(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ParseError("failed to open workbook", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// parseExcel reads one sheet of a workbook into a Table. A workbook with a
// single sheet needs no explicit selection; multi-sheet workbooks require
// opts.SheetName from the enumerated sheet list.
func parseExcel(data []byte, opts table.LoadOptions) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ParseError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError("workbook contains no sheets", nil)
	}

	sheet := opts.SheetName
	if sheet == "" {
		if len(sheets) > 1 {
			return nil, core.ErrSheetRequired
		}
		sheet = sheets[0]
	} else if !containsSheet(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q", core.ErrSheetNotFound, sheet)
	}

	// RawCellValue preserves the source's native cell values: numeric cells
	// surface as unformatted numbers rather than display strings, so the
	// per-column inference sees what the format actually encodes.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.ParseError("failed to read sheet "+sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.ParseError("sheet "+sheet+" contains no rows", nil)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, errors.ParseError("sheet "+sheet+" contains no cells", nil)
	}

	var headers []string
	var dataRows [][]string
	if opts.HasHeader {
		headers = normalizeHeaders(padRow(rows[0], width))
		dataRows = rows[1:]
	} else {
		headers = syntheticHeaders(width)
		dataRows = rows
	}

	return buildTable(headers, dataRows)
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
