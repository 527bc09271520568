package table

import (
	"fmt"
)

// Table is an immutable rectangular dataset: ordered named columns of equal
// length. It is built once per upload and replaced wholesale on the next one;
// nothing downstream mutates it.
type Table struct {
	columns []Column
	rows    int
}

// New validates the column set and wraps it in a Table. All columns must have
// the same length and unique names.
func New(columns []Column) (*Table, error) {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Cells)
	}
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column name cannot be empty")
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("duplicate column name: %s", col.Name)
		}
		seen[col.Name] = true
		if len(col.Cells) != rows {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", col.Name, len(col.Cells), rows)
		}
	}
	return &Table{columns: columns, rows: rows}, nil
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Columns returns the columns in their original order.
func (t *Table) Columns() []Column {
	return t.columns
}

// ColumnNames returns the column names in their original order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Row returns the display values of row i (0-based); missing cells render
// as an empty string.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.columns))
	for j, col := range t.columns {
		if i < len(col.Cells) && !col.Cells[i].Missing {
			out[j] = col.Cells[i].Raw
		}
	}
	return out
}
