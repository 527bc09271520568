package table

// Kind classifies a column's inferred content type.
type Kind string

const (
	// KindNumeric means every non-missing cell parses as a number.
	KindNumeric Kind = "numeric"
	// KindCategorical covers everything else, including all-missing columns.
	KindCategorical Kind = "categorical"
)

// Delimiter is a recognized CSV field separator.
type Delimiter rune

const (
	DelimiterComma     Delimiter = ','
	DelimiterSemicolon Delimiter = ';'
	DelimiterTab       Delimiter = '\t'
)

// ParseDelimiter maps a user-facing delimiter token to its rune.
// Unknown tokens fall back to comma, the upload form default.
func ParseDelimiter(s string) Delimiter {
	switch s {
	case ";", "semicolon":
		return DelimiterSemicolon
	case "\t", "tab":
		return DelimiterTab
	default:
		return DelimiterComma
	}
}

// LoadOptions carries the user-chosen parse settings for one upload.
// SheetName is only meaningful for spreadsheet sources.
type LoadOptions struct {
	HasHeader bool
	Delimiter Delimiter
	SheetName string
}

// DefaultLoadOptions returns the upload form defaults: header row present,
// comma-delimited.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{HasHeader: true, Delimiter: DelimiterComma}
}

// Cell is a single table value. Missing cells carry no usable Raw or Number.
// Number is only valid on cells of a numeric column.
type Cell struct {
	Raw     string
	Number  float64
	Missing bool
}

// Column is an ordered sequence of cells sharing one inferred Kind.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// MissingCount returns the number of missing cells in the column.
func (c Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Missing {
			n++
		}
	}
	return n
}

// Numbers returns the non-missing numeric values in row order.
// Only meaningful for KindNumeric columns.
func (c Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing {
			out = append(out, cell.Number)
		}
	}
	return out
}
