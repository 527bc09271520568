package diagnostic

import "datalens/domain/table"

// OverviewReport holds the dataset shape plus one page of raw rows.
type OverviewReport struct {
	RowCount    int
	ColumnCount int
	Columns     []string
	Page        TablePage
}

// TablePage is one client-side page of the raw table.
type TablePage struct {
	Number   int // 1-based
	Size     int
	Total    int // total number of pages
	RowStart int // 1-based index of the first row on the page
	Rows     [][]string
}

// ColumnMissingness is one row of the per-column missingness summary.
type ColumnMissingness struct {
	Name            string
	MissingCount    int
	MissingFraction float64
}

// MissingCombo counts the rows whose set of missing columns is exactly
// Columns (in original column order).
type MissingCombo struct {
	Columns []string
	Count   int
}

// MissingnessReport is the full missingness battery for one table.
// Columns is sorted by descending missing fraction. Combos is empty when
// ComboMessage is set (zero missing cells, or fewer than two columns with
// any missingness).
type MissingnessReport struct {
	Columns       []ColumnMissingness
	TotalMissing  int
	BlankRowCount int
	BlankRows     []int // 1-based row indices
	Combos        []MissingCombo
	ComboMessage  string
}

// HasCombos reports whether the co-missingness plot should be drawn.
func (r MissingnessReport) HasCombos() bool {
	return r.ComboMessage == "" && len(r.Combos) > 0
}

// NumericProfile holds the descriptive statistics of one numeric column.
type NumericProfile struct {
	Name   string
	Min    float64
	Q1     float64
	Median float64
	Mean   float64
	Q3     float64
	Max    float64
}

// ValueCount is one categorical value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// CategoricalProfile holds the frequency summary of one non-numeric column.
// DistinctCount counts the missing marker as its own bucket when present;
// TopValues ranks observed values only.
type CategoricalProfile struct {
	Name          string
	DistinctCount int
	TopValues     []ValueCount
}

// ColumnSketch is the structural-dump entry for one column: inferred kind
// plus a small sample of raw values.
type ColumnSketch struct {
	Name         string
	Kind         table.Kind
	MissingCount int
	Sample       []string
}

// ProfileReport is the full column-profiler output. The Message fields carry
// the explicit "none found" text when a subset is empty.
type ProfileReport struct {
	Sketches           []ColumnSketch
	Numeric            []NumericProfile
	NumericMessage     string
	Categorical        []CategoricalProfile
	CategoricalMessage string
}

// HistogramBin is one half-open histogram bin [Lo, Hi); the last bin is
// closed on both ends.
type HistogramBin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram is the binned distribution of one numeric column, missing
// values excluded.
type Histogram struct {
	Column string
	Bins   []HistogramBin
}

// CategoryRanking is the top categories of one non-numeric column, ranked by
// descending count with encounter-order tie-breaks, truncated to the top 20.
type CategoryRanking struct {
	Column string
	Values []ValueCount
}

// Distribution is the tagged visualizer result: exactly one of Histogram or
// Ranking is set, dictated by the selected column's kind.
type Distribution struct {
	Column    string
	Kind      table.Kind
	Histogram *Histogram
	Ranking   *CategoryRanking
}
