package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"datalens/domain/core"
	"datalens/domain/diagnostic"
	"datalens/domain/table"
)

const (
	// HistogramBins is the fixed bin count for numeric distributions.
	HistogramBins = 30
	// TopCategories bounds the categorical bar chart.
	TopCategories = 20
)

// Distribute computes the distribution view of one selected column: a 30-bin
// histogram for numeric columns, a top-20 ranked category list otherwise.
// Missing values are excluded either way.
func Distribute(t *table.Table, column string) (diagnostic.Distribution, error) {
	col, ok := t.Column(column)
	if !ok {
		return diagnostic.Distribution{}, core.NewColumnNotFoundError(column)
	}

	dist := diagnostic.Distribution{Column: column, Kind: col.Kind}
	switch col.Kind {
	case table.KindNumeric:
		hist, err := histogram(col)
		if err != nil {
			return diagnostic.Distribution{}, err
		}
		dist.Histogram = &hist
	default:
		ranking, err := topCategories(col)
		if err != nil {
			return diagnostic.Distribution{}, err
		}
		dist.Ranking = &ranking
	}
	return dist, nil
}

// histogram bins the observed values into exactly HistogramBins bins spanning
// the observed range.
func histogram(col table.Column) (diagnostic.Histogram, error) {
	values := col.Numbers()
	if len(values) == 0 {
		return diagnostic.Histogram{}, core.NewDegenerateInputError("column " + col.Name + " has no observed values")
	}

	min := floats.Min(values)
	max := floats.Max(values)
	if min == max {
		// A constant column still gets a well-formed 30-bin axis.
		min -= 0.5
		max += 0.5
	}

	dividers := make([]float64, HistogramBins+1)
	floats.Span(dividers, min, max)
	// stat.Histogram treats bins as half-open; nudge the last divider so the
	// maximum observation lands in the final bin instead of out of range.
	dividers[HistogramBins] = math.Nextafter(max, math.Inf(1))

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	counts := stat.Histogram(nil, dividers, sorted, nil)

	hist := diagnostic.Histogram{Column: col.Name, Bins: make([]diagnostic.HistogramBin, HistogramBins)}
	for i := range hist.Bins {
		hi := dividers[i+1]
		if i == HistogramBins-1 {
			hi = max
		}
		hist.Bins[i] = diagnostic.HistogramBin{
			Lo:    dividers[i],
			Hi:    hi,
			Count: int(counts[i]),
		}
	}
	return hist, nil
}

// topCategories drops missing cells, counts occurrences per distinct value
// and keeps the 20 most frequent, ties broken by encounter order.
func topCategories(col table.Column) (diagnostic.CategoryRanking, error) {
	counts := make(map[string]int)
	order := make(map[string]int)
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		if _, seen := counts[cell.Raw]; !seen {
			order[cell.Raw] = len(order)
		}
		counts[cell.Raw]++
	}
	if len(counts) == 0 {
		return diagnostic.CategoryRanking{}, core.NewDegenerateInputError("column " + col.Name + " has no observed values")
	}

	ranked := rankByCount(counts, order)
	if len(ranked) > TopCategories {
		ranked = ranked[:TopCategories]
	}
	return diagnostic.CategoryRanking{Column: col.Name, Values: ranked}, nil
}
