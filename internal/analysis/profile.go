package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"

	"datalens/domain/diagnostic"
	"datalens/domain/table"
)

const (
	// TopValueCount bounds the categorical frequency listing.
	TopValueCount = 5
	// SketchSampleSize bounds the structural-dump value sample.
	SketchSampleSize = 5

	msgNoNumeric     = "No numeric columns found in this dataset."
	msgNoCategorical = "No categorical columns found in this dataset."
)

// Profile computes the per-column profile battery: structural sketches for
// every column, descriptive statistics for the numeric subset and frequency
// tables for the categorical subset.
func Profile(t *table.Table) diagnostic.ProfileReport {
	report := diagnostic.ProfileReport{}

	for _, col := range t.Columns() {
		report.Sketches = append(report.Sketches, sketchColumn(col))

		switch col.Kind {
		case table.KindNumeric:
			if p, ok := numericProfile(col); ok {
				report.Numeric = append(report.Numeric, p)
			}
		default:
			report.Categorical = append(report.Categorical, categoricalProfile(col))
		}
	}

	if len(report.Numeric) == 0 {
		report.NumericMessage = msgNoNumeric
	}
	if len(report.Categorical) == 0 {
		report.CategoricalMessage = msgNoCategorical
	}
	return report
}

// sketchColumn records the inferred kind and the first few display values.
func sketchColumn(col table.Column) diagnostic.ColumnSketch {
	sketch := diagnostic.ColumnSketch{
		Name:         col.Name,
		Kind:         col.Kind,
		MissingCount: col.MissingCount(),
	}
	for _, cell := range col.Cells {
		if len(sketch.Sample) == SketchSampleSize {
			break
		}
		if cell.Missing {
			sketch.Sample = append(sketch.Sample, "NA")
		} else {
			sketch.Sample = append(sketch.Sample, cell.Raw)
		}
	}
	return sketch
}

// numericProfile computes min/Q1/median/mean/Q3/max over the observed values.
// Numeric columns always have at least one observed value (all-missing
// columns classify categorical at load time), so ok is false only on
// unexpected input.
func numericProfile(col table.Column) (diagnostic.NumericProfile, bool) {
	values := col.Numbers()
	if len(values) == 0 {
		return diagnostic.NumericProfile{}, false
	}

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	quartiles, err := stats.Quartile(values)
	if err != nil {
		// Quartile needs at least two samples; collapse to the single value.
		quartiles = stats.Quartiles{Q1: values[0], Q2: values[0], Q3: values[0]}
	}

	return diagnostic.NumericProfile{
		Name:   col.Name,
		Min:    min,
		Q1:     quartiles.Q1,
		Median: median,
		Mean:   mean,
		Q3:     quartiles.Q3,
		Max:    max,
	}, true
}

// categoricalProfile counts distinct values (the missing marker counts as its
// own bucket) and ranks the observed values by frequency, ties broken by the
// order encountered.
func categoricalProfile(col table.Column) diagnostic.CategoricalProfile {
	counts := make(map[string]int)
	order := make(map[string]int)
	hasMissing := false

	for _, cell := range col.Cells {
		if cell.Missing {
			hasMissing = true
			continue
		}
		if _, seen := counts[cell.Raw]; !seen {
			order[cell.Raw] = len(order)
		}
		counts[cell.Raw]++
	}

	ranked := rankByCount(counts, order)
	if len(ranked) > TopValueCount {
		ranked = ranked[:TopValueCount]
	}

	distinct := len(counts)
	if hasMissing {
		distinct++
	}

	return diagnostic.CategoricalProfile{
		Name:          col.Name,
		DistinctCount: distinct,
		TopValues:     ranked,
	}
}

// rankByCount sorts value counts descending, preserving encounter order
// among equal counts.
func rankByCount(counts map[string]int, order map[string]int) []diagnostic.ValueCount {
	ranked := make([]diagnostic.ValueCount, 0, len(counts))
	for value, count := range counts {
		ranked = append(ranked, diagnostic.ValueCount{Value: value, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool { return order[ranked[i].Value] < order[ranked[j].Value] })
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	return ranked
}
