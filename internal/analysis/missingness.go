package analysis

import (
	"sort"
	"strings"

	"datalens/domain/diagnostic"
	"datalens/domain/table"
)

// Degenerate-input messages substituted for the co-missingness plot.
const (
	msgNoMissing = "No missing values found: every cell in the dataset is populated."
	msgOneColumn = "Co-missingness needs at least two columns with missing values; only one column has any."
)

// Missingness computes the full missingness battery: per-column counts and
// fractions sorted by descending fraction, fully-blank-row detection, and
// the co-missingness combination counts feeding the upset-style plot.
func Missingness(t *table.Table) diagnostic.MissingnessReport {
	cols := t.Columns()
	rows := t.RowCount()

	report := diagnostic.MissingnessReport{}
	columnsWithMissing := 0
	for _, col := range cols {
		count := col.MissingCount()
		fraction := 0.0
		if rows > 0 {
			fraction = float64(count) / float64(rows)
		}
		report.Columns = append(report.Columns, diagnostic.ColumnMissingness{
			Name:            col.Name,
			MissingCount:    count,
			MissingFraction: fraction,
		})
		report.TotalMissing += count
		if count > 0 {
			columnsWithMissing++
		}
	}
	sort.SliceStable(report.Columns, func(i, j int) bool {
		return report.Columns[i].MissingFraction > report.Columns[j].MissingFraction
	})

	report.BlankRows = blankRows(t)
	report.BlankRowCount = len(report.BlankRows)

	switch {
	case report.TotalMissing == 0:
		report.ComboMessage = msgNoMissing
	case columnsWithMissing < 2:
		report.ComboMessage = msgOneColumn
	default:
		report.Combos = missingCombos(t)
	}

	return report
}

// blankRows returns the 1-based indices of rows where every column value is
// missing.
func blankRows(t *table.Table) []int {
	cols := t.Columns()
	if len(cols) == 0 {
		return nil
	}

	var indices []int
	for i := 0; i < t.RowCount(); i++ {
		blank := true
		for _, col := range cols {
			if !col.Cells[i].Missing {
				blank = false
				break
			}
		}
		if blank {
			indices = append(indices, i+1)
		}
	}
	return indices
}

// missingCombos enumerates, for every distinct set of columns jointly missing
// in at least one row, the count of rows whose missing set is exactly that
// combination. Results sort by descending count; ties keep first-seen order.
func missingCombos(t *table.Table) []diagnostic.MissingCombo {
	cols := t.Columns()
	counts := make(map[string]int)
	order := make(map[string]int)
	members := make(map[string][]string)

	for i := 0; i < t.RowCount(); i++ {
		var missing []string
		for _, col := range cols {
			if col.Cells[i].Missing {
				missing = append(missing, col.Name)
			}
		}
		if len(missing) == 0 {
			continue
		}
		key := strings.Join(missing, "\x1f")
		if _, seen := counts[key]; !seen {
			order[key] = len(order)
			members[key] = missing
		}
		counts[key]++
	}

	combos := make([]diagnostic.MissingCombo, 0, len(counts))
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return order[keys[i]] < order[keys[j]] })
	for _, key := range keys {
		combos = append(combos, diagnostic.MissingCombo{
			Columns: members[key],
			Count:   counts[key],
		})
	}
	sort.SliceStable(combos, func(i, j int) bool { return combos[i].Count > combos[j].Count })
	return combos
}
