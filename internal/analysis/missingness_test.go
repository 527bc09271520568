package analysis

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/testkit"
)

func TestMissingnessPerColumn(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.MissingNumericColumn("a", "1", "", "3", ""), // 2 missing
		testkit.TextColumn("b", "x", "y", "", "z"),    // 1 missing
		testkit.TextColumn("c", "p", "q", "r", "s"),   // 0 missing
	)

	report := Missingness(tbl)

	// Conservation: column counts sum to the total.
	sum := 0
	for _, col := range report.Columns {
		sum += col.MissingCount
	}
	assert.Equal(t, report.TotalMissing, sum)
	assert.Equal(t, 3, report.TotalMissing)

	// Sorted by descending fraction.
	require.Len(t, report.Columns, 3)
	assert.Equal(t, "a", report.Columns[0].Name)
	assert.Equal(t, "b", report.Columns[1].Name)
	assert.Equal(t, "c", report.Columns[2].Name)
	assert.InDelta(t, 0.5, report.Columns[0].MissingFraction, 1e-9)
	assert.InDelta(t, 0.25, report.Columns[1].MissingFraction, 1e-9)
	assert.Zero(t, report.Columns[2].MissingFraction)
}

func TestMissingnessBlankRows(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.TextColumn("a", "x", "", "y", ""),
		testkit.TextColumn("b", "p", "", "q", ""),
	)

	report := Missingness(tbl)
	assert.Equal(t, 2, report.BlankRowCount)
	assert.Equal(t, []int{2, 4}, report.BlankRows, "blank row indices are 1-based")
}

func TestMissingnessNoMissingValues(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("a", 1, 2),
		testkit.TextColumn("b", "x", "y"),
	)

	report := Missingness(tbl)
	assert.Zero(t, report.TotalMissing)
	assert.Empty(t, report.Combos)
	assert.False(t, report.HasCombos())
	assert.Equal(t, msgNoMissing, report.ComboMessage)
}

func TestMissingnessSingleColumnWithMissing(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.MissingNumericColumn("a", "1", "", "3"),
		testkit.TextColumn("b", "x", "y", "z"),
	)

	report := Missingness(tbl)
	assert.Equal(t, 1, report.TotalMissing)
	assert.False(t, report.HasCombos())
	assert.Equal(t, msgOneColumn, report.ComboMessage)
}

func TestMissingnessCombos(t *testing.T) {
	// Rows: {a}, {a,b}, {a,b}, {b}, none.
	tbl := testkit.MustTable(
		testkit.MissingNumericColumn("a", "", "", "", "4", "5"),
		testkit.TextColumn("b", "x", "", "", "", "y"),
	)

	report := Missingness(tbl)
	require.True(t, report.HasCombos())
	require.Len(t, report.Combos, 3)

	// A row counts toward exactly the combination it exhibits, not its subsets.
	assert.Equal(t, []string{"a", "b"}, report.Combos[0].Columns)
	assert.Equal(t, 2, report.Combos[0].Count)

	// Counts are non-increasing; ties keep encounter order ({a} seen before {b}).
	assert.Equal(t, []string{"a"}, report.Combos[1].Columns)
	assert.Equal(t, 1, report.Combos[1].Count)
	assert.Equal(t, []string{"b"}, report.Combos[2].Columns)
	assert.Equal(t, 1, report.Combos[2].Count)

	sum := 0
	for _, combo := range report.Combos {
		sum += combo.Count * len(combo.Columns)
	}
	assert.Equal(t, report.TotalMissing, sum, "combo cells account for every missing cell")
}

func TestMissingnessIsPure(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.MissingNumericColumn("a", "1", "", "3"),
		testkit.TextColumn("b", "", "y", ""),
	)

	first := Missingness(tbl)
	second := Missingness(tbl)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Missingness calls should yield identical results")
	}
}
