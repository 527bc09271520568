package analysis

import (
	"fmt"
	"reflect"
	"testing"

	"datalens/internal/testkit"
)

func TestOverviewShape(t *testing.T) {
	tbl := testkit.MustTable(
		testkit.NumericColumn("a", 1, 2, 3),
		testkit.TextColumn("b", "x", "y", "z"),
	)

	report := Overview(tbl, 1)
	if report.RowCount != 3 || report.ColumnCount != 2 {
		t.Errorf("shape = %dx%d, want 3x2", report.RowCount, report.ColumnCount)
	}
	if len(report.Page.Rows) != 3 {
		t.Errorf("page rows = %d, want 3", len(report.Page.Rows))
	}
}

func TestOverviewPaging(t *testing.T) {
	values := make([]string, 23)
	for i := range values {
		values[i] = fmt.Sprintf("v%d", i)
	}
	tbl := testkit.MustTable(testkit.TextColumn("v", values...))

	first := Overview(tbl, 1)
	if first.Page.Total != 3 {
		t.Fatalf("total pages = %d, want 3", first.Page.Total)
	}
	if len(first.Page.Rows) != PageSize {
		t.Errorf("page 1 rows = %d, want %d", len(first.Page.Rows), PageSize)
	}

	last := Overview(tbl, 3)
	if len(last.Page.Rows) != 3 {
		t.Errorf("page 3 rows = %d, want 3", len(last.Page.Rows))
	}
	if last.Page.RowStart != 21 {
		t.Errorf("page 3 row start = %d, want 21", last.Page.RowStart)
	}

	clamped := Overview(tbl, 99)
	if clamped.Page.Number != 3 {
		t.Errorf("page clamped to %d, want 3", clamped.Page.Number)
	}
}

func TestOverviewEmptyTable(t *testing.T) {
	tbl := testkit.MustTable(testkit.TextColumn("v"))

	report := Overview(tbl, 1)
	if report.RowCount != 0 {
		t.Errorf("row count = %d, want 0", report.RowCount)
	}
	if report.Page.Total != 1 || report.Page.RowStart != 0 {
		t.Errorf("page = %+v, want one empty page", report.Page)
	}
}

func TestOverviewIsPure(t *testing.T) {
	tbl := testkit.MustTable(testkit.NumericColumn("a", 3, 1, 2))

	first := Overview(tbl, 1)
	second := Overview(tbl, 1)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Overview calls should yield identical results")
	}
}
