package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/core"
	"datalens/domain/table"
	"datalens/internal/testkit"
)

func TestLoadMiniCSV(t *testing.T) {
	l := New(nil)
	tbl, err := l.Load([]byte(testkit.MiniCSV), "mini.csv", table.DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, 2, tbl.ColumnCount())

	a, ok := tbl.Column("a")
	require.True(t, ok)
	assert.Equal(t, table.KindNumeric, a.Kind)
	assert.Equal(t, 1, a.MissingCount())
	assert.True(t, a.Cells[2].Missing, "row 3 of column a should be missing")

	b, ok := tbl.Column("b")
	require.True(t, ok)
	assert.Equal(t, table.KindCategorical, b.Kind)
	assert.Equal(t, 1, b.MissingCount())
	assert.True(t, b.Cells[1].Missing, "row 2 of column b should be missing")
}

func TestLoadWithoutHeader(t *testing.T) {
	l := New(nil)
	opts := table.LoadOptions{HasHeader: false, Delimiter: table.DelimiterComma}
	tbl, err := l.Load([]byte("1,x\n2,y\n3,z\n"), "raw.csv", opts)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, []string{"column_1", "column_2"}, tbl.ColumnNames())
}

func TestLoadHeaderRowCountSemantics(t *testing.T) {
	l := New(nil)
	raw := []byte("h1,h2\n1,2\n3,4\n5,6\n")

	withHeader, err := l.Load(raw, "f.csv", table.LoadOptions{HasHeader: true, Delimiter: table.DelimiterComma})
	require.NoError(t, err)
	withoutHeader, err := l.Load(raw, "f.csv", table.LoadOptions{HasHeader: false, Delimiter: table.DelimiterComma})
	require.NoError(t, err)

	assert.Equal(t, 3, withHeader.RowCount(), "data lines minus one when has_header")
	assert.Equal(t, 4, withoutHeader.RowCount(), "all data lines when headerless")
}

func TestLoadAlternateDelimiters(t *testing.T) {
	l := New(nil)

	semi, err := l.Load([]byte("a;b\n1;x\n"), "semi.csv", table.LoadOptions{HasHeader: true, Delimiter: table.DelimiterSemicolon})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, semi.ColumnNames())

	tabbed, err := l.Load([]byte("a\tb\n1\tx\n"), "tabbed.csv", table.LoadOptions{HasHeader: true, Delimiter: table.DelimiterTab})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tabbed.ColumnNames())
}

func TestHeaderNormalization(t *testing.T) {
	l := New(nil)
	tbl, err := l.Load([]byte("a,,a\n1,2,3\n"), "dup.csv", table.DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "column_2", "a_1"}, tbl.ColumnNames())
}

func TestMissingTokens(t *testing.T) {
	l := New(nil)
	tbl, err := l.Load([]byte("a\n1\nNA\n \nN/A\n2\n"), "na.csv", table.DefaultLoadOptions())
	require.NoError(t, err)

	a, _ := tbl.Column("a")
	assert.Equal(t, table.KindNumeric, a.Kind)
	assert.Equal(t, 3, a.MissingCount())
}

func TestMixedColumnStaysCategorical(t *testing.T) {
	l := New(nil)
	tbl, err := l.Load([]byte("a\n1\ntwo\n3\n"), "mixed.csv", table.DefaultLoadOptions())
	require.NoError(t, err)

	a, _ := tbl.Column("a")
	assert.Equal(t, table.KindCategorical, a.Kind)
}

func TestAllMissingColumnStaysCategorical(t *testing.T) {
	l := New(nil)
	tbl, err := l.Load([]byte("a,b\n1,\n2,\n"), "gap.csv", table.DefaultLoadOptions())
	require.NoError(t, err)

	b, _ := tbl.Column("b")
	assert.Equal(t, table.KindCategorical, b.Kind)
	assert.Equal(t, 2, b.MissingCount())
}

func TestRaggedRowsArePadded(t *testing.T) {
	l := New(nil)
	tbl, err := l.Load([]byte("a,b,c\n1,x\n2,y,z\n"), "ragged.csv", table.DefaultLoadOptions())
	require.NoError(t, err)

	c, _ := tbl.Column("c")
	assert.True(t, c.Cells[0].Missing)
	assert.False(t, c.Cells[1].Missing)
}

func TestUnsupportedExtension(t *testing.T) {
	l := New(nil)
	_, err := l.Load([]byte("whatever"), "data.parquet", table.DefaultLoadOptions())
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat), "got %v", err)
}

func TestEmptyFile(t *testing.T) {
	l := New(nil)
	_, err := l.Load(nil, "empty.csv", table.DefaultLoadOptions())
	assert.Error(t, err)
}

func TestFileTooLarge(t *testing.T) {
	l := New(&Config{MaxFileSize: 4})
	_, err := l.Load([]byte("a,b\n1,2\n"), "big.csv", table.DefaultLoadOptions())
	assert.True(t, errors.Is(err, core.ErrFileTooLarge), "got %v", err)
}
