package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/diagnostic"
	"datalens/internal/analysis"
	"datalens/internal/testkit"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestHistogramPNG(t *testing.T) {
	tbl := testkit.MustTable(testkit.NumericColumn("v", 1, 2, 2, 3, 3, 3, 4, 5, 9))
	dist, err := analysis.Distribute(tbl, "v")
	require.NoError(t, err)

	png, err := HistogramPNG(*dist.Histogram)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG image")
}

func TestCategoryBarPNG(t *testing.T) {
	ranking := diagnostic.CategoryRanking{
		Column: "city",
		Values: []diagnostic.ValueCount{
			{Value: "london", Count: 5},
			{Value: "paris", Count: 3},
			{Value: "berlin", Count: 1},
		},
	}

	png, err := CategoryBarPNG(ranking)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestComboBarPNG(t *testing.T) {
	combos := []diagnostic.MissingCombo{
		{Columns: []string{"a", "b"}, Count: 4},
		{Columns: []string{"a"}, Count: 2},
	}

	png, err := ComboBarPNG(combos)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestComboBarPNGUniformCounts(t *testing.T) {
	// Every combination occurring exactly once is ordinary input (any dataset
	// with one missing cell per affected row); the chart axis must not
	// collapse on the flat value range.
	combos := []diagnostic.MissingCombo{
		{Columns: []string{"b"}, Count: 1},
		{Columns: []string{"a"}, Count: 1},
	}

	png, err := ComboBarPNG(combos)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestCategoryBarPNGUniformCounts(t *testing.T) {
	ranking := diagnostic.CategoryRanking{
		Column: "tag",
		Values: []diagnostic.ValueCount{
			{Value: "x", Count: 2},
			{Value: "y", Count: 2},
			{Value: "z", Count: 2},
		},
	}

	png, err := CategoryBarPNG(ranking)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestComboBarPNGEmpty(t *testing.T) {
	_, err := ComboBarPNG(nil)
	assert.Error(t, err)
}

func TestComboLabel(t *testing.T) {
	combo := diagnostic.MissingCombo{Columns: []string{"age", "income", "zip"}}
	assert.Equal(t, "age & income & zip", ComboLabel(combo))

	single := diagnostic.MissingCombo{Columns: []string{"age"}}
	assert.Equal(t, "age", ComboLabel(single))
}

func TestRenderHistogramHTML(t *testing.T) {
	tbl := testkit.MustTable(testkit.NumericColumn("v", 1, 2, 3, 4, 5))
	dist, err := analysis.Distribute(tbl, "v")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHistogramHTML(&buf, *dist.Histogram))
	assert.Contains(t, buf.String(), "echarts")
}

func TestRenderCategoryBarHTML(t *testing.T) {
	ranking := diagnostic.CategoryRanking{
		Column: "kind",
		Values: []diagnostic.ValueCount{{Value: "x", Count: 2}, {Value: "y", Count: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderCategoryBarHTML(&buf, ranking))
	assert.Contains(t, buf.String(), "echarts")
}
