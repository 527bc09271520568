package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"datalens/domain/diagnostic"
)

// RenderHistogramHTML writes an interactive histogram chart to w.
func RenderHistogramHTML(w io.Writer, hist diagnostic.Histogram) error {
	labels := make([]string, len(hist.Bins))
	data := make([]opts.BarData, len(hist.Bins))
	for i, bin := range hist.Bins {
		labels[i] = fmt.Sprintf("%.4g-%.4g", bin.Lo, bin.Hi)
		data[i] = opts.BarData{Value: bin.Count}
	}

	bar := newBar("Distribution of " + hist.Column)
	bar.SetXAxis(labels).AddSeries("frequency", data)
	return bar.Render(w)
}

// RenderCategoryBarHTML writes an interactive horizontal bar chart of the
// top categories to w, ordered by ascending count so the largest bar sits at
// the top of the flipped axis.
func RenderCategoryBarHTML(w io.Writer, ranking diagnostic.CategoryRanking) error {
	n := len(ranking.Values)
	labels := make([]string, n)
	data := make([]opts.BarData, n)
	for i, vc := range ranking.Values {
		// Reverse: ranking is descending, the chart wants ascending.
		labels[n-1-i] = vc.Value
		data[n-1-i] = opts.BarData{Value: vc.Count}
	}

	bar := newBar("Top categories of " + ranking.Column)
	bar.SetXAxis(labels).AddSeries("count", data)
	bar.XYReversal()
	return bar.Render(w)
}

// RenderComboHTML writes the upset-style co-missingness chart to w: one bar
// per distinct combination of jointly missing columns.
func RenderComboHTML(w io.Writer, combos []diagnostic.MissingCombo) error {
	labels := make([]string, len(combos))
	data := make([]opts.BarData, len(combos))
	for i, combo := range combos {
		labels[i] = ComboLabel(combo)
		data[i] = opts.BarData{Value: combo.Count}
	}

	bar := newBar("Rows per missing-column combination")
	bar.SetXAxis(labels).AddSeries("rows", data)
	return bar.Render(w)
}

func newBar(title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "960px",
			Height:    "540px",
		}),
	)
	return bar
}
