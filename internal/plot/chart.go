// Package plot renders diagnostic reports as charts: PNG images via go-chart
// for downloads and the CLI, interactive HTML via go-echarts for the web UI.
package plot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"datalens/domain/diagnostic"
)

// HistogramPNG renders a 30-bin histogram as PNG bytes. Bars are labeled with
// their bin ranges.
func HistogramPNG(hist diagnostic.Histogram) ([]byte, error) {
	var bars []chart.Value
	for _, bin := range hist.Bins {
		bars = append(bars, chart.Value{
			Value: float64(bin.Count),
			Label: fmt.Sprintf("%.4g-%.4g", bin.Lo, bin.Hi),
			Style: chart.Style{FillColor: drawing.ColorBlue.WithAlpha(160)},
		})
	}
	return renderBars("Distribution of "+hist.Column, "Frequency", bars)
}

// CategoryBarPNG renders the top-category ranking as PNG bytes. Bars are
// ordered by ascending count so the largest bar sits at the right extreme.
func CategoryBarPNG(ranking diagnostic.CategoryRanking) ([]byte, error) {
	var bars []chart.Value
	for i := len(ranking.Values) - 1; i >= 0; i-- {
		vc := ranking.Values[i]
		bars = append(bars, chart.Value{
			Value: float64(vc.Count),
			Label: vc.Value,
			Style: chart.Style{FillColor: drawing.ColorPurple.WithAlpha(160)},
		})
	}
	return renderBars("Top categories of "+ranking.Column, "Count", bars)
}

// ComboBarPNG renders the co-missingness combination counts as PNG bytes, one
// bar per distinct set of jointly missing columns.
func ComboBarPNG(combos []diagnostic.MissingCombo) ([]byte, error) {
	var bars []chart.Value
	for _, combo := range combos {
		bars = append(bars, chart.Value{
			Value: float64(combo.Count),
			Label: ComboLabel(combo),
			Style: chart.Style{FillColor: drawing.ColorRed.WithAlpha(140)},
		})
	}
	return renderBars("Rows per missing-column combination", "Rows", bars)
}

// ComboLabel formats a combination's member columns for axis labels.
func ComboLabel(combo diagnostic.MissingCombo) string {
	return strings.Join(combo.Columns, " & ")
}

func renderBars(title, yName string, bars []chart.Value) ([]byte, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars to render")
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorFromHex("efefef"),
			StrokeWidth: 1,
			Padding: chart.Box{
				Top:    40,
				Bottom: longestLabel(bars) * 8,
			},
		},
		Height:   1024,
		Width:    2028,
		BarWidth: 30,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: yName,
			// An explicit range keeps the axis valid when every bar shares
			// the same value; the implicit range collapses to min==max.
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxBarValue(bars),
			},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 88,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func maxBarValue(bars []chart.Value) float64 {
	max := 0.0
	for _, bar := range bars {
		if bar.Value > max {
			max = bar.Value
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

func longestLabel(bars []chart.Value) int {
	longest := 0
	for _, bar := range bars {
		if len(bar.Label) > longest {
			longest = len(bar.Label)
		}
	}
	return longest
}
