package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"datalens/adapters/loader"
	"datalens/domain/diagnostic"
	dtable "datalens/domain/table"
	"datalens/internal/analysis"
	"datalens/internal/plot"
)

// runReport loads the file and computes the independent report sections
// concurrently; each section is a pure function of the immutable Table.
func runReport(path string, opts dtable.LoadOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	l := loader.New(nil)
	t, err := l.Load(data, filepath.Base(path), opts)
	if err != nil {
		return err
	}

	var (
		overview    diagnostic.OverviewReport
		missingness diagnostic.MissingnessReport
		profile     diagnostic.ProfileReport
	)
	var g errgroup.Group
	g.Go(func() error { overview = analysis.Overview(t, 1); return nil })
	g.Go(func() error { missingness = analysis.Missingness(t); return nil })
	g.Go(func() error { profile = analysis.Profile(t); return nil })
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%s: %d rows x %d columns\n\n", filepath.Base(path), overview.RowCount, overview.ColumnCount)
	printMissingness(missingness)
	printProfile(profile)

	if flagColumn != "" {
		if err := printDistribution(t, flagColumn); err != nil {
			return err
		}
	}
	if flagPlotsDir != "" {
		return writePlots(t, missingness, flagColumn)
	}
	return nil
}

func printMissingness(report diagnostic.MissingnessReport) {
	fmt.Println("Missingness")
	w := newTable()
	w.AppendHeader(table.Row{"Column", "Missing", "Fraction"})
	for _, col := range report.Columns {
		w.AppendRow(table.Row{col.Name, col.MissingCount, fmt.Sprintf("%.1f%%", col.MissingFraction*100)})
	}
	w.Render()

	if report.BlankRowCount == 0 {
		fmt.Println("No fully blank rows found.")
	} else {
		fmt.Printf("%d fully blank row(s): %v\n", report.BlankRowCount, report.BlankRows)
	}

	if report.ComboMessage != "" {
		fmt.Println(report.ComboMessage)
	} else {
		fmt.Println("\nMissing-column combinations")
		w := newTable()
		w.AppendHeader(table.Row{"Columns", "Rows"})
		for _, combo := range report.Combos {
			w.AppendRow(table.Row{plot.ComboLabel(combo), combo.Count})
		}
		w.Render()
	}
	fmt.Println()
}

func printProfile(report diagnostic.ProfileReport) {
	fmt.Println("Structure")
	w := newTable()
	w.AppendHeader(table.Row{"Column", "Type", "Missing", "Sample"})
	for _, s := range report.Sketches {
		w.AppendRow(table.Row{s.Name, string(s.Kind), s.MissingCount, strings.Join(s.Sample, ", ")})
	}
	w.Render()

	fmt.Println("\nNumeric columns")
	if report.NumericMessage != "" {
		fmt.Println(report.NumericMessage)
	} else {
		w := newTable()
		w.AppendHeader(table.Row{"Column", "Min", "Q1", "Median", "Mean", "Q3", "Max"})
		for _, p := range report.Numeric {
			w.AppendRow(table.Row{p.Name, p.Min, p.Q1, p.Median, p.Mean, p.Q3, p.Max})
		}
		w.Render()
	}

	fmt.Println("\nCategorical columns")
	if report.CategoricalMessage != "" {
		fmt.Println(report.CategoricalMessage)
	} else {
		w := newTable()
		w.AppendHeader(table.Row{"Column", "Distinct", "Top values"})
		for _, p := range report.Categorical {
			tops := make([]string, len(p.TopValues))
			for i, vc := range p.TopValues {
				tops[i] = fmt.Sprintf("%s (%d)", vc.Value, vc.Count)
			}
			w.AppendRow(table.Row{p.Name, p.DistinctCount, strings.Join(tops, ", ")})
		}
		w.Render()
	}
	fmt.Println()
}

func printDistribution(t *dtable.Table, column string) error {
	dist, err := analysis.Distribute(t, column)
	if err != nil {
		return err
	}

	if dist.Histogram != nil {
		fmt.Printf("Histogram of %s (%d bins)\n", column, len(dist.Histogram.Bins))
		w := newTable()
		w.AppendHeader(table.Row{"Range", "Count"})
		for _, bin := range dist.Histogram.Bins {
			w.AppendRow(table.Row{fmt.Sprintf("%.4g-%.4g", bin.Lo, bin.Hi), bin.Count})
		}
		w.Render()
	} else {
		fmt.Printf("Top categories of %s\n", column)
		w := newTable()
		w.AppendHeader(table.Row{"Value", "Count"})
		for _, vc := range dist.Ranking.Values {
			w.AppendRow(table.Row{vc.Value, vc.Count})
		}
		w.Render()
	}
	fmt.Println()
	return nil
}

// writePlots renders the PNG charts into the plots directory.
func writePlots(t *dtable.Table, missingness diagnostic.MissingnessReport, column string) error {
	if err := os.MkdirAll(flagPlotsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create plots dir: %w", err)
	}

	if missingness.HasCombos() {
		png, err := plot.ComboBarPNG(missingness.Combos)
		if err != nil {
			return err
		}
		if err := writePlot("missingness.png", png); err != nil {
			return err
		}
	}

	if column == "" {
		return nil
	}
	dist, err := analysis.Distribute(t, column)
	if err != nil {
		return err
	}
	var png []byte
	if dist.Histogram != nil {
		png, err = plot.HistogramPNG(*dist.Histogram)
	} else {
		png, err = plot.CategoryBarPNG(*dist.Ranking)
	}
	if err != nil {
		return err
	}
	return writePlot("distribution_"+column+".png", png)
}

func writePlot(name string, png []byte) error {
	path := filepath.Join(flagPlotsDir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Println("wrote", path)
	return nil
}

func runSheets(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	sheets, err := loader.New(nil).ListSheets(data, filepath.Base(path))
	if err != nil {
		return err
	}
	for _, name := range sheets {
		fmt.Println(name)
	}
	return nil
}

func newTable() table.Writer {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.SetStyle(table.StyleLight)
	return w
}
