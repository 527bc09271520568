package ui

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datalens/domain/diagnostic"
)

// markdownHTML renders a markdown summary to sanitizable HTML for templates.
func markdownHTML(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}

// missingnessMarkdown formats the per-column missingness table and the
// blank-row findings as a markdown summary.
func missingnessMarkdown(report diagnostic.MissingnessReport) string {
	b := &strings.Builder{}

	b.WriteString("| Column | Missing | Fraction |\n|---|---|---|\n")
	for _, col := range report.Columns {
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", col.Name, col.MissingCount, col.MissingFraction*100)
	}

	b.WriteString("\n")
	if report.BlankRowCount == 0 {
		b.WriteString("No fully blank rows found.\n")
	} else {
		fmt.Fprintf(b, "**%d fully blank row(s)** at: %s\n", report.BlankRowCount, joinInts(report.BlankRows))
	}
	return b.String()
}

// profileMarkdown formats the three profiler sections as one markdown
// summary: structural dump, numeric statistics, categorical frequencies.
func profileMarkdown(report diagnostic.ProfileReport) string {
	b := &strings.Builder{}

	b.WriteString("## Structure\n\n| Column | Type | Missing | Sample |\n|---|---|---|---|\n")
	for _, s := range report.Sketches {
		fmt.Fprintf(b, "| %s | %s | %d | %s |\n", s.Name, s.Kind, s.MissingCount, strings.Join(s.Sample, ", "))
	}

	b.WriteString("\n## Numeric columns\n\n")
	if report.NumericMessage != "" {
		b.WriteString(report.NumericMessage + "\n")
	} else {
		b.WriteString("| Column | Min | Q1 | Median | Mean | Q3 | Max |\n|---|---|---|---|---|---|---|\n")
		for _, p := range report.Numeric {
			fmt.Fprintf(b, "| %s | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
				p.Name, p.Min, p.Q1, p.Median, p.Mean, p.Q3, p.Max)
		}
	}

	b.WriteString("\n## Categorical columns\n\n")
	if report.CategoricalMessage != "" {
		b.WriteString(report.CategoricalMessage + "\n")
	} else {
		b.WriteString("| Column | Distinct | Top values |\n|---|---|---|\n")
		for _, p := range report.Categorical {
			tops := make([]string, len(p.TopValues))
			for i, vc := range p.TopValues {
				tops[i] = fmt.Sprintf("%s (%d)", vc.Value, vc.Count)
			}
			fmt.Fprintf(b, "| %s | %d | %s |\n", p.Name, p.DistinctCount, strings.Join(tops, ", "))
		}
	}
	return b.String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
