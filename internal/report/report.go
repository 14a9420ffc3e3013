// Package report renders a data-quality report for a session: a markdown
// document covering the profile and the cleaning evidence trail, plus an
// HTML rendering for the browser.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// BuildMarkdown assembles the report document.
func BuildMarkdown(filename string, summary *dataset.DatasetSummary, actions []dataset.CleaningAction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Data Quality Report\n\n")
	fmt.Fprintf(&b, "**Source:** %s  \n", filename)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Overview\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Rows | %d |\n", summary.TotalRows)
	fmt.Fprintf(&b, "| Columns | %d |\n", summary.TotalColumns)
	fmt.Fprintf(&b, "| Missing cells | %.2f%% |\n", summary.OverallMissingPercentage)
	fmt.Fprintf(&b, "| Duplicate rows | %d |\n\n", summary.DuplicateRowCount)

	fmt.Fprintf(&b, "## Columns\n\n")
	fmt.Fprintf(&b, "| Column | Type | Missing | Unique | Mode |\n|---|---|---|---|---|\n")
	for _, cs := range summary.ColumnStats {
		fmt.Fprintf(&b, "| %s | %s | %.2f%% | %d | %s |\n",
			cs.Name, cs.Type, cs.MissingPercentage, cs.UniqueCount, cs.Mode.String())
	}
	b.WriteString("\n")

	numeric := false
	for _, cs := range summary.ColumnStats {
		if cs.Type == dataset.TypeNumber {
			numeric = true
			break
		}
	}
	if numeric {
		fmt.Fprintf(&b, "## Numeric Columns\n\n")
		fmt.Fprintf(&b, "| Column | Min | Max | Mean | Median | Std Dev |\n|---|---|---|---|---|---|\n")
		for _, cs := range summary.ColumnStats {
			if cs.Type != dataset.TypeNumber {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				cs.Name, cs.Min.String(), cs.Max.String(),
				floatCell(cs.Mean), floatCell(cs.Median), floatCell(cs.StandardDev))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Cleaning Actions\n\n")
	if len(actions) == 0 {
		b.WriteString("No cleaning actions were applied.\n")
	} else {
		fmt.Fprintf(&b, "| Column | Action | Affected Rows | Details |\n|---|---|---|---|\n")
		for _, a := range actions {
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", a.Column, a.Action, a.AffectedRows, a.Details)
		}
	}

	return b.String()
}

// RenderHTML converts a markdown report to an HTML fragment.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func floatCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
