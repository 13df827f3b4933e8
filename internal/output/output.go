// Package output renders analysis reports for the command line: machine
// formats (json, yaml) and a human-readable table summary.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/russellbomer/domsift/internal/analyzer"
)

// Render writes the report in the requested format.
func Render(w io.Writer, report *analyzer.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(report)
	case "table":
		renderTables(w, report)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// renderTables prints a human-readable summary of the report.
func renderTables(w io.Writer, report *analyzer.Report) {
	fw := table.NewWriter()
	fw.SetOutputMirror(w)
	fw.SetTitle("Frameworks")
	fw.AppendHeader(table.Row{"Name", "Score"})
	for _, d := range report.Frameworks {
		fw.AppendRow(table.Row{d.Name, d.Score})
	}
	fw.Render()

	ct := table.NewWriter()
	ct.SetOutputMirror(w)
	ct.SetTitle("Containers")
	ct.AppendHeader(table.Row{"Child Selector", "Items", "Score", "Content"})
	for _, c := range report.Containers {
		ct.AppendRow(table.Row{c.ChildSelector, c.ItemCount, c.ContentScore, c.IsContent})
	}
	ct.Render()

	if len(report.Suggestions.FieldCandidates) > 0 {
		ft := table.NewWriter()
		ft.SetOutputMirror(w)
		ft.SetTitle("Suggested Fields")
		ft.AppendHeader(table.Row{"Field", "Selector", "Attribute", "Support", "Sample"})
		for _, f := range report.Suggestions.FieldCandidates {
			ft.AppendRow(table.Row{f.Name, f.Selector, f.Attribute, f.Support, f.Sample})
		}
		ft.Render()
	}

	if report.Suggestions.ItemSelector != "" {
		fmt.Fprintf(w, "\nItem selector: %s\n", report.Suggestions.ItemSelector)
	}
	if report.Suggestions.FrameworkHint != "" {
		fmt.Fprintf(w, "Framework hint: %s\n", report.Suggestions.FrameworkHint)
	}
	if report.Suggestions.InfiniteScroll.Detected {
		fmt.Fprintf(w, "Infinite scroll likely (confidence %.2f)\n",
			report.Suggestions.InfiniteScroll.Confidence)
	}
}
