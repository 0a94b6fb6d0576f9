// Package exporter renders analysis results for people and spreadsheets.
//
// This package contains four components:
//
// ConsolePrinter: titled "label: count" blocks, horizontal bar charts and
// cross tables on a terminal, coloured only when writing to a TTY.
//
// ChartWriter: .xlsx workbooks holding the charted data and a column chart.
//
// CSVWriter: the aggregated complaint table and single breakdowns, with a
// UTF-8 BOM for Excel compatibility.
//
// WriteJSON: indented JSON bundles of breakdowns and summaries.
//
// Example usage:
//
//	printer := exporter.NewConsolePrinter(os.Stdout, "auto")
//	printer.PrintCounts("Complainant Sex", breakdown.Counts)
//
//	charts := exporter.NewChartWriter(paths, logger)
//	path, err := charts.WriteBarChart("sex.xlsx", "Complainant Sex", breakdown.Counts)
package exporter
