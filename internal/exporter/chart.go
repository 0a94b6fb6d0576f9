package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/cherdeman/COPA-Project/internal/config"
	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// ChartSheet holds the charted data in every workbook.
const ChartSheet = "Data"

// ChartWriter renders bar charts into .xlsx workbooks
type ChartWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewChartWriter creates a chart writer. Relative paths are placed under the
// charts directory.
func NewChartWriter(paths *config.Paths, logger *slog.Logger) *ChartWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartWriter{paths: paths, logger: logger}
}

// WriteBarChart writes the pairs to the Data sheet and adds a column chart
// with one bar per label, in input order. Returns the full path written.
func (w *ChartWriter) WriteBarChart(path, title string, counts []domain.CategoryCount) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ChartSheet); err != nil {
		return "", errors.NewStorageError("failed to name chart sheet", err)
	}

	if err := f.SetSheetRow(ChartSheet, "A1", &[]interface{}{"Category", "Count"}); err != nil {
		return "", errors.NewStorageError("failed to write chart header", err)
	}
	for i, c := range counts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ChartSheet, cell, &[]interface{}{c.Name, c.Count}); err != nil {
			return "", errors.NewStorageError("failed to write chart data", err)
		}
	}

	if len(counts) == 0 {
		w.logger.Warn("No data to chart, writing table only", slog.String("title", title))
	} else {
		last := len(counts) + 1
		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", ChartSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", ChartSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", ChartSheet, last),
			}},
			Title:     []excelize.RichTextRun{{Text: title}},
			Legend:    excelize.ChartLegend{Position: "none"},
			PlotArea:  excelize.ChartPlotArea{ShowVal: true},
			Dimension: excelize.ChartDimension{Width: 720, Height: 400},
		}
		if err := f.AddChart(ChartSheet, "D2", chart); err != nil {
			return "", errors.NewStorageError("failed to add chart", err)
		}
	}

	return w.save(f, path, title)
}

// WriteCrossChart writes a cross table and a clustered column chart with one
// series per complainant category.
func (w *ChartWriter) WriteCrossChart(path string, t domain.CrossTable) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ChartSheet); err != nil {
		return "", errors.NewStorageError("failed to name chart sheet", err)
	}

	header := make([]interface{}, 0, len(t.Columns)+1)
	header = append(header, crossCorner(t))
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(ChartSheet, "A1", &header); err != nil {
		return "", errors.NewStorageError("failed to write chart header", err)
	}

	for i, label := range t.Rows {
		row := make([]interface{}, 0, len(t.Columns)+1)
		row = append(row, label)
		for _, n := range t.Cells[i] {
			row = append(row, n)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ChartSheet, cell, &row); err != nil {
			return "", errors.NewStorageError("failed to write chart data", err)
		}
	}

	last := len(t.Rows) + 1
	series := make([]excelize.ChartSeries, 0, len(t.Columns))
	for j := range t.Columns {
		col, err := excelize.ColumnNumberToName(j + 2)
		if err != nil {
			return "", errors.NewStorageError("too many chart columns", err)
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", ChartSheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", ChartSheet, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", ChartSheet, col, col, last),
		})
	}

	title := crossCorner(t)
	anchor, _ := excelize.CoordinatesToCellName(len(t.Columns)+3, 2)
	chart := &excelize.Chart{
		Type:      excelize.Col,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: title}},
		Legend:    excelize.ChartLegend{Position: "right"},
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
	}
	if err := f.AddChart(ChartSheet, anchor, chart); err != nil {
		return "", errors.NewStorageError("failed to add chart", err)
	}

	return w.save(f, path, title)
}

func (w *ChartWriter) save(f *excelize.File, path, title string) (string, error) {
	fullPath := path
	if w.paths != nil {
		fullPath = w.paths.GetChartPath(path)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.NewStorageError("failed to create chart directory", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", errors.NewStorageError("failed to save chart workbook", err)
	}

	w.logger.Info("Chart written",
		slog.String("path", fullPath),
		slog.String("title", title))
	return fullPath, nil
}
