package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cherdeman/COPA-Project/internal/config"
	"github.com/cherdeman/COPA-Project/internal/dataprocessing"
	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// Derived columns added in front of the count columns of the aggregated table.
const (
	ColumnComplaintYear  = "COMPLAINT_YEAR"
	ColumnComplaintMonth = "COMPLAINT_MONTH"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Relative paths are placed
// under the reports directory.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file and returns the full path written
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.ResolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", errors.NewStorageError("failed to create CSV file", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return "", errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", errors.NewStorageError("failed to write CSV header row", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.NewStorageError("failed to flush CSV", err)
	}
	return fullPath, nil
}

// WriteAggregatedTable writes every source column followed by the derived
// year, month and count columns.
func (w *CSVWriter) WriteAggregatedTable(filePath string, ds *dataprocessing.Dataset) (string, error) {
	headers := make([]string, 0, len(ds.Columns)+2)
	headers = append(headers, ds.Columns...)
	headers = append(headers, ColumnComplaintYear, ColumnComplaintMonth)
	headers = append(headers, dataprocessing.CountColumns()...)

	records := make([][]string, 0, ds.Len())
	for i := range ds.Records {
		c := &ds.Records[i]
		row := make([]string, 0, len(headers))
		for _, col := range ds.Columns {
			row = append(row, c.RawField(col))
		}
		row = append(row, formatCount(c.Year), formatCount(c.Month))
		for _, n := range dataprocessing.CountValues(c) {
			row = append(row, formatCount(n))
		}
		records = append(records, row)
	}

	return w.WriteCSV(filePath, WriteOptions{Headers: headers, Records: records, BOMPrefix: true})
}

// WriteBreakdown writes one breakdown as two columns: the title and Count.
func (w *CSVWriter) WriteBreakdown(filePath string, b domain.Breakdown) (string, error) {
	records := make([][]string, len(b.Counts))
	for i, c := range b.Counts {
		records[i] = []string{c.Name, formatCount(c.Count)}
	}
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{b.Title, "Count"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteCrossTable writes a cross table with officer categories as rows.
func (w *CSVWriter) WriteCrossTable(filePath string, t domain.CrossTable) (string, error) {
	headers := append([]string{crossCorner(t)}, t.Columns...)
	records := make([][]string, len(t.Rows))
	for i, label := range t.Rows {
		row := make([]string, 0, len(t.Columns)+1)
		row = append(row, label)
		for _, n := range t.Cells[i] {
			row = append(row, formatCount(n))
		}
		records[i] = row
	}
	return w.WriteCSV(filePath, WriteOptions{Headers: headers, Records: records, BOMPrefix: true})
}

func crossCorner(t domain.CrossTable) string {
	return fmt.Sprintf("Officer %s \\ Complainant %s", t.RowCharacteristic.Label(), t.ColumnCharacteristic.Label())
}

// ResolvePath returns where WriteCSV will write filePath: relative paths go
// under the reports directory.
func (w *CSVWriter) ResolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}
