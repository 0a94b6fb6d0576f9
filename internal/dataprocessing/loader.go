package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// Dataset is the in-memory complaint table. It is built once by a Loader
// and never mutated; reductions return a new Dataset sharing records.
type Dataset struct {
	Source  string
	Columns []string
	Records []domain.Complaint
}

// Len returns the number of complaints.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// YearRange returns the smallest and largest complaint year, or zeros for an
// empty dataset.
func (d *Dataset) YearRange() (minYear, maxYear int) {
	for i, r := range d.Records {
		if i == 0 || r.Year < minYear {
			minYear = r.Year
		}
		if i == 0 || r.Year > maxYear {
			maxYear = r.Year
		}
	}
	return minYear, maxYear
}

// Unrecognized totals the dropped tokens per entity and characteristic.
func (d *Dataset) Unrecognized() map[domain.Entity]map[domain.Characteristic]int {
	out := make(map[domain.Entity]map[domain.Characteristic]int)
	for i := range d.Records {
		for _, e := range []domain.Entity{domain.EntityComplainant, domain.EntityOfficer} {
			for c, n := range d.Records[i].Counts(e).Unrecognized {
				if out[e] == nil {
					out[e] = make(map[domain.Characteristic]int)
				}
				out[e][c] += n
			}
		}
	}
	return out
}

// ReduceToJurisdictions keeps complaints whose assignment contains any of
// the agency strings. Matching is a case-sensitive substring test.
func (d *Dataset) ReduceToJurisdictions(agencies []string) *Dataset {
	kept := make([]domain.Complaint, 0, len(d.Records))
	for _, r := range d.Records {
		for _, agency := range agencies {
			if strings.Contains(r.Assignment, agency) {
				kept = append(kept, r)
				break
			}
		}
	}
	return &Dataset{Source: d.Source, Columns: d.Columns, Records: kept}
}

// Loader reads summary case exports.
type Loader struct {
	logger    *slog.Logger
	delimiter rune
}

// NewLoader creates a loader. A zero delimiter means comma.
func NewLoader(logger *slog.Logger, delimiter rune) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{logger: logger, delimiter: delimiter}
}

// Load reads the full export at path.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewSourceNotFoundError(path, err)
	}
	defer f.Close()

	ds, err := l.Read(ctx, f)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			appErr.WithContext("path", path)
		}
		return nil, err
	}
	ds.Source = path

	minYear, maxYear := ds.YearRange()
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("rows", ds.Len()),
		slog.Int("min_year", minYear),
		slog.Int("max_year", maxYear))

	return ds, nil
}

// Read parses an export from r. The first column is the complaint ID.
// Column names are kept exactly as written in the header row, including an
// unnamed index column. A header with no data rows is an empty Dataset.
func (l *Loader) Read(ctx context.Context, r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewDataFormatError("failed to read CSV", err)
	}

	columns, hasRows, err := l.readHeader(data)
	if err != nil {
		return nil, err
	}
	if missing := missingColumns(columns); len(missing) > 0 {
		return nil, errors.NewDataFormatError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing", missing)
	}

	if !hasRows {
		l.logger.WarnContext(ctx, "export has no data rows")
		return &Dataset{Columns: columns, Records: []domain.Complaint{}}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
		dataframe.WithDelimiter(l.delimiter),
	)
	if df.Err != nil {
		return nil, errors.NewDataFormatError("failed to parse CSV", df.Err)
	}

	rows := df.Records()[1:]
	records := make([]domain.Complaint, 0, len(rows))
	for i, row := range rows {
		c, err := buildComplaint(columns, row)
		if err != nil {
			return nil, errors.NewDataFormatError(
				fmt.Sprintf("row %d", i+1), err).
				WithContext("row", i+1)
		}
		Expand(&c)
		records = append(records, c)
	}

	l.logger.DebugContext(ctx, "records expanded", slog.Int("rows", len(records)))

	return &Dataset{Columns: columns, Records: records}, nil
}

// readHeader returns the raw header row and whether any record follows it.
// The frame parser renames blank and duplicate headers, so names are taken
// from here instead.
func (l *Loader) readHeader(data []byte) ([]string, bool, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, false, errors.NewDataFormatError("export is empty: no header row", nil)
	}
	if err != nil {
		return nil, false, errors.NewDataFormatError("failed to parse CSV header", err)
	}

	_, err = cr.Read()
	return header, err != io.EOF, nil
}

func missingColumns(columns []string) []string {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}

	var missing []string
	for _, c := range domain.RequiredColumns() {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	sort.Strings(missing)
	return missing
}

func buildComplaint(columns, row []string) (domain.Complaint, error) {
	raw := make(map[string]string, len(columns))
	for j, name := range columns {
		raw[name] = row[j]
	}

	date := raw[domain.ColumnComplaintDate]
	year, month, err := ParseComplaintDate(date)
	if err != nil {
		return domain.Complaint{}, err
	}

	return domain.Complaint{
		ID:            row[0],
		ComplaintDate: date,
		Year:          year,
		Month:         month,
		Assignment:    raw[domain.ColumnAssignment],
		Category:      raw[domain.ColumnCurrentCategory],
		Status:        raw[domain.ColumnCurrentStatus],
		Finding:       raw[domain.ColumnFindingCode],
		Beats:         Tokenize(raw[domain.ColumnBeat]),
		Raw:           raw,
	}, nil
}

// ParseComplaintDate extracts year and month from "M/D/YYYY[ time]".
// Anything after the first space is ignored.
func ParseComplaintDate(value string) (year, month int, err error) {
	datePart := strings.TrimSpace(value)
	if i := strings.IndexByte(datePart, ' '); i >= 0 {
		datePart = datePart[:i]
	}
	if datePart == "" {
		return 0, 0, fmt.Errorf("empty complaint date")
	}

	parts := strings.Split(datePart, "/")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("malformed complaint date %q", value)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 {
			return 0, 0, fmt.Errorf("malformed complaint date %q", value)
		}
		nums[i] = n
	}
	month, day, year := nums[0], nums[1], nums[2]

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, 0, fmt.Errorf("invalid complaint date %q", value)
	}

	return year, month, nil
}
