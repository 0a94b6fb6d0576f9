package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/internal/shared/testutil"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	path := testutil.WriteComplaintCSV(t, testutil.SampleComplaints()...)

	ds, err := NewLoader(logger, ',').Load(context.Background(), path)
	require.NoError(t, err)
	return ds
}

func TestLoader_Load(t *testing.T) {
	ds := loadSample(t)

	require.Equal(t, 4, ds.Len())
	first := ds.Records[0]
	assert.Equal(t, "1001", first.ID)
	assert.Equal(t, 2016, first.Year)
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, "IPRA", first.Assignment)
	assert.Equal(t, []string{"0411", "0412"}, first.Beats)
	assert.Equal(t, 2, first.Complainants.Total)
	assert.Equal(t, 1, first.Officers.Total)
	assert.Equal(t, "Black or African American|White", first.RawField(domain.ColumnRaceOfComplainants))

	second := ds.Records[1]
	assert.Equal(t, 1, second.Complainants.Get(domain.CharacteristicRace, "Hispanic, Latino, or Spanish Origin"))
	assert.Empty(t, second.Finding)

	minYear, maxYear := ds.YearRange()
	assert.Equal(t, 2016, minYear)
	assert.Equal(t, 2017, maxYear)
}

func TestLoader_YearMatchesDate(t *testing.T) {
	ds := loadSample(t)

	for _, r := range ds.Records {
		date := strings.Fields(r.ComplaintDate)[0]
		parts := strings.Split(date, "/")
		year, err := strconv.Atoi(parts[2])
		require.NoError(t, err)
		assert.Equal(t, year, r.Year, r.ID)
	}
}

func TestLoader_Deterministic(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	path := testutil.WriteComplaintCSV(t, testutil.SampleComplaints()...)
	loader := NewLoader(logger, ',')

	first, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoader_HeaderOnly(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	path := testutil.WriteCSV(t, [][]string{testutil.ComplaintHeader()})

	ds, err := NewLoader(logger, ',').Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Len())
	assert.NotNil(t, ds.Records)
	assert.Equal(t, testutil.ComplaintHeader(), ds.Columns)
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "export has no data rows")
}

func TestLoader_HeaderOnlyStillChecksColumns(t *testing.T) {
	path := testutil.WriteCSV(t, [][]string{{"LOG_NO", domain.ColumnComplaintDate}})

	_, err := NewLoader(nil, ',').Load(context.Background(), path)
	assert.True(t, errors.IsDataFormat(err))
}

func TestLoader_EmptyFile(t *testing.T) {
	path := testutil.WriteCSV(t, nil)

	_, err := NewLoader(nil, ',').Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsDataFormat(err))
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoader_UnnamedIndexColumnKept(t *testing.T) {
	header := testutil.ComplaintHeader()
	header[0] = ""
	path := testutil.WriteCSV(t, [][]string{header, testutil.SampleComplaints()[0].Record()})

	ds, err := NewLoader(nil, ',').Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, header, ds.Columns)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "1001", ds.Records[0].ID)
	assert.Equal(t, "1001", ds.Records[0].RawField(""))
}

func TestDataset_ReduceToJurisdictions(t *testing.T) {
	ds := &Dataset{Records: []domain.Complaint{
		{ID: "1", Assignment: "IPRA"},
		{ID: "2", Assignment: "COPA - Civilian Office"},
		{ID: "3", Assignment: "copa"},
		{ID: "4", Assignment: "BIA"},
	}}

	tests := []struct {
		name     string
		agencies []string
		wantIDs  []string
	}{
		{"default agencies", []string{"IPRA", "COPA"}, []string{"1", "2"}},
		{"single agency", []string{"BIA"}, []string{"4"}},
		{"no agencies", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reduced := ds.ReduceToJurisdictions(tt.agencies)
			ids := make([]string, 0, reduced.Len())
			for _, r := range reduced.Records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	assert.Equal(t, 4, ds.Len(), "source dataset is untouched")
}

func TestLoader_Errors(t *testing.T) {
	sample := testutil.SampleComplaints()[0]

	badDate := sample
	badDate.Date = "2016-01-15"

	noDate := sample
	noDate.Date = ""

	impossibleDate := sample
	impossibleDate.Date = "2/30/2016"

	headerWithoutBeat := []string{}
	for _, h := range testutil.ComplaintHeader() {
		if h != domain.ColumnBeat {
			headerWithoutBeat = append(headerWithoutBeat, h)
		}
	}

	tests := []struct {
		name      string
		path      func(t *testing.T) string
		checkType func(error) bool
	}{
		{
			name:      "missing file",
			path:      func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
			checkType: errors.IsSourceNotFound,
		},
		{
			name:      "malformed date",
			path:      func(t *testing.T) string { return testutil.WriteComplaintCSV(t, badDate) },
			checkType: errors.IsDataFormat,
		},
		{
			name:      "empty date",
			path:      func(t *testing.T) string { return testutil.WriteComplaintCSV(t, sample, noDate) },
			checkType: errors.IsDataFormat,
		},
		{
			name:      "impossible date",
			path:      func(t *testing.T) string { return testutil.WriteComplaintCSV(t, impossibleDate) },
			checkType: errors.IsDataFormat,
		},
		{
			name: "missing column",
			path: func(t *testing.T) string {
				row := make([]string, len(headerWithoutBeat))
				row[1] = "1/1/2016"
				return testutil.WriteCSV(t, [][]string{headerWithoutBeat, row})
			},
			checkType: errors.IsDataFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			_, err := NewLoader(logger, ',').Load(context.Background(), tt.path(t))
			require.Error(t, err)
			assert.True(t, tt.checkType(err), err.Error())
		})
	}
}

func TestLoader_MissingColumnNamed(t *testing.T) {
	header := []string{"LOG_NO", domain.ColumnComplaintDate}
	path := testutil.WriteCSV(t, [][]string{header, {"1", "1/1/2016"}})

	_, err := NewLoader(nil, ',').Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ColumnBeat)
	assert.Contains(t, err.Error(), domain.ColumnYearsOnForceOfOfficers)
}

func TestLoader_Unrecognized(t *testing.T) {
	row := testutil.SampleComplaints()[0]
	row.ComplainantRace = "Black or African American|Martian"
	path := testutil.WriteComplaintCSV(t, row)

	ds, err := NewLoader(nil, ',').Load(context.Background(), path)
	require.NoError(t, err)

	rec := ds.Records[0]
	assert.Equal(t, 1, rec.Complainants.Get(domain.CharacteristicRace, "Black or African American"))
	assert.Equal(t, 0, rec.Complainants.Get(domain.CharacteristicRace, domain.CategoryUnknown))
	assert.Equal(t, 1, ds.Unrecognized()[domain.EntityComplainant][domain.CharacteristicRace])
}

func TestLoader_Delimiter(t *testing.T) {
	var rows [][]string
	rows = append(rows, testutil.ComplaintHeader())
	row := make([]string, len(rows[0]))
	row[0], row[1], row[2] = "9", "12/31/2019 23:59", "COPA"
	rows = append(rows, row)

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(strings.Join(r, ";"))
		b.WriteString("\n")
	}

	ds, err := NewLoader(nil, ';').Read(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 2019, ds.Records[0].Year)
	assert.Equal(t, 12, ds.Records[0].Month)
	assert.Empty(t, ds.Records[0].Beats)
}

func TestParseComplaintDate(t *testing.T) {
	tests := []struct {
		value     string
		wantYear  int
		wantMonth int
		wantErr   bool
	}{
		{"1/15/2016", 2016, 1, false},
		{"12/1/2019 11:45:00 PM", 2019, 12, false},
		{"03/09/2008 00:00", 2008, 3, false},
		{"", 0, 0, true},
		{"2016", 0, 0, true},
		{"13/1/2016", 0, 0, true},
		{"a/b/c", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			year, month, err := ParseComplaintDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}
