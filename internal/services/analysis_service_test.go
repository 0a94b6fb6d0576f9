package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherdeman/COPA-Project/internal/config"
	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/internal/exporter"
	"github.com/cherdeman/COPA-Project/internal/infrastructure"
	"github.com/cherdeman/COPA-Project/internal/shared/testutil"
	"github.com/cherdeman/COPA-Project/internal/validation"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

func newTestService(t *testing.T, cfg *config.Config) (*AnalysisService, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	return NewAnalysisService(cfg, logger, nil), handler
}

func loadSample(t *testing.T, svc *AnalysisService, all bool) *LoadedData {
	t.Helper()
	path := testutil.WriteComplaintCSV(t, testutil.SampleComplaints()...)
	data, err := svc.Load(context.Background(), path, all)
	require.NoError(t, err)
	return data
}

func TestAnalysisService_Load(t *testing.T) {
	svc, handler := newTestService(t, nil)

	data := loadSample(t, svc, false)
	assert.Equal(t, 4, data.Full.Len())
	assert.Equal(t, 3, data.Working.Len())
	assert.Equal(t, []string{"IPRA", "COPA"}, data.Agencies)
	assert.True(t, handler.ContainsAttr("component", "analysis_service"))

	all := loadSample(t, svc, true)
	assert.Equal(t, 4, all.Working.Len())
	assert.Empty(t, all.Agencies)
	assert.Len(t, svc.Summaries(context.Background(), all), 1)
	assert.Len(t, svc.Summaries(context.Background(), data), 2)
}

func TestAnalysisService_LoadLogsReductionOnce(t *testing.T) {
	svc, handler := newTestService(t, nil)
	loadSample(t, svc, false)

	reduced := 0
	for _, r := range handler.GetRecords() {
		if r.Message == "dataset reduced to jurisdictions" {
			reduced++
		}
	}
	assert.Equal(t, 1, reduced)
	assert.True(t, handler.ContainsAttr("kept", int64(3)))
}

func TestAnalysisService_LoadHeaderOnly(t *testing.T) {
	svc, _ := newTestService(t, nil)

	data, err := svc.Load(context.Background(), testutil.WriteComplaintCSV(t), false)
	require.NoError(t, err)
	assert.Equal(t, 0, data.Working.Len())

	top, err := svc.TopCategories(context.Background(), data, validation.TopCategoriesQuery{Beat: "0412", K: 3})
	require.NoError(t, err)
	assert.Empty(t, top.Counts)
}

func TestAnalysisService_LoadErrors(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), false)
	assert.True(t, errors.IsSourceNotFound(err))

	row := testutil.SampleComplaints()[0]
	row.Date = "yesterday"
	_, err = svc.Load(context.Background(), testutil.WriteComplaintCSV(t, row), false)
	assert.True(t, errors.IsDataFormat(err))
}

func TestAnalysisService_UnrecognizedTokensLogged(t *testing.T) {
	svc, handler := newTestService(t, nil)
	row := testutil.SampleComplaints()[0]
	row.OfficerSex = "Male|M"

	_, err := svc.Load(context.Background(), testutil.WriteComplaintCSV(t, row), true)
	require.NoError(t, err)

	testutil.AssertLogContains(t, handler, slog.LevelWarn, "unrecognized category tokens")
	assert.True(t, handler.ContainsAttr("characteristic", "sex"))
}

func TestAnalysisService_TopCategories(t *testing.T) {
	svc, _ := newTestService(t, nil)
	data := loadSample(t, svc, false)

	got, err := svc.TopCategories(context.Background(), data, validation.TopCategoriesQuery{Beat: "0412", K: 2})
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{
		{Name: "Use of Force", Count: 2},
		{Name: "Verbal Abuse", Count: 1},
	}, got.Counts)

	year := 2017
	got, err = svc.TopCategories(context.Background(), data, validation.TopCategoriesQuery{
		Beat: "0412", K: 5, DateFilter: validation.DateFilter{Year: &year},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total())

	_, err = svc.TopCategories(context.Background(), data, validation.TopCategoriesQuery{Beat: "0412", K: -3})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestAnalysisService_Volume(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func(*config.Config)
		query   validation.VolumeQuery
		want    []domain.CategoryCount
		wantErr bool
	}{
		{
			name:  "complainant sex",
			query: validation.VolumeQuery{Entity: "complainant", Characteristic: "sex"},
			want: []domain.CategoryCount{
				{Name: "Female", Count: 1},
				{Name: "Male", Count: 2},
				{Name: "Unknown", Count: 1},
			},
		},
		{
			name:  "complaints with an officer of each sex",
			query: validation.VolumeQuery{Entity: "officers", Characteristic: "sex", Complaints: true},
			want: []domain.CategoryCount{
				{Name: "Female", Count: 2},
				{Name: "Male", Count: 2},
				{Name: "Unknown", Count: 0},
			},
		},
		{
			name:    "unknown characteristic",
			query:   validation.VolumeQuery{Entity: "officer", Characteristic: "height"},
			wantErr: true,
		},
		{
			name:  "unknown characteristic with legacy fallback",
			cfg:   func(c *config.Config) { c.Analysis.LegacyCharacteristicFallback = true },
			query: validation.VolumeQuery{Entity: "complainant", Characteristic: "height"},
			want: []domain.CategoryCount{
				{Name: "0-19", Count: 1},
				{Name: "20-29", Count: 1},
				{Name: "30-39", Count: 1},
				{Name: "40-49", Count: 0},
				{Name: "50-59", Count: 0},
				{Name: "60-69", Count: 0},
				{Name: "70+", Count: 0},
				{Name: "Unknown", Count: 1},
			},
		},
		{
			name:    "bad entity",
			query:   validation.VolumeQuery{Entity: "witness", Characteristic: "sex"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}
			svc, _ := newTestService(t, cfg)
			data := loadSample(t, svc, false)

			got, err := svc.Volume(context.Background(), data, tt.query)
			if tt.wantErr {
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Counts)
		})
	}
}

func TestAnalysisService_Cross(t *testing.T) {
	svc, _ := newTestService(t, nil)
	data := loadSample(t, svc, false)

	table, err := svc.Cross(context.Background(), data, validation.CrossQuery{OfficerBy: "sex", ComplainantBy: "sex"})
	require.NoError(t, err)

	// 1001: 1 officer x 2 complainants, 1002: 2 x 1, 1003: 1 x 1
	assert.Equal(t, 5, table.Total())

	_, err = svc.Cross(context.Background(), data, validation.CrossQuery{OfficerBy: "sex"})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestAnalysisService_Export(t *testing.T) {
	svc, _ := newTestService(t, nil)
	data := loadSample(t, svc, false)

	paths, err := config.GetPaths(config.OutputConfig{}, t.TempDir())
	require.NoError(t, err)
	writer := exporter.NewCSVWriter(paths, nil)

	out := filepath.Join(t.TempDir(), "out", "table.csv")
	path, err := svc.Export(context.Background(), data, writer, out)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, err = svc.Export(context.Background(), data, writer, "table.txt")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestAnalysisService_ExportCreatesNothingOutsideReports(t *testing.T) {
	svc, _ := newTestService(t, nil)
	data := loadSample(t, svc, false)

	base := t.TempDir()
	paths, err := config.GetPaths(config.OutputConfig{}, base)
	require.NoError(t, err)
	writer := exporter.NewCSVWriter(paths, nil)

	cwd := t.TempDir()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(cwd))
	t.Cleanup(func() { _ = os.Chdir(previous) })

	path, err := svc.Export(context.Background(), data, writer, filepath.Join("sub", "table.csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.ReportsDir, "sub", "table.csv"), path)

	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries, "export must not create directories in the working directory")
}

func TestAnalysisService_RecordsMetrics(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	textfile := filepath.Join(t.TempDir(), "copa.prom")
	tel, err := infrastructure.InitializeTelemetry(config.TelemetryConfig{
		TraceExporter:   "none",
		SampleRatio:     1,
		MetricsTextfile: textfile,
	}, logger)
	require.NoError(t, err)

	svc := NewAnalysisService(nil, logger, tel)
	data := loadSample(t, svc, false)
	_, err = svc.TopCategories(context.Background(), data, validation.TopCategoriesQuery{Beat: "0412", K: 1})
	require.NoError(t, err)

	require.NoError(t, tel.Shutdown(context.Background()))
	content, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "copa_rows_loaded")
	assert.Contains(t, string(content), `query="top-categories"`)
}
