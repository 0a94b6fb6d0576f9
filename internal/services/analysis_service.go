package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/cherdeman/COPA-Project/internal/config"
	"github.com/cherdeman/COPA-Project/internal/dataprocessing"
	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/internal/exporter"
	"github.com/cherdeman/COPA-Project/internal/infrastructure"
	"github.com/cherdeman/COPA-Project/internal/validation"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// LoadedData is the result of loading one export.
type LoadedData struct {
	// Full holds every complaint in the file.
	Full *dataprocessing.Dataset
	// Working is what queries run against: Full reduced to the configured
	// jurisdictions, or Full itself when all jurisdictions were requested.
	Working *dataprocessing.Dataset
	// Agencies is empty when no reduction was applied.
	Agencies []string
}

// AnalysisService runs loads and queries for one invocation
type AnalysisService struct {
	cfg        *config.Config
	logger     *slog.Logger
	telemetry  *infrastructure.Telemetry
	loader     *dataprocessing.Loader
	analyzer   *dataprocessing.Analyzer
	summarizer *dataprocessing.Summarizer
	queries    *validation.QueryValidator
	files      *validation.FileValidator
}

// NewAnalysisService creates the service. telemetry may be nil.
func NewAnalysisService(cfg *config.Config, logger *slog.Logger, telemetry *infrastructure.Telemetry) *AnalysisService {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = infrastructure.WithComponent(logger, "analysis_service")

	delimiter := ','
	if d := []rune(cfg.Dataset.Delimiter); len(d) == 1 {
		delimiter = d[0]
	}

	return &AnalysisService{
		cfg:        cfg,
		logger:     logger,
		telemetry:  telemetry,
		loader:     dataprocessing.NewLoader(logger, delimiter),
		analyzer:   dataprocessing.NewAnalyzer(logger, dataprocessing.AnalyzerConfig{LegacyCharacteristicFallback: cfg.Analysis.LegacyCharacteristicFallback}),
		summarizer: dataprocessing.NewSummarizer(logger),
		queries:    validation.NewQueryValidator(),
		files:      validation.NewFileValidator(logger),
	}
}

// Load reads path and, unless allJurisdictions is set, reduces it to the
// configured agencies.
func (s *AnalysisService) Load(ctx context.Context, path string, allJurisdictions bool) (data *LoadedData, err error) {
	ctx, span := s.telemetry.StartSpan(ctx, "load-dataset", attribute.String("path", path))
	defer func() { infrastructure.EndSpan(span, err) }()

	if err := s.files.ValidateSourceFile(path); err != nil {
		return nil, err
	}

	full, err := s.loader.Load(ctx, path)
	if err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "failed to load dataset",
			slog.String("path", path))
		return nil, err
	}

	metrics := s.telemetry.Instruments()
	metrics.RecordLoad(ctx, full.Len())
	s.reportUnrecognized(ctx, full)

	data = &LoadedData{Full: full, Working: full}
	if !allJurisdictions {
		data.Agencies = s.cfg.Dataset.Jurisdictions
		data.Working = full.ReduceToJurisdictions(data.Agencies)
		s.logger.InfoContext(ctx, "dataset reduced to jurisdictions",
			slog.Any("agencies", data.Agencies),
			slog.Int("kept", data.Working.Len()),
			slog.Int("total", full.Len()))
	}
	metrics.RecordReduce(ctx, data.Working.Len())
	span.SetAttributes(
		attribute.Int("rows.loaded", full.Len()),
		attribute.Int("rows.kept", data.Working.Len()))

	return data, nil
}

func (s *AnalysisService) reportUnrecognized(ctx context.Context, ds *dataprocessing.Dataset) {
	metrics := s.telemetry.Instruments()
	for entity, byChar := range ds.Unrecognized() {
		for characteristic, n := range byChar {
			metrics.RecordUnrecognized(ctx, string(entity), string(characteristic), n)
			s.logger.WarnContext(ctx, "unrecognized category tokens dropped",
				slog.String("entity", string(entity)),
				slog.String("characteristic", string(characteristic)),
				slog.Int("tokens", n))
		}
	}
}

// Summaries returns the full-dataset summary and, when a reduction was
// applied, the jurisdiction summary.
func (s *AnalysisService) Summaries(ctx context.Context, data *LoadedData) []domain.DatasetSummary {
	summaries := []domain.DatasetSummary{s.summarizer.SummarizeFull(ctx, data.Full)}
	if len(data.Agencies) > 0 {
		summaries = append(summaries, s.summarizer.SummarizeJurisdictions(ctx, data.Full, data.Working, data.Agencies))
	}
	return summaries
}

// TopCategories runs the top-K categories query for a beat
func (s *AnalysisService) TopCategories(ctx context.Context, data *LoadedData, q validation.TopCategoriesQuery) (domain.Breakdown, error) {
	var result domain.Breakdown
	err := s.runQuery(ctx, "top-categories", q, func(ctx context.Context) error {
		counts, err := s.analyzer.TopCategoriesByBeat(ctx, data.Working.Records, q.Beat, q.Year, q.Month, q.K)
		if err != nil {
			return err
		}
		result = domain.Breakdown{Title: "Top categories on beat " + q.Beat, Counts: counts}
		return nil
	}, attribute.String("beat", q.Beat), attribute.Int("k", q.K))
	return result, err
}

// Volume runs a characteristic volume query. With q.Complaints set it
// counts complaints rather than people.
func (s *AnalysisService) Volume(ctx context.Context, data *LoadedData, q validation.VolumeQuery) (domain.Breakdown, error) {
	var result domain.Breakdown
	err := s.runQuery(ctx, "volume", q, func(ctx context.Context) error {
		entity, err := domain.ParseEntity(q.Entity)
		if err != nil {
			return errors.NewInvalidArgumentError(err.Error())
		}
		if q.Complaints {
			result, err = s.analyzer.ComplaintVolumeByCharacteristic(ctx, data.Working.Records, entity, q.Characteristic, q.Year, q.Month)
		} else {
			result, err = s.analyzer.VolumeByCharacteristic(ctx, data.Working.Records, entity, q.Characteristic, q.Year, q.Month)
		}
		return err
	}, attribute.String("entity", q.Entity), attribute.String("by", q.Characteristic))
	return result, err
}

// Cross runs the officer x complainant query
func (s *AnalysisService) Cross(ctx context.Context, data *LoadedData, q validation.CrossQuery) (domain.CrossTable, error) {
	var result domain.CrossTable
	err := s.runQuery(ctx, "cross", q, func(ctx context.Context) error {
		var err error
		result, err = s.analyzer.CrossVolume(ctx, data.Working.Records, q.OfficerBy, q.ComplainantBy, q.Year, q.Month)
		return err
	}, attribute.String("officer_by", q.OfficerBy), attribute.String("complainant_by", q.ComplainantBy))
	return result, err
}

// Export writes the aggregated working table as CSV and returns the path
func (s *AnalysisService) Export(ctx context.Context, data *LoadedData, writer *exporter.CSVWriter, out string) (path string, err error) {
	ctx, span := s.telemetry.StartSpan(ctx, "export-table", attribute.String("out", out))
	defer func() { infrastructure.EndSpan(span, err) }()

	if err := s.files.ValidateOutputFile(writer.ResolvePath(out), ".csv"); err != nil {
		return "", err
	}

	path, err = writer.WriteAggregatedTable(out, data.Working)
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "aggregated table exported",
		slog.String("path", path),
		slog.Int("rows", data.Working.Len()))
	return path, nil
}

// runQuery validates q, then runs fn inside a span and records its outcome
func (s *AnalysisService) runQuery(ctx context.Context, name string, q interface{}, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := s.telemetry.StartSpan(ctx, "query."+name, attrs...)
	start := time.Now()

	err := s.queries.Validate(q)
	if err == nil {
		err = fn(ctx)
	}

	elapsed := time.Since(start)
	s.telemetry.Instruments().RecordQuery(ctx, name, elapsed, err)
	infrastructure.EndSpan(span, err)

	if err != nil {
		s.logger.WarnContext(ctx, "query rejected",
			slog.String("query", name),
			slog.String("error", err.Error()))
		return err
	}

	s.logger.DebugContext(ctx, "query completed",
		slog.String("query", name),
		slog.Duration("elapsed", elapsed))
	return nil
}
