package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// Breakdown titles used in dataset summaries.
const (
	BreakdownYear       = "YEAR"
	BreakdownAssignment = "JURISDICTIONAL ASSIGNMENT"
	BreakdownCategory   = "CURRENT CATEGORY"
	BreakdownStatus     = "CURRENT STATUS"
	BreakdownFinding    = "FINDING"
)

// Summarizer builds the overview breakdowns shown after a dataset is loaded.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// SummarizeFull describes the whole export: size, year span, complaints by
// year and by assignment.
func (s *Summarizer) SummarizeFull(ctx context.Context, ds *Dataset) domain.DatasetSummary {
	minYear, maxYear := ds.YearRange()
	summary := domain.DatasetSummary{
		Title:      "All complaints",
		Complaints: ds.Len(),
		MinYear:    minYear,
		MaxYear:    maxYear,
		Breakdowns: []domain.Breakdown{
			CountByYear(ds.Records),
			countField(BreakdownAssignment, ds.Records, func(c *domain.Complaint) string { return c.Assignment }),
		},
	}

	s.logger.InfoContext(ctx, "full dataset summarized",
		slog.Int("complaints", summary.Complaints),
		slog.Int("min_year", minYear),
		slog.Int("max_year", maxYear))

	return summary
}

// SummarizeJurisdictions describes a reduced dataset relative to the full
// one: kept count and share, year span, and breakdowns by year, category,
// status and finding.
func (s *Summarizer) SummarizeJurisdictions(ctx context.Context, full, reduced *Dataset, agencies []string) domain.DatasetSummary {
	minYear, maxYear := reduced.YearRange()

	share := 0.0
	if full.Len() > 0 {
		share = float64(reduced.Len()) / float64(full.Len())
	}

	title := "Complaints under"
	for i, a := range agencies {
		if i > 0 {
			title += " or"
		}
		title += " " + a
	}

	summary := domain.DatasetSummary{
		Title:      title,
		Complaints: reduced.Len(),
		Reference:  full.Len(),
		Share:      share,
		MinYear:    minYear,
		MaxYear:    maxYear,
		Breakdowns: []domain.Breakdown{
			CountByYear(reduced.Records),
			countField(BreakdownCategory, reduced.Records, func(c *domain.Complaint) string { return c.Category }),
			countField(BreakdownStatus, reduced.Records, func(c *domain.Complaint) string { return c.Status }),
			countField(BreakdownFinding, reduced.Records, func(c *domain.Complaint) string { return c.Finding }),
		},
	}

	s.logger.InfoContext(ctx, "jurisdiction summary built",
		slog.Int("kept", summary.Complaints),
		slog.Int("total", summary.Reference),
		slog.Float64("share", share))

	return summary
}

// CountByYear counts complaints per year in ascending year order.
func CountByYear(records []domain.Complaint) domain.Breakdown {
	byYear := make(map[int]int)
	for i := range records {
		byYear[records[i].Year]++
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	counts := make([]domain.CategoryCount, len(years))
	for i, y := range years {
		counts[i] = domain.CategoryCount{Name: strconv.Itoa(y), Count: byYear[y]}
	}
	return domain.Breakdown{Title: BreakdownYear, Counts: counts}
}

func countField(title string, records []domain.Complaint, field func(*domain.Complaint) string) domain.Breakdown {
	values := make([]string, len(records))
	for i := range records {
		values[i] = field(&records[i])
	}
	return domain.Breakdown{Title: title, Counts: ValueCounts(values)}
}
