// Package dataprocessing loads the COPA summary case export and answers the
// descriptive questions asked of it.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Loader: reads the CSV export, derives year and month from the
// complaint date, splits beats and restricts rows to the jurisdictions of
// interest
// 2. Expander: turns pipe-packed demographic cells into per-category counts
// 3. Filters and Analyzer: date/beat subsets, top-K categories and
// demographic volumes
// 4. Summarizer: the overview breakdowns printed after loading
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, ',')
//	full, err := loader.Load(ctx, "copa.csv")
//	if err != nil {
//	    return err
//	}
//	ds := full.ReduceToJurisdictions([]string{"IPRA", "COPA"})
//
//	analyzer := dataprocessing.NewAnalyzer(logger, dataprocessing.AnalyzerConfig{})
//	top, err := analyzer.TopCategoriesByBeat(ctx, ds.Records, "0412", nil, nil, 5)
//
// # Data Flow
//
//	CSV → Loader → Complaint (+ Expander counts) → Filters → Analyzer → Breakdown
//
// Records are never modified after load. Every query is a pure function of
// the record slice and its arguments.
//
// # Error Handling
//
// Load failures are SOURCE_NOT_FOUND or DATA_FORMAT application errors;
// bad query arguments are INVALID_ARGUMENT. See internal/errors.
package dataprocessing
