// Package services coordinates a single analysis run. AnalysisService sits
// between the command line and the dataprocessing package and adds the
// cross-cutting concerns every query needs.
//
// # Service Layer Responsibilities
//
//	- Parameter validation (internal/validation)
//	- Run-scoped logging with the run ID taken from context
//	- One span per load and per query, plus the batch metrics
//	- Translating CLI inputs into analyzer calls
//
// # Usage
//
//	svc := services.NewAnalysisService(cfg, logger, telemetry)
//	data, err := svc.Load(ctx, "copa.csv", false)
//	if err != nil {
//	    return err
//	}
//	top, err := svc.TopCategories(ctx, data, validation.TopCategoriesQuery{Beat: "0412", K: 5})
//
// Presentation is left to the caller; the service returns plain domain values.
package services
