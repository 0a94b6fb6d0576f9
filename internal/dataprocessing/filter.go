package dataprocessing

import (
	"fmt"

	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// FilterByDate keeps records whose year and month equal the given values.
// A nil argument does not filter; with both nil the input is returned as is.
func FilterByDate(records []domain.Complaint, year, month *int) []domain.Complaint {
	if year == nil && month == nil {
		return records
	}

	out := make([]domain.Complaint, 0, len(records))
	for _, r := range records {
		if year != nil && r.Year != *year {
			continue
		}
		if month != nil && r.Month != *month {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByBeat keeps records listing beat among their beat codes. beat must
// be a string; matching is exact against a single code.
func FilterByBeat(records []domain.Complaint, beat any) ([]domain.Complaint, error) {
	code, ok := beat.(string)
	if !ok {
		return nil, errors.NewInvalidArgumentError(
			fmt.Sprintf("beat must be a string, got %T", beat))
	}

	out := make([]domain.Complaint, 0)
	for i := range records {
		if records[i].HasBeat(code) {
			out = append(out, records[i])
		}
	}
	return out, nil
}
