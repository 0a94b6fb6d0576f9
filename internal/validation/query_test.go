package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherdeman/COPA-Project/internal/errors"
)

func intPtr(v int) *int { return &v }

func TestQueryValidator_Validate(t *testing.T) {
	qv := NewQueryValidator()

	tests := []struct {
		name    string
		query   interface{}
		wantErr string
	}{
		{
			name:  "valid top categories",
			query: TopCategoriesQuery{Beat: "0412", K: 5, DateFilter: DateFilter{Year: intPtr(2017), Month: intPtr(3)}},
		},
		{
			name:  "k zero is allowed",
			query: TopCategoriesQuery{Beat: "0412"},
		},
		{
			name:    "missing beat",
			query:   TopCategoriesQuery{K: 1},
			wantErr: "beat is required",
		},
		{
			name:    "packed beat",
			query:   TopCategoriesQuery{Beat: "0411|0412", K: 1},
			wantErr: "beat must be a beat code",
		},
		{
			name:    "negative k",
			query:   TopCategoriesQuery{Beat: "0412", K: -1},
			wantErr: "k must be at least 0",
		},
		{
			name:    "month out of range",
			query:   TopCategoriesQuery{Beat: "0412", DateFilter: DateFilter{Month: intPtr(13)}},
			wantErr: "month must be at most 12",
		},
		{
			name:  "valid volume",
			query: VolumeQuery{Entity: "Officers", Characteristic: "years"},
		},
		{
			name:    "bad entity",
			query:   VolumeQuery{Entity: "witness", Characteristic: "sex"},
			wantErr: "entity must be complainant or officer",
		},
		{
			name:    "cross needs both sides",
			query:   CrossQuery{OfficerBy: "race"},
			wantErr: "complainant_by is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := qv.Validate(tt.query)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
