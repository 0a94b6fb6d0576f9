package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"empty cell", "", nil},
		{"single value", "Male", []string{"Male"}},
		{"two values", "Male|Female", []string{"Male", "Female"}},
		{"value with comma", "Hispanic, Latino, or Spanish Origin|White", []string{"Hispanic, Latino, or Spanish Origin", "White"}},
		{"bare separator", "|", []string{"", ""}},
		{"spaces are kept", "Male | Female", []string{"Male ", " Female"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.cell))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name             string
		tokens           []string
		wantCounts       []int
		wantUnrecognized int
	}{
		{"no tokens", nil, []int{0, 0, 0}, 0},
		{"known values", []string{"Male", "Female", "Male"}, []int{1, 2, 0}, 0},
		{"unknown bucket", []string{"Unknown"}, []int{0, 0, 1}, 0},
		{"case sensitive", []string{"male", "FEMALE"}, []int{0, 0, 0}, 2},
		{"unrecognized does not inflate Unknown", []string{"Male", "X"}, []int{0, 1, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, unrecognized := Classify(tt.tokens, domain.SexVocabulary())
			assert.Equal(t, tt.wantCounts, counts)
			assert.Equal(t, tt.wantUnrecognized, unrecognized)
		})
	}
}

func TestExpand(t *testing.T) {
	c := domain.Complaint{Raw: map[string]string{
		domain.ColumnRaceOfComplainants:     "Black or African American|White|Martian",
		domain.ColumnSexOfComplainants:      "Male|Female|Male",
		domain.ColumnAgeOfComplainants:      "20-29|20-29|70+",
		domain.ColumnRaceOfOfficers:         "White",
		domain.ColumnSexOfOfficers:          "Male",
		domain.ColumnAgeOfOfficers:          "40-49",
		domain.ColumnYearsOnForceOfOfficers: "",
	}}

	Expand(&c)

	assert.Equal(t, 1, c.Complainants.Get(domain.CharacteristicRace, "White"))
	assert.Equal(t, 0, c.Complainants.Get(domain.CharacteristicRace, domain.CategoryUnknown))
	assert.Equal(t, 1, c.Complainants.Unrecognized[domain.CharacteristicRace])
	assert.Equal(t, 2, c.Complainants.Get(domain.CharacteristicSex, "Male"))
	assert.Equal(t, 2, c.Complainants.Get(domain.CharacteristicAge, "20-29"))
	assert.Equal(t, 3, c.Complainants.Total)

	// empty years cell means zero officers counted
	assert.Equal(t, 0, c.Officers.Total)
	assert.Len(t, c.Officers.ByCharacteristic[domain.CharacteristicYearsOnForce], 8)
	assert.NotContains(t, c.Complainants.ByCharacteristic, domain.CharacteristicYearsOnForce)
}

func TestExpand_SumsMatchRecognizedTokens(t *testing.T) {
	cells := []string{
		"",
		"White",
		"White|White|Unknown",
		"Asian or Pacific Islander|Nope|Black or African American",
		"|",
	}

	for _, cell := range cells {
		t.Run(cell, func(t *testing.T) {
			c := domain.Complaint{Raw: map[string]string{domain.ColumnRaceOfOfficers: cell}}
			Expand(&c)

			tokens := Tokenize(cell)
			unrecognized := c.Officers.Unrecognized[domain.CharacteristicRace]
			assert.Equal(t, len(tokens)-unrecognized, c.Officers.Sum(domain.CharacteristicRace))
		})
	}
}

func TestCountColumns(t *testing.T) {
	cols := CountColumns()

	// 6+3+8 complainant buckets, 6+3+8+8 officer buckets, two totals
	require.Len(t, cols, 17+25+2)
	assert.Equal(t, "Complainant_Count_Race: American Indian or Alaska Native", cols[0])
	assert.Equal(t, "Complainant_Total", cols[17])
	assert.Equal(t, "Officer_Count_Race: American Indian or Alaska Native", cols[18])
	assert.Equal(t, "Officer_Count_Years_On_Force: Unknown", cols[len(cols)-2])
	assert.Equal(t, "Officer_Total", cols[len(cols)-1])

	c := domain.Complaint{Raw: map[string]string{domain.ColumnSexOfComplainants: "Female"}}
	Expand(&c)
	vals := CountValues(&c)
	require.Len(t, vals, len(cols))
	assert.Equal(t, 1, vals[6], cols[6])
}
