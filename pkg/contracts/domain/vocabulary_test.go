package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularySizes(t *testing.T) {
	tests := []struct {
		name  string
		vocab Vocabulary
		want  int
	}{
		{name: "race", vocab: RaceVocabulary(), want: 6},
		{name: "sex", vocab: SexVocabulary(), want: 3},
		{name: "age", vocab: AgeVocabulary(), want: 8},
		{name: "years on force", vocab: YearsOnForceVocabulary(), want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.vocab.Len())
			assert.Equal(t, CategoryUnknown, tt.vocab.At(tt.vocab.Len()-1))
		})
	}
}

func TestVocabulary_ValuesIsACopy(t *testing.T) {
	values := SexVocabulary().Values()
	values[0] = "Changed"

	assert.Equal(t, "Female", SexVocabulary().At(0))
	assert.Equal(t, []string{"Female", "Male", "Unknown"}, SexVocabulary().Values())
}

func TestVocabulary_IndexOfIsCaseSensitive(t *testing.T) {
	vocab := SexVocabulary()

	assert.Equal(t, 1, vocab.IndexOf("Male"))
	assert.Equal(t, -1, vocab.IndexOf("male"))
	assert.Equal(t, -1, vocab.IndexOf(""))
	assert.Equal(t, -1, Vocabulary{}.IndexOf("Male"))
}

func TestVocabularyFor(t *testing.T) {
	_, ok := VocabularyFor(EntityComplainant, CharacteristicYearsOnForce)
	assert.False(t, ok, "complainants have no years on force")

	vocab, ok := VocabularyFor(EntityOfficer, CharacteristicYearsOnForce)
	require.True(t, ok)
	assert.Equal(t, "0-4", vocab.At(0))

	vocab, ok = VocabularyFor(EntityComplainant, CharacteristicRace)
	require.True(t, ok)
	assert.Equal(t, CharacteristicRace, vocab.Characteristic())

	_, ok = VocabularyFor(EntityOfficer, Characteristic("height"))
	assert.False(t, ok)
}

func TestCountColumn(t *testing.T) {
	assert.Equal(t, "Complainant_Count_Sex: Female", CountColumn(EntityComplainant, CharacteristicSex, "Female"))
	assert.Equal(t, "Officer_Count_Years_On_Force: 30+", CountColumn(EntityOfficer, CharacteristicYearsOnForce, "30+"))
	assert.Equal(t, "Officer_Total", TotalColumn(EntityOfficer))
}

func TestParseEntity(t *testing.T) {
	tests := []struct {
		in      string
		want    Entity
		wantErr bool
	}{
		{in: "complainant", want: EntityComplainant},
		{in: "Officers", want: EntityOfficer},
		{in: " officer ", want: EntityOfficer},
		{in: "witness", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEntity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComplaint_HasBeat(t *testing.T) {
	c := Complaint{Beats: []string{"0411", "0412"}}

	assert.True(t, c.HasBeat("0412"))
	assert.False(t, c.HasBeat("041"))
	assert.False(t, (&Complaint{}).HasBeat("0411"))
}

func TestEntityCounts_GetAndSum(t *testing.T) {
	ec := EntityCounts{
		ByCharacteristic: map[Characteristic][]int{
			CharacteristicSex: {1, 2, 0},
		},
	}

	assert.Equal(t, 2, ec.Get(CharacteristicSex, "Male"))
	assert.Equal(t, 0, ec.Get(CharacteristicSex, "Other"))
	assert.Equal(t, 0, ec.Get(CharacteristicRace, "White"))
	assert.Equal(t, 3, ec.Sum(CharacteristicSex))
}

func TestCrossTable_Total(t *testing.T) {
	table := NewCrossTable(SexVocabulary(), RaceVocabulary())
	require.Len(t, table.Cells, 3)
	require.Len(t, table.Cells[0], 6)

	table.Cells[1][2] = 4
	table.Cells[0][5] = 1
	assert.Equal(t, 5, table.Total())
}
