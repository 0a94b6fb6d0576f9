package domain

import (
	"fmt"
	"strings"
)

// Entity identifies the group of people a multi-value cell describes.
type Entity string

const (
	EntityComplainant Entity = "complainant"
	EntityOfficer     Entity = "officer"
)

// Label returns the capitalised form used in derived column names.
func (e Entity) Label() string {
	switch e {
	case EntityComplainant:
		return "Complainant"
	case EntityOfficer:
		return "Officer"
	default:
		return string(e)
	}
}

// ParseEntity converts user input such as "Officers" into an Entity.
func ParseEntity(s string) (Entity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "complainant", "complainants":
		return EntityComplainant, nil
	case "officer", "officers":
		return EntityOfficer, nil
	default:
		return "", fmt.Errorf("unknown entity %q: use complainant or officer", s)
	}
}

// Characteristic is a demographic dimension used to bucket people.
type Characteristic string

const (
	CharacteristicRace         Characteristic = "race"
	CharacteristicSex          Characteristic = "sex"
	CharacteristicAge          Characteristic = "age"
	CharacteristicYearsOnForce Characteristic = "years"
)

// Label returns the name used in derived column names.
func (c Characteristic) Label() string {
	switch c {
	case CharacteristicRace:
		return "Race"
	case CharacteristicSex:
		return "Sex"
	case CharacteristicAge:
		return "Age"
	case CharacteristicYearsOnForce:
		return "Years_On_Force"
	default:
		return string(c)
	}
}

// CategoryUnknown is the catch-all bucket present in every vocabulary.
const CategoryUnknown = "Unknown"

// Vocabulary is an immutable, ordered set of category values.
// The zero value is an empty vocabulary.
type Vocabulary struct {
	characteristic Characteristic
	values         []string
	index          map[string]int
}

func newVocabulary(c Characteristic, values ...string) Vocabulary {
	index := make(map[string]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	return Vocabulary{characteristic: c, values: values, index: index}
}

var (
	raceVocabulary = newVocabulary(CharacteristicRace,
		"American Indian or Alaska Native",
		"Asian or Pacific Islander",
		"Black or African American",
		"Hispanic, Latino, or Spanish Origin",
		"White",
		CategoryUnknown,
	)
	sexVocabulary = newVocabulary(CharacteristicSex,
		"Female",
		"Male",
		CategoryUnknown,
	)
	ageVocabulary = newVocabulary(CharacteristicAge,
		"0-19", "20-29", "30-39", "40-49", "50-59", "60-69", "70+",
		CategoryUnknown,
	)
	yearsOnForceVocabulary = newVocabulary(CharacteristicYearsOnForce,
		"0-4", "5-9", "10-14", "15-19", "20-24", "25-29", "30+",
		CategoryUnknown,
	)
)

// RaceVocabulary returns the race categories in reporting order.
func RaceVocabulary() Vocabulary { return raceVocabulary }

// SexVocabulary returns the sex categories in reporting order.
func SexVocabulary() Vocabulary { return sexVocabulary }

// AgeVocabulary returns the age buckets in reporting order.
func AgeVocabulary() Vocabulary { return ageVocabulary }

// YearsOnForceVocabulary returns the years-on-force buckets in reporting order.
func YearsOnForceVocabulary() Vocabulary { return yearsOnForceVocabulary }

// Characteristic returns the dimension this vocabulary buckets.
func (v Vocabulary) Characteristic() Characteristic { return v.characteristic }

// Len returns the number of categories.
func (v Vocabulary) Len() int { return len(v.values) }

// At returns the i-th category value.
func (v Vocabulary) At(i int) string { return v.values[i] }

// Values returns a copy of the category values; mutating it does not
// affect the vocabulary.
func (v Vocabulary) Values() []string {
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// IndexOf returns the position of value, or -1 when it is not a category.
// Matching is case-sensitive.
func (v Vocabulary) IndexOf(value string) int {
	if i, ok := v.index[value]; ok {
		return i
	}
	return -1
}

// Characteristics returns the characteristics recorded for an entity, in
// the order their count columns are laid out.
func Characteristics(e Entity) []Characteristic {
	if e == EntityOfficer {
		return []Characteristic{CharacteristicRace, CharacteristicSex, CharacteristicAge, CharacteristicYearsOnForce}
	}
	return []Characteristic{CharacteristicRace, CharacteristicSex, CharacteristicAge}
}

// VocabularyFor resolves a characteristic for an entity. The second return
// value is false when the entity does not record that characteristic.
func VocabularyFor(e Entity, c Characteristic) (Vocabulary, bool) {
	switch c {
	case CharacteristicRace:
		return raceVocabulary, true
	case CharacteristicSex:
		return sexVocabulary, true
	case CharacteristicAge:
		return ageVocabulary, true
	case CharacteristicYearsOnForce:
		if e == EntityOfficer {
			return yearsOnForceVocabulary, true
		}
	}
	return Vocabulary{}, false
}

// TotalCharacteristic is the characteristic whose bucket sum stands in for
// the number of people of an entity on a complaint.
func TotalCharacteristic(e Entity) Characteristic {
	if e == EntityOfficer {
		return CharacteristicYearsOnForce
	}
	return CharacteristicAge
}

// CountColumn names the derived count column for one category, e.g.
// "Complainant_Count_Sex: Female".
func CountColumn(e Entity, c Characteristic, category string) string {
	return fmt.Sprintf("%s_Count_%s: %s", e.Label(), c.Label(), category)
}

// TotalColumn names the derived per-entity total column.
func TotalColumn(e Entity) string {
	return e.Label() + "_Total"
}
