package domain

// Source column names in the COPA summary export.
const (
	ColumnComplaintDate          = "COMPLAINT_DATE"
	ColumnAssignment             = "ASSIGNMENT"
	ColumnBeat                   = "BEAT"
	ColumnCurrentCategory        = "CURRENT_CATEGORY"
	ColumnCurrentStatus          = "CURRENT_STATUS"
	ColumnFindingCode            = "FINDING_CODE"
	ColumnRaceOfComplainants     = "RACE_OF_COMPLAINANTS"
	ColumnSexOfComplainants      = "SEX_OF_COMPLAINANTS"
	ColumnAgeOfComplainants      = "AGE_OF_COMPLAINANTS"
	ColumnRaceOfOfficers         = "RACE_OF_INVOLVED_OFFICERS"
	ColumnSexOfOfficers          = "SEX_OF_INVOLVED_OFFICERS"
	ColumnAgeOfOfficers          = "AGE_OF_INVOLVED_OFFICERS"
	ColumnYearsOnForceOfOfficers = "YEARS_ON_FORCE_OF_INVOLVED_OFFICERS"
)

// RequiredColumns lists the columns a source file must provide.
func RequiredColumns() []string {
	return []string{
		ColumnComplaintDate,
		ColumnAssignment,
		ColumnBeat,
		ColumnCurrentCategory,
		ColumnCurrentStatus,
		ColumnFindingCode,
		ColumnRaceOfComplainants,
		ColumnSexOfComplainants,
		ColumnAgeOfComplainants,
		ColumnRaceOfOfficers,
		ColumnSexOfOfficers,
		ColumnAgeOfOfficers,
		ColumnYearsOnForceOfOfficers,
	}
}

// SourceColumn returns the raw column holding a characteristic for an entity.
func SourceColumn(e Entity, c Characteristic) string {
	switch e {
	case EntityComplainant:
		switch c {
		case CharacteristicRace:
			return ColumnRaceOfComplainants
		case CharacteristicSex:
			return ColumnSexOfComplainants
		case CharacteristicAge:
			return ColumnAgeOfComplainants
		}
	case EntityOfficer:
		switch c {
		case CharacteristicRace:
			return ColumnRaceOfOfficers
		case CharacteristicSex:
			return ColumnSexOfOfficers
		case CharacteristicAge:
			return ColumnAgeOfOfficers
		case CharacteristicYearsOnForce:
			return ColumnYearsOnForceOfOfficers
		}
	}
	return ""
}

// Complaint is one row of the summary export together with the fields
// derived from it at load time.
type Complaint struct {
	ID            string `json:"id"`
	ComplaintDate string `json:"complaint_date"`
	Year          int    `json:"complaint_year"`
	Month         int    `json:"complaint_month"`

	Assignment string   `json:"assignment"`
	Category   string   `json:"current_category"`
	Status     string   `json:"current_status"`
	Finding    string   `json:"finding_code"`
	Beats      []string `json:"beats"`

	// Raw pipe-packed cells keyed by source column name.
	Raw map[string]string `json:"-"`

	Complainants EntityCounts `json:"complainants"`
	Officers     EntityCounts `json:"officers"`
}

// RawField returns the raw cell for a source column.
func (c *Complaint) RawField(column string) string {
	return c.Raw[column]
}

// Counts returns the expanded counts for an entity.
func (c *Complaint) Counts(e Entity) *EntityCounts {
	if e == EntityOfficer {
		return &c.Officers
	}
	return &c.Complainants
}

// HasBeat reports whether beat is one of the complaint's beat codes.
func (c *Complaint) HasBeat(beat string) bool {
	for _, b := range c.Beats {
		if b == beat {
			return true
		}
	}
	return false
}

// EntityCounts holds per-category counts for one entity on one complaint.
type EntityCounts struct {
	// ByCharacteristic holds counts aligned with the characteristic's
	// vocabulary order.
	ByCharacteristic map[Characteristic][]int `json:"by_characteristic"`

	// Unrecognized counts tokens that matched no category, per characteristic.
	Unrecognized map[Characteristic]int `json:"unrecognized,omitempty"`

	// Total is the number of people, taken from TotalCharacteristic.
	Total int `json:"total"`
}

// Get returns the count for one category, or 0 if absent.
func (ec EntityCounts) Get(c Characteristic, category string) int {
	counts, ok := ec.ByCharacteristic[c]
	if !ok {
		return 0
	}
	vocab, ok := VocabularyFor(EntityOfficer, c)
	if !ok {
		return 0
	}
	i := vocab.IndexOf(category)
	if i < 0 || i >= len(counts) {
		return 0
	}
	return counts[i]
}

// Sum returns the total over all categories of a characteristic.
func (ec EntityCounts) Sum(c Characteristic) int {
	total := 0
	for _, n := range ec.ByCharacteristic[c] {
		total += n
	}
	return total
}
