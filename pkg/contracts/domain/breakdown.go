package domain

// CategoryCount is a (label, count) pair produced by an aggregation.
type CategoryCount struct {
	Name  string `json:"name" csv:"Name"`
	Count int    `json:"count" csv:"Count"`
}

// Breakdown is a titled, ordered list of counts ready for presentation.
type Breakdown struct {
	Title  string          `json:"title"`
	Counts []CategoryCount `json:"counts"`
}

// Total sums the counts of a breakdown.
func (b Breakdown) Total() int {
	total := 0
	for _, c := range b.Counts {
		total += c.Count
	}
	return total
}

// CrossTable is a joint officer x complainant tally. Cells[i][j] belongs to
// Rows[i] (officer category) and Columns[j] (complainant category).
type CrossTable struct {
	RowCharacteristic    Characteristic `json:"row_characteristic"`
	ColumnCharacteristic Characteristic `json:"column_characteristic"`
	Rows                 []string       `json:"rows"`
	Columns              []string       `json:"columns"`
	Cells                [][]int        `json:"cells"`
}

// NewCrossTable allocates a zeroed table for the given vocabularies.
func NewCrossTable(rows, cols Vocabulary) CrossTable {
	cells := make([][]int, rows.Len())
	for i := range cells {
		cells[i] = make([]int, cols.Len())
	}
	return CrossTable{
		RowCharacteristic:    rows.Characteristic(),
		ColumnCharacteristic: cols.Characteristic(),
		Rows:                 rows.Values(),
		Columns:              cols.Values(),
		Cells:                cells,
	}
}

// Total sums every cell.
func (t CrossTable) Total() int {
	total := 0
	for _, row := range t.Cells {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// DatasetSummary is the overview printed after loading: size, year span,
// and the headline breakdowns.
type DatasetSummary struct {
	Title      string      `json:"title"`
	Complaints int         `json:"complaints"`
	Reference  int         `json:"reference_complaints,omitempty"`
	Share      float64     `json:"share,omitempty"`
	MinYear    int         `json:"min_year"`
	MaxYear    int         `json:"max_year"`
	Breakdowns []Breakdown `json:"breakdowns"`
}
