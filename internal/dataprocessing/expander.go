package dataprocessing

import (
	"strings"

	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// MultiValueSeparator joins the sub-values of one cell.
const MultiValueSeparator = "|"

// Tokenize splits a pipe-packed cell. An empty cell has no tokens; a cell
// without a separator has exactly one.
func Tokenize(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, MultiValueSeparator)
}

// Classify counts tokens into the vocabulary's categories, in vocabulary
// order. Tokens that match no category exactly are left out of every bucket
// and returned as unrecognized.
func Classify(tokens []string, vocab domain.Vocabulary) (counts []int, unrecognized int) {
	counts = make([]int, vocab.Len())
	for _, tok := range tokens {
		if i := vocab.IndexOf(tok); i >= 0 {
			counts[i]++
		} else {
			unrecognized++
		}
	}
	return counts, unrecognized
}

// ExpandEntity builds the category counts for one entity from the raw cells
// of a record.
func ExpandEntity(raw map[string]string, e domain.Entity) domain.EntityCounts {
	chars := domain.Characteristics(e)
	ec := domain.EntityCounts{
		ByCharacteristic: make(map[domain.Characteristic][]int, len(chars)),
	}

	for _, c := range chars {
		vocab, _ := domain.VocabularyFor(e, c)
		counts, unrecognized := Classify(Tokenize(raw[domain.SourceColumn(e, c)]), vocab)
		ec.ByCharacteristic[c] = counts
		if unrecognized > 0 {
			if ec.Unrecognized == nil {
				ec.Unrecognized = make(map[domain.Characteristic]int)
			}
			ec.Unrecognized[c] = unrecognized
		}
	}

	ec.Total = ec.Sum(domain.TotalCharacteristic(e))
	return ec
}

// Expand fills the complainant and officer counts of c from its raw cells.
func Expand(c *domain.Complaint) {
	c.Complainants = ExpandEntity(c.Raw, domain.EntityComplainant)
	c.Officers = ExpandEntity(c.Raw, domain.EntityOfficer)
}

// CountColumns lists every derived column of the aggregated table in layout
// order: complainant counts, complainant total, officer counts, officer total.
func CountColumns() []string {
	var cols []string
	for _, e := range []domain.Entity{domain.EntityComplainant, domain.EntityOfficer} {
		for _, c := range domain.Characteristics(e) {
			vocab, _ := domain.VocabularyFor(e, c)
			for _, category := range vocab.Values() {
				cols = append(cols, domain.CountColumn(e, c, category))
			}
		}
		cols = append(cols, domain.TotalColumn(e))
	}
	return cols
}

// CountValues returns the derived values of c aligned with CountColumns.
func CountValues(c *domain.Complaint) []int {
	var vals []int
	for _, e := range []domain.Entity{domain.EntityComplainant, domain.EntityOfficer} {
		ec := c.Counts(e)
		for _, ch := range domain.Characteristics(e) {
			vocab, _ := domain.VocabularyFor(e, ch)
			counts := ec.ByCharacteristic[ch]
			for i := 0; i < vocab.Len(); i++ {
				n := 0
				if i < len(counts) {
					n = counts[i]
				}
				vals = append(vals, n)
			}
		}
		vals = append(vals, ec.Total)
	}
	return vals
}
