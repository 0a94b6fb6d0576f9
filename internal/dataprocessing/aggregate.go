package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/pkg/contracts/domain"
)

// AnalyzerConfig holds options for characteristic resolution.
type AnalyzerConfig struct {
	// LegacyCharacteristicFallback maps an unknown characteristic name to the
	// entity's total characteristic (age for complainants, years on force for
	// officers) instead of rejecting it.
	LegacyCharacteristicFallback bool
}

// Analyzer runs aggregation queries over loaded records. It holds no state
// derived from the records, so queries may run in any order.
type Analyzer struct {
	logger *slog.Logger
	cfg    AnalyzerConfig
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(logger *slog.Logger, cfg AnalyzerConfig) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger, cfg: cfg}
}

// TopCategoriesByBeat counts complaints per category on a beat, after the
// optional date filter, and returns the k largest. Ties keep the order in
// which the categories first appear.
func (a *Analyzer) TopCategoriesByBeat(ctx context.Context, records []domain.Complaint, beat any, year, month *int, k int) ([]domain.CategoryCount, error) {
	if k < 0 {
		return nil, errors.NewInvalidArgumentError(fmt.Sprintf("k must be non-negative, got %d", k))
	}

	onBeat, err := FilterByBeat(FilterByDate(records, year, month), beat)
	if err != nil {
		return nil, err
	}

	categories := make([]string, len(onBeat))
	for i := range onBeat {
		categories[i] = onBeat[i].Category
	}
	counts := ValueCounts(categories)

	if k < len(counts) {
		counts = counts[:k]
	}

	a.logger.DebugContext(ctx, "top categories computed",
		slog.Any("beat", beat),
		slog.Int("matched", len(onBeat)),
		slog.Int("returned", len(counts)))

	return counts, nil
}

// VolumeByCharacteristic sums the people of an entity per category of the
// named characteristic, in vocabulary order.
func (a *Analyzer) VolumeByCharacteristic(ctx context.Context, records []domain.Complaint, entity domain.Entity, characteristic string, year, month *int) (domain.Breakdown, error) {
	vocab, err := a.ResolveCharacteristic(ctx, entity, characteristic)
	if err != nil {
		return domain.Breakdown{}, err
	}

	sums := make([]int, vocab.Len())
	filtered := FilterByDate(records, year, month)
	for i := range filtered {
		counts := filtered[i].Counts(entity).ByCharacteristic[vocab.Characteristic()]
		for j := 0; j < len(sums) && j < len(counts); j++ {
			sums[j] += counts[j]
		}
	}

	return domain.Breakdown{
		Title:  volumeTitle(entity, vocab.Characteristic()),
		Counts: pairs(vocab, sums),
	}, nil
}

// ComplaintVolumeByCharacteristic counts, per category, the complaints with
// at least one person of that category.
func (a *Analyzer) ComplaintVolumeByCharacteristic(ctx context.Context, records []domain.Complaint, entity domain.Entity, characteristic string, year, month *int) (domain.Breakdown, error) {
	vocab, err := a.ResolveCharacteristic(ctx, entity, characteristic)
	if err != nil {
		return domain.Breakdown{}, err
	}

	complaints := make([]int, vocab.Len())
	filtered := FilterByDate(records, year, month)
	for i := range filtered {
		counts := filtered[i].Counts(entity).ByCharacteristic[vocab.Characteristic()]
		for j := 0; j < len(complaints) && j < len(counts); j++ {
			if counts[j] > 0 {
				complaints[j]++
			}
		}
	}

	return domain.Breakdown{
		Title:  "Complaints by " + volumeTitle(entity, vocab.Characteristic()),
		Counts: pairs(vocab, complaints),
	}, nil
}

// CrossVolume tallies officer/complainant pairings: cell (o, c) sums, over
// the filtered complaints, the officers in category o times the
// complainants in category c.
func (a *Analyzer) CrossVolume(ctx context.Context, records []domain.Complaint, officerCharacteristic, complainantCharacteristic string, year, month *int) (domain.CrossTable, error) {
	rows, err := a.ResolveCharacteristic(ctx, domain.EntityOfficer, officerCharacteristic)
	if err != nil {
		return domain.CrossTable{}, err
	}
	cols, err := a.ResolveCharacteristic(ctx, domain.EntityComplainant, complainantCharacteristic)
	if err != nil {
		return domain.CrossTable{}, err
	}

	table := domain.NewCrossTable(rows, cols)
	filtered := FilterByDate(records, year, month)
	for i := range filtered {
		officers := filtered[i].Officers.ByCharacteristic[rows.Characteristic()]
		complainants := filtered[i].Complainants.ByCharacteristic[cols.Characteristic()]
		for o, on := range officers {
			if on == 0 || o >= rows.Len() {
				continue
			}
			for c, cn := range complainants {
				if c < cols.Len() {
					table.Cells[o][c] += on * cn
				}
			}
		}
	}

	return table, nil
}

// ResolveCharacteristic maps a user-supplied characteristic name to the
// entity's vocabulary. Unknown names are an INVALID_ARGUMENT error unless
// the legacy fallback is enabled.
func (a *Analyzer) ResolveCharacteristic(ctx context.Context, entity domain.Entity, name string) (domain.Vocabulary, error) {
	if c, ok := ParseCharacteristic(name); ok {
		if vocab, ok := domain.VocabularyFor(entity, c); ok {
			return vocab, nil
		}
	}

	if !a.cfg.LegacyCharacteristicFallback {
		return domain.Vocabulary{}, errors.NewInvalidArgumentError(
			fmt.Sprintf("unknown %s characteristic %q: use %s", entity, name, characteristicNames(entity)))
	}

	fallback := domain.TotalCharacteristic(entity)
	a.logger.WarnContext(ctx, "unknown characteristic, falling back",
		slog.String("entity", string(entity)),
		slog.String("requested", name),
		slog.String("fallback", string(fallback)))

	vocab, _ := domain.VocabularyFor(entity, fallback)
	return vocab, nil
}

// ParseCharacteristic accepts the short characteristic names used on the
// command line. Matching ignores case and surrounding space.
func ParseCharacteristic(name string) (domain.Characteristic, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "race":
		return domain.CharacteristicRace, true
	case "sex":
		return domain.CharacteristicSex, true
	case "age":
		return domain.CharacteristicAge, true
	case "years", "years_on_force", "years-on-force":
		return domain.CharacteristicYearsOnForce, true
	}
	return "", false
}

// ValueCounts counts distinct values, largest first. Ties keep first-seen
// order and empty values are skipped.
func ValueCounts(values []string) []domain.CategoryCount {
	index := make(map[string]int)
	var counts []domain.CategoryCount
	for _, v := range values {
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, domain.CategoryCount{Name: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if counts == nil {
		counts = []domain.CategoryCount{}
	}
	return counts
}

func pairs(vocab domain.Vocabulary, counts []int) []domain.CategoryCount {
	out := make([]domain.CategoryCount, vocab.Len())
	for i := range out {
		out[i] = domain.CategoryCount{Name: vocab.At(i), Count: counts[i]}
	}
	return out
}

func volumeTitle(e domain.Entity, c domain.Characteristic) string {
	return fmt.Sprintf("%s %s", e.Label(), strings.ReplaceAll(c.Label(), "_", " "))
}

func characteristicNames(e domain.Entity) string {
	names := make([]string, 0, 4)
	for _, c := range domain.Characteristics(e) {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
