package analysis

import (
	"sort"

	"github.com/tphakala/tanka/internal/detection"
)

// SpeciesCounts is a species-to-count mapping with a defined iteration
// order: species iterate in the order they were first added. The explicit
// order makes top-N tie-breaking reproducible instead of an accident of map
// iteration.
type SpeciesCounts struct {
	order  []string
	counts map[string]int
}

// NewSpeciesCounts returns an empty counter.
func NewSpeciesCounts() *SpeciesCounts {
	return &SpeciesCounts{counts: make(map[string]int)}
}

// Add increases the count for a species, registering it on first sight.
func (c *SpeciesCounts) Add(species string, count int) {
	if _, seen := c.counts[species]; !seen {
		c.order = append(c.order, species)
	}
	c.counts[species] += count
}

// Get returns the count for a species.
func (c *SpeciesCounts) Get(species string) (int, bool) {
	count, ok := c.counts[species]
	return count, ok
}

// Len returns the number of distinct species.
func (c *SpeciesCounts) Len() int {
	return len(c.order)
}

// Species returns the species names in first-encountered order.
func (c *SpeciesCounts) Species() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// TopN returns the n highest-count species, counts descending. Species with
// equal counts keep their first-encountered relative order.
func (c *SpeciesCounts) TopN(n int) []SpeciesCount {
	ranked := make([]SpeciesCount, 0, len(c.order))
	for _, species := range c.order {
		ranked = append(ranked, SpeciesCount{Species: species, Count: c.counts[species]})
	}

	// Stable sort on a non-unique key preserves insertion order for ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Aggregate groups filtered records by species and sums their counts.
func Aggregate(records []detection.Record) *SpeciesCounts {
	counts := NewSpeciesCounts()
	for _, record := range records {
		species := record.Species
		if species == "" {
			species = detection.UnknownSpecies
		}
		counts.Add(species, record.Count)
	}
	return counts
}
