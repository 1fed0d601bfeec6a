package detection

import "slices"

// Filter applies the confidence threshold and the species exclusion list.
// A record passes when its score parsed, the score is at or above the
// threshold, and its species is not excluded. The stage is pure, keeps the
// input order, and is idempotent.
func Filter(records []Record, threshold float64, excludeSpecies []string) []Record {
	filtered := make([]Record, 0, len(records))
	for _, record := range records {
		if !record.ScoreValid || record.Score < threshold {
			continue
		}
		if slices.Contains(excludeSpecies, record.Species) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}
