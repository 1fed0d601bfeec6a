package analysis

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/tphakala/tanka/internal/detection"
)

// DetectNew reports which of the current species were not seen in the
// lookback window of prior daily files for the same box. The current file's
// path anchors the lookup: its filename provides the box and the UTC date to
// count back from, and its directory is searched for the sibling files.
//
// With no historical files at all there is no baseline, so every current
// species is new. Days with no file are skipped, not treated as errors. A
// filename the box/date key cannot be derived from yields an empty result.
// The result is sorted lexicographically and never nil.
func (a *Analyzer) DetectNew(currentPath string, currentSpecies []string) []string {
	if len(currentSpecies) == 0 {
		return []string{}
	}

	key, err := detection.ParseFileName(currentPath)
	if err != nil {
		// Without a box and date there is no lookback chain to consult.
		a.log.Warn("cannot derive box and date from filename", "file", filepath.Base(currentPath), "error", err)
		return []string{}
	}

	historical := a.findHistoricalFiles(filepath.Dir(currentPath), key)
	if len(historical) == 0 {
		a.log.Info("no historical data found, all birds marked as new", "file", filepath.Base(currentPath))
		newBirds := make([]string, len(currentSpecies))
		copy(newBirds, currentSpecies)
		sort.Strings(newBirds)
		return newBirds
	}

	seen := a.historicalSpecies(historical)

	newBirds := []string{}
	for _, species := range currentSpecies {
		if !seen[species] {
			newBirds = append(newBirds, species)
		}
	}
	sort.Strings(newBirds)

	if len(newBirds) > 0 {
		a.log.Info("new or rare birds found", "count", len(newBirds), "species", newBirds)
	}
	return newBirds
}

// findHistoricalFiles returns the lookback-window sibling files of the given
// daily file key that actually exist in dir, most recent first.
func (a *Analyzer) findHistoricalFiles(dir string, key detection.FileKey) []string {
	var files []string
	for daysBack := 1; daysBack <= a.lookbackDays; daysBack++ {
		path := filepath.Join(dir, key.Shift(-daysBack).FileName())
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}

	a.log.Info("historical files located", "found", len(files), "lookback_days", a.lookbackDays)
	return files
}

// historicalSpecies ingests and filters each historical file with the same
// score and exclusion rules as the current analysis and unions the species.
func (a *Analyzer) historicalSpecies(paths []string) map[string]bool {
	seen := make(map[string]bool)
	for _, path := range paths {
		records, err := detection.ReadFile(path)
		if err != nil {
			a.log.Warn("cannot read historical file", "file", path, "error", err)
			continue
		}
		for _, record := range a.filter(records) {
			if record.Species != "" {
				seen[record.Species] = true
			}
		}
	}
	return seen
}

// sortedKeys returns the map's keys sorted lexicographically, never nil.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
