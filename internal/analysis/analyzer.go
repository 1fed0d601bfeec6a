// Package analysis implements the HaikuBox detection-log analysis engine:
// species aggregation and ranking, time-of-day activity, new-bird detection
// against a lookback window, and reconciliation of UTC-dated daily files
// into local calendar days.
package analysis

import (
	"log/slog"
	"path/filepath"

	"github.com/tphakala/tanka/internal/conf"
	"github.com/tphakala/tanka/internal/detection"
	"github.com/tphakala/tanka/internal/errors"
	"github.com/tphakala/tanka/internal/logging"
)

// Analyzer analyzes HaikuBox daily detection CSV files. It is configured
// once and safe to reuse across files; all methods are synchronous.
type Analyzer struct {
	scoreThreshold float64
	topN           int
	excludeSpecies []string
	lookbackDays   int
	includeTime    bool
	combineExact   bool
	log            *slog.Logger
}

// New creates an Analyzer from analysis settings. includeTime enables the
// time-of-day stage.
func New(cfg *conf.AnalysisConfig, includeTime bool) *Analyzer {
	log := logging.ForService("analysis")
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		scoreThreshold: cfg.ScoreThreshold,
		topN:           cfg.TopN,
		excludeSpecies: cfg.ExcludeSpecies,
		lookbackDays:   cfg.LookbackDays,
		includeTime:    includeTime,
		combineExact:   cfg.CombineExact,
		log:            log,
	}
}

// filter applies the analyzer's score threshold and exclusion list.
func (a *Analyzer) filter(records []detection.Record) []detection.Record {
	return detection.Filter(records, a.scoreThreshold, a.excludeSpecies)
}

// AnalyzeFile analyzes a single daily CSV file. The returned result carries
// the file identity block. A missing file is an error the caller may treat
// as "nothing to analyze".
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	result, _, err := a.analyzeFile(path)
	return result, err
}

// analyzeFile additionally returns the full species-count map so the exact
// combine mode can re-aggregate without re-reading files.
func (a *Analyzer) analyzeFile(path string) (*Result, *SpeciesCounts, error) {
	records, err := detection.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	a.log.Info("analyzing CSV", "file", path, "records", len(records))

	filtered := a.filter(records)
	counts := Aggregate(filtered)
	newBirds := a.DetectNew(path, counts.Species())

	result := &Result{
		File:               filepath.Base(path),
		TotalDetections:    len(records),
		FilteredDetections: len(filtered),
		UniqueSpecies:      counts.Len(),
		TopSpecies:         counts.TopN(a.topN),
		ScoreThreshold:     a.scoreThreshold,
		NewBirds:           newBirds,
	}

	if a.includeTime {
		attachTimeData(result, TimeOfDay(filtered))
	}

	a.log.Info("analysis complete",
		"file", filepath.Base(path),
		"unique_species", result.UniqueSpecies,
		"filtered_detections", result.FilteredDetections,
		"total_detections", result.TotalDetections)

	return result, counts, nil
}

// AnalyzeFiles analyzes several daily CSV files and combines their results.
// Files that cannot be read are skipped; the combination proceeds with
// whatever succeeded. The default combination re-sums only each file's
// already trimmed top-N list, so a species that never reached any single
// file's top-N stays invisible even when its overall count would qualify.
// That lossy behavior is the published contract; the exact mode re-sums the
// full per-file species maps instead.
func (a *Analyzer) AnalyzeFiles(paths []string) *Result {
	combined := NewSpeciesCounts()
	newBirds := make(map[string]bool)
	totalDetections := 0
	filteredDetections := 0

	files := make([]string, 0, len(paths))
	for _, path := range paths {
		files = append(files, filepath.Base(path))
	}

	for _, path := range paths {
		result, counts, err := a.analyzeFile(path)
		if err != nil {
			a.log.Warn("skipping file in multi-file analysis", "file", path, "error", err)
			continue
		}

		totalDetections += result.TotalDetections
		filteredDetections += result.FilteredDetections

		if a.combineExact {
			for _, species := range counts.Species() {
				count, _ := counts.Get(species)
				combined.Add(species, count)
			}
		} else {
			for _, entry := range result.TopSpecies {
				combined.Add(entry.Species, entry.Count)
			}
		}

		for _, bird := range result.NewBirds {
			newBirds[bird] = true
		}
	}

	return &Result{
		Files:              files,
		TotalDetections:    totalDetections,
		FilteredDetections: filteredDetections,
		UniqueSpecies:      combined.Len(),
		TopSpecies:         combined.TopN(a.topN),
		ScoreThreshold:     a.scoreThreshold,
		NewBirds:           sortedKeys(newBirds),
	}
}

// attachTimeData fills the optional time-of-day fields of a result.
func attachTimeData(result *Result, td *TimeData) {
	result.HourCounts = td.HourCounts
	result.SpeciesTimeRanges = td.Ranges
	result.TimeSummary = td.Summary()
}

// IsMissingFile reports whether err marks a CSV file that does not exist.
func IsMissingFile(err error) bool {
	return errors.Is(err, &errors.EnhancedError{Category: errors.CategoryNotFound})
}
