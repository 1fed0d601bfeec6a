package analysis

import (
	"path/filepath"
	"time"

	"github.com/tphakala/tanka/internal/conf"
	"github.com/tphakala/tanka/internal/detection"
	"github.com/tphakala/tanka/internal/errors"
)

// AnalyzeLocalDate analyzes one local calendar day for a box. Detections are
// timestamped in box local time but the daily files are partitioned by UTC
// day, so with a fixed negative UTC offset the local day spans the tail of
// its own UTC file and the head of the next day's. Both files are loaded
// when present, merged, and narrowed to the rows whose Local Date column
// matches the target date.
//
// A missing file only shrinks the input; it is reported through the result's
// UTCFiles list. When the surviving files contain no rows for the target
// date the analysis returns errors.ErrNoData, which callers treat as a
// normal "nothing that day" outcome.
func (a *Analyzer) AnalyzeLocalDate(downloadDir string, box conf.BoxConfig, localDate time.Time) (*Result, error) {
	key := detection.FileKey{Box: box.Name, Date: localDate}

	// The two UTC-dated files that can contain the target local day.
	utcKeys := []detection.FileKey{key, key.Shift(1)}

	var merged []detection.Record
	var foundFiles []string
	for _, utcKey := range utcKeys {
		path := filepath.Join(downloadDir, utcKey.FileName())
		records, err := detection.ReadFile(path)
		if err != nil {
			if IsMissingFile(err) {
				a.log.Info("UTC file not present, continuing with partial coverage",
					"file", utcKey.FileName(), "box", box.Name)
				continue
			}
			return nil, err
		}
		merged = append(merged, records...)
		foundFiles = append(foundFiles, utcKey.FileName())
	}

	// Exact string match against the Local Date value embedded in the data;
	// the field is never re-derived from timestamps.
	targetDate := localDate.Format(detection.LocalDateLayout)
	matching := make([]detection.Record, 0, len(merged))
	for _, record := range merged {
		if record.LocalDate == targetDate {
			matching = append(matching, record)
		}
	}

	if len(matching) == 0 {
		return nil, errors.New(errors.ErrNoData).
			Component("analysis").
			Category(errors.CategoryNoData).
			Context("box", box.Name).
			Context("local_date", localDate.Format(detection.DateLayout)).
			Build()
	}

	filtered := a.filter(matching)
	counts := Aggregate(filtered)

	// The same-UTC-day file anchors the lookback chain for new-bird
	// detection. The anchor file itself may be one of the missing ones;
	// its name still carries the box and date the chain needs.
	anchor := filepath.Join(downloadDir, key.FileName())
	newBirds := a.DetectNew(anchor, counts.Species())

	result := &Result{
		LocalDate:          localDate.Format(detection.DateLayout),
		BoxName:            box.Name,
		BoxLocation:        box.Location,
		UTCFiles:           foundFiles,
		TotalDetections:    len(matching),
		FilteredDetections: len(filtered),
		UniqueSpecies:      counts.Len(),
		TopSpecies:         counts.TopN(a.topN),
		ScoreThreshold:     a.scoreThreshold,
		NewBirds:           newBirds,
	}

	if a.includeTime {
		attachTimeData(result, TimeOfDay(filtered))
	}

	a.log.Info("local day reconciled",
		"box", box.Name,
		"local_date", result.LocalDate,
		"utc_files", foundFiles,
		"total_detections", result.TotalDetections,
		"filtered_detections", result.FilteredDetections)

	return result, nil
}
