package detection

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tphakala/tanka/internal/errors"
)

// DateLayout is the UTC calendar date embedded in daily CSV filenames.
const DateLayout = "2006-01-02"

// LocalDateLayout is the date format used in the Local Date CSV column.
const LocalDateLayout = "02-Jan-2006"

// FileKey is the structured identity of a daily CSV file: which box produced
// it and the UTC calendar day it covers. The filename convention is
// <box>_<YYYY-MM-DD>.csv.
type FileKey struct {
	Box  string
	Date time.Time
}

// FileName renders the key back to its filename.
func (k FileKey) FileName() string {
	return fmt.Sprintf("%s_%s.csv", k.Box, k.Date.Format(DateLayout))
}

// Shift returns the key for the same box shifted by the given number of days.
func (k FileKey) Shift(days int) FileKey {
	return FileKey{Box: k.Box, Date: k.Date.AddDate(0, 0, days)}
}

// ParseFileName decodes a daily CSV filename into its FileKey. The box name
// and date are split on the last underscore; the decoded date must
// round-trip back to the same string, which rejects names whose tail merely
// resembles a date.
func ParseFileName(path string) (FileKey, error) {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, ".csv")
	if stem == name {
		return FileKey{}, errors.Newf("not a csv file: %s", name).
			Component("ingest").
			Category(errors.CategoryValidation).
			Build()
	}

	// Box names may themselves contain underscores, so split on the last one.
	i := strings.LastIndex(stem, "_")
	if i < 0 {
		return FileKey{}, errors.Newf("filename has no box_date separator: %s", name).
			Component("ingest").
			Category(errors.CategoryValidation).
			Build()
	}
	box, dateStr := stem[:i], stem[i+1:]

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return FileKey{}, errors.New(fmt.Errorf("filename date %q does not parse: %w", dateStr, err)).
			Component("ingest").
			Category(errors.CategoryValidation).
			FileContext(name).
			Build()
	}
	if date.Format(DateLayout) != dateStr || box == "" {
		return FileKey{}, errors.Newf("filename %q does not round-trip as <box>_<YYYY-MM-DD>.csv", name).
			Component("ingest").
			Category(errors.CategoryValidation).
			Build()
	}

	return FileKey{Box: box, Date: date}, nil
}
