// Package detection provides the record model for HaikuBox detection logs,
// CSV ingestion and the score/exclusion filter stage.
package detection

import (
	"strconv"
	"strings"
)

// UnknownSpecies is the species label used when the source data has none.
const UnknownSpecies = "Unknown"

// Record is one detection row from a daily CSV file. Records are immutable
// once parsed.
type Record struct {
	Score      float64 // confidence score, 0.0 to 1.0
	ScoreValid bool    // false when the Score column did not parse as a number
	Species    string  // common species name
	Count      int     // detection count, coerced to at least 1
	LocalTime  string  // "HH:MM:SS" in box local time, may be empty
	LocalDate  string  // "DD-Mon-YYYY" in box local time, may be empty
}

// parseScore parses a confidence score value. The ok result is false when
// the value is not numeric; such records never pass the filter stage but
// still count toward ingestion totals.
func parseScore(value string) (score float64, ok bool) {
	score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

// parseCount coerces a Count column value to a usable detection count.
// Absent, non-numeric, zero and negative values all coerce to 1.
func parseCount(value string) int {
	count, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || count < 1 {
		return 1
	}
	return count
}

// Hour extracts the integer hour component from the record's local time.
// The ok result is false when the time is absent or malformed or the hour
// is outside 0-23.
func (r *Record) Hour() (hour int, ok bool) {
	if r.LocalTime == "" {
		return 0, false
	}
	part, _, found := strings.Cut(r.LocalTime, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(part)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}
