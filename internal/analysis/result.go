package analysis

import (
	"encoding/json"
	"fmt"
)

// SpeciesCount is one ranked entry of a top-N list. It marshals as a
// two-element [name, count] array, which is the layout the downstream
// posting consumer indexes into.
type SpeciesCount struct {
	Species string
	Count   int
}

// MarshalJSON renders the entry as ["species", count].
func (sc SpeciesCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{sc.Species, sc.Count})
}

// UnmarshalJSON reads the ["species", count] pair layout back.
func (sc *SpeciesCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("top species entry must be a [name, count] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &sc.Species); err != nil {
		return fmt.Errorf("top species name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &sc.Count); err != nil {
		return fmt.Errorf("top species count: %w", err)
	}
	return nil
}

// TimeRange describes when one species was active during the day.
type TimeRange struct {
	Hours     []int `json:"hours"` // distinct detection hours, sorted ascending
	FirstSeen int   `json:"first_seen"`
	LastSeen  int   `json:"last_seen"`
	Count     int   `json:"count"`
}

// TimeSummary is the derived aggregate over hour counts and species time
// ranges.
type TimeSummary struct {
	FirstDetection    int      `json:"first_detection"`
	LastDetection     int      `json:"last_detection"`
	BusiestHour       int      `json:"busiest_hour"`
	BusiestHourCount  int      `json:"busiest_hour_count"`
	AvgPerActiveHour  float64  `json:"avg_per_active_hour"`
	PeakHours         []int    `json:"peak_hours"`   // hours at or above the active-hour average
	EarlyBirds        []string `json:"early_birds"`  // species active before 07:00
	NightOwls         []string `json:"night_owls"`   // species active at or after 19:00
	MostActiveSpecies string   `json:"most_active_species"`
	MostActiveSpan    int      `json:"most_active_span"` // hours between first and last sighting
}

// Result is the outcome of one analysis. Exactly one identity block is
// populated: File for a single-file analysis, Files for a multi-file
// combination, or the LocalDate/BoxName/BoxLocation/UTCFiles group for a
// local-day reconciliation. The JSON field names are a contract with the
// downstream posting consumer.
type Result struct {
	File        string   `json:"file,omitempty"`
	Files       []string `json:"files,omitempty"`
	LocalDate   string   `json:"local_date,omitempty"`
	BoxName     string   `json:"box_name,omitempty"`
	BoxLocation string   `json:"box_location,omitempty"`
	UTCFiles    []string `json:"utc_files,omitempty"`

	TotalDetections    int            `json:"total_detections"`
	FilteredDetections int            `json:"filtered_detections"`
	UniqueSpecies      int            `json:"unique_species"`
	TopSpecies         []SpeciesCount `json:"top_species"`
	ScoreThreshold     float64        `json:"score_threshold"`
	NewBirds           []string       `json:"new_birds"` // sorted, never null

	HourCounts        map[int]int          `json:"hour_counts,omitempty"`
	SpeciesTimeRanges map[string]TimeRange `json:"species_time_ranges,omitempty"`
	TimeSummary       *TimeSummary         `json:"time_summary,omitempty"`
}
