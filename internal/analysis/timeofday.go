package analysis

import (
	"sort"

	"github.com/tphakala/tanka/internal/detection"
)

// Day segmentation boundaries for the activity summary.
const (
	earlyBirdBeforeHour = 7  // early birds are active before 07:00
	nightOwlFromHour    = 19 // night owls are active at or after 19:00
	hoursPerDay         = 24
)

// TimeData holds the time-of-day view of a filtered record set. rangeOrder
// remembers the order species were first seen with a usable time, so derived
// tie-breaks are reproducible.
type TimeData struct {
	HourCounts map[int]int
	Ranges     map[string]TimeRange
	rangeOrder []string
}

// TimeOfDay buckets filtered records by local hour. Records without a
// parseable local time are skipped here but still count in totals elsewhere;
// the species "Unknown" contributes to hour counts but gets no time range.
func TimeOfDay(records []detection.Record) *TimeData {
	td := &TimeData{
		HourCounts: make(map[int]int),
		Ranges:     make(map[string]TimeRange),
	}

	type accum struct {
		hours map[int]bool
		count int
	}
	accums := make(map[string]*accum)

	for _, record := range records {
		hour, ok := record.Hour()
		if !ok {
			continue
		}

		td.HourCounts[hour] += record.Count

		if record.Species == detection.UnknownSpecies {
			continue
		}
		a := accums[record.Species]
		if a == nil {
			a = &accum{hours: make(map[int]bool)}
			accums[record.Species] = a
			td.rangeOrder = append(td.rangeOrder, record.Species)
		}
		a.hours[hour] = true
		a.count += record.Count
	}

	for _, species := range td.rangeOrder {
		a := accums[species]
		hours := make([]int, 0, len(a.hours))
		for hour := range a.hours {
			hours = append(hours, hour)
		}
		sort.Ints(hours)
		td.Ranges[species] = TimeRange{
			Hours:     hours,
			FirstSeen: hours[0],
			LastSeen:  hours[len(hours)-1],
			Count:     a.count,
		}
	}

	return td
}

// Summary derives the activity summary. It returns nil unless both hour
// counts and species time ranges are non-empty.
func (td *TimeData) Summary() *TimeSummary {
	if len(td.HourCounts) == 0 || len(td.Ranges) == 0 {
		return nil
	}

	summary := &TimeSummary{
		FirstDetection: -1,
		BusiestHour:    -1,
	}

	total := 0
	activeHours := 0
	for hour := 0; hour < hoursPerDay; hour++ {
		count, ok := td.HourCounts[hour]
		if !ok || count == 0 {
			continue
		}
		total += count
		activeHours++
		if summary.FirstDetection < 0 {
			summary.FirstDetection = hour
		}
		summary.LastDetection = hour
		// Strict comparison keeps the earliest hour on ties.
		if count > summary.BusiestHourCount {
			summary.BusiestHour = hour
			summary.BusiestHourCount = count
		}
	}

	summary.AvgPerActiveHour = float64(total) / float64(activeHours)

	summary.PeakHours = make([]int, 0, activeHours)
	for hour := 0; hour < hoursPerDay; hour++ {
		if float64(td.HourCounts[hour]) >= summary.AvgPerActiveHour {
			summary.PeakHours = append(summary.PeakHours, hour)
		}
	}

	summary.EarlyBirds = []string{}
	summary.NightOwls = []string{}
	summary.MostActiveSpan = -1
	for _, species := range td.rangeOrder {
		r := td.Ranges[species]
		for _, hour := range r.Hours {
			if hour < earlyBirdBeforeHour {
				summary.EarlyBirds = append(summary.EarlyBirds, species)
				break
			}
		}
		for _, hour := range r.Hours {
			if hour >= nightOwlFromHour {
				summary.NightOwls = append(summary.NightOwls, species)
				break
			}
		}
		// Strict comparison keeps the first-seen species on ties.
		if span := r.LastSeen - r.FirstSeen; span > summary.MostActiveSpan {
			summary.MostActiveSpan = span
			summary.MostActiveSpecies = species
		}
	}

	return summary
}
