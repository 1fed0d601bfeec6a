// Package report renders analysis results: a fixed-layout text summary for
// humans and a persisted JSON artifact for the posting pipeline. Both views
// are driven from the same analysis.Result, so they cannot disagree.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tphakala/tanka/internal/analysis"
)

const (
	sectionWidth   = 60
	maxBarLength   = 50 // hourly bar chart cap
	speciesNameCap = 30 // species column width in tables
)

// Format renders the analysis result as a human-readable text report.
func Format(result *analysis.Result) string {
	if result == nil {
		return "No analysis results available"
	}

	var lines []string
	lines = append(lines, title(result))
	lines = append(lines, strings.Repeat("=", sectionWidth))
	lines = append(lines, fmt.Sprintf("Total detections: %d", result.TotalDetections))
	lines = append(lines, fmt.Sprintf("Above threshold (%v): %d", result.ScoreThreshold, result.FilteredDetections))
	lines = append(lines, fmt.Sprintf("Unique species: %d", result.UniqueSpecies))

	if len(result.NewBirds) > 0 {
		lines = append(lines, "")
		lines = append(lines, "New/Rare Birds (not seen recently):")
		lines = append(lines, strings.Repeat("-", sectionWidth))
		for _, bird := range result.NewBirds {
			lines = append(lines, fmt.Sprintf("  * %s", bird))
		}
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Top %d Species:", len(result.TopSpecies)))
	lines = append(lines, strings.Repeat("-", sectionWidth))
	for i, entry := range result.TopSpecies {
		lines = append(lines, fmt.Sprintf("%2d. %-30s %4d detections", i+1, entry.Species, entry.Count))
	}

	if result.HourCounts != nil {
		lines = append(lines, "", formatHourlyActivity(result.HourCounts))
	}
	if result.SpeciesTimeRanges != nil {
		lines = append(lines, "", formatTimeRanges(result.SpeciesTimeRanges, result.TopSpecies))
	}
	if result.TimeSummary != nil {
		lines = append(lines, "", formatTimeSummary(result.TimeSummary))
	}

	return strings.Join(lines, "\n")
}

// title renders the heading for whichever identity block the result carries.
func title(result *analysis.Result) string {
	switch {
	case result.File != "":
		return fmt.Sprintf("Bird Detection Summary: %s", result.File)
	case len(result.Files) > 0:
		return fmt.Sprintf("Bird Detection Summary: %d files", len(result.Files))
	case result.LocalDate != "":
		return fmt.Sprintf("Bird Detection Summary: %s on %s", result.BoxName, result.LocalDate)
	default:
		return "Bird Detection Summary"
	}
}

// formatHourlyActivity renders the 24-row hourly bar chart. All hours are
// shown, even silent ones.
func formatHourlyActivity(hourCounts map[int]int) string {
	var lines []string
	lines = append(lines, "Detections by Hour of Day:")
	lines = append(lines, strings.Repeat("-", sectionWidth))

	for hour := 0; hour < 24; hour++ {
		count := hourCounts[hour]
		bar := ""
		if count > 0 {
			bar = strings.Repeat("█", min(count, maxBarLength))
		}
		lines = append(lines, fmt.Sprintf("%2d:00  %4d  %s", hour, count, bar))
	}

	return strings.Join(lines, "\n")
}

// formatTimeRanges renders a per-species activity timeline. When a top-N
// list is given only those species are shown, in rank order; otherwise every
// species is shown by descending count.
func formatTimeRanges(ranges map[string]analysis.TimeRange, topSpecies []analysis.SpeciesCount) string {
	var lines []string
	lines = append(lines, "Species Activity Time Ranges:")
	lines = append(lines, strings.Repeat("-", sectionWidth))

	var names []string
	if len(topSpecies) > 0 {
		for _, entry := range topSpecies {
			names = append(names, entry.Species)
		}
	} else {
		for name := range ranges {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if ranges[names[i]].Count != ranges[names[j]].Count {
				return ranges[names[i]].Count > ranges[names[j]].Count
			}
			return names[i] < names[j]
		})
	}

	for _, name := range names {
		r, ok := ranges[name]
		if !ok {
			continue
		}

		timeline := []rune(strings.Repeat("·", 24))
		for _, hour := range r.Hours {
			timeline[hour] = '█'
		}

		display := name
		if runes := []rune(display); len(runes) > speciesNameCap {
			display = string(runes[:speciesNameCap])
		}

		lines = append(lines, fmt.Sprintf("%-30s %02d:00-%02d:59    (%2dh)", display, r.FirstSeen, r.LastSeen, len(r.Hours)))
		lines = append(lines, "  0    4    8   12   16   20   24")
		lines = append(lines, fmt.Sprintf("  %s", string(timeline)))
	}

	return strings.Join(lines, "\n")
}

// formatTimeSummary renders the derived activity summary section.
func formatTimeSummary(summary *analysis.TimeSummary) string {
	var lines []string
	lines = append(lines, "Activity Summary:")
	lines = append(lines, strings.Repeat("-", sectionWidth))
	lines = append(lines, fmt.Sprintf("First detection:  %02d:00", summary.FirstDetection))
	lines = append(lines, fmt.Sprintf("Last detection:   %02d:00", summary.LastDetection))
	lines = append(lines, fmt.Sprintf("Busiest hour:     %02d:00 (%d detections)", summary.BusiestHour, summary.BusiestHourCount))
	lines = append(lines, fmt.Sprintf("Avg/active hour:  %.1f", summary.AvgPerActiveHour))
	lines = append(lines, fmt.Sprintf("Peak hours:       %s", formatHours(summary.PeakHours)))
	if len(summary.EarlyBirds) > 0 {
		lines = append(lines, fmt.Sprintf("Early birds (<07:00):  %s", strings.Join(summary.EarlyBirds, ", ")))
	}
	if len(summary.NightOwls) > 0 {
		lines = append(lines, fmt.Sprintf("Night owls (>=19:00):  %s", strings.Join(summary.NightOwls, ", ")))
	}
	lines = append(lines, fmt.Sprintf("Most active:      %s (%dh span)", summary.MostActiveSpecies, summary.MostActiveSpan))

	return strings.Join(lines, "\n")
}

func formatHours(hours []int) string {
	parts := make([]string, 0, len(hours))
	for _, hour := range hours {
		parts = append(parts, fmt.Sprintf("%02d:00", hour))
	}
	return strings.Join(parts, ", ")
}
