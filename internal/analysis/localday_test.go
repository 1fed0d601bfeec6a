package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/tanka/internal/conf"
	"github.com/tphakala/tanka/internal/errors"
)

var testBox = conf.BoxConfig{Name: "haiku-brbs", Location: "backyard", Enabled: true}

func jan20() time.Time {
	return time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
}

// writeStitchFixtures writes the two UTC files around local Jan 20: three
// matching rows plus two spillover rows in the first, four matching rows in
// the second.
func writeStitchFixtures(t *testing.T, dir string, withSecond bool) {
	t.Helper()

	writeCSV(t, dir, "haiku-brbs_2026-01-20.csv", []csvRow{
		{"0.9", "American Robin", "1", "06:10:00", "20-Jan-2026"},
		{"0.9", "House Finch", "1", "07:20:00", "20-Jan-2026"},
		{"0.9", "American Robin", "1", "08:30:00", "20-Jan-2026"},
		{"0.9", "Bushtit", "1", "17:00:00", "21-Jan-2026"},
		{"0.9", "Bushtit", "1", "18:00:00", "21-Jan-2026"},
	})
	if withSecond {
		writeCSV(t, dir, "haiku-brbs_2026-01-21.csv", []csvRow{
			{"0.9", "American Robin", "1", "19:00:00", "20-Jan-2026"},
			{"0.9", "Spotted Towhee", "1", "20:00:00", "20-Jan-2026"},
			{"0.9", "Spotted Towhee", "1", "21:00:00", "20-Jan-2026"},
			{"0.9", "House Finch", "1", "22:00:00", "20-Jan-2026"},
		})
	}
}

func TestAnalyzeLocalDateStitchesTwoUTCFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStitchFixtures(t, dir, true)

	a := newTestAnalyzer(false)
	result, err := a.AnalyzeLocalDate(dir, testBox, jan20())
	require.NoError(t, err)
	require.NotNil(t, result)

	// 3 matching rows from the first file plus 4 from the second; the 2
	// spillover rows dated 21-Jan-2026 are ignored.
	assert.Equal(t, 7, result.TotalDetections)
	assert.Equal(t, 7, result.FilteredDetections)
	assert.Equal(t, 3, result.UniqueSpecies)

	assert.Equal(t, "2026-01-20", result.LocalDate)
	assert.Equal(t, "haiku-brbs", result.BoxName)
	assert.Equal(t, "backyard", result.BoxLocation)
	assert.Equal(t, []string{"haiku-brbs_2026-01-20.csv", "haiku-brbs_2026-01-21.csv"}, result.UTCFiles)
	assert.Empty(t, result.File, "local-day results carry no single-file identity")
	assert.Empty(t, result.Files)

	// Counts are summed across both files
	require.NotEmpty(t, result.TopSpecies)
	assert.Equal(t, SpeciesCount{Species: "American Robin", Count: 3}, result.TopSpecies[0])
}

func TestAnalyzeLocalDateMissingSecondFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStitchFixtures(t, dir, false)

	a := newTestAnalyzer(false)
	result, err := a.AnalyzeLocalDate(dir, testBox, jan20())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 3, result.TotalDetections)
	assert.Equal(t, []string{"haiku-brbs_2026-01-20.csv"}, result.UTCFiles)
}

func TestAnalyzeLocalDateNoMatchingRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCSV(t, dir, "haiku-brbs_2026-01-20.csv", []csvRow{
		{"0.9", "Bushtit", "1", "17:00:00", "19-Jan-2026"},
	})

	a := newTestAnalyzer(false)
	result, err := a.AnalyzeLocalDate(dir, testBox, jan20())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoData), "files present but no rows for the date is the no-data outcome")
	assert.False(t, IsMissingFile(err), "no-data is not the missing-file outcome")
}

func TestAnalyzeLocalDateBothFilesMissing(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(false)
	result, err := a.AnalyzeLocalDate(t.TempDir(), testBox, jan20())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoData))
}

func TestAnalyzeLocalDateNoveltyAnchorsOnFirstUTCFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStitchFixtures(t, dir, true)
	// History one day before utc_file_1 covers the robin but nothing else
	writeCSV(t, dir, "haiku-brbs_2026-01-19.csv", []csvRow{
		{"0.9", "American Robin", "1", "06:00:00", "19-Jan-2026"},
	})

	a := newTestAnalyzer(false)
	result, err := a.AnalyzeLocalDate(dir, testBox, jan20())
	require.NoError(t, err)

	// The Bushtit spillover rows are not part of the local day, so only the
	// species actually observed on the 20th can be new.
	assert.Equal(t, []string{"House Finch", "Spotted Towhee"}, result.NewBirds)
}

func TestAnalyzeLocalDateWithTimeAnalysis(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStitchFixtures(t, dir, true)

	a := newTestAnalyzer(true)
	result, err := a.AnalyzeLocalDate(dir, testBox, jan20())
	require.NoError(t, err)

	require.NotNil(t, result.HourCounts)
	assert.Equal(t, 1, result.HourCounts[6])
	assert.Equal(t, 1, result.HourCounts[19])

	require.Contains(t, result.SpeciesTimeRanges, "American Robin")
	robin := result.SpeciesTimeRanges["American Robin"]
	assert.Equal(t, []int{6, 8, 19}, robin.Hours)

	require.NotNil(t, result.TimeSummary)
	assert.Equal(t, 6, result.TimeSummary.FirstDetection)
	assert.Equal(t, 22, result.TimeSummary.LastDetection)
}
