package detection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/tanka/internal/errors"
)

const sampleCSV = `Score,Species,Count,Local Time,Local Date
0.91,American Robin,2,06:12:44,20-Jan-2026
0.55,Dark-eyed Junco,1,06:59:59,20-Jan-2026
not-a-number,House Finch,1,07:30:00,20-Jan-2026
0.80,Spotted Towhee,oops,08:01:10,20-Jan-2026
0.70,,3,09:00:00,20-Jan-2026
`

func TestReadAll(t *testing.T) {
	t.Parallel()

	records, err := ReadAll(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// The empty-species row is dropped, every other row is kept even when a
	// numeric field is malformed.
	require.Len(t, records, 4)

	assert.Equal(t, "American Robin", records[0].Species)
	assert.InDelta(t, 0.91, records[0].Score, 1e-9)
	assert.True(t, records[0].ScoreValid)
	assert.Equal(t, 2, records[0].Count)
	assert.Equal(t, "20-Jan-2026", records[0].LocalDate)

	// Non-numeric score is kept but marked invalid
	assert.False(t, records[2].ScoreValid)

	// Non-numeric count coerces to 1
	assert.Equal(t, 1, records[3].Count)
}

func TestReadAllHeaderDriven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		csv  string
		want int
	}{
		{
			name: "reordered columns with extras",
			csv: "Station,Local Date,Count,Species,Score,Local Time\n" +
				"brbs,20-Jan-2026,2,American Robin,0.9,06:12:44\n",
			want: 1,
		},
		{
			name: "missing optional columns",
			csv:  "Score,Species\n0.9,American Robin\n",
			want: 1,
		},
		{
			name: "no species column",
			csv:  "Score,Count\n0.9,2\n",
			want: 0,
		},
		{
			name: "empty file",
			csv:  "",
			want: 0,
		},
		{
			name: "header only",
			csv:  "Score,Species,Count,Local Time,Local Date\n",
			want: 0,
		},
		{
			name: "short row",
			csv:  "Score,Species,Count,Local Time,Local Date\n0.9,American Robin\n",
			want: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			records, err := ReadAll(strings.NewReader(tt.csv))
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestReadAllNegativeCount(t *testing.T) {
	t.Parallel()

	records, err := ReadAll(strings.NewReader("Score,Species,Count\n0.9,Bushtit,-4\n0.9,Bushtit,0\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Count, "negative count must coerce to 1")
	assert.Equal(t, 1, records[1].Count, "zero count must coerce to 1")
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "haiku-brbs_2026-01-20.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "missing file must map to fs.ErrNotExist")
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "haiku-brbs_2026-01-20.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	records, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestRecordHour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		localTime string
		wantHour  int
		wantOK    bool
	}{
		{"06:59:59", 6, true},
		{"00:00:00", 0, true},
		{"23:59:59", 23, true},
		{"7:15:00", 7, true},
		{"24:00:00", 0, false},
		{"", 0, false},
		{"noon", 0, false},
		{"-1:00:00", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.localTime, func(t *testing.T) {
			t.Parallel()
			r := Record{LocalTime: tt.localTime}
			hour, ok := r.Hour()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantHour, hour)
			}
		})
	}
}
