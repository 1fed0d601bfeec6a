package detection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		wantBox  string
		wantDate string
		wantErr  bool
	}{
		{name: "simple", path: "haiku-brbs_2026-01-20.csv", wantBox: "haiku-brbs", wantDate: "2026-01-20"},
		{name: "with directory", path: "/data/downloads/haiku-brbs_2026-01-20.csv", wantBox: "haiku-brbs", wantDate: "2026-01-20"},
		{name: "box name with underscore", path: "back_yard_2026-01-20.csv", wantBox: "back_yard", wantDate: "2026-01-20"},
		{name: "no underscore", path: "2026-01-20.csv", wantErr: true},
		{name: "no csv extension", path: "haiku-brbs_2026-01-20.txt", wantErr: true},
		{name: "bad date", path: "haiku-brbs_2026-13-40.csv", wantErr: true},
		{name: "date does not round-trip", path: "haiku-brbs_2026-1-2.csv", wantErr: true},
		{name: "empty box name", path: "_2026-01-20.csv", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			key, err := ParseFileName(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBox, key.Box)
			assert.Equal(t, tt.wantDate, key.Date.Format(DateLayout))
		})
	}
}

func TestFileKeyRoundTrip(t *testing.T) {
	t.Parallel()

	key := FileKey{Box: "haiku-brbs", Date: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)}
	parsed, err := ParseFileName(key.FileName())
	require.NoError(t, err)
	assert.Equal(t, key.Box, parsed.Box)
	assert.True(t, key.Date.Equal(parsed.Date))
}

func TestFileKeyShift(t *testing.T) {
	t.Parallel()

	key := FileKey{Box: "haiku-brbs", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "haiku-brbs_2025-12-31.csv", key.Shift(-1).FileName(), "shifting crosses month and year boundaries")
	assert.Equal(t, "haiku-brbs_2026-01-08.csv", key.Shift(7).FileName())
}
