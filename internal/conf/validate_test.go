package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	s := &Settings{}
	s.Downloads.Dir = "downloads/"
	s.Output.AnalysisDir = "analysis/"
	s.Analysis = AnalysisConfig{
		ScoreThreshold: 0.5,
		TopN:           10,
		LookbackDays:   7,
	}
	s.Timezone = TimezoneConfig{UTCOffsetHours: -8}
	return s
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(s *Settings) {},
		},
		{
			name:   "threshold zero is allowed",
			mutate: func(s *Settings) { s.Analysis.ScoreThreshold = 0 },
		},
		{
			name:   "threshold one is allowed",
			mutate: func(s *Settings) { s.Analysis.ScoreThreshold = 1 },
		},
		{
			name:    "threshold above one rejected",
			mutate:  func(s *Settings) { s.Analysis.ScoreThreshold = 1.1 },
			wantErr: "scorethreshold",
		},
		{
			name:    "negative threshold rejected",
			mutate:  func(s *Settings) { s.Analysis.ScoreThreshold = -0.1 },
			wantErr: "scorethreshold",
		},
		{
			name:    "zero topn rejected",
			mutate:  func(s *Settings) { s.Analysis.TopN = 0 },
			wantErr: "topn",
		},
		{
			name:    "zero lookback rejected",
			mutate:  func(s *Settings) { s.Analysis.LookbackDays = 0 },
			wantErr: "lookbackdays",
		},
		{
			name:    "positive utc offset rejected",
			mutate:  func(s *Settings) { s.Timezone.UTCOffsetHours = 2 },
			wantErr: "utcoffsethours",
		},
		{
			name:    "zero utc offset rejected",
			mutate:  func(s *Settings) { s.Timezone.UTCOffsetHours = 0 },
			wantErr: "utcoffsethours",
		},
		{
			name:    "offset of a full day rejected",
			mutate:  func(s *Settings) { s.Timezone.UTCOffsetHours = -24 },
			wantErr: "utcoffsethours",
		},
		{
			name:   "offset of -23 allowed",
			mutate: func(s *Settings) { s.Timezone.UTCOffsetHours = -23 },
		},
		{
			name:    "empty download dir rejected",
			mutate:  func(s *Settings) { s.Downloads.Dir = "" },
			wantErr: "downloads.dir",
		},
		{
			name:    "empty analysis dir rejected",
			mutate:  func(s *Settings) { s.Output.AnalysisDir = "" },
			wantErr: "analysisdir",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validSettings()
			tt.mutate(s)

			err := ValidateSettings(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
