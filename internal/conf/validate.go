// validate.go: validation of loaded settings
package conf

import (
	"fmt"

	"github.com/tphakala/tanka/internal/errors"
)

// ValidateSettings validates the settings loaded from the configuration file.
func ValidateSettings(settings *Settings) error {
	if err := validateAnalysisSettings(&settings.Analysis); err != nil {
		return err
	}
	if err := validateTimezoneSettings(&settings.Timezone); err != nil {
		return err
	}
	if settings.Downloads.Dir == "" {
		return errors.Newf("downloads.dir must not be empty").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if settings.Output.AnalysisDir == "" {
		return errors.Newf("output.analysisdir must not be empty").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

func validateAnalysisSettings(analysis *AnalysisConfig) error {
	if analysis.ScoreThreshold < 0.0 || analysis.ScoreThreshold > 1.0 {
		return errors.Newf("analysis.scorethreshold must be between 0.0 and 1.0, got %v", analysis.ScoreThreshold).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if analysis.TopN < 1 {
		return errors.Newf("analysis.topn must be at least 1, got %d", analysis.TopN).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if analysis.LookbackDays < 1 {
		return errors.Newf("analysis.lookbackdays must be at least 1, got %d", analysis.LookbackDays).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

// validateTimezoneSettings checks the two-file window precondition of
// local-day analysis: with a fixed negative offset of less than one day, a
// local calendar day always starts during its own UTC day and ends during
// the next one, so exactly two UTC files can contain it. Offsets outside
// that range would need a different file window and are rejected.
func validateTimezoneSettings(tz *TimezoneConfig) error {
	if tz.UTCOffsetHours >= 0 || tz.UTCOffsetHours <= -24 {
		return errors.New(fmt.Errorf("timezone.utcoffsethours must be between -23 and -1, got %d", tz.UTCOffsetHours)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("utc_offset_hours", tz.UTCOffsetHours).
			Build()
	}
	return nil
}
