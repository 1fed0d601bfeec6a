// Package localday implements the local calendar day analysis command.
package localday

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tphakala/tanka/internal/analysis"
	"github.com/tphakala/tanka/internal/conf"
	"github.com/tphakala/tanka/internal/detection"
	"github.com/tphakala/tanka/internal/errors"
	"github.com/tphakala/tanka/internal/logging"
	"github.com/tphakala/tanka/internal/report"
)

// Command creates the localday command. It reconciles the two UTC daily
// files that cover one local calendar day and reports per enabled box.
func Command(settings *conf.Settings) *cobra.Command {
	var dateStr string
	var boxName string

	cmd := &cobra.Command{
		Use:   "localday",
		Short: "Analyze one local calendar day for the configured boxes",
		Long: `Analyze detections for a local calendar day. A local day spans two UTC
daily files, so both are loaded and their rows filtered by local date before
analysis. The default date is two days ago, which guarantees the later UTC
file is complete.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocalDay(settings, dateStr, boxName)
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Local date to analyze (YYYY-MM-DD), defaults to two days ago")
	cmd.Flags().StringVar(&boxName, "box", "", "Analyze only the named box instead of all enabled boxes")

	return cmd
}

func runLocalDay(settings *conf.Settings, dateStr, boxName string) error {
	log := logging.ForService("localday")

	targetDate := time.Now().AddDate(0, 0, -2)
	if dateStr != "" {
		parsed, err := time.Parse(detection.DateLayout, dateStr)
		if err != nil {
			return errors.Newf("invalid date %q, use YYYY-MM-DD", dateStr).
				Component("cmd").
				Category(errors.CategoryValidation).
				Build()
		}
		targetDate = parsed
	}

	boxes := settings.EnabledBoxes()
	if boxName != "" {
		box, ok := settings.BoxByName(boxName)
		if !ok || !box.Enabled {
			return errors.Newf("box %q not found or not enabled", boxName).
				Component("cmd").
				Category(errors.CategoryConfiguration).
				Build()
		}
		boxes = []conf.BoxConfig{box}
	}
	if len(boxes) == 0 {
		return errors.Newf("no boxes enabled in configuration").
			Component("cmd").
			Category(errors.CategoryConfiguration).
			Build()
	}

	analyzer := analysis.New(&settings.Analysis, settings.Analysis.IncludeTime)

	saved := false
	reported := 0
	for _, box := range boxes {
		log.Info("analyzing box", "box", box.Name, "local_date", targetDate.Format(detection.DateLayout))

		result, err := analyzer.AnalyzeLocalDate(settings.Downloads.Dir, box, targetDate)
		if err != nil {
			if errors.Is(err, errors.ErrNoData) {
				log.Warn("no data for box", "box", box.Name, "local_date", targetDate.Format(detection.DateLayout))
				continue
			}
			return err
		}

		fmt.Println()
		fmt.Println(report.Format(result))
		reported++

		if settings.Output.Save && !saved {
			// The artifact is named by date alone, so only the first
			// box's result is persisted.
			path, err := report.SaveArtifact(result, settings.Output.AnalysisDir, targetDate.Format(detection.DateLayout))
			if err != nil {
				return err
			}
			fmt.Printf("\nAnalysis saved to: %s\n", path)
			saved = true
		}
	}

	if reported == 0 {
		printNoDataGuidance(settings.Downloads.Dir, boxes, targetDate)
	}

	return nil
}

// printNoDataGuidance explains which UTC files a local date needs. Analyzing
// a local day is the one mode that needs two files, which trips people up.
func printNoDataGuidance(downloadDir string, boxes []conf.BoxConfig, targetDate time.Time) {
	date := targetDate.Format(detection.DateLayout)
	boxLabel := "<box>"
	if len(boxes) == 1 {
		boxLabel = boxes[0].Name
	}
	key := detection.FileKey{Box: boxLabel, Date: targetDate}

	fmt.Printf("\nNo data found for local date %s.\n", date)
	fmt.Printf("Download directory: %s\n", downloadDir)
	fmt.Println("\nNote: Analyzing a local date requires two UTC files.")
	fmt.Printf("For %s, you need:\n", date)
	fmt.Printf("  - %s (afternoon/evening UTC)\n", key.FileName())
	fmt.Printf("  - %s (morning UTC)\n", key.Shift(1).FileName())
}
