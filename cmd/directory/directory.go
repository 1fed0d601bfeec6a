// Package directory implements the download directory analysis command.
package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tphakala/tanka/internal/analysis"
	"github.com/tphakala/tanka/internal/conf"
	"github.com/tphakala/tanka/internal/detection"
	"github.com/tphakala/tanka/internal/errors"
	"github.com/tphakala/tanka/internal/logging"
	"github.com/tphakala/tanka/internal/report"
)

// Command creates the directory command. It analyzes daily CSV files from
// the download directory, optionally filtered by box and UTC date.
func Command(settings *conf.Settings) *cobra.Command {
	var boxName string
	var dateStr string
	var all bool

	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Analyze daily CSV files from the download directory",
		Long: `Analyze daily detection CSV files found in the configured download
directory as raw UTC data. Files can be filtered by box name and UTC date;
the date defaults to yesterday unless --all is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirectory(settings, boxName, dateStr, all)
		},
	}

	cmd.Flags().StringVar(&boxName, "box", "", "Only analyze files for the named box")
	cmd.Flags().StringVar(&dateStr, "date", "", "Only analyze files for the given UTC date (YYYY-MM-DD), defaults to yesterday")
	cmd.Flags().BoolVar(&all, "all", false, "Analyze every CSV file in the download directory")

	return cmd
}

func runDirectory(settings *conf.Settings, boxName, dateStr string, all bool) error {
	log := logging.ForService("directory")

	var date time.Time
	if !all {
		date = time.Now().AddDate(0, 0, -1)
		if dateStr != "" {
			parsed, err := time.Parse(detection.DateLayout, dateStr)
			if err != nil {
				return errors.Newf("invalid date %q, use YYYY-MM-DD", dateStr).
					Component("cmd").
					Category(errors.CategoryValidation).
					Build()
			}
			date = parsed
		}
	}

	csvFiles, err := findCSVFiles(settings.Downloads.Dir, boxName, date, all)
	if err != nil {
		return err
	}
	if len(csvFiles) == 0 {
		fmt.Println("\nNo CSV files found matching the criteria.")
		fmt.Printf("Download directory: %s\n", settings.Downloads.Dir)
		return nil
	}

	log.Info("found csv files to analyze", "count", len(csvFiles), "all", all)

	analyzer := analysis.New(&settings.Analysis, settings.Analysis.IncludeTime)

	var result *analysis.Result
	if len(csvFiles) == 1 {
		r, err := analyzer.AnalyzeFile(csvFiles[0])
		if err != nil {
			return err
		}
		result = r
	} else {
		result = analyzer.AnalyzeFiles(csvFiles)
	}

	fmt.Println()
	fmt.Println(report.Format(result))

	if settings.Output.Save {
		saveDate := time.Now()
		if !all {
			saveDate = date
		}
		path, err := report.SaveArtifact(result, settings.Output.AnalysisDir, saveDate.Format(detection.DateLayout))
		if err != nil {
			return err
		}
		fmt.Printf("\nAnalysis saved to: %s\n", path)
	}

	return nil
}

// findCSVFiles selects daily CSV files from the download directory. A box
// and date narrow to one exact file, a box alone matches all of its days, a
// date alone matches all boxes for that day, and all matches everything.
func findCSVFiles(downloadDir, boxName string, date time.Time, all bool) ([]string, error) {
	switch {
	case all && boxName != "":
		return globCSV(downloadDir, boxName+"_*.csv")
	case all:
		return globCSV(downloadDir, "*.csv")
	case boxName != "":
		exact := filepath.Join(downloadDir, detection.FileKey{Box: boxName, Date: date}.FileName())
		if _, err := os.Stat(exact); err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, errors.New(err).
				Component("cmd").
				Category(errors.CategoryFileIO).
				FileContext(exact).
				Build()
		}
		return []string{exact}, nil
	default:
		return globCSV(downloadDir, "*_"+date.Format(detection.DateLayout)+".csv")
	}
}

func globCSV(downloadDir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(downloadDir, pattern))
	if err != nil {
		return nil, errors.New(err).
			Component("cmd").
			Category(errors.CategoryValidation).
			Context("pattern", pattern).
			Build()
	}
	sort.Strings(matches)
	return matches, nil
}
