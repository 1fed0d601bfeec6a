// Package file implements the raw UTC file analysis command.
package file

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tphakala/tanka/internal/analysis"
	"github.com/tphakala/tanka/internal/conf"
	"github.com/tphakala/tanka/internal/detection"
	"github.com/tphakala/tanka/internal/report"
)

// Command creates the file command for analyzing one or more raw daily CSV
// files. Rows are taken as-is without local-date reconciliation.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file [detections.csv ...]",
		Short: "Analyze raw daily CSV files",
		Long:  "Analyze one or more daily detection CSV files as raw UTC data. Multiple files are combined into a single summary.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(settings, args)
		},
	}

	return cmd
}

func runFile(settings *conf.Settings, paths []string) error {
	analyzer := analysis.New(&settings.Analysis, settings.Analysis.IncludeTime)

	var result *analysis.Result
	if len(paths) == 1 {
		r, err := analyzer.AnalyzeFile(paths[0])
		if err != nil {
			return err
		}
		result = r
	} else {
		result = analyzer.AnalyzeFiles(paths)
	}

	fmt.Println()
	fmt.Println(report.Format(result))

	if settings.Output.Save {
		dateStr := time.Now().Format(detection.DateLayout)
		path, err := report.SaveArtifact(result, settings.Output.AnalysisDir, dateStr)
		if err != nil {
			return err
		}
		fmt.Printf("\nAnalysis saved to: %s\n", path)
	}

	return nil
}
