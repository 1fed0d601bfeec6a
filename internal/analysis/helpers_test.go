package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/tanka/internal/conf"
)

// csvRow is one detection row of a test fixture file.
type csvRow struct {
	score     string
	species   string
	count     string
	localTime string
	localDate string
}

// writeCSV writes a daily CSV fixture into dir and returns its path.
func writeCSV(t *testing.T, dir, name string, rows []csvRow) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Score,Species,Count,Local Time,Local Date\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s\n", row.score, row.species, row.count, row.localTime, row.localDate)
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// testAnalysisConfig returns the analysis settings used by most tests.
func testAnalysisConfig() *conf.AnalysisConfig {
	return &conf.AnalysisConfig{
		ScoreThreshold: 0.5,
		TopN:           10,
		LookbackDays:   7,
	}
}

func newTestAnalyzer(includeTime bool) *Analyzer {
	return New(testAnalysisConfig(), includeTime)
}
