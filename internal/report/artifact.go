package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tphakala/tanka/internal/analysis"
	"github.com/tphakala/tanka/internal/errors"
)

// SaveArtifact persists the analysis result as <outputDir>/<dateStr>.json,
// the document the posting pipeline consumes. It returns the written path.
func SaveArtifact(result *analysis.Result, outputDir, dateStr string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.New(fmt.Errorf("creating analysis directory: %w", err)).
			Component("report").
			Category(errors.CategoryFileIO).
			Context("dir", outputDir).
			Build()
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", errors.New(fmt.Errorf("encoding analysis result: %w", err)).
			Component("report").
			Category(errors.CategoryFileParsing).
			Build()
	}

	path := filepath.Join(outputDir, dateStr+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.New(fmt.Errorf("writing analysis file: %w", err)).
			Component("report").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}

	return path, nil
}

// LoadArtifact reads a persisted analysis document back into a Result.
func LoadArtifact(path string) (*analysis.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("report").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}

	var result analysis.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.New(fmt.Errorf("decoding analysis file: %w", err)).
			Component("report").
			Category(errors.CategoryFileParsing).
			FileContext(path).
			Build()
	}

	return &result, nil
}
