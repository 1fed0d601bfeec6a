package detection

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/tphakala/tanka/internal/errors"
	"github.com/tphakala/tanka/internal/logging"
)

// Column names of the HaikuBox CSV export. Presence is header-driven, not
// positional, so files with extra or reordered columns remain compatible.
const (
	columnScore     = "Score"
	columnSpecies   = "Species"
	columnCount     = "Count"
	columnLocalTime = "Local Time"
	columnLocalDate = "Local Date"
)

// ReadFile reads a daily CSV file into a sequence of Records. Malformed rows
// are dropped silently and ingestion continues; a missing file returns an
// error matching fs.ErrNotExist so the caller can treat it as "no historical
// credit" rather than a failure.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(err).
				Component("ingest").
				Category(errors.CategoryNotFound).
				FileContext(path).
				Build()
		}
		return nil, errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	defer file.Close()

	records, err := ReadAll(file)
	if err != nil {
		return nil, errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileParsing).
			FileContext(path).
			Build()
	}
	return records, nil
}

// ReadAll reads detection records from CSV data. The first row is the
// header; unknown columns are ignored.
func ReadAll(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate short and long rows

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			// An empty file has no detections, which is not an error.
			return nil, nil
		}
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns[columnSpecies]; !ok {
		logging.Warn("CSV header has no Species column, no records will be read")
		return nil, nil
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row loses only itself.
			continue
		}

		species := field(row, columnSpecies)
		if species == "" {
			continue
		}

		score, scoreValid := parseScore(field(row, columnScore))
		records = append(records, Record{
			Score:      score,
			ScoreValid: scoreValid,
			Species:    species,
			Count:      parseCount(field(row, columnCount)),
			LocalTime:  field(row, columnLocalTime),
			LocalDate:  field(row, columnLocalDate),
		})
	}

	return records, nil
}
