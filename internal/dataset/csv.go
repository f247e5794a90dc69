package dataset

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

// Load reads a training dataset from a CSV file with the columns
// Attendance, StudyHours, InternalMarks, FinalMarks.
func Load(path string, limits Limits) ([]LabeledObservation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	rows, err := Read(file, limits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses training rows from r and validates every row.
func Read(r io.Reader, limits Limits) ([]LabeledObservation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	var rows []LabeledObservation
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset has no rows")
	}

	for i, row := range rows {
		// Row numbers are 1-based and skip the header line.
		if err := row.Observation().Validate(limits); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if math.IsNaN(row.FinalMarks) || row.FinalMarks < 0 || row.FinalMarks > 100 {
			return nil, fmt.Errorf("row %d: final marks %v outside [0, 100]", i+2, row.FinalMarks)
		}
	}

	return rows, nil
}

// Write writes rows as CSV with a header line.
func Write(w io.Writer, rows []LabeledObservation) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}

// Save writes rows to path, creating or truncating the file.
func Save(path string, rows []LabeledObservation) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}

	if err := Write(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
