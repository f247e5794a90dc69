// Package history keeps an append-only log of past predictions.
package history

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// DefaultPath is where the log lives unless configured otherwise.
const DefaultPath = "history/student_history.csv"

// Record is one logged prediction.
type Record struct {
	Attendance     float64 `csv:"Attendance" json:"attendance"`
	StudyHours     float64 `csv:"StudyHours" json:"study_hours"`
	InternalMarks  float64 `csv:"InternalMarks" json:"internal_marks"`
	PredictedMarks float64 `csv:"PredictedMarks" json:"predicted_marks"`
	Risk           string  `csv:"Risk" json:"risk"`
	Grade          string  `csv:"Grade" json:"grade"`
}

// Log stores prediction records.
type Log interface {
	Append(r Record) error
	ReadAll() ([]Record, error)
}

// WriteError reports a failed append. The prediction that triggered it is
// still valid.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to append history to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// CSVLog appends records to a CSV file. The header is written together
// with the first row, only when the file is empty.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

// NewCSVLog creates a log backed by path.
func NewCSVLog(path string) *CSVLog {
	if path == "" {
		path = DefaultPath
	}
	return &CSVLog{path: path}
}

// Path returns the backing file.
func (l *CSVLog) Path() string {
	return l.path
}

// Append writes one record in a single write call.
func (l *CSVLog) Append(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.append(r); err != nil {
		return &WriteError{Path: l.path, Err: err}
	}
	return nil
}

func (l *CSVLog) append(r Record) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	rows := []Record{r}
	var data []byte
	if stat.Size() == 0 {
		data, err = gocsv.MarshalBytes(&rows)
	} else {
		var buf bytes.Buffer
		err = gocsv.MarshalWithoutHeaders(&rows, &buf)
		data = buf.Bytes()
	}
	if err != nil {
		file.Close()
		return err
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadAll returns every record in append order. A missing log is empty.
func (l *CSVLog) ReadAll() ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	records := []Record{}
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse history %s: %w", l.path, err)
	}
	return records, nil
}

// Discard is a Log that keeps nothing.
type Discard struct{}

// Append drops the record.
func (Discard) Append(Record) error { return nil }

// ReadAll returns no records.
func (Discard) ReadAll() ([]Record, error) { return []Record{}, nil }
