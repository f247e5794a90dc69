package history

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func record(marks float64) Record {
	return Record{
		Attendance:     80,
		StudyHours:     3,
		InternalMarks:  22,
		PredictedMarks: marks,
		Risk:           "LOW",
		Grade:          "B",
	}
}

func TestCSVLog_AppendReadAll(t *testing.T) {
	log := NewCSVLog(filepath.Join(t.TempDir(), "history", "student_history.csv"))

	for _, m := range []float64{58.25, 61.5, 70} {
		if err := log.Append(record(m)); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	records, err := log.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0] != record(58.25) || records[2].PredictedMarks != 70 {
		t.Errorf("unexpected records: %+v", records)
	}

	data, _ := os.ReadFile(log.Path())
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "Attendance,StudyHours,InternalMarks,PredictedMarks,Risk,Grade" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 4 {
		t.Errorf("expected header plus 3 rows, got %d lines", len(lines))
	}
}

func TestCSVLog_ContinuesAfterRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.csv")

	if err := NewCSVLog(path).Append(record(50)); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	// A new instance must not repeat the header.
	reopened := NewCSVLog(path)
	if err := reopened.Append(record(55)); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "PredictedMarks"); n != 1 {
		t.Errorf("expected exactly one header, found %d", n)
	}

	records, err := reopened.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(records) != 2 || records[1].PredictedMarks != 55 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestCSVLog_ConcurrentAppends(t *testing.T) {
	log := NewCSVLog(filepath.Join(t.TempDir(), "h.csv"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := log.Append(record(float64(i))); err != nil {
				t.Errorf("Append error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	records, err := log.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(records) != 20 {
		t.Errorf("expected 20 records, got %d", len(records))
	}
}

func TestCSVLog_ReadAllMissing(t *testing.T) {
	log := NewCSVLog(filepath.Join(t.TempDir(), "missing.csv"))

	records, err := log.ReadAll()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty slice, got %v", records)
	}
}

func TestCSVLog_WriteError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the open fail.
	path := filepath.Join(dir, "taken")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err := NewCSVLog(path).Append(record(1))
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if we.Path != path {
		t.Errorf("expected path %s, got %s", path, we.Path)
	}
}

func TestDiscard(t *testing.T) {
	var log Log = Discard{}
	if err := log.Append(record(1)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	records, _ := log.ReadAll()
	if len(records) != 0 {
		t.Errorf("expected nothing kept, got %d", len(records))
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{record(50), record(60), record(70), record(80)}

	trend, err := Summarize(records)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if trend.Count != 4 || trend.Mean != 65 || trend.Median != 65 {
		t.Errorf("unexpected center: %+v", trend)
	}
	if trend.Min != 50 || trend.Max != 80 || trend.Latest != 80 || trend.Change != 30 {
		t.Errorf("unexpected range: %+v", trend)
	}
	// Population std of {50,60,70,80} = sqrt(125)
	if math.Abs(trend.StdDev-math.Sqrt(125)) > 1e-9 {
		t.Errorf("expected std %v, got %v", math.Sqrt(125), trend.StdDev)
	}
	if len(trend.Series) != 4 || trend.Series[0] != 50 {
		t.Errorf("unexpected series %v", trend.Series)
	}
}

func TestSummarize_Empty(t *testing.T) {
	trend, err := Summarize(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trend.Count != 0 || trend.Mean != 0 {
		t.Errorf("expected zero trend, got %+v", trend)
	}
}
