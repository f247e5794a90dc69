package artifact

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/indhiran08-coder/student-performance-ai/internal/model"
	"github.com/indhiran08-coder/student-performance-ai/internal/scaler"
)

const (
	DefaultModelFile  = "best_model.bin"
	DefaultScalerFile = "scaler.bin"
)

// modelBlob is the on-disk layout of the model file.
type modelBlob struct {
	Meta  Metadata
	Model model.Snapshot
}

// scalerBlob is the on-disk layout of the scaler file. RunID must match the
// model file's metadata.
type scalerBlob struct {
	RunID  uuid.UUID
	Scaler *scaler.Scaler
}

// Store reads and writes the two artifact blobs in one directory.
type Store struct {
	dir        string
	modelFile  string
	scalerFile string
	logger     *slog.Logger

	mu sync.Mutex
}

// NewStore creates a new Store. Empty file names fall back to the defaults.
func NewStore(dir, modelFile, scalerFile string, logger *slog.Logger) *Store {
	if modelFile == "" {
		modelFile = DefaultModelFile
	}
	if scalerFile == "" {
		scalerFile = DefaultScalerFile
	}
	return &Store{
		dir:        dir,
		modelFile:  modelFile,
		scalerFile: scalerFile,
		logger:     logger,
	}
}

// ModelPath returns the path of the model blob.
func (s *Store) ModelPath() string {
	return filepath.Join(s.dir, s.modelFile)
}

// ScalerPath returns the path of the scaler blob.
func (s *Store) ScalerPath() string {
	return filepath.Join(s.dir, s.scalerFile)
}

// Save writes both blobs. Each file is replaced atomically.
func (s *Store) Save(a *Artifact) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid artifact: %w", err)
	}

	snap, err := model.Capture(a.Model)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	if err := writeAtomic(s.ScalerPath(), func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(scalerBlob{RunID: a.Meta.RunID, Scaler: a.Scaler})
	}); err != nil {
		return fmt.Errorf("failed to save scaler: %w", err)
	}

	if err := writeAtomic(s.ModelPath(), func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(modelBlob{Meta: a.Meta, Model: snap})
	}); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	s.logger.Debug("saved artifact", "model", s.ModelPath(), "scaler", s.ScalerPath())
	return nil
}

// Load reads and validates both blobs. There is no fallback: a missing
// file yields ErrArtifactMissing, and anything unreadable or a scaler from
// a different run yields ErrArtifactCorrupt.
func (s *Store) Load() (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blob modelBlob
	if err := readGob(s.ModelPath(), &blob); err != nil {
		return nil, err
	}

	var sb scalerBlob
	if err := readGob(s.ScalerPath(), &sb); err != nil {
		return nil, err
	}
	if sb.RunID != blob.Meta.RunID {
		return nil, fmt.Errorf("%w: model is from run %s but scaler from run %s",
			ErrArtifactCorrupt, blob.Meta.RunID, sb.RunID)
	}
	if sb.Scaler == nil {
		return nil, fmt.Errorf("%w: %s: no scaler", ErrArtifactCorrupt, s.ScalerPath())
	}

	fitted, err := blob.Model.Restore()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, s.ModelPath(), err)
	}

	a := &Artifact{Model: fitted, Scaler: sb.Scaler, Meta: blob.Meta}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}

	s.logger.Debug("loaded artifact", "model", a.Meta.ModelName, "run_id", a.Meta.RunID)
	return a, nil
}

// Exists reports whether both blobs are present.
func (s *Store) Exists() bool {
	info := s.Info()
	return info.Model.Exists && info.Scaler.Exists
}

// FileInfo describes one stored blob.
type FileInfo struct {
	Exists    bool      `json:"exists"`
	Path      string    `json:"path"`
	Size      int64     `json:"size,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Info describes the stored artifact files.
type Info struct {
	Dir    string   `json:"dir"`
	Model  FileInfo `json:"model"`
	Scaler FileInfo `json:"scaler"`
}

// Info returns file information about the stored artifact.
func (s *Store) Info() Info {
	return Info{
		Dir:    s.dir,
		Model:  statFile(s.ModelPath()),
		Scaler: statFile(s.ScalerPath()),
	}
}

func statFile(path string) FileInfo {
	info := FileInfo{Path: path}
	st, err := os.Stat(path)
	if err != nil {
		return info
	}
	info.Exists = true
	info.Size = st.Size()
	info.UpdatedAt = st.ModTime()
	return info
}

func readGob(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrArtifactCorrupt, path, err)
	}
	return nil
}

func writeAtomic(path string, write func(io.Writer) error) error {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := write(file); err != nil {
		file.Close()
		os.Remove(tempPath)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
