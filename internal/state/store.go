package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/lightfix/internal/fsops"
)

// RunStore provides an interface for persisting run records.
type RunStore interface {
	// LoadRun loads the run record for the given config ID.
	// Returns os.ErrNotExist if no run was recorded.
	LoadRun(id string) (*RunRecord, error)

	// SaveRun saves the run record atomically.
	SaveRun(id string, rec *RunRecord) error
}

// FileStateStore implements RunStore using JSON files on disk.
type FileStateStore struct {
	fs  fsops.FS
	dir string
}

// NewFileStateStore creates a new FileStateStore rooted at dir.
func NewFileStateStore(fs fsops.FS, dir string) *FileStateStore {
	return &FileStateStore{
		fs:  fs,
		dir: dir,
	}
}

// LoadRun loads the run record for the given config ID.
func (s *FileStateStore) LoadRun(id string) (*RunRecord, error) {
	path := filepath.Join(s.dir, id+".json")

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
	}

	return &rec, nil
}

// SaveRun saves the run record atomically.
func (s *FileStateStore) SaveRun(id string, rec *RunRecord) error {
	path := filepath.Join(s.dir, id+".json")

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}

	return nil
}
