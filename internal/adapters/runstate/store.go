// Package runstate persists the libraries retrieved for an execution.
package runstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RunStateStore = (*Store)(nil)

// document is the on-disk layout of libraries.json.
type document struct {
	Libraries []domain.LibraryRecord `json:"libraries"`
}

// Store implements ports.RunStateStore with one JSON file per job root.
type Store struct {
	mu    sync.RWMutex
	cache map[string][]domain.LibraryRecord
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{cache: make(map[string][]domain.LibraryRecord)}
}

// Path returns the state file of jobRoot.
func Path(jobRoot string) string {
	return filepath.Join(filepath.Clean(jobRoot), domain.RunStateFileName)
}

// Get retrieves the records stored for jobRoot.
func (s *Store) Get(jobRoot string) ([]domain.LibraryRecord, error) {
	path := Path(jobRoot)

	s.mu.RLock()
	records, ok := s.cache[path]
	s.mu.RUnlock()
	if ok {
		return slices.Clone(records), nil
	}

	//nolint:gosec // Path is cleaned and derived from the state root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, stateErr(domain.ErrRunStateReadFailed, err, path)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, stateErr(domain.ErrRunStateReadFailed, err, path)
	}

	s.mu.Lock()
	s.cache[path] = doc.Libraries
	s.mu.Unlock()

	return slices.Clone(doc.Libraries), nil
}

// Put stores records for jobRoot, replacing earlier state.
func (s *Store) Put(jobRoot string, records []domain.LibraryRecord) error {
	path := Path(jobRoot)
	if records == nil {
		records = []domain.LibraryRecord{}
	}

	data, err := json.MarshalIndent(document{Libraries: records}, "", "  ")
	if err != nil {
		return stateErr(domain.ErrRunStateWriteFailed, err, path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return stateErr(domain.ErrRunStateWriteFailed, err, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+domain.RunStateFileName+"-*")
	if err != nil {
		return stateErr(domain.ErrRunStateWriteFailed, err, path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // The staging file is gone after a successful rename

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return stateErr(domain.ErrRunStateWriteFailed, err, path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return stateErr(domain.ErrRunStateWriteFailed, err, path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return stateErr(domain.ErrRunStateWriteFailed, err, path)
	}

	s.cache[path] = slices.Clone(records)
	return nil
}

func stateErr(sentinel, err error, path string) error {
	return zerr.With(fmt.Errorf("%w: %w", sentinel, err), "path", path)
}
