// Package replay holds replacement file contents for untrusted libraries of an execution.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReplacementRegistry = (*Registry)(nil)

type target struct {
	executionID string
	library     string
}

// Registry implements ports.ReplacementRegistry in memory.
type Registry struct {
	mu      sync.Mutex
	pending map[target]map[string][]byte
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[target]map[string][]byte)}
}

// Register records content for relPath inside library. A later registration of the same path wins.
func (r *Registry) Register(executionID, library, relPath string, content []byte) error {
	clean, err := cleanRelPath(relPath)
	if err != nil {
		return zerr.With(err, "library", library)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := target{executionID: executionID, library: library}
	files, ok := r.pending[key]
	if !ok {
		files = make(map[string][]byte)
		r.pending[key] = files
	}
	files[clean] = slices.Clone(content)
	return nil
}

// Apply overwrites existing regular files of library inside targetDir with the pending replacements.
// Paths that match no regular file are returned as unmatched and left alone: nothing is created
// and symlinks are not followed. Applied replacements are consumed. Both lists are sorted.
func (r *Registry) Apply(executionID, library, targetDir string) (applied, unmatched []string, err error) {
	key := target{executionID: executionID, library: library}

	r.mu.Lock()
	files := r.pending[key]
	delete(r.pending, key)
	r.mu.Unlock()

	if len(files) == 0 {
		return nil, nil, nil
	}

	paths := make([]string, 0, len(files))
	for rel := range files {
		paths = append(paths, rel)
	}
	slices.Sort(paths)

	root, err := os.OpenRoot(targetDir)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to apply replacement"), "path", targetDir)
	}
	defer func() { _ = root.Close() }()

	for _, rel := range paths {
		name := filepath.FromSlash(rel)
		info, err := root.Lstat(name)
		if err != nil || !info.Mode().IsRegular() {
			unmatched = append(unmatched, rel)
			continue
		}
		if err := overwrite(root, name, files[rel]); err != nil {
			return nil, nil, zerr.With(zerr.Wrap(err, "failed to apply replacement"), "path", filepath.Join(targetDir, name))
		}
		applied = append(applied, rel)
	}
	return applied, unmatched, nil
}

func overwrite(root *os.Root, name string, content []byte) error {
	f, err := root.OpenFile(name, os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return err
	}
	_, writeErr := f.Write(content)
	return errors.Join(writeErr, f.Close())
}

// Parse splits a "library:path=file" argument and reads the replacement content from file.
func Parse(arg string, readFile func(string) ([]byte, error)) (library, relPath string, content []byte, err error) {
	lib, rest, ok := strings.Cut(arg, ":")
	if !ok || lib == "" {
		return "", "", nil, invalid(arg)
	}
	rel, file, ok := strings.Cut(rest, "=")
	if !ok || rel == "" || file == "" {
		return "", "", nil, invalid(arg)
	}
	data, err := readFile(file)
	if err != nil {
		return "", "", nil, zerr.With(fmt.Errorf("%w %q: %w", domain.ErrInvalidReplacement, arg, err), "file", file)
	}
	return lib, rel, data, nil
}

func cleanRelPath(rel string) (string, error) {
	rel = filepath.ToSlash(rel)
	clean := path.Clean(rel)
	if rel == "" || path.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", invalid(rel)
	}
	return clean, nil
}

func invalid(arg string) error {
	return zerr.With(fmt.Errorf("%w %q", domain.ErrInvalidReplacement, arg), "replacement", arg)
}
