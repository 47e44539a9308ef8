package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	platformerrors "github.com/jmgilman/go/errors"
	"go.trai.ch/shelf/internal/adapters/fs"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
)

var _ ports.Fetcher = (*Dir)(nil)

// Dir copies a library from a local directory.
// The directory either holds one subdirectory per version or a single unversioned tree.
type Dir struct {
	root string
}

// NewDir creates a Dir fetcher reading from root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Fetch copies the tree of version into targetDir.
func (d *Dir) Fetch(ctx context.Context, name, version string, _ bool, targetDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := d.locate(version)
	if err != nil {
		return fetchErr(err, name, version)
	}

	if err := os.RemoveAll(targetDir); err != nil {
		return fetchErr(platformerrors.Wrap(err, platformerrors.CodeInternal, "failed to clear target"), name, version)
	}
	return fs.CopyDir(src, targetDir)
}

func (d *Dir) locate(version string) (string, error) {
	if filepath.IsLocal(version) {
		versioned := filepath.Join(d.root, version)
		if isDir(versioned) {
			return versioned, nil
		}
	}

	for _, layout := range []string{domain.SourcesDirName, domain.VariablesDirName} {
		if isDir(filepath.Join(d.root, layout)) {
			return d.root, nil
		}
	}

	if _, err := os.Stat(d.root); errors.Is(err, os.ErrNotExist) {
		return "", platformerrors.Wrap(err, platformerrors.CodeNotFound, "library directory not found")
	}
	return "", platformerrors.Newf(platformerrors.CodeNotFound, "version %s not found in %s", version, d.root)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
