package cachefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.trai.ch/shelf/internal/adapters/fs"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheEntry = (*Entry)(nil)

// Entry is one cached library tree stored below <root>/<key>.
type Entry struct {
	fs    billy.Filesystem
	local billy.Filesystem
	key   string
	now   func() time.Time

	deleted bool
}

// Key returns the cache key of the entry.
func (e *Entry) Key() string {
	return e.key
}

func (e *Entry) path(elem ...string) string {
	return e.fs.Join(append([]string{e.key}, elem...)...)
}

// IsFresh reports whether the freshness marker is younger than ttl.
// A negative ttl accepts any marker.
func (e *Entry) IsFresh(ttl time.Duration) (bool, error) {
	marker, ok, err := readTimestamp(e.fs, e.path(domain.EntryTimestampFile))
	if err != nil || !ok {
		return false, err
	}
	if ttl < 0 {
		return true, nil
	}
	return e.now().Sub(marker) < ttl, nil
}

// CopyTo copies the cached data into dst on the local filesystem.
func (e *Entry) CopyTo(dst string) error {
	data := e.path(domain.EntryDataDirName)
	info, err := e.fs.Stat(data)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return zerr.With(fmt.Errorf("%w: %s", domain.ErrEntryDataMissing, e.key), "key", e.key)
	}
	if err != nil {
		return ioErr(err, e.key)
	}
	return fs.CopyTree(e.fs, data, e.local, dst)
}

// CopyFrom replaces the cached data with the tree at src.
// The freshness marker is removed first and only rewritten once the copy completed.
func (e *Entry) CopyFrom(src string) error {
	if err := e.fs.MkdirAll(e.key, domain.DirPerm); err != nil {
		return ioErr(err, e.key)
	}
	if err := removeIfExists(e.fs, e.path(domain.EntryTimestampFile)); err != nil {
		return ioErr(err, e.key)
	}
	data := e.path(domain.EntryDataDirName)
	if err := util.RemoveAll(e.fs, data); err != nil {
		return ioErr(err, e.key)
	}
	if err := fs.CopyTree(e.local, src, e.fs, data); err != nil {
		return err
	}
	if err := writeTimestamp(e.fs, e.path(domain.EntryTimestampFile), e.now()); err != nil {
		return ioErr(err, e.key)
	}
	return nil
}

// Delete removes the data directory, then the rest of the entry.
func (e *Entry) Delete() error {
	if err := util.RemoveAll(e.fs, e.path(domain.EntryDataDirName)); err != nil {
		return ioErr(err, e.key)
	}
	if err := util.RemoveAll(e.fs, e.key); err != nil {
		return ioErr(err, e.key)
	}
	e.deleted = true
	return nil
}

// LastAccess returns the time of the last successful read or write.
func (e *Entry) LastAccess() (time.Time, bool, error) {
	return readTimestamp(e.fs, e.path(domain.EntryLastAccessFile))
}

// Populated reports whether the entry holds a freshness marker.
func (e *Entry) Populated() (time.Time, bool, error) {
	return readTimestamp(e.fs, e.path(domain.EntryTimestampFile))
}

// touch records an access. A deleted entry is not recreated.
func (e *Entry) touch() error {
	if e.deleted {
		return nil
	}
	return writeTimestamp(e.fs, e.path(domain.EntryLastAccessFile), e.now())
}

func readTimestamp(bfs billy.Filesystem, path string) (time.Time, bool, error) {
	data, err := util.ReadFile(bfs, path)
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, ioErr(err, path)
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(data)))
	if err == nil {
		return t, true, nil
	}

	// An unreadable marker still tells when it was last written.
	info, statErr := bfs.Stat(path)
	if statErr != nil {
		return time.Time{}, false, zerr.With(fmt.Errorf("%w: malformed marker: %w", domain.ErrCacheIO, err), "path", path)
	}
	return info.ModTime(), true, nil
}

// writeTimestamp publishes the marker with a rename, so concurrent writers replace it whole.
func writeTimestamp(bfs billy.Filesystem, path string, t time.Time) error {
	tmp, err := bfs.TempFile(filepath.Dir(path), ".marker-")
	if err != nil {
		return err
	}

	_, writeErr := tmp.Write([]byte(t.UTC().Format(time.RFC3339Nano) + "\n"))
	if err := errors.Join(writeErr, tmp.Close()); err != nil {
		_ = bfs.Remove(tmp.Name())
		return err
	}

	if err := bfs.Rename(tmp.Name(), path); err != nil {
		_ = bfs.Remove(tmp.Name())
		return err
	}
	return nil
}

func removeIfExists(bfs billy.Basic, path string) error {
	if err := bfs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func ioErr(err error, key string) error {
	return zerr.With(fmt.Errorf("%w: %w", domain.ErrCacheIO, err), "key", key)
}
