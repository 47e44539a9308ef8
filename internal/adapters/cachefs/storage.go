// Package cachefs implements the shared library cache on a directory tree.
//
// Every entry lives in <root>/<key>. Writers hold <key>/write.lock, created exclusively,
// and each reader holds a uniquely named marker in <key>/readLocks/. The markers are the
// only coordination state, so independent processes sharing root cooperate and a crashed
// participant never holds a lock beyond the stale lock age.
package cachefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"go.trai.ch/shelf/internal/adapters/fs"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStorage = (*Storage)(nil)

var keyPattern = regexp.MustCompile("^[0-9a-f]{64}$")

// Storage implements ports.CacheStorage with advisory marker files.
type Storage struct {
	fs       billy.Filesystem
	local    billy.Filesystem
	tunables domain.CacheTunables
	logger   ports.Logger
	metrics  ports.Metrics
	now      func() time.Time
	owner    string
}

// Option configures a Storage.
type Option func(*Storage)

// WithFilesystem replaces the filesystem holding the cache entries.
// If not provided, defaults to osfs.New(root).
func WithFilesystem(bfs billy.Filesystem) Option {
	return func(s *Storage) {
		s.fs = bfs
	}
}

// WithLocalFilesystem replaces the filesystem that CopyTo and CopyFrom paths refer to.
// If not provided, defaults to the host filesystem.
func WithLocalFilesystem(bfs billy.Filesystem) Option {
	return func(s *Storage) {
		s.local = bfs
	}
}

// WithClock replaces the time source used for markers.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// WithMetrics records lock contention on m.
func WithMetrics(m ports.Metrics) Option {
	return func(s *Storage) {
		s.metrics = m
	}
}

// WithOwner overrides the owner written into lock markers.
func WithOwner(owner string) Option {
	return func(s *Storage) {
		s.owner = owner
	}
}

// New creates a Storage rooted at root.
func New(root string, tunables domain.CacheTunables, logger ports.Logger, opts ...Option) *Storage {
	s := &Storage{
		tunables: tunables,
		logger:   logger,
		now:      time.Now,
		owner:    domain.LockOwner(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = osfs.New(root)
	}
	if s.local == nil {
		s.local = fs.Local()
	}
	return s
}

// Entry returns the entry stored under key without taking any lock.
func (s *Storage) Entry(key string) *Entry {
	return &Entry{fs: s.fs, local: s.local, key: key, now: s.now}
}

// TryWrite runs action under the exclusive lock on key.
// The lock is taken with a single attempt. Readers already inside are given
// DrainAttempts polls to leave before the lock is released unexecuted.
func (s *Storage) TryWrite(ctx context.Context, key string, action ports.CacheAction) (bool, error) {
	return s.tryWrite(ctx, key, action, s.tunables.DrainAttempts, true)
}

// TryWriteNow runs action under the exclusive lock on key only if no writer and no reader is present.
// Unlike TryWrite it leaves the last-access marker untouched.
func (s *Storage) TryWriteNow(ctx context.Context, key string, action ports.CacheAction) (bool, error) {
	return s.tryWrite(ctx, key, action, 0, false)
}

func (s *Storage) tryWrite(
	ctx context.Context,
	key string,
	action ports.CacheAction,
	drainAttempts int,
	access bool,
) (bool, error) {
	lockPath := s.fs.Join(key, domain.WriteLockFile)

	acquired, err := s.acquire(key, lockPath, domain.LockExclusive)
	if err != nil {
		return false, err
	}
	if !acquired {
		s.observeUnavailable(domain.LockExclusive)
		return false, nil
	}
	defer s.release(lockPath)

	drained, err := s.drainReaders(ctx, key, drainAttempts)
	if err != nil {
		return false, err
	}
	if !drained {
		s.observeUnavailable(domain.LockExclusive)
		return false, nil
	}

	entry := s.Entry(key)
	if err := action(entry); err != nil {
		return true, err
	}
	if access {
		s.touch(entry)
	}
	return true, nil
}

// TryRead runs action under a shared lock on key.
// Up to ReadAttempts attempts are made, ReadSleep apart, to find the entry free of writers.
func (s *Storage) TryRead(ctx context.Context, key string, action ports.CacheAction) (bool, error) {
	attempts := max(s.tunables.ReadAttempts, 1)

	for attempt := range attempts {
		if attempt > 0 {
			if err := sleep(ctx, s.tunables.ReadSleep); err != nil {
				return false, err
			}
		}

		held, err := s.writeLocked(key)
		if err != nil {
			return false, err
		}
		if held {
			continue
		}

		marker := s.fs.Join(key, domain.ReadLocksDirName, uuid.NewString())
		acquired, err := s.acquire(key, marker, domain.LockShared)
		if err != nil {
			return false, err
		}
		if !acquired {
			continue
		}

		// A writer that locked between the check and the registration wins.
		held, err = s.writeLocked(key)
		if err != nil || held {
			s.release(marker)
			if err != nil {
				return false, err
			}
			continue
		}

		return true, s.runRead(key, marker, action)
	}

	s.observeUnavailable(domain.LockShared)
	return false, nil
}

func (s *Storage) runRead(key, marker string, action ports.CacheAction) error {
	defer s.release(marker)

	entry := s.Entry(key)
	if err := action(entry); err != nil {
		return err
	}
	s.touch(entry)
	return nil
}

// Keys lists the keys of all entries in the cache.
func (s *Storage) Keys() ([]string, error) {
	infos, err := s.fs.ReadDir("/")
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioErr(err, "")
	}

	keys := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() && keyPattern.MatchString(info.Name()) {
			keys = append(keys, info.Name())
		}
	}
	return keys, nil
}

// ForceDelete removes the entry under key without taking any lock.
func (s *Storage) ForceDelete(key string) error {
	if !keyPattern.MatchString(key) {
		return zerr.With(fmt.Errorf("%w: not a cache key", domain.ErrCacheIO), "key", key)
	}
	return s.Entry(key).Delete()
}

// Inspect describes the entry under key without taking any lock.
func (s *Storage) Inspect(key string) (domain.CacheEntryInfo, error) {
	info := domain.CacheEntryInfo{Key: key}
	entry := s.Entry(key)

	var err error
	if info.PopulatedAt, info.Populated, err = entry.Populated(); err != nil {
		return info, err
	}
	if info.LastAccess, info.Accessed, err = entry.LastAccess(); err != nil {
		return info, err
	}
	if info.WriteLocked, err = exists(s.fs, s.fs.Join(key, domain.WriteLockFile)); err != nil {
		return info, ioErr(err, key)
	}

	readers, err := s.fs.ReadDir(s.fs.Join(key, domain.ReadLocksDirName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return info, ioErr(err, key)
	}
	info.Readers = len(readers)

	err = util.Walk(s.fs, s.fs.Join(key, domain.EntryDataDirName), func(_ string, fi os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if fi.Mode().IsRegular() {
			info.Size += fi.Size()
		}
		return nil
	})
	if err != nil {
		return info, ioErr(err, key)
	}

	return info, nil
}

// acquire creates the marker at path exclusively. A stale marker in the way is removed once.
func (s *Storage) acquire(key, path string, mode domain.LockMode) (bool, error) {
	for range 2 {
		created, err := s.createMarker(key, path, mode)
		if err != nil || created {
			return created, err
		}
		if !s.removeIfStale(key, path) {
			return false, nil
		}
	}
	return false, nil
}

func (s *Storage) createMarker(key, path string, mode domain.LockMode) (bool, error) {
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, lockErr(err, path)
	}

	lock := domain.Lock{Key: key, Mode: mode, Owner: s.owner, AcquiredAt: s.now().UTC()}
	writeErr := json.NewEncoder(f).Encode(lock)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = s.fs.Remove(path)
		return false, lockErr(err, path)
	}
	return true, nil
}

// readMarker returns the lock recorded at path. ok is false once the marker is gone.
// A marker that cannot be decoded is dated by its modification time.
func (s *Storage) readMarker(path string) (lock domain.Lock, ok bool) {
	data, err := util.ReadFile(s.fs, path)
	if err != nil {
		return domain.Lock{}, false
	}
	if json.Unmarshal(data, &lock) == nil && !lock.AcquiredAt.IsZero() {
		return lock, true
	}
	info, err := s.fs.Stat(path)
	if err != nil {
		return domain.Lock{}, false
	}
	return domain.Lock{AcquiredAt: info.ModTime()}, true
}

// removeIfStale removes the marker at path when it is older than the stale lock age.
// It reports whether the path is now free.
func (s *Storage) removeIfStale(key, path string) bool {
	lock, ok := s.readMarker(path)
	if !ok {
		return true
	}
	if !lock.IsStale(s.now(), s.tunables.StaleLockAge) {
		return false
	}

	// Re-read so a marker replaced in the meantime by a live owner is kept.
	current, ok := s.readMarker(path)
	if !ok {
		return true
	}
	if current != lock {
		return false
	}
	if err := removeIfExists(s.fs, path); err != nil {
		s.logger.Error(zerr.With(lockErr(err, path), "key", key))
		return false
	}
	s.logger.Warn(fmt.Sprintf("removed abandoned %s lock on cache entry %s held by %s since %s",
		lock.Mode, key, ownerOrUnknown(lock.Owner), lock.AcquiredAt.Format(time.RFC3339)))
	return true
}

func (s *Storage) writeLocked(key string) (bool, error) {
	path := s.fs.Join(key, domain.WriteLockFile)
	held, err := exists(s.fs, path)
	if err != nil {
		return false, lockErr(err, path)
	}
	if held && s.removeIfStale(key, path) {
		return false, nil
	}
	return held, nil
}

// drainReaders polls the reader set until it is empty, at most attempts times after the first check.
func (s *Storage) drainReaders(ctx context.Context, key string, attempts int) (bool, error) {
	dir := s.fs.Join(key, domain.ReadLocksDirName)
	for attempt := 0; ; attempt++ {
		active, err := s.activeReaders(key, dir)
		if err != nil {
			return false, err
		}
		if active == 0 {
			return true, nil
		}
		if attempt >= attempts {
			return false, nil
		}
		if err := sleep(ctx, s.tunables.DrainSleep); err != nil {
			return false, err
		}
	}
}

func (s *Storage) activeReaders(key, dir string) (int, error) {
	infos, err := s.fs.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, lockErr(err, dir)
	}

	active := 0
	for _, info := range infos {
		if !s.removeIfStale(key, s.fs.Join(dir, info.Name())) {
			active++
		}
	}
	return active, nil
}

func (s *Storage) release(path string) {
	if err := removeIfExists(s.fs, path); err != nil {
		s.logger.Error(lockErr(err, path))
	}
}

func (s *Storage) touch(entry *Entry) {
	if err := entry.touch(); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to record access to cache entry %s: %v", entry.key, err))
	}
}

func (s *Storage) observeUnavailable(mode domain.LockMode) {
	if s.metrics != nil {
		s.metrics.ObserveLockUnavailable(string(mode))
	}
}

func exists(bfs billy.Basic, path string) (bool, error) {
	_, err := bfs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func ownerOrUnknown(owner string) string {
	if owner == "" {
		return "unknown owner"
	}
	return owner
}

func lockErr(err error, path string) error {
	return zerr.With(fmt.Errorf("%w: %w", domain.ErrLockIO, err), "path", path)
}
