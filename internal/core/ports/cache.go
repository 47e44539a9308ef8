package ports

import (
	"context"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

// CacheEntry is one cached library tree.
type CacheEntry interface {
	// Key returns the cache key of the entry.
	Key() string
	// IsFresh reports whether the entry was populated less than ttl ago.
	// A negative ttl means any populated entry is fresh.
	IsFresh(ttl time.Duration) (bool, error)
	// CopyTo copies the cached tree into dst.
	CopyTo(dst string) error
	// CopyFrom replaces the cached tree with the contents of src.
	CopyFrom(src string) error
	// Delete removes the entry.
	Delete() error
	// LastAccess returns when the entry was last read or written.
	// ok is false when the entry was never accessed.
	LastAccess() (t time.Time, ok bool, err error)
}

// CacheAction runs while the entry lock is held.
type CacheAction func(entry CacheEntry) error

// CacheStorage coordinates access to cache entries shared between processes.
// executed is false when the lock could not be obtained within the bounded wait.
type CacheStorage interface {
	// TryRead runs action under a shared lock on key.
	TryRead(ctx context.Context, key string, action CacheAction) (executed bool, err error)
	// TryWrite runs action under the exclusive lock on key once readers have drained.
	TryWrite(ctx context.Context, key string, action CacheAction) (executed bool, err error)
	// TryWriteNow runs action under the exclusive lock on key with a single attempt and no drain wait.
	TryWriteNow(ctx context.Context, key string, action CacheAction) (executed bool, err error)
	// Keys lists the keys of all existing entries.
	Keys() ([]string, error)
	// Inspect describes the entry under key without taking any lock.
	Inspect(key string) (domain.CacheEntryInfo, error)
	// ForceDelete removes an entry without taking any lock. It is unsafe under concurrent use.
	ForceDelete(key string) error
}
