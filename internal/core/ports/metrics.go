package ports

import "io"

// CacheOutcome labels how a retrieval was satisfied.
type CacheOutcome string

const (
	// OutcomeHit means the tree was copied from a fresh entry.
	OutcomeHit CacheOutcome = "hit"
	// OutcomeMiss means the tree was fetched and stored in the cache.
	OutcomeMiss CacheOutcome = "miss"
	// OutcomeFallback means the cache was contended and the tree was fetched directly.
	OutcomeFallback CacheOutcome = "fallback"
	// OutcomeBypass means caching did not apply to the library.
	OutcomeBypass CacheOutcome = "bypass"
)

// Metrics records cache activity.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveRetrieval counts a retrieval and how it was satisfied.
	ObserveRetrieval(outcome CacheOutcome)
	// ObserveLockUnavailable counts a lock that could not be obtained.
	ObserveLockUnavailable(mode string)
	// ObserveSweep counts one cleanup pass and the entries it deleted.
	ObserveSweep(deleted int)
	// SetCacheSize records the number of entries and bytes currently in the cache.
	SetCacheSize(entries int, bytes int64)
	// WriteText writes the current values in text exposition format.
	WriteText(w io.Writer) error
}
