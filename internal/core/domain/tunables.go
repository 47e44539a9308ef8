package domain

import "time"

// Environment variables overriding CacheTunables.
const (
	EnvReadAttempts   = "SHELF_CACHE_READ_ATTEMPTS"
	EnvReadSleep      = "SHELF_CACHE_READ_SLEEP"
	EnvDrainAttempts  = "SHELF_CACHE_DRAIN_ATTEMPTS"
	EnvDrainSleep     = "SHELF_CACHE_DRAIN_SLEEP"
	EnvStaleLockAge   = "SHELF_CACHE_STALE_LOCK_AGE"
	EnvCleanupPeriod  = "SHELF_CACHE_CLEANUP_PERIOD"
	EnvCacheRetention = "SHELF_CACHE_RETENTION"
)

// CacheTunables bounds every wait performed by the cache.
type CacheTunables struct {
	ReadAttempts  int
	ReadSleep     time.Duration
	DrainAttempts int
	DrainSleep    time.Duration
	StaleLockAge  time.Duration
	CleanupPeriod time.Duration
	Retention     time.Duration
}

// DefaultCacheTunables returns the documented defaults.
func DefaultCacheTunables() CacheTunables {
	return CacheTunables{
		ReadAttempts:  10,
		ReadSleep:     time.Second,
		DrainAttempts: 10,
		DrainSleep:    time.Second,
		StaleLockAge:  time.Hour,
		CleanupPeriod: 12 * time.Hour,
		Retention:     7 * 24 * time.Hour,
	}
}

// Settings are the process-wide locations and limits.
type Settings struct {
	Home      string
	CacheRoot string
	Tunables  CacheTunables
}

// CacheEntryInfo describes a cache entry without locking it.
type CacheEntryInfo struct {
	Key         string
	PopulatedAt time.Time
	Populated   bool
	LastAccess  time.Time
	Accessed    bool
	WriteLocked bool
	Readers     int
	Size        int64
}
