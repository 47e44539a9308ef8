// Package cleanup removes cache entries that have not been used for a while.
package cleanup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// Report summarises one sweep.
type Report struct {
	Scanned int
	Deleted int
	Skipped int
	Failed  int
}

// Sweeper deletes entries whose last access is older than the retention period.
// Busy entries are skipped and picked up by a later sweep.
type Sweeper struct {
	storage   ports.CacheStorage
	metrics   ports.Metrics
	logger    ports.Logger
	retention time.Duration
	now       func() time.Time
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		s.now = now
	}
}

// New creates a Sweeper. A non-positive retention keeps every entry.
func New(
	storage ports.CacheStorage,
	metrics ports.Metrics,
	logger ports.Logger,
	retention time.Duration,
	opts ...Option,
) *Sweeper {
	s := &Sweeper{
		storage:   storage,
		metrics:   metrics,
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sweep makes one pass over the cache.
// Errors on single entries are logged and counted; the pass continues with the next key.
func (s *Sweeper) Sweep(ctx context.Context) (Report, error) {
	var report Report

	keys, err := s.storage.Keys()
	if err != nil {
		return report, err
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		deleted := false
		executed, err := s.storage.TryWriteNow(ctx, key, func(entry ports.CacheEntry) error {
			expired, err := s.expired(entry)
			if err != nil || !expired {
				return err
			}
			if err := entry.Delete(); err != nil {
				return err
			}
			deleted = true
			return nil
		})

		switch {
		case err != nil:
			report.Failed++
			s.logger.Error(zerr.With(zerr.Wrap(err, "failed to clean up cache entry"), "key", key))
		case !executed:
			report.Skipped++
		case deleted:
			report.Deleted++
		}
	}

	s.metrics.ObserveSweep(report.Deleted)
	if report.Deleted > 0 {
		s.logger.Info(fmt.Sprintf("cache cleanup removed %d of %d entries", report.Deleted, report.Scanned))
	}

	return report, nil
}

// expired reports whether entry has outlived the retention period.
// Entries without a readable last-access marker are judged by their freshness marker.
func (s *Sweeper) expired(entry ports.CacheEntry) (bool, error) {
	if s.retention <= 0 {
		return false, nil
	}

	last, ok, err := entry.LastAccess()
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring last access of cache entry %s: %v", entry.Key(), err))
	} else if ok {
		return s.now().Sub(last) > s.retention, nil
	}

	fresh, err := entry.IsFresh(s.retention)
	if err != nil {
		return false, err
	}
	return !fresh, nil
}

// Run sweeps immediately and then once per period until ctx is done.
func (s *Sweeper) Run(ctx context.Context, period time.Duration) error {
	if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error(err)
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error(err)
			}
		}
	}
}

// Start runs the sweeper in the background every period.
//
// The returned stop function cancels the loop and blocks until it has exited.
// It is safe to call more than once.
func (s *Sweeper) Start(period time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Go(func() {
		_ = s.Run(ctx, period)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}
