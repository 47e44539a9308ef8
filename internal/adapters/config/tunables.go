package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

// LoadTunables reads the SHELF_CACHE_* overrides through getenv on top of the defaults.
func LoadTunables(getenv func(string) string) (domain.CacheTunables, error) {
	t := domain.DefaultCacheTunables()

	ints := []struct {
		env    string
		target *int
	}{
		{domain.EnvReadAttempts, &t.ReadAttempts},
		{domain.EnvDrainAttempts, &t.DrainAttempts},
	}
	for _, f := range ints {
		raw := strings.TrimSpace(getenv(f.env))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return t, tunableErr(f.env, raw, err)
		}
		*f.target = v
	}

	durations := []struct {
		env    string
		target *time.Duration
	}{
		{domain.EnvReadSleep, &t.ReadSleep},
		{domain.EnvDrainSleep, &t.DrainSleep},
		{domain.EnvStaleLockAge, &t.StaleLockAge},
		{domain.EnvCleanupPeriod, &t.CleanupPeriod},
		{domain.EnvCacheRetention, &t.Retention},
	}
	for _, f := range durations {
		raw := strings.TrimSpace(getenv(f.env))
		if raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v < 0 {
			return t, tunableErr(f.env, raw, err)
		}
		*f.target = v
	}

	return t, nil
}

// LoadSettings combines the environment with the optional configuration file.
// The environment wins over cache.root from the file.
func LoadSettings(getenv func(string) string, cfg *domain.Config) (*domain.Settings, error) {
	tunables, err := LoadTunables(getenv)
	if err != nil {
		return nil, err
	}

	home := getenv(domain.HomeEnv)
	if home == "" {
		home = domain.DefaultHome()
	}

	cacheRoot := domain.CachePath(home)
	if cfg != nil && cfg.CacheRoot != "" && getenv(domain.HomeEnv) == "" {
		cacheRoot = cfg.CacheRoot
	}

	return &domain.Settings{
		Home:      home,
		CacheRoot: cacheRoot,
		Tunables:  tunables,
	}, nil
}

func tunableErr(env, raw string, cause error) error {
	err := fmt.Errorf("%w %s=%q", domain.ErrInvalidTunable, env, raw)
	if cause != nil {
		err = fmt.Errorf("%w: %w", err, cause)
	}
	return zerr.With(err, "env", env)
}
