package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCacheKey(t *testing.T) {
	key := domain.CacheKey("lib", "v1", "")

	assert.Len(t, key, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", key)
	assert.Equal(t, key, domain.CacheKey("lib", "v1", ""), "same inputs must give the same key")
	assert.NotEqual(t, key, domain.CacheKey("lib", "v2", ""))
	assert.NotEqual(t, key, domain.CacheKey("lib", "v1", "salt"))
	assert.NotEqual(t, domain.CacheKey("ab", "c", ""), domain.CacheKey("a", "bc", ""))
	assert.Len(t, domain.CacheKey("", "", ""), 64)
}

func TestCacheKey_NoCollisions(t *testing.T) {
	seen := make(map[string]string)
	names := []string{"stuff", "shared", "pipeline-utils", "a", ""}
	versions := []string{"v1", "v2", "main", "1.0.0", "feature/x", ""}
	for _, n := range names {
		for _, v := range versions {
			key := domain.CacheKey(n, v, "")
			id := n + "@" + v
			if prev, ok := seen[key]; ok {
				t.Fatalf("collision between %q and %q", prev, id)
			}
			seen[key] = id
		}
	}
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.Identifier
		wantErr bool
	}{
		{name: "name only", raw: "stuff", want: domain.Identifier{Name: "stuff"}},
		{name: "name and version", raw: "stuff@v1", want: domain.Identifier{Name: "stuff", Version: "v1"}},
		{name: "splits at first at", raw: "stuff@feature@x", want: domain.Identifier{Name: "stuff", Version: "feature@x"}},
		{name: "trims spaces", raw: "  stuff@v1 ", want: domain.Identifier{Name: "stuff", Version: "v1"}},
		{name: "empty", raw: "", wantErr: true},
		{name: "missing name", raw: "@v1", wantErr: true},
		{name: "dangling at", raw: "stuff@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseIdentifier(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentifier_String(t *testing.T) {
	assert.Equal(t, "stuff", domain.Identifier{Name: "stuff"}.String())
	assert.Equal(t, "stuff@v1", domain.Identifier{Name: "stuff", Version: "v1"}.String())
	assert.True(t, domain.Identifier{Name: "stuff", Version: "v1"}.HasVersion())
}

func TestCachingPolicy(t *testing.T) {
	t.Run("ttl", func(t *testing.T) {
		assert.Equal(t, time.Duration(-1), (&domain.CachingPolicy{}).TTL())
		assert.Equal(t, time.Duration(-1), (&domain.CachingPolicy{RefreshInterval: -time.Second}).TTL())
		assert.Equal(t, time.Minute, (&domain.CachingPolicy{RefreshInterval: time.Minute}).TTL())
	})

	t.Run("excludes", func(t *testing.T) {
		p := &domain.CachingPolicy{ExcludedVersions: []string{"main", "feature/*", "[bad"}}
		assert.True(t, p.Excludes("main"))
		assert.True(t, p.Excludes("feature/login"))
		assert.True(t, p.Excludes("[bad"))
		assert.False(t, p.Excludes("v1"))
		assert.False(t, p.Excludes("feature/a/b"))
	})
}

func TestLibraryConfiguration_Validate(t *testing.T) {
	git := domain.LibrarySource{Type: domain.SourceTypeGit, URL: "https://example.com/lib.git"}

	tests := []struct {
		name    string
		config  domain.LibraryConfiguration
		wantErr error
	}{
		{name: "valid", config: domain.LibraryConfiguration{Name: "stuff", Source: git}},
		{name: "empty name", config: domain.LibraryConfiguration{Source: git}, wantErr: domain.ErrInvalidLibraryName},
		{name: "name with at", config: domain.LibraryConfiguration{Name: "a@b", Source: git}, wantErr: domain.ErrInvalidLibraryName},
		{
			name:    "implicit without default",
			config:  domain.LibraryConfiguration{Name: "stuff", Source: git, Implicit: true},
			wantErr: domain.ErrImplicitWithoutDefault,
		},
		{
			name:    "unknown source",
			config:  domain.LibraryConfiguration{Name: "stuff", Source: domain.LibrarySource{Type: "svn"}},
			wantErr: domain.ErrUnknownSourceType,
		},
		{
			name: "bad exclusion pattern",
			config: domain.LibraryConfiguration{
				Name: "stuff", Source: git,
				Caching: &domain.CachingPolicy{ExcludedVersions: []string{"[bad"}},
			},
			wantErr: domain.ErrInvalidExclusionPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateScope_Duplicate(t *testing.T) {
	src := domain.LibrarySource{Type: domain.SourceTypeDir, Path: "/libs"}
	err := domain.ValidateScope([]domain.LibraryConfiguration{
		{Name: "stuff", Source: src},
		{Name: "stuff", Source: src},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateLibrary)
	assert.Equal(t, "duplicate library name in scope for library stuff", err.Error())
}

func TestNewLibraryError(t *testing.T) {
	err := domain.NewLibraryError(domain.ErrNoVersionSpecified, "stuff")

	assert.Equal(t, "no version specified for library stuff", err.Error())
	assert.ErrorIs(t, err, domain.ErrNoVersionSpecified)

	var z *zerr.Error
	require.ErrorAs(t, err, &z)
	assert.Equal(t, "stuff", z.Metadata()["library"])
}

func TestJobContext_Folders(t *testing.T) {
	assert.Equal(t, []string{"team/app", "team"}, domain.JobContext{FullName: "team/app/build"}.Folders())
	assert.Equal(t, []string{"team"}, domain.JobContext{FullName: "/team/build/"}.Folders())
	assert.Empty(t, domain.JobContext{FullName: "build"}.Folders())
}

func TestLock_IsStale(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lock := domain.Lock{AcquiredAt: now.Add(-2 * time.Hour)}

	assert.True(t, lock.IsStale(now, time.Hour))
	assert.False(t, lock.IsStale(now, 3*time.Hour))
	assert.False(t, lock.IsStale(now, 0))
	assert.False(t, (&domain.Lock{}).IsStale(now, time.Hour))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{name: "nil", err: nil, want: domain.KindInternal},
		{name: "no version", err: domain.NewLibraryError(domain.ErrNoVersionSpecified, "x"), want: domain.KindUserConfig},
		{name: "wrapped layout", err: zerr.Wrap(domain.ErrLibraryLayout, "load"), want: domain.KindUserConfig},
		{
			name: "retryable fetch",
			err:  fetchErr(platformerrors.CodeNetwork),
			want: domain.KindTransientFetch,
		},
		{name: "permanent fetch", err: fetchErr(platformerrors.CodeNotFound), want: domain.KindUserConfig},
		{name: "execution id", err: domain.ValidateExecutionID(".."), want: domain.KindUserConfig},
		{name: "cache io", err: zerr.Wrap(domain.ErrCacheIO, "write marker"), want: domain.KindCacheIO},
		{name: "other", err: errors.New("boom"), want: domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Classify(tt.err))
		})
	}
}

func fetchErr(code platformerrors.ErrorCode) error {
	cause := platformerrors.Wrap(errors.New("remote failure"), code, "clone repository")
	return fmt.Errorf("%w: %w", domain.ErrFetchFailed, cause)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "user_config", domain.KindUserConfig.String())
	assert.Equal(t, "transient_fetch", domain.KindTransientFetch.String())
	assert.Equal(t, "cache_io", domain.KindCacheIO.String())
	assert.Equal(t, "internal", domain.KindInternal.String())
}

func TestValidateExecutionID(t *testing.T) {
	t.Parallel()
	for _, id := range []string{"exec-1", "0b9c6f1e-6a1e-4f53-9d5e-3f1f2d7c8a90", "run.7"} {
		assert.NoError(t, domain.ValidateExecutionID(id), id)
	}
	for _, id := range []string{"", ".", "..", "../../x", "a/b", `a\b`, "/abs"} {
		assert.ErrorIs(t, domain.ValidateExecutionID(id), domain.ErrInvalidExecutionID, id)
	}
}

func TestLayout(t *testing.T) {
	t.Setenv(domain.HomeEnv, "/srv/shelf")
	assert.Equal(t, "/srv/shelf", domain.DefaultHome())
	assert.Equal(t, "/srv/shelf/cache", domain.CachePath("/srv/shelf"))
	assert.Equal(t, "/srv/shelf/jobs/exec-1", domain.JobPath("/srv/shelf", "exec-1"))
	assert.Equal(t, "/srv/shelf/jobs/exec-1/libs", domain.LibsPath(domain.JobPath("/srv/shelf", "exec-1")))
	assert.Equal(t, "/srv/shelf/secret.key", domain.SecretPath("/srv/shelf"))
}
