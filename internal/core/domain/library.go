package domain

import (
	"fmt"
	"path"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

const (
	// SourceTypeGit retrieves a library by cloning a git repository at the requested ref.
	SourceTypeGit = "git"

	// SourceTypeDir retrieves a library by copying a local directory.
	SourceTypeDir = "dir"
)

// LibrarySource describes the retrieval strategy of a library.
type LibrarySource struct {
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Description returns a stable, human-readable description of the source.
func (s LibrarySource) Description() string {
	switch {
	case s.URL != "" && s.Path != "":
		return s.Type + ":" + s.URL + "#" + s.Path
	case s.URL != "":
		return s.Type + ":" + s.URL
	default:
		return s.Type + ":" + s.Path
	}
}

// CachingPolicy controls whether and how long retrieved trees are cached.
type CachingPolicy struct {
	// RefreshInterval is the freshness TTL. Zero or negative means entries never expire.
	RefreshInterval time.Duration
	// ExcludedVersions are exact versions or path.Match patterns that bypass the cache.
	ExcludedVersions []string
	// Salt is mixed into the cache key. Empty means the source description is used.
	Salt string
}

// TTL returns the freshness window of the policy, -1 meaning no expiry.
func (p *CachingPolicy) TTL() time.Duration {
	if p.RefreshInterval <= 0 {
		return -1
	}
	return p.RefreshInterval
}

// Excludes reports whether version matches one of the excluded version patterns.
func (p *CachingPolicy) Excludes(version string) bool {
	for _, pattern := range p.ExcludedVersions {
		if pattern == version {
			return true
		}
		if ok, err := path.Match(pattern, version); err == nil && ok {
			return true
		}
	}
	return false
}

// LibraryConfiguration is a library made visible by a resolver.
type LibraryConfiguration struct {
	Name                 string
	Source               LibrarySource
	DefaultVersion       string
	Implicit             bool
	AllowVersionOverride bool
	IncludeInChangesets  bool
	Caching              *CachingPolicy
}

// Validate checks the invariants of a single configuration.
func (c *LibraryConfiguration) Validate() error {
	if c.Name == "" || strings.Contains(c.Name, "@") {
		return zerr.With(fmt.Errorf("%w %q", ErrInvalidLibraryName, c.Name), "library", c.Name)
	}
	if c.Implicit && c.DefaultVersion == "" {
		return NewLibraryError(ErrImplicitWithoutDefault, c.Name)
	}
	if c.Source.Type != SourceTypeGit && c.Source.Type != SourceTypeDir {
		return zerr.With(NewLibraryError(ErrUnknownSourceType, c.Name), "type", c.Source.Type)
	}
	if c.Caching != nil {
		for _, pattern := range c.Caching.ExcludedVersions {
			if _, err := path.Match(pattern, ""); err != nil {
				return zerr.With(NewLibraryError(ErrInvalidExclusionPattern, c.Name), "pattern", pattern)
			}
		}
	}
	return nil
}

// ValidateScope checks a set of configurations that share one scope.
func ValidateScope(configs []LibraryConfiguration) error {
	seen := make(map[string]struct{}, len(configs))
	for i := range configs {
		if err := configs[i].Validate(); err != nil {
			return err
		}
		if _, ok := seen[configs[i].Name]; ok {
			return NewLibraryError(ErrDuplicateLibrary, configs[i].Name)
		}
		seen[configs[i].Name] = struct{}{}
	}
	return nil
}

// ResolvedLibrary is a configuration claimed by a resolver together with its negotiated version.
type ResolvedLibrary struct {
	Config        LibraryConfiguration
	Version       string
	Trusted       bool
	Resolver      string
	DirectoryName string
}

// LibraryRecord is the immutable outcome of retrieving one library for an execution.
type LibraryRecord struct {
	Name             string   `json:"name"`
	Version          string   `json:"version"`
	Trusted          bool     `json:"trusted"`
	IncludeChangelog bool     `json:"includeChangelog"`
	Source           string   `json:"source"`
	Variables        []string `json:"variables"`
	DirectoryName    string   `json:"directoryName"`
	ContentHash      string   `json:"contentHash,omitempty"`
}

// JobContext identifies the job requesting libraries.
type JobContext struct {
	// FullName is the slash-separated path of the job, e.g. "team/app/build".
	FullName string
	// Libraries are ad hoc configurations declared by the job itself.
	Libraries []LibraryConfiguration
}

// Folders returns the folders enclosing the job, nearest first.
func (j JobContext) Folders() []string {
	name := strings.Trim(j.FullName, "/")
	var folders []string
	for {
		idx := strings.LastIndex(name, "/")
		if idx < 0 {
			return folders
		}
		name = name[:idx]
		folders = append(folders, name)
	}
}

// LoadResult is what a consumer receives after loading libraries for an execution.
type LoadResult struct {
	ExecutionID string
	Libraries   []LibraryRecord
	Classpath   []string
	// Globals maps each library-provided variable to the library providing it.
	Globals map[string]string
}

// NewLibraryError builds a user-facing error naming the library while keeping sentinel matching intact.
func NewLibraryError(sentinel error, name string) error {
	return zerr.With(fmt.Errorf("%w for library %s", sentinel, name), "library", name)
}
