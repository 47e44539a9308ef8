// Package retrieval materializes resolved libraries into a job's library directory,
// going through the shared cache when the library's caching policy allows it.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// Orchestrator retrieves libraries through the cache protocol.
type Orchestrator struct {
	storage      ports.CacheStorage
	fetchers     ports.FetcherFactory
	hasher       ports.TreeHasher
	replacements ports.ReplacementRegistry
	metrics      ports.Metrics
	tracer       ports.Tracer
	logger       ports.Logger

	scriptExt string
	locks     *keyedMutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithScriptExtension sets the extension identifying variable scripts in vars/.
func WithScriptExtension(ext string) Option {
	return func(o *Orchestrator) {
		if ext != "" {
			o.scriptExt = ext
		}
	}
}

// New creates an Orchestrator.
func New(
	storage ports.CacheStorage,
	fetchers ports.FetcherFactory,
	hasher ports.TreeHasher,
	replacements ports.ReplacementRegistry,
	metrics ports.Metrics,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		storage:      storage,
		fetchers:     fetchers,
		hasher:       hasher,
		replacements: replacements,
		metrics:      metrics,
		tracer:       tracer,
		logger:       logger,
		scriptExt:    domain.DefaultScriptExtension,
		locks:        newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// With returns a copy of o with opts applied. The copy shares the per-directory locks of o.
func (o *Orchestrator) With(opts ...Option) *Orchestrator {
	clone := *o
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Retrieve materializes lib into libsDir/<DirectoryName> and describes the result.
// Replacements registered for executionID are applied to untrusted libraries.
func (o *Orchestrator) Retrieve(
	ctx context.Context,
	executionID string,
	lib domain.ResolvedLibrary,
	libsDir string,
) (*domain.LibraryRecord, error) {
	ctx, span := o.tracer.Start(ctx, "retrieve",
		ports.WithAttribute(ports.AttrLibrary, lib.Config.Name),
		ports.WithAttribute(ports.AttrVersion, lib.Version),
	)
	defer span.End()

	record, err := o.retrieve(ctx, span, executionID, lib, libsDir)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return record, nil
}

func (o *Orchestrator) retrieve(
	ctx context.Context,
	span ports.Span,
	executionID string,
	lib domain.ResolvedLibrary,
	libsDir string,
) (*domain.LibraryRecord, error) {
	unlock := o.locks.Lock(lib.DirectoryName)
	defer unlock()

	fetcher, err := o.fetchers.ForSource(lib.Config.Source)
	if err != nil {
		return nil, zerr.With(err, "library", lib.Config.Name)
	}

	target := filepath.Join(libsDir, lib.DirectoryName)
	outcome, err := o.materialize(ctx, fetcher, lib, target)
	if err != nil {
		return nil, err
	}
	o.metrics.ObserveRetrieval(outcome)
	span.SetAttribute(ports.AttrOutcome, string(outcome))

	o.writeNameFile(lib, target)

	if !lib.Trusted {
		applied, unmatched, err := o.replacements.Apply(executionID, lib.Config.Name, target)
		if err != nil {
			return nil, err
		}
		if len(applied) > 0 {
			o.logger.Info(fmt.Sprintf("replaced %s in library %s", strings.Join(applied, ", "), lib.Config.Name))
		}
		for _, rel := range unmatched {
			o.logger.Warn(fmt.Sprintf("replacement %s matches no file in library %s", rel, lib.Config.Name))
		}
	}

	variables, err := o.variables(lib.Config.Name, target)
	if err != nil {
		return nil, err
	}

	hash, err := o.hasher.TreeHash(target)
	if err != nil {
		return nil, zerr.With(err, "library", lib.Config.Name)
	}

	return &domain.LibraryRecord{
		Name:             lib.Config.Name,
		Version:          lib.Version,
		Trusted:          lib.Trusted,
		IncludeChangelog: lib.Config.IncludeInChangesets,
		Source:           lib.Config.Source.Description(),
		Variables:        variables,
		DirectoryName:    lib.DirectoryName,
		ContentHash:      hash,
	}, nil
}

// materialize fills target with the library tree and reports how it was obtained.
func (o *Orchestrator) materialize(
	ctx context.Context,
	fetcher ports.Fetcher,
	lib domain.ResolvedLibrary,
	target string,
) (ports.CacheOutcome, error) {
	policy := lib.Config.Caching
	if policy == nil || policy.Excludes(lib.Version) {
		return ports.OutcomeBypass, o.fetch(ctx, fetcher, lib, target)
	}

	salt := policy.Salt
	if salt == "" {
		salt = lib.Config.Source.Description()
	}
	key := domain.CacheKey(lib.Config.Name, lib.Version, salt)
	ttl := policy.TTL()

	hit, missing, err := o.readFresh(ctx, key, ttl, target)
	if err != nil {
		return "", err
	}
	if hit {
		return ports.OutcomeHit, nil
	}

	fetched := false
	executed, err := o.storage.TryWrite(ctx, key, func(entry ports.CacheEntry) error {
		fresh, err := entry.IsFresh(ttl)
		if err != nil {
			return err
		}
		if fresh && !missing {
			return nil
		}
		if err := o.fetch(ctx, fetcher, lib, target); err != nil {
			return err
		}
		fetched = true
		return entry.CopyFrom(target)
	})
	if err != nil {
		return "", err
	}
	if executed && fetched {
		return ports.OutcomeMiss, nil
	}

	// Another writer populated the entry, or the lock was contended.
	hit, _, err = o.readFresh(ctx, key, ttl, target)
	if err != nil {
		return "", err
	}
	if hit {
		return ports.OutcomeHit, nil
	}

	o.logger.Warn(fmt.Sprintf("cache for library %s@%s is busy, retrieving without cache", lib.Config.Name, lib.Version))
	if err := o.fetch(ctx, fetcher, lib, target); err != nil {
		return "", err
	}
	return ports.OutcomeFallback, nil
}

// readFresh copies a fresh entry under key into target.
// An entry whose data went missing behind its freshness marker counts as a miss and is reported.
func (o *Orchestrator) readFresh(
	ctx context.Context,
	key string,
	ttl time.Duration,
	target string,
) (hit, missing bool, err error) {
	executed, err := o.storage.TryRead(ctx, key, func(entry ports.CacheEntry) error {
		fresh, err := entry.IsFresh(ttl)
		if err != nil || !fresh {
			return err
		}
		if err := os.RemoveAll(target); err != nil {
			return pathErr(err, target)
		}
		if err := entry.CopyTo(target); err != nil {
			if errors.Is(err, domain.ErrEntryDataMissing) {
				missing = true
				return nil
			}
			return err
		}
		hit = true
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return executed && hit, missing, nil
}

// fetch retrieves the library directly into a clean target.
func (o *Orchestrator) fetch(ctx context.Context, fetcher ports.Fetcher, lib domain.ResolvedLibrary, target string) error {
	if err := os.RemoveAll(target); err != nil {
		return pathErr(err, target)
	}
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return pathErr(err, filepath.Dir(target))
	}
	return fetcher.Fetch(ctx, lib.Config.Name, lib.Version, lib.Config.IncludeInChangesets, target)
}

func (o *Orchestrator) writeNameFile(lib domain.ResolvedLibrary, target string) {
	path := target + domain.NameFileSuffix
	if err := os.WriteFile(path, []byte(lib.Config.Name+"\n"), domain.FilePerm); err != nil {
		o.logger.Warn(fmt.Sprintf("could not write %s: %v", path, err))
	}
}

// variables lists the global variables defined in the library's vars directory.
func (o *Orchestrator) variables(name, dir string) ([]string, error) {
	hasSources, hasVariables := layout(dir)
	if !hasSources && !hasVariables {
		return nil, zerr.With(domain.NewLibraryError(domain.ErrLibraryLayout, name), "path", dir)
	}
	if !hasVariables {
		return []string{}, nil
	}

	entries, err := os.ReadDir(filepath.Join(dir, domain.VariablesDirName))
	if err != nil {
		return nil, pathErr(err, dir)
	}

	variables := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), o.scriptExt) {
			continue
		}
		variables = append(variables, strings.TrimSuffix(entry.Name(), o.scriptExt))
	}
	slices.Sort(variables)
	return variables, nil
}

// Classpath returns the file URLs of the src and vars directories of a retrieved library.
func (o *Orchestrator) Classpath(record *domain.LibraryRecord, libsDir string) ([]string, error) {
	dir := filepath.Join(libsDir, record.DirectoryName)
	hasSources, hasVariables := layout(dir)
	if !hasSources && !hasVariables {
		return nil, zerr.With(domain.NewLibraryError(domain.ErrLibraryLayout, record.Name), "path", dir)
	}

	var urls []string
	if hasSources {
		urls = append(urls, fileURL(filepath.Join(dir, domain.SourcesDirName)))
	}
	if hasVariables {
		urls = append(urls, fileURL(filepath.Join(dir, domain.VariablesDirName)))
	}
	return urls, nil
}

func layout(dir string) (hasSources, hasVariables bool) {
	return isDir(filepath.Join(dir, domain.SourcesDirName)), isDir(filepath.Join(dir, domain.VariablesDirName))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileURL(dir string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(dir) + "/"}
	return u.String()
}

func pathErr(err error, path string) error {
	return zerr.With(fmt.Errorf("%w: %w", domain.ErrCopyFailed, err), "path", path)
}
