// Package app implements the application layer for shelf.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/adapters/replay"
	"go.trai.ch/shelf/internal/adapters/telemetry"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/cleanup"
	"go.trai.ch/shelf/internal/engine/resolver"
	"go.trai.ch/shelf/internal/engine/retrieval"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	namer        ports.DirectoryNamer
	orchestrator *retrieval.Orchestrator
	sweeper      *cleanup.Sweeper
	storage      ports.CacheStorage
	store        ports.RunStateStore
	replacements ports.ReplacementRegistry
	metrics      ports.Metrics
	tracer       ports.Tracer
	logger       ports.Logger
	settings     *domain.Settings

	bridge        *telemetry.Bridge
	telemetryOnce sync.Once
	workDir       func() (string, error)
	readFile      func(string) ([]byte, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	namer ports.DirectoryNamer,
	orchestrator *retrieval.Orchestrator,
	sweeper *cleanup.Sweeper,
	storage ports.CacheStorage,
	store ports.RunStateStore,
	replacements ports.ReplacementRegistry,
	metrics ports.Metrics,
	tracer ports.Tracer,
	log ports.Logger,
	settings *domain.Settings,
) *App {
	return &App{
		configLoader: loader,
		namer:        namer,
		orchestrator: orchestrator,
		sweeper:      sweeper,
		storage:      storage,
		store:        store,
		replacements: replacements,
		metrics:      metrics,
		tracer:       tracer,
		logger:       log,
		settings:     settings,
		workDir:      os.Getwd,
		readFile:     os.ReadFile,
	}
}

// WithBridge routes finished spans to the logger through bridge.
func (a *App) WithBridge(bridge *telemetry.Bridge) *App {
	a.bridge = bridge
	return a
}

// WithWorkDir makes configuration discovery start at dir instead of the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = func() (string, error) { return dir, nil }
	return a
}

// Logger returns the application logger.
func (a *App) Logger() ports.Logger {
	return a.logger
}

// ResolveOptions configures library resolution.
type ResolveOptions struct {
	// Job is the slash-separated full name of the requesting job.
	Job string
	// Identifiers are the requested libraries, name[@version].
	Identifiers []string
	// LibrariesFile optionally declares ad hoc libraries for the job.
	LibrariesFile string
}

// LoadOptions configures a load.
type LoadOptions struct {
	ResolveOptions

	// ExecutionID identifies the execution. A new one is generated when empty.
	ExecutionID string
	// JobRoot overrides the execution's storage root.
	JobRoot string
	// Resume reuses the libraries stored by an earlier load of the same execution.
	Resume bool
	// Replacements are lib:path=file specifications applied to untrusted libraries.
	Replacements []string
	// Parallelism bounds the number of libraries retrieved at once. Zero means one per CPU.
	Parallelism int
}

// Resolve returns the libraries a load would retrieve, without retrieving them.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) ([]domain.ResolvedLibrary, error) {
	a.setupTelemetry()

	_, resolved, err := a.resolve(ctx, opts)
	return resolved, err
}

// Load resolves and retrieves libraries for an execution.
func (a *App) Load(ctx context.Context, opts LoadOptions) (*domain.LoadResult, error) {
	a.setupTelemetry()

	executionID := opts.ExecutionID
	if executionID == "" {
		if opts.Resume {
			return nil, domain.ErrMissingExecutionID
		}
		executionID = uuid.NewString()
	}
	if err := domain.ValidateExecutionID(executionID); err != nil {
		return nil, err
	}

	jobRoot := opts.JobRoot
	if jobRoot == "" {
		jobRoot = domain.JobPath(a.settings.Home, executionID)
	}
	libsDir := domain.LibsPath(jobRoot)

	if opts.Resume {
		records, err := a.store.Get(jobRoot)
		if err != nil {
			return nil, err
		}
		if records != nil {
			a.logger.Info(fmt.Sprintf("resuming execution %s with %d stored libraries", executionID, len(records)))
			return a.result(executionID, records, libsDir, a.orchestrator)
		}
	}

	for _, spec := range opts.Replacements {
		library, relPath, content, err := replay.Parse(spec, a.readFile)
		if err != nil {
			return nil, err
		}
		if err := a.replacements.Register(executionID, library, relPath, content); err != nil {
			return nil, err
		}
	}

	cfg, resolved, err := a.resolve(ctx, opts.ResolveOptions)
	if err != nil {
		return nil, err
	}

	orchestrator := a.orchestrator.With(retrieval.WithScriptExtension(cfg.ScriptExtension))
	records := make([]domain.LibraryRecord, len(resolved))

	g, gctx := errgroup.WithContext(ctx)
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g.SetLimit(limit)
	for i, lib := range resolved {
		g.Go(func() error {
			record, err := orchestrator.Retrieve(gctx, executionID, lib, libsDir)
			if err != nil {
				return zerr.With(err, "library", lib.Config.Name)
			}
			records[i] = *record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := a.store.Put(jobRoot, records); err != nil {
		return nil, err
	}

	return a.result(executionID, records, libsDir, orchestrator)
}

func (a *App) resolve(ctx context.Context, opts ResolveOptions) (*domain.Config, []domain.ResolvedLibrary, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	job := domain.JobContext{FullName: opts.Job}
	if opts.LibrariesFile != "" {
		libs, err := a.configLoader.LoadLibraries(opts.LibrariesFile)
		if err != nil {
			return nil, nil, err
		}
		job.Libraries = libs
	}

	chain := resolver.New(config.Providers(cfg), a.namer, a.logger, a.tracer)
	resolved, err := chain.Resolve(ctx, job, opts.Identifiers)
	if err != nil {
		return nil, nil, err
	}
	return cfg, resolved, nil
}

// loadConfig reads shelf.yaml. A missing file yields an empty configuration.
func (a *App) loadConfig() (*domain.Config, error) {
	cwd, err := a.workDir()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}

	cfg, err := a.configLoader.Load(cwd)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return &domain.Config{ScriptExtension: domain.DefaultScriptExtension}, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) result(
	executionID string,
	records []domain.LibraryRecord,
	libsDir string,
	orchestrator *retrieval.Orchestrator,
) (*domain.LoadResult, error) {
	result := &domain.LoadResult{
		ExecutionID: executionID,
		Libraries:   records,
		Globals:     make(map[string]string),
	}

	for i := range records {
		record := &records[i]
		urls, err := orchestrator.Classpath(record, libsDir)
		if err != nil {
			return nil, err
		}
		result.Classpath = append(result.Classpath, urls...)

		for _, variable := range record.Variables {
			if owner, ok := result.Globals[variable]; ok {
				a.logger.Warn(fmt.Sprintf("global variable %s of library %s ignored: already provided by library %s",
					variable, record.Name, owner))
				continue
			}
			result.Globals[variable] = record.Name
		}
	}

	return result, nil
}

// CacheList describes every entry of the shared cache.
func (a *App) CacheList(_ context.Context) ([]domain.CacheEntryInfo, error) {
	keys, err := a.storage.Keys()
	if err != nil {
		return nil, err
	}

	infos := make([]domain.CacheEntryInfo, 0, len(keys))
	for _, key := range keys {
		info, err := a.storage.Inspect(key)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ClearOptions selects the cache entries to remove.
type ClearOptions struct {
	// Name limits removal to one configured library. Version is required with it.
	Name    string
	Version string
}

// CacheClear force-deletes cache entries and returns how many were removed.
// It bypasses the cache locks and must not run concurrently with loads.
func (a *App) CacheClear(_ context.Context, opts ClearOptions) (int, error) {
	keys, err := a.storage.Keys()
	if err != nil {
		return 0, err
	}

	if opts.Name != "" {
		selected, err := a.keysFor(opts.Name, opts.Version)
		if err != nil {
			return 0, err
		}
		keys = intersect(keys, selected)
	}

	removed := 0
	for _, key := range keys {
		if err := a.storage.ForceDelete(key); err != nil {
			return removed, err
		}
		removed++
	}

	a.logger.Info(fmt.Sprintf("removed %d cache entries", removed))
	return removed, nil
}

// keysFor computes the cache keys every configured library called name would use at version.
func (a *App) keysFor(name, version string) (map[string]struct{}, error) {
	if version == "" {
		return nil, domain.NewLibraryError(domain.ErrNoVersionSpecified, name)
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	scopes := [][]domain.LibraryConfiguration{cfg.Global}
	for _, libs := range cfg.Folders {
		scopes = append(scopes, libs)
	}

	keys := make(map[string]struct{})
	found := false
	for _, libs := range scopes {
		for _, lib := range libs {
			if lib.Name != name {
				continue
			}
			found = true
			if lib.Caching == nil {
				continue
			}
			salt := lib.Caching.Salt
			if salt == "" {
				salt = lib.Source.Description()
			}
			keys[domain.CacheKey(name, version, salt)] = struct{}{}
		}
	}
	if !found {
		return nil, domain.NewLibraryError(domain.ErrLibraryNotFound, name)
	}
	return keys, nil
}

func intersect(keys []string, selected map[string]struct{}) []string {
	var out []string
	for _, key := range keys {
		if _, ok := selected[key]; ok {
			out = append(out, key)
		}
	}
	return out
}

// CacheSweep runs one cleanup pass.
func (a *App) CacheSweep(ctx context.Context) (cleanup.Report, error) {
	return a.sweeper.Sweep(ctx)
}

// CacheGC runs cleanup passes on the configured period until ctx is cancelled.
func (a *App) CacheGC(ctx context.Context) error {
	period := a.settings.Tunables.CleanupPeriod
	a.logger.Info(fmt.Sprintf("cleaning up %s every %s", a.settings.CacheRoot, period))

	err := a.sweeper.Run(ctx, period)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// CacheStats records the current cache size and writes all metrics to w.
func (a *App) CacheStats(ctx context.Context, w io.Writer) error {
	infos, err := a.CacheList(ctx)
	if err != nil {
		return err
	}

	var size int64
	for _, info := range infos {
		size += info.Size
	}
	a.metrics.SetCacheSize(len(infos), size)

	return a.metrics.WriteText(w)
}

// setupTelemetry installs a tracer provider forwarding finished spans to the bridge.
func (a *App) setupTelemetry() {
	if a.bridge == nil {
		return
	}
	a.telemetryOnce.Do(func() {
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(a.bridge),
		)
		otel.SetTracerProvider(tp)
	})
}
