package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/cachefs"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/adapters/fetcher"
	"go.trai.ch/shelf/internal/adapters/fs"
	"go.trai.ch/shelf/internal/adapters/metrics"
	"go.trai.ch/shelf/internal/adapters/replay"
	"go.trai.ch/shelf/internal/adapters/runstate"
	"go.trai.ch/shelf/internal/adapters/secret"
	"go.trai.ch/shelf/internal/adapters/telemetry"
	"go.trai.ch/shelf/internal/app"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports/mocks"
	"go.trai.ch/shelf/internal/engine/cleanup"
	"go.trai.ch/shelf/internal/engine/retrieval"
	"go.uber.org/mock/gomock"
)

const shelfYAML = `
global:
  libraries:
    - name: common
      defaultVersion: main
      implicit: true
      source:
        type: dir
        path: sources/common
folders:
  team:
    libraries:
      - name: stuff
        source:
          type: dir
          path: sources/stuff
        caching:
          refreshInterval: 1h
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

type fixture struct {
	workDir string
	home    string
	app     *app.App
	logger  *mocks.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		workDir: t.TempDir(),
		home:    t.TempDir(),
		logger:  mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	writeFile(t, filepath.Join(f.workDir, domain.ConfigFileName), shelfYAML)
	writeFile(t, filepath.Join(f.workDir, "sources", "common", "vars", "notify.groovy"), "def call() {}")
	writeFile(t, filepath.Join(f.workDir, "sources", "stuff", "v1", "vars", "hello.groovy"), "v1")
	writeFile(t, filepath.Join(f.workDir, "sources", "stuff", "v2", "vars", "hello.groovy"), "v2")
	writeFile(t, filepath.Join(f.workDir, "sources", "stuff", "v2", "src", "org", "Stuff.groovy"), "class Stuff {}")

	tunables := domain.DefaultCacheTunables()
	tunables.ReadSleep = time.Millisecond
	tunables.DrainSleep = time.Millisecond
	settings := &domain.Settings{Home: f.home, CacheRoot: domain.CachePath(f.home), Tunables: tunables}

	collector, err := metrics.NewCollector()
	require.NoError(t, err)
	storage := cachefs.New(settings.CacheRoot, tunables, f.logger, cachefs.WithMetrics(collector))
	replacements := replay.NewRegistry()
	tracer := telemetry.NewNoOpTracer()

	orchestrator := retrieval.New(
		storage,
		fetcher.NewRegistry(),
		fs.NewHasher(fs.NewWalker()),
		replacements,
		collector,
		tracer,
		f.logger,
	)
	sweeper := cleanup.New(storage, collector, f.logger, tunables.Retention)

	f.app = app.New(
		config.NewLoader(f.logger),
		secret.NewNamer(bytes.Repeat([]byte{7}, secret.KeySize)),
		orchestrator,
		sweeper,
		storage,
		runstate.NewStore(),
		replacements,
		collector,
		tracer,
		f.logger,
		settings,
	).WithWorkDir(f.workDir)
	return f
}

func (f *fixture) load(t *testing.T, opts app.LoadOptions) *domain.LoadResult {
	t.Helper()
	result, err := f.app.Load(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func loadOptions(executionID string, identifiers ...string) app.LoadOptions {
	return app.LoadOptions{
		ResolveOptions: app.ResolveOptions{Job: "team/app/build", Identifiers: identifiers},
		ExecutionID:    executionID,
	}
}

func TestApp_Load(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	result := f.load(t, loadOptions("exec-1", "stuff@v2"))

	assert.Equal(t, "exec-1", result.ExecutionID)
	require.Len(t, result.Libraries, 2)
	stuff, common := result.Libraries[0], result.Libraries[1]

	assert.Equal(t, "stuff", stuff.Name)
	assert.Equal(t, "v2", stuff.Version)
	assert.False(t, stuff.Trusted)
	assert.Equal(t, []string{"hello"}, stuff.Variables)

	assert.Equal(t, "common", common.Name)
	assert.Equal(t, "main", common.Version)
	assert.True(t, common.Trusted)

	libsDir := domain.LibsPath(domain.JobPath(f.home, "exec-1"))
	assert.Equal(t, []string{
		"file://" + filepath.Join(libsDir, stuff.DirectoryName, "src") + "/",
		"file://" + filepath.Join(libsDir, stuff.DirectoryName, "vars") + "/",
		"file://" + filepath.Join(libsDir, common.DirectoryName, "vars") + "/",
	}, result.Classpath)
	assert.Equal(t, map[string]string{"hello": "stuff", "notify": "common"}, result.Globals)

	stored, err := runstate.NewStore().Get(domain.JobPath(f.home, "exec-1"))
	require.NoError(t, err)
	assert.Equal(t, result.Libraries, stored)

	entries, err := f.app.CacheList(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Populated)
}

func TestApp_LoadGeneratesExecutionID(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	result := f.load(t, loadOptions("", "stuff@v1"))
	assert.NotEmpty(t, result.ExecutionID)
	assert.DirExists(t, domain.LibsPath(domain.JobPath(f.home, result.ExecutionID)))
}

func TestApp_LoadResume(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	jobRoot := filepath.Join(t.TempDir(), "job")

	opts := loadOptions("exec-1", "stuff@v1")
	opts.JobRoot = jobRoot
	first := f.load(t, opts)

	// Sources are gone, so a resumed load must not retrieve again.
	require.NoError(t, os.RemoveAll(filepath.Join(f.workDir, "sources")))

	opts.Resume = true
	resumed := f.load(t, opts)
	assert.Equal(t, first.Libraries, resumed.Libraries)
	assert.Equal(t, first.Classpath, resumed.Classpath)

	_, err := f.app.Load(context.Background(), app.LoadOptions{Resume: true})
	require.ErrorIs(t, err, domain.ErrMissingExecutionID)
}

func TestApp_LoadRejectsEscapingExecutionID(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for _, id := range []string{"../../x", "team/exec", ".."} {
		_, err := f.app.Load(context.Background(), loadOptions(id, "stuff@v1"))
		require.ErrorIs(t, err, domain.ErrInvalidExecutionID, id)
		assert.Equal(t, domain.KindUserConfig, domain.Classify(err))
	}
	assert.NoDirExists(t, filepath.Join(f.home, domain.JobsDirName, "..", "..", "x"))
	assert.NoDirExists(t, filepath.Join(f.home, domain.JobsDirName, "team"))
}

func TestApp_LoadWithReplacement(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	replacement := filepath.Join(t.TempDir(), "hello.groovy")
	writeFile(t, replacement, "replaced")

	opts := loadOptions("exec-1", "stuff@v1")
	opts.Replacements = []string{"stuff:vars/hello.groovy=" + replacement}
	result := f.load(t, opts)

	data, err := os.ReadFile(filepath.Join(domain.LibsPath(domain.JobPath(f.home, "exec-1")), result.Libraries[0].DirectoryName, "vars", "hello.groovy"))
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(data))

	opts.Replacements = []string{"stuff:../escape=" + replacement}
	_, err = f.app.Load(context.Background(), opts)
	require.ErrorIs(t, err, domain.ErrInvalidReplacement)
}

func TestApp_LoadAdHocLibraries(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	librariesFile := filepath.Join(f.workDir, "jobs", "libraries.yaml")
	writeFile(t, librariesFile, `
libraries:
  - name: extra
    defaultVersion: v1
    source:
      type: dir
      path: ../sources/stuff
`)

	opts := loadOptions("exec-1", "extra")
	opts.LibrariesFile = librariesFile
	result := f.load(t, opts)

	require.Len(t, result.Libraries, 2)
	assert.Equal(t, "extra", result.Libraries[0].Name)
	assert.False(t, result.Libraries[0].Trusted)
}

func TestApp_LoadErrorsBeforeRetrieval(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.app.Load(context.Background(), loadOptions("exec-1", "stuff"))
	require.ErrorIs(t, err, domain.ErrNoVersionSpecified)
	assert.NoDirExists(t, domain.JobPath(f.home, "exec-1"))

	_, err = f.app.Load(context.Background(), loadOptions("exec-1", "missing@v1"))
	require.ErrorIs(t, err, domain.ErrLibraryNotFound)
}

func TestApp_LoadWithoutConfiguration(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.app.WithWorkDir(t.TempDir())

	result := f.load(t, loadOptions("exec-1"))
	assert.Empty(t, result.Libraries)
}

func TestApp_Resolve(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	resolved, err := f.app.Resolve(context.Background(), app.ResolveOptions{Job: "other/job", Identifiers: []string{"common@v9"}})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "v9", resolved[0].Version)
	assert.Equal(t, "global", resolved[0].Resolver)

	_, err = f.app.Resolve(context.Background(), app.ResolveOptions{Job: "other/job", Identifiers: []string{"stuff@v1"}})
	require.ErrorIs(t, err, domain.ErrLibraryNotFound)
}

func TestApp_CacheClear(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.load(t, loadOptions("exec-1", "stuff@v1"))
	f.load(t, loadOptions("exec-2", "stuff@v2"))

	removed, err := f.app.CacheClear(context.Background(), app.ClearOptions{Name: "stuff", Version: "v1"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = f.app.CacheClear(context.Background(), app.ClearOptions{Name: "stuff"})
	require.ErrorIs(t, err, domain.ErrNoVersionSpecified)

	_, err = f.app.CacheClear(context.Background(), app.ClearOptions{Name: "nope", Version: "v1"})
	require.ErrorIs(t, err, domain.ErrLibraryNotFound)

	removed, err = f.app.CacheClear(context.Background(), app.ClearOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := f.app.CacheList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_CacheSweepAndStats(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.load(t, loadOptions("exec-1", "stuff@v1"))
	f.load(t, loadOptions("exec-2", "stuff@v1"))

	report, err := f.app.CacheSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cleanup.Report{Scanned: 1}, report)

	var out bytes.Buffer
	require.NoError(t, f.app.CacheStats(context.Background(), &out))
	assert.Contains(t, out.String(), `shelf_library_retrievals_total{outcome="miss"} 1`)
	assert.Contains(t, out.String(), `shelf_library_retrievals_total{outcome="hit"} 1`)
	assert.Contains(t, out.String(), "shelf_cache_entries 1")
	assert.Contains(t, out.String(), "shelf_cache_sweeps_total 1")
}

func TestApp_CacheGCStopsOnCancel(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.app.CacheGC(ctx))
}
