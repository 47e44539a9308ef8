package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/cmd/shelf/commands"
	"go.trai.ch/shelf/internal/app"
	"go.trai.ch/shelf/internal/build"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/cleanup"
)

type fakeApp struct {
	loadOpts    app.LoadOptions
	resolveOpts app.ResolveOptions
	clearOpts   app.ClearOptions
	loadErr     error
	entries     []domain.CacheEntryInfo
	gcCalled    bool
}

func (f *fakeApp) Load(_ context.Context, opts app.LoadOptions) (*domain.LoadResult, error) {
	f.loadOpts = opts
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return &domain.LoadResult{
		ExecutionID: "exec-1",
		Libraries: []domain.LibraryRecord{
			{Name: "stuff", Version: "v1", DirectoryName: "abc123", Variables: []string{"hello"}},
		},
		Classpath: []string{"file:///jobs/exec-1/libs/abc123/vars/"},
		Globals:   map[string]string{"hello": "stuff"},
	}, nil
}

func (f *fakeApp) Resolve(_ context.Context, opts app.ResolveOptions) ([]domain.ResolvedLibrary, error) {
	f.resolveOpts = opts
	return []domain.ResolvedLibrary{{
		Config: domain.LibraryConfiguration{
			Name:   "stuff",
			Source: domain.LibrarySource{Type: domain.SourceTypeGit, URL: "https://example.com/stuff.git"},
		},
		Version:       "v1",
		Trusted:       true,
		Resolver:      "global",
		DirectoryName: "abc123",
	}}, nil
}

func (f *fakeApp) CacheList(_ context.Context) ([]domain.CacheEntryInfo, error) {
	return f.entries, nil
}

func (f *fakeApp) CacheClear(_ context.Context, opts app.ClearOptions) (int, error) {
	f.clearOpts = opts
	return 3, nil
}

func (f *fakeApp) CacheSweep(_ context.Context) (cleanup.Report, error) {
	return cleanup.Report{Scanned: 4, Deleted: 2, Skipped: 1, Failed: 1}, nil
}

func (f *fakeApp) CacheGC(_ context.Context) error {
	f.gcCalled = true
	return nil
}

func (f *fakeApp) CacheStats(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "shelf_cache_entries 0\n")
	return err
}

type recordingLogs struct {
	json, quiet bool
}

func (r *recordingLogs) SetJSON(enable bool)  { r.json = enable }
func (r *recordingLogs) SetQuiet(enable bool) { r.quiet = enable }

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	var out bytes.Buffer
	cli.SetOutput(&out, io.Discard)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestLoad_PassesFlags(t *testing.T) {
	t.Parallel()
	fake := &fakeApp{}

	out, err := execute(t, fake, "load",
		"-j", "team/app/build",
		"-l", "libs.yaml",
		"-e", "exec-1",
		"-d", "/tmp/job",
		"--resume",
		"--replace", "stuff:vars/a.groovy=a.groovy",
		"--replace", "stuff:vars/b.groovy=b.groovy",
		"-p", "2",
		"stuff@v1", "other")
	require.NoError(t, err)

	assert.Equal(t, app.LoadOptions{
		ResolveOptions: app.ResolveOptions{
			Job:           "team/app/build",
			Identifiers:   []string{"stuff@v1", "other"},
			LibrariesFile: "libs.yaml",
		},
		ExecutionID:  "exec-1",
		JobRoot:      "/tmp/job",
		Resume:       true,
		Replacements: []string{"stuff:vars/a.groovy=a.groovy", "stuff:vars/b.groovy=b.groovy"},
		Parallelism:  2,
	}, fake.loadOpts)

	assert.Contains(t, out, "exec-1")
	assert.Contains(t, out, "stuff@v1")
	assert.Contains(t, out, "file:///jobs/exec-1/libs/abc123/vars/")
	assert.Contains(t, out, "hello")
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()
	fake := &fakeApp{}

	out, err := execute(t, fake, "load", "--json", "stuff@v1")
	require.NoError(t, err)

	var result domain.LoadResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "exec-1", result.ExecutionID)
	assert.Equal(t, map[string]string{"hello": "stuff"}, result.Globals)
}

func TestLoad_Error(t *testing.T) {
	t.Parallel()
	fake := &fakeApp{loadErr: domain.ErrNoVersionSpecified}

	_, err := execute(t, fake, "load", "stuff")
	require.ErrorIs(t, err, domain.ErrNoVersionSpecified)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	fake := &fakeApp{}

	out, err := execute(t, fake, "resolve", "--job", "team/app", "stuff@v1")
	require.NoError(t, err)
	assert.Equal(t, app.ResolveOptions{Job: "team/app", Identifiers: []string{"stuff@v1"}}, fake.resolveOpts)
	assert.Contains(t, out, "stuff@v1")
	assert.Contains(t, out, "global resolver")
	assert.Contains(t, out, "git:https://example.com/stuff.git")
}

func TestResolve_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, &fakeApp{}, "resolve", "--json", "stuff@v1")
	require.NoError(t, err)

	var libs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &libs))
	require.Len(t, libs, 1)
	assert.Equal(t, "stuff", libs[0]["name"])
	assert.Equal(t, "v1", libs[0]["version"])
	assert.Equal(t, true, libs[0]["trusted"])
	assert.Equal(t, "abc123", libs[0]["directoryName"])
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()
	fake := &fakeApp{}

	out, err := execute(t, fake, "cache", "clear", "--name", "stuff", "--version", "v1")
	require.NoError(t, err)
	assert.Equal(t, app.ClearOptions{Name: "stuff", Version: "v1"}, fake.clearOpts)
	assert.Contains(t, out, "3 cache entries removed")
}

func TestCache_List(t *testing.T) {
	t.Parallel()

	out, err := execute(t, &fakeApp{}, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cache is empty")

	fake := &fakeApp{entries: []domain.CacheEntryInfo{
		{Key: "0123456789abcdef0123", Populated: true, Size: 2048},
		{Key: "fedcba", WriteLocked: true},
	}}
	out, err = execute(t, fake, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0123456789ab")
	assert.NotContains(t, out, "0123456789abc")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "idle")
	assert.Contains(t, out, "writing")
}

func TestCache_SweepGCStats(t *testing.T) {
	t.Parallel()
	fake := &fakeApp{}

	out, err := execute(t, fake, "cache", "sweep")
	require.NoError(t, err)
	assert.Contains(t, out, "scanned 4, deleted 2, skipped 1, failed 1")

	_, err = execute(t, fake, "cache", "gc")
	require.NoError(t, err)
	assert.True(t, fake.gcCalled)

	out, err = execute(t, fake, "cache", "stats")
	require.NoError(t, err)
	assert.Equal(t, "shelf_cache_entries 0\n", out)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, &fakeApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "shelf version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestGlobalLogFlags(t *testing.T) {
	t.Parallel()
	logs := &recordingLogs{}
	cli := commands.New(&fakeApp{}, commands.WithLogConfigurer(logs))
	cli.SetOutput(io.Discard, io.Discard)
	cli.SetArgs([]string{"--json-logs", "-q", "cache", "sweep"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, logs.json)
	assert.True(t, logs.quiet)
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	_, err := execute(t, &fakeApp{}, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
