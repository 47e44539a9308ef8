package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeConfig(t, root, `
scriptExtension: groovy
cache:
  root: .cache
  refreshDefault: 2h
global:
  libraries:
    - name: stuff
      defaultVersion: v1
      implicit: true
      source:
        type: git
        url: https://example.com/stuff.git
      caching:
        excludedVersions: ["main", "feature-*"]
folders:
  /team/:
    libraries:
      - name: local
        allowVersionOverride: false
        includeInChangesets: false
        source:
          type: DIR
          path: libs/local
        caching:
          refreshInterval: "0"
          salt: pinned
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	loader, _ := newLoader(t)
	cfg, err := loader.Load(nested)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, domain.ConfigFileName), cfg.Path)
	assert.Equal(t, ".groovy", cfg.ScriptExtension)
	assert.Equal(t, filepath.Join(root, ".cache"), cfg.CacheRoot)

	require.Len(t, cfg.Global, 1)
	stuff := cfg.Global[0]
	assert.Equal(t, "stuff", stuff.Name)
	assert.True(t, stuff.Implicit)
	assert.True(t, stuff.AllowVersionOverride)
	assert.True(t, stuff.IncludeInChangesets)
	assert.Equal(t, domain.LibrarySource{Type: "git", URL: "https://example.com/stuff.git"}, stuff.Source)
	require.NotNil(t, stuff.Caching)
	assert.Equal(t, 2*time.Hour, stuff.Caching.RefreshInterval)
	assert.True(t, stuff.Caching.Excludes("feature-x"))

	require.Contains(t, cfg.Folders, "team")
	local := cfg.Folders["team"][0]
	assert.False(t, local.AllowVersionOverride)
	assert.False(t, local.IncludeInChangesets)
	assert.Equal(t, domain.SourceTypeDir, local.Source.Type)
	assert.Equal(t, filepath.Join(root, "libs", "local"), local.Source.Path)
	assert.Equal(t, time.Duration(-1), local.Caching.TTL())
	assert.Equal(t, "pinned", local.Caching.Salt)
}

func TestLoader_Defaults(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeConfig(t, root, `
global:
  libraries:
    - name: stuff
      source: {type: git, url: https://example.com/stuff.git}
      caching: {}
`)

	loader, _ := newLoader(t)
	cfg, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultScriptExtension, cfg.ScriptExtension)
	assert.Empty(t, cfg.CacheRoot)
	assert.Equal(t, domain.DefaultRefreshInterval, cfg.Global[0].Caching.RefreshInterval)
}

func TestLoader_EmptyFolderWarns(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeConfig(t, root, "folders:\n  team:\n")

	loader, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any())

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Empty(t, cfg.Folders)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "malformed yaml",
			content: "global: [",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "bad refresh default",
			content: "cache:\n  refreshDefault: soon\n",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name: "bad refresh interval",
			content: `
global:
  libraries:
    - name: stuff
      source: {type: git, url: u}
      caching: {refreshInterval: often}
`,
			want: domain.ErrConfigParseFailed,
		},
		{
			name: "duplicate library",
			content: `
global:
  libraries:
    - {name: stuff, source: {type: git, url: a}}
    - {name: stuff, source: {type: git, url: b}}
`,
			want: domain.ErrDuplicateLibrary,
		},
		{
			name: "implicit without default",
			content: `
folders:
  team:
    libraries:
      - {name: stuff, implicit: true, source: {type: git, url: a}}
`,
			want: domain.ErrImplicitWithoutDefault,
		},
		{
			name: "unknown source type",
			content: `
global:
  libraries:
    - {name: stuff, source: {type: svn, url: a}}
`,
			want: domain.ErrUnknownSourceType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			loader, _ := newLoader(t)
			_, err := loader.Load(root)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_NotFound(t *testing.T) {
	t.Parallel()

	loader, _ := newLoader(t)
	_, err := loader.Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_LoadLibraries(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "libraries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
libraries:
  - name: helpers
    defaultVersion: main
    source:
      type: dir
      path: vendor/helpers
    caching: {}
`), 0o600))

	loader, _ := newLoader(t)
	libs, err := loader.LoadLibraries(path)
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Equal(t, "helpers", libs[0].Name)
	assert.Equal(t, filepath.Join(dir, "vendor", "helpers"), libs[0].Source.Path)
	require.NotNil(t, libs[0].Caching)
	assert.Equal(t, domain.DefaultRefreshInterval, libs[0].Caching.RefreshInterval)
}

func TestLoader_LoadLibrariesDuplicate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "libraries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
libraries:
  - name: helpers
    source: {type: git, url: https://example.com/a.git}
  - name: helpers
    source: {type: git, url: https://example.com/b.git}
`), 0o600))

	loader, _ := newLoader(t)
	_, err := loader.LoadLibraries(path)
	require.ErrorIs(t, err, domain.ErrDuplicateLibrary)
}
