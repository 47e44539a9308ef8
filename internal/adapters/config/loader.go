// Package config provides the configuration loader for shelf.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds shelf.yaml in cwd or the nearest parent and returns the validated configuration.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(configPath)
}

// LoadFile reads the configuration at configPath.
func (l *Loader) LoadFile(configPath string) (*domain.Config, error) {
	var file Shelffile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	baseDir := filepath.Dir(configPath)

	refreshDefault := domain.DefaultRefreshInterval
	if file.Cache.RefreshDefault != "" {
		d, err := parseDuration(file.Cache.RefreshDefault)
		if err != nil {
			return nil, zerr.With(err, "field", "cache.refreshDefault")
		}
		refreshDefault = d
	}

	cfg := &domain.Config{
		ScriptExtension: file.ScriptExtension,
		CacheRoot:       resolvePath(baseDir, file.Cache.Root),
		Folders:         make(map[string][]domain.LibraryConfiguration, len(file.Folders)),
		Path:            configPath,
	}
	if cfg.ScriptExtension == "" {
		cfg.ScriptExtension = domain.DefaultScriptExtension
	} else if !strings.HasPrefix(cfg.ScriptExtension, ".") {
		cfg.ScriptExtension = "." + cfg.ScriptExtension
	}

	global, err := buildScope(file.Global.Libraries, baseDir, refreshDefault)
	if err != nil {
		return nil, zerr.With(err, "scope", "global")
	}
	cfg.Global = global

	folders := make([]string, 0, len(file.Folders))
	for folder := range file.Folders {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	for _, folder := range folders {
		scope := file.Folders[folder]
		if scope == nil {
			l.Logger.Warn(fmt.Sprintf("folder %q in %s declares no libraries", folder, domain.ConfigFileName))
			continue
		}
		libs, err := buildScope(scope.Libraries, baseDir, refreshDefault)
		if err != nil {
			return nil, zerr.With(err, "scope", folder)
		}
		cfg.Folders[strings.Trim(folder, "/")] = libs
	}

	return cfg, nil
}

// LoadLibraries reads a job's ad hoc library list, a YAML document with a top-level libraries key.
// Relative dir sources are resolved against the file's directory.
func (l *Loader) LoadLibraries(path string) ([]domain.LibraryConfiguration, error) {
	var scope ScopeDTO
	if err := readAndUnmarshalYAML(path, &scope); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	libs, err := buildScope(scope.Libraries, filepath.Dir(path), domain.DefaultRefreshInterval)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "scope", "adhoc"), "path", path)
	}
	return libs, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func buildScope(dtos []*LibraryDTO, baseDir string, refreshDefault time.Duration) ([]domain.LibraryConfiguration, error) {
	libs := make([]domain.LibraryConfiguration, 0, len(dtos))
	for _, dto := range dtos {
		if dto == nil {
			continue
		}
		lib, err := buildLibrary(dto, baseDir, refreshDefault)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	if err := domain.ValidateScope(libs); err != nil {
		return nil, err
	}
	return libs, nil
}

func buildLibrary(dto *LibraryDTO, baseDir string, refreshDefault time.Duration) (domain.LibraryConfiguration, error) {
	lib := domain.LibraryConfiguration{
		Name:                 strings.TrimSpace(dto.Name),
		DefaultVersion:       strings.TrimSpace(dto.DefaultVersion),
		Implicit:             dto.Implicit,
		AllowVersionOverride: boolOr(dto.AllowVersionOverride, true),
		IncludeInChangesets:  boolOr(dto.IncludeInChangesets, true),
		Source: domain.LibrarySource{
			Type: strings.ToLower(strings.TrimSpace(dto.Source.Type)),
			URL:  dto.Source.URL,
			Path: dto.Source.Path,
		},
	}
	if lib.Source.Type == domain.SourceTypeDir {
		lib.Source.Path = resolvePath(baseDir, lib.Source.Path)
	}

	if dto.Caching != nil {
		policy := &domain.CachingPolicy{
			RefreshInterval:  refreshDefault,
			ExcludedVersions: dto.Caching.ExcludedVersions,
			Salt:             dto.Caching.Salt,
		}
		if dto.Caching.RefreshInterval != nil {
			d, err := parseDuration(*dto.Caching.RefreshInterval)
			if err != nil {
				return lib, zerr.With(err, "library", lib.Name)
			}
			policy.RefreshInterval = d
		}
		lib.Caching = policy
	}

	return lib, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, parseErr)
	}

	return nil
}

// parseDuration accepts Go duration strings and a bare "0".
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, err), "value", raw)
	}
	return d, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
