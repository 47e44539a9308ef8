package domain

import "time"

// Config is the loaded shelf configuration.
type Config struct {
	// Global libraries are visible to every job and are trusted.
	Global []LibraryConfiguration
	// Folders maps a folder path to the libraries visible to jobs inside it.
	Folders map[string][]LibraryConfiguration
	// CacheRoot overrides the shared cache location.
	CacheRoot string
	// ScriptExtension identifies variable scripts inside a library's vars directory.
	ScriptExtension string
	// Path is the file the configuration was read from.
	Path string
}

// DefaultRefreshInterval is applied to caching blocks that omit a refresh interval.
const DefaultRefreshInterval = 24 * time.Hour
