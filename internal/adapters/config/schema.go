package config

// Shelffile represents the structure of the shelf.yaml configuration file.
type Shelffile struct {
	ScriptExtension string               `yaml:"scriptExtension"`
	Cache           CacheDTO             `yaml:"cache"`
	Global          ScopeDTO             `yaml:"global"`
	Folders         map[string]*ScopeDTO `yaml:"folders"`
}

// CacheDTO represents the cache section of the configuration.
type CacheDTO struct {
	Root           string `yaml:"root"`
	RefreshDefault string `yaml:"refreshDefault"`
}

// ScopeDTO represents the libraries declared in one scope.
type ScopeDTO struct {
	Libraries []*LibraryDTO `yaml:"libraries"`
}

// LibraryDTO represents a library definition in the configuration.
type LibraryDTO struct {
	Name                 string      `yaml:"name"`
	Source               SourceDTO   `yaml:"source"`
	DefaultVersion       string      `yaml:"defaultVersion"`
	Implicit             bool        `yaml:"implicit"`
	AllowVersionOverride *bool       `yaml:"allowVersionOverride"`
	IncludeInChangesets  *bool       `yaml:"includeInChangesets"`
	Caching              *CachingDTO `yaml:"caching"`
}

// SourceDTO represents the retrieval strategy of a library.
type SourceDTO struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
	Path string `yaml:"path"`
}

// CachingDTO represents the caching policy of a library.
type CachingDTO struct {
	RefreshInterval  *string  `yaml:"refreshInterval"`
	ExcludedVersions []string `yaml:"excludedVersions"`
	Salt             string   `yaml:"salt"`
}
