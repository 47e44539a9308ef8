package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidIdentifier is returned when a library identifier cannot be parsed.
	ErrInvalidIdentifier = zerr.New("invalid library identifier")

	// ErrNoVersionSpecified is returned when neither the request nor the configuration names a version.
	ErrNoVersionSpecified = zerr.New("no version specified")

	// ErrVersionOverrideNotPermitted is returned when a version is requested for a library that pins its default.
	ErrVersionOverrideNotPermitted = zerr.New("version override not permitted")

	// ErrLibraryNotFound is returned when no resolver claims an explicitly requested library.
	ErrLibraryNotFound = zerr.New("library not found")

	// ErrLibraryLayout is returned when a retrieved library has neither a src nor a vars directory.
	ErrLibraryLayout = zerr.New("library must contain at least one of the src or vars directories")

	// ErrImplicitWithoutDefault is returned when an implicit library has no default version.
	ErrImplicitWithoutDefault = zerr.New("implicit library requires a default version")

	// ErrDuplicateLibrary is returned when a scope declares the same library name twice.
	ErrDuplicateLibrary = zerr.New("duplicate library name in scope")

	// ErrInvalidLibraryName is returned when a configured library name is empty or contains '@'.
	ErrInvalidLibraryName = zerr.New("invalid library name")

	// ErrUnknownSourceType is returned when a library source names an unsupported retrieval strategy.
	ErrUnknownSourceType = zerr.New("unknown library source type")

	// ErrInvalidExclusionPattern is returned when a caching exclusion pattern is malformed.
	ErrInvalidExclusionPattern = zerr.New("invalid excluded version pattern")

	// ErrFetchFailed is returned when a fetcher cannot materialize a library.
	ErrFetchFailed = zerr.New("failed to fetch library")

	// ErrEntryDataMissing is returned when a cache entry has no data directory to copy out.
	ErrEntryDataMissing = zerr.New("cache entry has no data")

	// ErrCacheIO is returned when the cache directory cannot be read or written.
	ErrCacheIO = zerr.New("cache i/o failed")

	// ErrLockIO is returned when a lock marker cannot be created or removed.
	ErrLockIO = zerr.New("cache lock i/o failed")

	// ErrCopyFailed is returned when copying a library tree fails.
	ErrCopyFailed = zerr.New("failed to copy library tree")

	// ErrRunStateReadFailed is returned when the persisted run state cannot be read.
	ErrRunStateReadFailed = zerr.New("failed to read run state")

	// ErrRunStateWriteFailed is returned when the run state cannot be persisted.
	ErrRunStateWriteFailed = zerr.New("failed to write run state")

	// ErrSecretUnavailable is returned when the directory-name secret cannot be loaded or created.
	ErrSecretUnavailable = zerr.New("failed to load directory name secret")

	// ErrConfigNotFound is returned when no shelf.yaml is found in the working directory or its parents.
	ErrConfigNotFound = zerr.New("could not find shelf.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTunable is returned when an environment tunable cannot be parsed.
	ErrInvalidTunable = zerr.New("invalid tunable value")

	// ErrInvalidReplacement is returned when a replacement specification is malformed.
	ErrInvalidReplacement = zerr.New("invalid replacement, expected format: library:path=file")

	// ErrMissingExecutionID is returned when a load is requested without an execution id.
	ErrMissingExecutionID = zerr.New("missing execution id")

	// ErrInvalidExecutionID is returned when an execution id is not a plain directory name.
	ErrInvalidExecutionID = zerr.New("invalid execution id")
)
