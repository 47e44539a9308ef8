package domain

import (
	"errors"

	platformerrors "github.com/jmgilman/go/errors"
)

// ErrorKind groups errors by how a caller should react to them.
type ErrorKind int

const (
	// KindInternal is anything not otherwise classified.
	KindInternal ErrorKind = iota
	// KindUserConfig is a configuration or request mistake. It is never retried.
	KindUserConfig
	// KindTransientFetch is a fetch failure the host may retry.
	KindTransientFetch
	// KindCacheIO is a disk failure while copying or locking.
	KindCacheIO
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUserConfig:
		return "user_config"
	case KindTransientFetch:
		return "transient_fetch"
	case KindCacheIO:
		return "cache_io"
	default:
		return "internal"
	}
}

var userConfigErrors = []error{
	ErrInvalidIdentifier,
	ErrNoVersionSpecified,
	ErrVersionOverrideNotPermitted,
	ErrLibraryNotFound,
	ErrLibraryLayout,
	ErrImplicitWithoutDefault,
	ErrDuplicateLibrary,
	ErrInvalidLibraryName,
	ErrUnknownSourceType,
	ErrInvalidExclusionPattern,
	ErrConfigParseFailed,
	ErrInvalidTunable,
	ErrInvalidReplacement,
	ErrInvalidExecutionID,
}

var cacheIOErrors = []error{
	ErrCacheIO,
	ErrLockIO,
	ErrCopyFailed,
	ErrEntryDataMissing,
}

// Classify maps err onto the error taxonomy.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	for _, target := range userConfigErrors {
		if errors.Is(err, target) {
			return KindUserConfig
		}
	}
	if errors.Is(err, ErrFetchFailed) {
		if platformerrors.IsRetryable(err) {
			return KindTransientFetch
		}
		return KindUserConfig
	}
	for _, target := range cacheIOErrors {
		if errors.Is(err, target) {
			return KindCacheIO
		}
	}
	return KindInternal
}
