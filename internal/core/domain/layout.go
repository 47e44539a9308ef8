package domain

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// HomeEnv overrides the default state root.
	HomeEnv = "SHELF_HOME"

	// HomeDirName is the name of the state root under the user's home directory.
	HomeDirName = ".shelf"

	// CacheDirName is the name of the shared library cache directory.
	CacheDirName = "cache"

	// JobsDirName is the name of the directory holding per-execution storage.
	JobsDirName = "jobs"

	// LibsDirName is the name of the job-local library directory.
	LibsDirName = "libs"

	// SecretFileName is the name of the directory-name secret file.
	SecretFileName = "secret.key"

	// RunStateFileName is the name of the persisted run state inside a job directory.
	RunStateFileName = "libraries.json"

	// ConfigFileName is the default configuration file name.
	ConfigFileName = "shelf.yaml"

	// EntryDataDirName is the data directory of a cache entry.
	EntryDataDirName = "data"

	// EntryTimestampFile is the freshness marker of a cache entry.
	EntryTimestampFile = "timestamp.txt"

	// EntryLastAccessFile is the last-access marker of a cache entry.
	EntryLastAccessFile = "lastAccess.txt"

	// WriteLockFile is the exclusive lock marker of a cache entry.
	WriteLockFile = "write.lock"

	// ReadLocksDirName holds one marker per concurrent reader of a cache entry.
	ReadLocksDirName = "readLocks"

	// SourcesDirName is the library subtree added to the classpath as sources.
	SourcesDirName = "src"

	// VariablesDirName is the library subtree holding global variable scripts.
	VariablesDirName = "vars"

	// NameFileSuffix is appended to a directory name for the human-readable debug marker.
	NameFileSuffix = "-name.txt"

	// DefaultScriptExtension identifies variable scripts inside the vars directory.
	DefaultScriptExtension = ".groovy"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultHome returns the state root, honouring SHELF_HOME.
func DefaultHome() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return HomeDirName
	}
	return filepath.Join(userHome, HomeDirName)
}

// CachePath returns the shared cache root under home.
func CachePath(home string) string {
	return filepath.Join(home, CacheDirName)
}

// ValidateExecutionID rejects ids that would not name a single directory below the jobs directory.
func ValidateExecutionID(id string) error {
	if id == "." || !filepath.IsLocal(id) || strings.ContainsAny(id, `/\`) {
		return zerr.With(ErrInvalidExecutionID, "execution", id)
	}
	return nil
}

// JobPath returns the storage root of one execution.
func JobPath(home, executionID string) string {
	return filepath.Join(home, JobsDirName, executionID)
}

// LibsPath returns the job-local library directory of a job storage root.
func LibsPath(jobRoot string) string {
	return filepath.Join(jobRoot, LibsDirName)
}

// SecretPath returns the location of the directory-name secret.
func SecretPath(home string) string {
	return filepath.Join(home, SecretFileName)
}
