package ports

// ReplacementRegistry holds file contents to overwrite in untrusted libraries before they are exposed.
//
//go:generate go run go.uber.org/mock/mockgen -source=replacement.go -destination=mocks/mock_replacement.go -package=mocks
type ReplacementRegistry interface {
	// Register records content for relPath inside library for the given execution.
	Register(executionID, library, relPath string, content []byte) error
	// Apply overwrites existing regular files of library in targetDir with the pending replacements.
	// It returns the paths written and the paths that matched no regular file.
	Apply(executionID, library, targetDir string) (applied, unmatched []string, err error)
}
