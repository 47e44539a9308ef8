package ports

// DirectoryNamer derives the job-local directory name of a library.
//
//go:generate go run go.uber.org/mock/mockgen -source=namer.go -destination=mocks/mock_namer.go -package=mocks
type DirectoryNamer interface {
	// DirectoryName returns a keyed digest of the identifying fields of a library.
	DirectoryName(name, version string, trusted bool, source string) string
}
