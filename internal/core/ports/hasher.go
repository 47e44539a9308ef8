package ports

// TreeHasher computes a digest over a directory tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type TreeHasher interface {
	// TreeHash returns a digest of the relative paths and contents below root.
	TreeHash(root string) (string, error)
}
