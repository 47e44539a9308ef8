package ports

import (
	"context"

	"go.trai.ch/shelf/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks

// Fetcher materializes one version of a library into a directory.
type Fetcher interface {
	// Fetch writes the library tree of name at version into targetDir.
	// The history needed for changelogs is kept only when includeChangelog is set.
	Fetch(ctx context.Context, name, version string, includeChangelog bool, targetDir string) error
}

// FetcherFactory selects the Fetcher for a library source.
type FetcherFactory interface {
	// ForSource returns the fetcher implementing source's retrieval strategy.
	ForSource(source domain.LibrarySource) (Fetcher, error)
}
