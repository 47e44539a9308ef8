package ports

import (
	"context"

	"go.trai.ch/shelf/internal/core/domain"
)

// LibraryResolver exposes the library configurations visible to a job.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type LibraryResolver interface {
	// Name identifies the resolver in logs.
	Name() string
	// Trusted reports whether libraries supplied by this resolver run with elevated privilege.
	Trusted() bool
	// Configurations lists the configurations this resolver makes visible to job.
	Configurations(ctx context.Context, job domain.JobContext) ([]domain.LibraryConfiguration, error)
}
