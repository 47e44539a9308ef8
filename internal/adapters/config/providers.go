package config

import (
	"context"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
)

// GlobalResolver exposes the globally configured, trusted libraries.
type GlobalResolver struct {
	libraries []domain.LibraryConfiguration
}

// FolderResolver exposes the libraries of the folders enclosing a job, nearest folder first.
type FolderResolver struct {
	folders map[string][]domain.LibraryConfiguration
}

// AdHocResolver exposes the libraries a job declares itself.
type AdHocResolver struct{}

// Providers returns the resolvers for cfg in priority order.
func Providers(cfg *domain.Config) []ports.LibraryResolver {
	return []ports.LibraryResolver{
		&GlobalResolver{libraries: cfg.Global},
		&FolderResolver{folders: cfg.Folders},
		&AdHocResolver{},
	}
}

// Name identifies the resolver in logs.
func (r *GlobalResolver) Name() string { return "global" }

// Trusted reports that global libraries are trusted.
func (r *GlobalResolver) Trusted() bool { return true }

// Configurations lists every global library.
func (r *GlobalResolver) Configurations(_ context.Context, _ domain.JobContext) ([]domain.LibraryConfiguration, error) {
	return r.libraries, nil
}

// Name identifies the resolver in logs.
func (r *FolderResolver) Name() string { return "folder" }

// Trusted reports that folder libraries are untrusted.
func (r *FolderResolver) Trusted() bool { return false }

// Configurations lists the libraries of every folder enclosing job, nearest folder first.
func (r *FolderResolver) Configurations(_ context.Context, job domain.JobContext) ([]domain.LibraryConfiguration, error) {
	var libs []domain.LibraryConfiguration
	for _, folder := range job.Folders() {
		libs = append(libs, r.folders[folder]...)
	}
	return libs, nil
}

// Name identifies the resolver in logs.
func (r *AdHocResolver) Name() string { return "adhoc" }

// Trusted reports that ad hoc libraries are untrusted.
func (r *AdHocResolver) Trusted() bool { return false }

// Configurations lists the libraries declared by job after validating them.
func (r *AdHocResolver) Configurations(_ context.Context, job domain.JobContext) ([]domain.LibraryConfiguration, error) {
	if err := domain.ValidateScope(job.Libraries); err != nil {
		return nil, err
	}
	return job.Libraries, nil
}
