package ports

import "go.trai.ch/shelf/internal/core/domain"

// ConfigLoader defines the interface for loading configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds and reads the configuration starting at cwd.
	Load(cwd string) (*domain.Config, error)
	// LoadLibraries reads an ad hoc library list declared by a job.
	LoadLibraries(path string) ([]domain.LibraryConfiguration, error)
}
