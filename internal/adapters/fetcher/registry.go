package fetcher

import (
	"fmt"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FetcherFactory = (*Registry)(nil)

// Registry selects the fetcher for a library source.
type Registry struct {
	gitOpts []GitOption
}

// NewRegistry creates a Registry. gitOpts apply to every Git fetcher it creates.
func NewRegistry(gitOpts ...GitOption) *Registry {
	return &Registry{gitOpts: gitOpts}
}

// ForSource returns the fetcher implementing source.
func (r *Registry) ForSource(source domain.LibrarySource) (ports.Fetcher, error) {
	switch source.Type {
	case domain.SourceTypeGit:
		if source.URL == "" {
			return nil, sourceErr(source, "git source requires a url")
		}
		return NewGit(source.URL, r.gitOpts...), nil
	case domain.SourceTypeDir:
		if source.Path == "" {
			return nil, sourceErr(source, "dir source requires a path")
		}
		return NewDir(source.Path), nil
	default:
		return nil, zerr.With(fmt.Errorf("%w %q", domain.ErrUnknownSourceType, source.Type), "type", source.Type)
	}
}

func sourceErr(source domain.LibrarySource, msg string) error {
	return zerr.With(fmt.Errorf("%w: %s", domain.ErrUnknownSourceType, msg), "source", source.Description())
}
