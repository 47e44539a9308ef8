// Package resolver turns requested library identifiers into resolved, versioned libraries.
package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// Chain walks library resolvers in priority order. The first resolver offering a name claims it.
type Chain struct {
	providers []ports.LibraryResolver
	namer     ports.DirectoryNamer
	logger    ports.Logger
	tracer    ports.Tracer
}

// New creates a Chain over providers, highest priority first.
func New(
	providers []ports.LibraryResolver,
	namer ports.DirectoryNamer,
	logger ports.Logger,
	tracer ports.Tracer,
) *Chain {
	return &Chain{
		providers: providers,
		namer:     namer,
		logger:    logger,
		tracer:    tracer,
	}
}

// claim records which resolver provides a library and whether it was asked for.
type claim struct {
	config   domain.LibraryConfiguration
	trusted  bool
	resolver string
}

// request is one parsed identifier.
type request struct {
	id      domain.Identifier
	claimed *claim
}

// Resolve resolves identifiers for job. Every error is returned before anything is fetched.
// Requested libraries come first in request order, followed by implicit ones in claim order.
func (c *Chain) Resolve(ctx context.Context, job domain.JobContext, identifiers []string) ([]domain.ResolvedLibrary, error) {
	ctx, span := c.tracer.Start(ctx, "resolve", ports.WithAttribute("job", job.FullName))
	defer span.End()

	resolved, err := c.resolve(ctx, job, identifiers)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute(ports.AttrCount, len(resolved))
	names := make([]string, 0, len(resolved))
	for _, lib := range resolved {
		names = append(names, lib.Config.Name+"@"+lib.Version)
	}
	c.tracer.EmitResolved(ctx, names)

	return resolved, nil
}

func (c *Chain) resolve(ctx context.Context, job domain.JobContext, identifiers []string) ([]domain.ResolvedLibrary, error) {
	requests, byName, err := c.parse(identifiers)
	if err != nil {
		return nil, err
	}

	claims := make(map[string]*claim)
	var implicit []*claim

	for _, provider := range c.providers {
		configs, err := provider.Configurations(ctx, job)
		if err != nil {
			return nil, zerr.With(err, "resolver", provider.Name())
		}

		for _, cfg := range configs {
			req, requested := byName[cfg.Name]
			if !requested && !cfg.Implicit {
				continue
			}

			if existing, ok := claims[cfg.Name]; ok {
				c.logger.Warn(fmt.Sprintf("library %s from %s resolver ignored: already provided by %s resolver",
					cfg.Name, provider.Name(), existing.resolver))
				continue
			}

			cl := &claim{config: cfg, trusted: provider.Trusted(), resolver: provider.Name()}
			claims[cfg.Name] = cl
			if requested {
				req.claimed = cl
			} else {
				implicit = append(implicit, cl)
			}
		}
	}

	resolved := make([]domain.ResolvedLibrary, 0, len(requests)+len(implicit))
	for _, req := range requests {
		if req.claimed == nil {
			return nil, domain.NewLibraryError(domain.ErrLibraryNotFound, req.id.Name)
		}
		lib, err := c.negotiate(req.claimed, req.id.Version)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, lib)
	}
	for _, cl := range implicit {
		lib, err := c.negotiate(cl, "")
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, lib)
	}

	return resolved, nil
}

// parse splits every identifier. A name requested twice keeps its first request.
func (c *Chain) parse(identifiers []string) ([]*request, map[string]*request, error) {
	requests := make([]*request, 0, len(identifiers))
	byName := make(map[string]*request, len(identifiers))

	for _, raw := range identifiers {
		id, err := domain.ParseIdentifier(raw)
		if err != nil {
			return nil, nil, err
		}
		if first, ok := byName[id.Name]; ok {
			if first.id != id {
				c.logger.Warn(fmt.Sprintf("ignoring request %s: library already requested as %s", id, first.id))
			}
			continue
		}
		req := &request{id: id}
		requests = append(requests, req)
		byName[id.Name] = req
	}

	return requests, byName, nil
}

// negotiate picks the effective version of a claimed library.
func (c *Chain) negotiate(cl *claim, requested string) (domain.ResolvedLibrary, error) {
	cfg := cl.config
	version, err := Negotiate(cfg, requested)
	if err != nil {
		return domain.ResolvedLibrary{}, err
	}

	return domain.ResolvedLibrary{
		Config:        cfg,
		Version:       version,
		Trusted:       cl.trusted,
		Resolver:      cl.resolver,
		DirectoryName: c.namer.DirectoryName(cfg.Name, version, cl.trusted, cfg.Source.Description()),
	}, nil
}

// Negotiate returns the version of cfg to use when requested was asked for.
// An empty requested means no explicit version. Any explicit version,
// the default included, needs AllowVersionOverride.
func Negotiate(cfg domain.LibraryConfiguration, requested string) (string, error) {
	switch {
	case requested == "":
		if cfg.DefaultVersion == "" {
			return "", domain.NewLibraryError(domain.ErrNoVersionSpecified, cfg.Name)
		}
		return cfg.DefaultVersion, nil
	case cfg.AllowVersionOverride:
		return requested, nil
	default:
		return "", zerr.With(domain.NewLibraryError(domain.ErrVersionOverrideNotPermitted, cfg.Name), "version", requested)
	}
}
