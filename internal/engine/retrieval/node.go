package retrieval

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/cachefs"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/fetcher"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/replay"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the retrieval orchestrator Graft node.
const NodeID graft.ID = "engine.retrieval"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cachefs.NodeID,
			fetcher.NodeID,
			fs.HasherNodeID,
			replay.NodeID,
			metrics.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			storage, err := graft.Dep[ports.CacheStorage](ctx)
			if err != nil {
				return nil, err
			}

			fetchers, err := graft.Dep[ports.FetcherFactory](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.TreeHasher](ctx)
			if err != nil {
				return nil, err
			}

			replacements, err := graft.Dep[ports.ReplacementRegistry](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(storage, fetchers, hasher, replacements, m, tracer, log), nil
		},
	})
}
