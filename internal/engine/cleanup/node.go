package cleanup

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/cachefs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/config"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/adapters/metrics" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the cache sweeper Graft node.
const NodeID graft.ID = "engine.cleanup"

func init() {
	graft.Register(graft.Node[*Sweeper]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cachefs.NodeID,
			metrics.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (*Sweeper, error) {
			storage, err := graft.Dep[ports.CacheStorage](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return New(storage, m, log, settings.Tunables.Retention), nil
		},
	})
}
