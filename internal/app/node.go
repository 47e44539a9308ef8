package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/cachefs"   //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/adapters/replay"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/adapters/runstate"  //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/adapters/secret"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/cleanup"
	"go.trai.ch/shelf/internal/engine/retrieval"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.SettingsNodeID,
			secret.NodeID,
			retrieval.NodeID,
			cleanup.NodeID,
			cachefs.NodeID,
			runstate.NodeID,
			replay.NodeID,
			metrics.NodeID,
			telemetry.TracerNodeID,
			telemetry.BridgeNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	namer, err := graft.Dep[ports.DirectoryNamer](ctx)
	if err != nil {
		return nil, err
	}

	orchestrator, err := graft.Dep[*retrieval.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	sweeper, err := graft.Dep[*cleanup.Sweeper](ctx)
	if err != nil {
		return nil, err
	}

	storage, err := graft.Dep[ports.CacheStorage](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RunStateStore](ctx)
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

	bridge, err := graft.Dep[*telemetry.Bridge](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	a := New(loader, namer, orchestrator, sweeper, storage, store, replacements, m, tracer, log, settings)
	return a.WithBridge(bridge), nil
}
