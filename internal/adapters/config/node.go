package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// SettingsNodeID is the unique identifier for the process settings Graft node.
	SettingsNodeID graft.ID = "adapter.config_settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run:       runSettingsNode,
	})
}

func runSettingsNode(ctx context.Context) (*domain.Settings, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	// A broken config file must not prevent commands that never read it.
	var cfg *domain.Config
	if cwd, err := os.Getwd(); err == nil {
		loaded, loadErr := loader.Load(cwd)
		switch {
		case loadErr == nil:
			cfg = loaded
		case !errors.Is(loadErr, domain.ErrConfigNotFound):
			log.Warn(fmt.Sprintf("ignoring cache settings from %s: %v", domain.ConfigFileName, loadErr))
		}
	}

	return LoadSettings(os.Getenv, cfg)
}
