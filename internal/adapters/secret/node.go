package secret

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the directory namer Graft node.
const NodeID graft.ID = "adapter.secret_namer"

func init() {
	graft.Register(graft.Node[ports.DirectoryNamer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.DirectoryNamer, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			key, err := LoadOrCreate(domain.SecretPath(settings.Home))
			if err != nil {
				return nil, err
			}
			return NewNamer(key), nil
		},
	})
}
