package runstate

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the run state store Graft node.
const NodeID graft.ID = "adapter.run_state_store"

func init() {
	graft.Register(graft.Node[ports.RunStateStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.RunStateStore, error) {
			return NewStore(), nil
		},
	})
}
