package replay

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the replacement registry Graft node.
const NodeID graft.ID = "adapter.replay"

func init() {
	graft.Register(graft.Node[ports.ReplacementRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ReplacementRegistry, error) {
			return NewRegistry(), nil
		},
	})
}
