package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccdrive/internal/core/ports"
)

// NodeID is the unique identifier for the object store Graft node.
const NodeID graft.ID = "adapter.object_store"

func init() {
	graft.Register(graft.Node[ports.ObjectStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ObjectStore, error) {
			return NewStore("."), nil
		},
	})
}
