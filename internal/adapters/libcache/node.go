package libcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccdrive/internal/core/ports"
)

// NodeID is the unique identifier for the library cache backend factory Graft node.
const NodeID graft.ID = "adapter.libcache"

func init() {
	graft.Register(graft.Node[ports.CacheBackendFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheBackendFactory, error) {
			return FileFactory{Dir: "."}, nil
		},
	})
}
