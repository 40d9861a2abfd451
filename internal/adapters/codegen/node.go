package codegen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccdrive/internal/core/ports"
)

// NodeID is the unique identifier for the source generator Graft node.
const NodeID graft.ID = "adapter.codegen"

func init() {
	graft.Register(graft.Node[ports.SourceGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceGenerator, error) {
			return NewGenerator(), nil
		},
	})
}
