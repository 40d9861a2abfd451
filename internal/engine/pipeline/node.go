package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccdrive/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccdrive/internal/adapters/codegen"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccdrive/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccdrive/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccdrive/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccdrive/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccdrive/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.ResolverNodeID,
			fs.VerifierNodeID,
			fs.CopierNodeID,
			codegen.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ObjectStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.SourceResolver](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.OutputVerifier](ctx)
			if err != nil {
				return nil, err
			}

			copier, err := graft.Dep[ports.Copier](ctx)
			if err != nil {
				return nil, err
			}

			generator, err := graft.Dep[ports.SourceGenerator](ctx)
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

			return New(executor, store, hasher, resolver, verifier, generator, copier, tracer, log), nil
		},
	})
}
