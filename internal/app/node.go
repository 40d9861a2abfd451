package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccdrive/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/ccdrive/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ccdrive/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/ccdrive/internal/adapters/libcache" //nolint:depguard // Wired in app layer
	"go.trai.ch/ccdrive/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ccdrive/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ccdrive/internal/core/domain"
	"go.trai.ch/ccdrive/internal/core/ports"
	"go.trai.ch/ccdrive/internal/engine/pipeline"
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
			shell.NodeID,
			logger.NodeID,
			pipeline.NodeID,
			libcache.NodeID,
			cas.NodeID,
			detector.NodeID,
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
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	caches, err := graft.Dep[ports.CacheBackendFactory](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ObjectStore](ctx)
	if err != nil {
		return nil, err
	}

	platform, err := graft.Dep[domain.Platform](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, log, pipe, caches, store, platform), nil
}
