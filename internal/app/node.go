package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prerender/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/prerender/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prerender/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/prerender/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prerender/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/prerender/internal/engine/batch"
	"go.trai.ch/prerender/internal/engine/stylesheet"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the entry point needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.FinderNodeID,
			fs.WriterNodeID,
			stylesheet.NodeID,
			batch.NodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
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

	finder, err := graft.Dep[ports.DocumentFinder](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.FileWriter](ctx)
	if err != nil {
		return nil, err
	}

	manager, err := graft.Dep[*stylesheet.Manager](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[*batch.Runner](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
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

	return New(loader, finder, manager, runner, store, writer, tracer, log), nil
}
