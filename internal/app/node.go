package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fpdgen/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/fpdgen/internal/adapters/fpd"     //nolint:depguard // Wired in app layer
	"go.trai.ch/fpdgen/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/fpdgen/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/fpdgen/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/fpdgen/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/fpdgen/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fpd.NodeID,
			fs.WriterNodeID,
			shell.NodeID,
			watcher.NodeID,
			logger.NodeID,
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
	workspaces, err := graft.Dep[ports.WorkspaceLoader](ctx)
	if err != nil {
		return nil, err
	}

	platforms, err := graft.Dep[ports.PlatformLoader](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.FileWriter](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(workspaces, platforms, writer, executor, w, log), nil
}
