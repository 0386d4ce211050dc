package fpd

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/fpdgen/internal/adapters/fs"
	"go.trai.ch/fpdgen/internal/adapters/logger"
	"go.trai.ch/fpdgen/internal/core/ports"
)

// NodeID is the unique identifier for the platform loader Graft node.
const NodeID graft.ID = "adapter.platform_loader"

func init() {
	graft.Register(graft.Node[ports.PlatformLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PlatformLoader, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(fsys, log), nil
		},
	})
}
