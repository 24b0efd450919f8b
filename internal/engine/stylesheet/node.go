package stylesheet

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prerender/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/core/ports"
)

// NodeID is the unique identifier for the stylesheet manager Graft node.
const NodeID graft.ID = "engine.stylesheet"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FingerprintNodeID,
			cas.NodeID,
			shell.CompilerNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[ports.Compiler](ctx)
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

			return NewManager(hasher, store, compiler, tracer, log), nil
		},
	})
}
