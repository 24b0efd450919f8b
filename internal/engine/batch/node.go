package batch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prerender/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prerender/internal/core/ports"
)

// NodeID is the unique identifier for the batch runner Graft node.
const NodeID graft.ID = "engine.batch"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.TransformerNodeID,
			fs.WriterNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			transformer, err := graft.Dep[ports.Transformer](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.FileWriter](ctx)
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

			return NewRunner(transformer, writer, tracer, log), nil
		},
	})
}
