package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prerender/internal/adapters/logger"
	"go.trai.ch/prerender/internal/core/ports"
)

const (
	ExecutorNodeID    graft.ID = "adapter.executor"
	CompilerNodeID    graft.ID = "adapter.compiler"
	TransformerNodeID graft.ID = "adapter.transformer"
)

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})

	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ExecutorNodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			executor, err := graft.Dep[*Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(executor), nil
		},
	})

	graft.Register(graft.Node[ports.Transformer]{
		ID:        TransformerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ExecutorNodeID},
		Run: func(ctx context.Context) (ports.Transformer, error) {
			executor, err := graft.Dep[*Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewTransformer(executor), nil
		},
	})
}
