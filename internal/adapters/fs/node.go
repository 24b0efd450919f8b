package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prerender/internal/core/ports"
)

const (
	HasherNodeID      graft.ID = "adapter.fs.hasher"
	FingerprintNodeID graft.ID = "adapter.fs.fingerprint"
	FinderNodeID      graft.ID = "adapter.fs.finder"
	WriterNodeID      graft.ID = "adapter.fs.writer"
)

func init() {
	// Concrete hasher, shared by the fingerprint port and the writer.
	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        FingerprintNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return hasher, nil
		},
	})

	graft.Register(graft.Node[ports.DocumentFinder]{
		ID:        FinderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DocumentFinder, error) {
			return NewFinder(), nil
		},
	})

	graft.Register(graft.Node[ports.FileWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.FileWriter, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(hasher), nil
		},
	})
}
