package ports

import (
	"context"

	"go.trai.ch/prerender/internal/core/domain"
)

// ArtifactStore persists the compiled stylesheet and its fingerprint.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Get returns the cached artifact for the layout.
	// Returns nil, nil if either the artifact or the fingerprint record is missing.
	Get(layout domain.Layout) (*domain.Artifact, error)

	// Put persists the artifact and its fingerprint.
	Put(layout domain.Layout, artifact domain.Artifact) error

	// Lock takes an exclusive lock on the cache files of the layout.
	// The returned function releases it.
	Lock(ctx context.Context, layout domain.Layout) (func(), error)

	// Clear removes the cached artifact and fingerprint.
	Clear(layout domain.Layout) error
}
