// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/prerender/internal/core/domain"
)

// Compiler turns stylesheet sources into a compiled artifact.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Compiler interface {
	// Compile compiles the entry stylesheet of the layout and returns the exported artifact.
	//
	// The export is written to layout.TransientPath by the external compiler, read back,
	// and removed before Compile returns, whether or not compilation succeeded.
	Compile(ctx context.Context, layout domain.Layout) ([]byte, error)
}

// Transformer applies a compiled stylesheet to a source document.
//
// A Transformer is constructed once per run and shared by all concurrent transforms;
// implementations must be safe for concurrent use.
type Transformer interface {
	// Transform applies the artifact at layout.ActivePath to the source of doc
	// and returns the serialized result.
	Transform(ctx context.Context, layout domain.Layout, doc domain.Document) ([]byte, error)
}
