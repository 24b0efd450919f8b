package shell

import (
	"bytes"
	"context"

	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
)

var _ ports.Transformer = (*Transformer)(nil)

// Transformer runs the configured transform engine once per document.
// It holds no per-run state and is safe for concurrent use.
type Transformer struct {
	executor *Executor
}

// NewTransformer creates a new Transformer.
func NewTransformer(executor *Executor) *Transformer {
	return &Transformer{executor: executor}
}

// Transform applies the active artifact to doc and returns the engine's standard output.
func (t *Transformer) Transform(ctx context.Context, layout domain.Layout, doc domain.Document) ([]byte, error) {
	argv := domain.ExpandArgs(layout.Tools.TransformerCmd, map[string]string{
		domain.PlaceholderArtifact: layout.ActivePath,
		domain.PlaceholderSource:   doc.SourcePath,
	})

	var stdout bytes.Buffer
	err := t.executor.run(ctx, invocation{
		argv:   argv,
		dir:    layout.OutputDir,
		tools:  layout.Tools,
		stdout: &stdout,
	})
	if err != nil {
		return nil, err
	}

	return stdout.Bytes(), nil
}
