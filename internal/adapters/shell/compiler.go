package shell

import (
	"context"
	"os"

	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler runs the configured stylesheet compiler in the output directory.
type Compiler struct {
	executor *Executor
}

// NewCompiler creates a new Compiler.
func NewCompiler(executor *Executor) *Compiler {
	return &Compiler{executor: executor}
}

// Compile exports the entry stylesheet to layout.TransientPath, reads it back and removes it.
func (c *Compiler) Compile(ctx context.Context, layout domain.Layout) ([]byte, error) {
	defer os.Remove(layout.TransientPath) //nolint:errcheck // Best effort cleanup of the export

	argv := domain.ExpandArgs(layout.Tools.CompilerCmd, map[string]string{
		domain.PlaceholderStylesheet: layout.EntryStylesheet(),
		domain.PlaceholderExport:     layout.TransientPath,
	})

	err := c.executor.run(ctx, invocation{
		argv:  argv,
		dir:   layout.OutputDir,
		tools: layout.Tools,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to run stylesheet compiler"), "stylesheet", layout.EntryStylesheet())
	}

	data, err := os.ReadFile(layout.TransientPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read compiled stylesheet"), "path", layout.TransientPath)
	}

	return data, nil
}
