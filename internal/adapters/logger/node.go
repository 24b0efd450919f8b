package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prerender/internal/core/ports"
)

// NodeID identifies the process-wide logger. Every other node that logs depends on it,
// so --verbose and --json applied by the app reach all of them.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run:       provideLogger,
	})
}

// provideLogger starts at info level with the pretty handler on stderr.
func provideLogger(_ context.Context) (ports.Logger, error) {
	return New(), nil
}
