package logger_test

import (
	"bytes"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prerender/internal/adapters/logger"
	"go.trai.ch/prerender/internal/core/ports"
)

func TestNode_ProvidesInfoLevelLogger(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	provided, _, err := graft.ExecuteFor[ports.Logger](t.Context())
	require.NoError(t, err)

	lg, ok := provided.(*logger.Logger)
	require.True(t, ok, "expected *logger.Logger, got %T", provided)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)

	lg.Debug("hidden")
	lg.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
