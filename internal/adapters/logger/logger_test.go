package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prerender/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("transformed 3 pages in 0.4s")

	assert.Equal(t, "transformed 3 pages in 0.4s\n", buf.String())
}

func TestLogger_DebugRequiresVerbose(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.Debug("shown")
	assert.Equal(t, "shown\n", buf.String())

	lg.SetVerbose(false)
	lg.Debug("hidden again")
	assert.Equal(t, "shown\n", buf.String())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Warn("careful")

	assert.Equal(t, "! careful\n", buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.Wrap(zerr.New("exit status 1"), "command failed"), "exit_code", 1)
	lg.Error(err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ Error: command failed"))
	assert.Contains(t, out, "exit_code: 1")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ exit status 1")
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("cache hit")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "cache hit", record["msg"])
}

func TestLogger_SetOutputNilFallsBackToStderr(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetOutput(nil)

	lg.Info("to stderr")

	assert.Empty(t, buf.String())
}
