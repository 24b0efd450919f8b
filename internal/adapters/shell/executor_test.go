package shell_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prerender/internal/adapters/shell"
	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newLayout(t *testing.T, configure func(cfg *domain.Config)) domain.Layout {
	t.Helper()

	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(out, domain.DirPerm))

	cfg := domain.DefaultConfig()
	cfg.Path = nil
	if configure != nil {
		configure(cfg)
	}
	return domain.NewLayout(out, cfg)
}

func writeDocument(t *testing.T, layout domain.Layout, name, content string) domain.Document {
	t.Helper()

	doc := layout.Document(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(doc.SourcePath), domain.DirPerm))
	require.NoError(t, os.WriteFile(doc.SourcePath, []byte(content), domain.FilePerm))
	return doc
}

func TestTransformer_Transform_ReturnsStdout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.TransformerCmd = []string{"sh", "-c", `printf '%s|' "$0"; cat "$1"`, "{artifact}", "{source}"}
	})
	doc := writeDocument(t, layout, "a", "<doc/>")

	transformer := shell.NewTransformer(shell.NewExecutor(mockLogger))

	got, err := transformer.Transform(t.Context(), layout, doc)
	require.NoError(t, err)
	assert.Equal(t, layout.ActivePath+"|<doc/>", string(got))
}

func TestTransformer_Transform_FailureCarriesStderrAndExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.TransformerCmd = []string{"sh", "-c", "echo 'XTDE0640: bad input' >&2; exit 3"}
	})
	doc := writeDocument(t, layout, "a", "<doc/>")

	_, err := shell.NewTransformer(shell.NewExecutor(mockLogger)).Transform(t.Context(), layout, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
	assert.Contains(t, err.Error(), "XTDE0640: bad input")

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "sh", zErr.Metadata()["command"])
}

func TestTransformer_Transform_StderrOnSuccessIsWarned(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("xsl:message one").Times(1)
	mockLogger.EXPECT().Warn("xsl:message two").Times(1)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.TransformerCmd = []string{"sh", "-c", "echo 'xsl:message one' >&2; echo 'xsl:message two' >&2; echo ok"}
	})
	doc := writeDocument(t, layout, "a", "<doc/>")

	got, err := shell.NewTransformer(shell.NewExecutor(mockLogger)).Transform(t.Context(), layout, doc)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(got))
}

func TestTransformer_Transform_ToolPathAndEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	bin := t.TempDir()
	script := "#!/bin/sh\nprintf '%s' \"$PRERENDER_TEST_VAR\"\n"
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(bin, "fake-xslt3"), []byte(script), 0o700))

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.TransformerCmd = []string{"fake-xslt3", "-xsl:{artifact}", "-s:{source}"}
		cfg.Path = []string{bin}
		cfg.Environment = map[string]string{"PRERENDER_TEST_VAR": "from-config"}
	})
	doc := writeDocument(t, layout, "a", "<doc/>")

	got, err := shell.NewTransformer(shell.NewExecutor(mockLogger)).Transform(t.Context(), layout, doc)
	require.NoError(t, err)
	assert.Equal(t, "from-config", string(got))
}

func TestTransformer_Transform_CommandNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.TransformerCmd = []string{"nonexistent-command-xyz123"}
	})
	doc := writeDocument(t, layout, "a", "<doc/>")

	_, err := shell.NewTransformer(shell.NewExecutor(mockLogger)).Transform(t.Context(), layout, doc)
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestTransformer_Transform_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.TransformerCmd = nil
	})
	doc := writeDocument(t, layout, "a", "<doc/>")

	_, err := shell.NewTransformer(shell.NewExecutor(mockLogger)).Transform(t.Context(), layout, doc)
	require.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestCompiler_Compile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("compiled default.xsl").Times(1)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.CompilerCmd = []string{"sh", "-c", `cat "$0" > "$1"; printf 'compiled %s' "$0"`, "{stylesheet}", "{export}"}
	})
	require.NoError(t, os.WriteFile(filepath.Join(layout.OutputDir, "default.xsl"), []byte("<xsl/>"), domain.FilePerm))

	got, err := shell.NewCompiler(shell.NewExecutor(mockLogger)).Compile(t.Context(), layout)
	require.NoError(t, err)
	assert.Equal(t, "<xsl/>", string(got))
	assert.NoFileExists(t, layout.TransientPath)
}

func TestCompiler_Compile_RunsInOutputDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.CompilerCmd = []string{"sh", "-c", `pwd -P > "$0"`, "{export}"}
	})

	got, err := shell.NewCompiler(shell.NewExecutor(mockLogger)).Compile(t.Context(), layout)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(layout.OutputDir)
	require.NoError(t, err)
	assert.Equal(t, want, strings.TrimSpace(string(got)))
}

func TestCompiler_Compile_FailureRemovesTransient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.CompilerCmd = []string{"sh", "-c", `echo partial > "$0"; echo 'XTSE0010: syntax error' >&2; exit 2`, "{export}"}
	})

	_, err := shell.NewCompiler(shell.NewExecutor(mockLogger)).Compile(t.Context(), layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XTSE0010")
	assert.NoFileExists(t, layout.TransientPath)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "default.xsl", zErr.Metadata()["stylesheet"])
}

func TestCompiler_Compile_MissingExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.CompilerCmd = []string{"true"}
	})

	_, err := shell.NewCompiler(shell.NewExecutor(mockLogger)).Compile(t.Context(), layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read compiled stylesheet")
}

func TestCompiler_Compile_EmptyCommandKeepsSentinel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	layout := newLayout(t, func(cfg *domain.Config) {
		cfg.CompilerCmd = nil
	})

	_, err := shell.NewCompiler(shell.NewExecutor(mockLogger)).Compile(t.Context(), layout)
	require.ErrorIs(t, err, domain.ErrEmptyCommand)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "default.xsl", zErr.Metadata()["stylesheet"])
}
