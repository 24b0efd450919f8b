package commands_test

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prerender/cmd/prerender/commands"
	"go.trai.ch/prerender/internal/app"
	"go.trai.ch/prerender/internal/build"
)

type mockApp struct {
	runFunc   func(ctx context.Context, outputDir string, opts app.RunOptions) error
	cleanFunc func(ctx context.Context, outputDir string, opts app.CleanOptions) error
}

func (m *mockApp) Run(ctx context.Context, outputDir string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, outputDir, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, outputDir string, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, outputDir, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedDir string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, outputDir string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedDir = outputDir
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"output", "--force", "-j", "4", "--skip-unchanged", "-c", "site.yaml", "-v", "--json"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "output", capturedDir)
		assert.True(t, capturedOpts.Force)
		assert.True(t, capturedOpts.SkipUnchanged)
		assert.True(t, capturedOpts.Verbose)
		assert.True(t, capturedOpts.JSON)
		assert.Equal(t, "site.yaml", capturedOpts.ConfigPath)
		require.NotNil(t, capturedOpts.Jobs)
		assert.Equal(t, 4, *capturedOpts.Jobs)
	})

	t.Run("defaults to working directory and config jobs", func(t *testing.T) {
		var capturedOpts app.RunOptions
		capturedDir := "unset"

		mock := &mockApp{
			runFunc: func(_ context.Context, outputDir string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedDir = outputDir
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, capturedDir)
		assert.Nil(t, capturedOpts.Jobs)
		assert.False(t, capturedOpts.Force)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"output"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects more than one output directory", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"a", "b"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
	})
}

func TestCommands_Clean(t *testing.T) {
	var capturedOpts app.CleanOptions
	var capturedDir string

	mock := &mockApp{
		runFunc: func(_ context.Context, _ string, _ app.RunOptions) error {
			panic("should not be called")
		},
		cleanFunc: func(_ context.Context, outputDir string, opts app.CleanOptions) error {
			capturedDir = outputDir
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "public", "--config", "site.yaml", "--verbose"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "public", capturedDir)
	assert.Equal(t, "site.yaml", capturedOpts.ConfigPath)
	assert.True(t, capturedOpts.Verbose)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "prerender version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	mock := &mockApp{
		runFunc: func(_ context.Context, _ string, _ app.RunOptions) error {
			panic("should not be called")
		},
	}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
}

func TestCommands_VerboseShorthand(t *testing.T) {
	for _, args := range [][]string{
		{"output"},
		{"-v", "output"},
		{"clean", "-v", "output"},
		{"version"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var verbose bool
			mock := &mockApp{
				runFunc: func(_ context.Context, _ string, opts app.RunOptions) error {
					verbose = opts.Verbose
					return nil
				},
				cleanFunc: func(_ context.Context, _ string, opts app.CleanOptions) error {
					verbose = opts.Verbose
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(args)
			cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

			require.NotPanics(t, func() {
				require.NoError(t, cli.Execute(context.Background()))
			})
			assert.Equal(t, slices.Contains(args, "-v"), verbose)
		})
	}
}
