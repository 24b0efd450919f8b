// Package app implements the application layer for prerender.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/prerender/internal/engine/batch"
	"go.trai.ch/prerender/internal/engine/stylesheet"
	"go.trai.ch/zerr"
)

// logSettings is implemented by loggers whose output can be switched at runtime.
type logSettings interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	finder       ports.DocumentFinder
	manager      *stylesheet.Manager
	runner       *batch.Runner
	store        ports.ArtifactStore
	writer       ports.FileWriter
	tracer       ports.Tracer
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	finder ports.DocumentFinder,
	manager *stylesheet.Manager,
	runner *batch.Runner,
	store ports.ArtifactStore,
	writer ports.FileWriter,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		finder:       finder,
		manager:      manager,
		runner:       runner,
		store:        store,
		writer:       writer,
		tracer:       tracer,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigPath points at a config file. Empty picks up prerender.yaml from the working directory.
	ConfigPath string
	// Force recompiles the stylesheet even when the cached fingerprint matches.
	Force bool
	// Jobs overrides the configured concurrency limit when set.
	Jobs *int
	// SkipUnchanged enables skipping identical outputs on top of the config.
	SkipUnchanged bool
	Verbose       bool
	JSON          bool
}

// Run compiles the stylesheet if needed and transforms every document below outputDir.
// An empty outputDir means the working directory.
func (a *App) Run(ctx context.Context, outputDir string, opts RunOptions) error {
	a.configureLogger(opts.Verbose, opts.JSON)

	defer func() {
		if err := a.tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("failed to flush traces: " + err.Error())
		}
	}()

	// 1. Resolve the layout
	dir, err := resolveOutputDir(outputDir)
	if err != nil {
		return err
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Jobs != nil {
		cfg.Jobs = *opts.Jobs
	}
	cfg.SkipUnchanged = cfg.SkipUnchanged || opts.SkipUnchanged
	if err := cfg.Validate(); err != nil {
		return err
	}

	layout := domain.NewLayout(dir, cfg)

	// 2. Discover documents
	docs, err := a.finder.Find(layout)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		a.logger.Debug(fmt.Sprintf("no %s found below %s, nothing to do", layout.EntryDocument, layout.OutputDir))
		return nil
	}

	// 3. Resolve the compiled stylesheet
	artifact, err := a.manager.Resolve(ctx, layout, opts.Force)
	if err != nil {
		return err
	}

	// 4. Transform
	_, err = a.runner.Run(ctx, layout, artifact, docs, batch.Options{
		Jobs:          cfg.Jobs,
		SkipUnchanged: cfg.SkipUnchanged,
	})
	return err
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Verbose    bool
	JSON       bool
}

// Clean removes the cache files and any working files a previous run left behind.
func (a *App) Clean(ctx context.Context, outputDir string, opts CleanOptions) error {
	a.configureLogger(opts.Verbose, opts.JSON)

	dir, err := resolveOutputDir(outputDir)
	if err != nil {
		return err
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	layout := domain.NewLayout(dir, cfg)

	release, err := a.store.Lock(ctx, layout)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path string) {
		if err := a.writer.Remove(path); err != nil {
			errs = errors.Join(errs, err)
			return
		}
		a.logger.Debug("removed " + path)
	}

	a.logger.Info("removing stylesheet cache...")
	if err := a.store.Clear(layout); err != nil {
		errs = errors.Join(errs, err)
	}
	remove(layout.TransientPath)
	remove(layout.ActivePath)

	release()
	remove(layout.LockPath)

	if errs != nil {
		return errs
	}
	a.logger.Info("removed stylesheet cache")
	return nil
}

func (a *App) configureLogger(verbose, json bool) {
	if s, ok := a.logger.(logSettings); ok {
		s.SetVerbose(verbose)
		s.SetJSON(json)
	}
}

func resolveOutputDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Join(domain.ErrFailedToGetOutputDir, err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Join(domain.ErrFailedToGetOutputDir, zerr.With(err, "path", dir))
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(domain.ErrOutputDirNotFound, "invalid output directory"), "path", abs)
		}
		return "", errors.Join(domain.ErrFailedToGetOutputDir, zerr.With(err, "path", abs))
	}
	if !info.IsDir() {
		return "", zerr.With(zerr.Wrap(domain.ErrOutputDirNotDirectory, "invalid output directory"), "path", abs)
	}
	return abs, nil
}
