// Package config provides the configuration loader for prerender.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
	// Dir is searched for domain.ConfigFileName when no path is given.
	// Empty means the current working directory.
	Dir string
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration file at path and merges it onto the defaults.
// An empty path looks for prerender.yaml in Dir and falls back to the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		found, err := l.discover()
		if err != nil {
			return nil, err
		}
		if found == "" {
			l.logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
			return domain.DefaultConfig(), nil
		}
		path = found
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded config from " + path)
	return cfg, nil
}

func (l *Loader) discover() (string, error) {
	dir := l.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Join(domain.ErrConfigReadFailed, zerr.Wrap(err, "failed to get working directory"))
		}
		dir = wd
	}

	path := filepath.Join(dir, domain.ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", path))
	}
	return path, nil
}

// Load reads a configuration file from path, merges it onto domain.DefaultConfig and validates it.
// Relative tool path entries resolve against the directory of the file.
func Load(path string) (*domain.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", path))
	}

	data, err := os.ReadFile(abs) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", abs))
	}

	var file Prerenderfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", abs))
	}

	cfg := domain.DefaultConfig()
	apply(cfg, &file)
	cfg.BaseDir = filepath.Dir(abs)

	if err := cfg.Validate(); err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	return cfg, nil
}

func apply(cfg *domain.Config, file *Prerenderfile) {
	if file.Stylesheets != nil {
		cfg.Stylesheets = file.Stylesheets
	}
	if file.EntryDocument != "" {
		cfg.EntryDocument = file.EntryDocument
	}
	if file.OutputDocument != "" {
		cfg.OutputDocument = file.OutputDocument
	}
	if file.CacheDir != "" {
		cfg.CacheDir = file.CacheDir
	}
	if file.Cache.Artifact != "" {
		cfg.ArtifactFile = file.Cache.Artifact
	}
	if file.Cache.Hash != "" {
		cfg.HashFile = file.Cache.Hash
	}
	if file.Compiler.Cmd != nil {
		cfg.CompilerCmd = file.Compiler.Cmd
	}
	if file.Transformer.Cmd != nil {
		cfg.TransformerCmd = file.Transformer.Cmd
	}
	if file.Path != nil {
		cfg.Path = file.Path
	}
	if file.Environment != nil {
		cfg.Environment = file.Environment
	}
	if file.Jobs != nil {
		cfg.Jobs = *file.Jobs
	}
	if file.SkipUnchanged != nil {
		cfg.SkipUnchanged = *file.SkipUnchanged
	}
}
