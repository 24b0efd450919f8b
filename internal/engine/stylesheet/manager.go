// Package stylesheet resolves the compiled stylesheet, reusing the cached artifact
// while the stylesheet sources are unchanged.
package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager implements the stylesheet cache check and compile step.
type Manager struct {
	hasher   ports.Hasher
	store    ports.ArtifactStore
	compiler ports.Compiler
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewManager creates a new Manager.
func NewManager(
	hasher ports.Hasher,
	store ports.ArtifactStore,
	compiler ports.Compiler,
	tracer ports.Tracer,
	logger ports.Logger,
) *Manager {
	return &Manager{
		hasher:   hasher,
		store:    store,
		compiler: compiler,
		tracer:   tracer,
		logger:   logger,
	}
}

// Resolve returns the compiled stylesheet for layout.
//
// The stored artifact is reused when its fingerprint equals the fingerprint of the
// current sources and force is false. Otherwise the entry stylesheet is compiled and
// the result persisted. The whole sequence holds the cache lock.
func (m *Manager) Resolve(ctx context.Context, layout domain.Layout, force bool) (domain.Artifact, error) {
	ctx, span := m.tracer.Start(ctx, "compile",
		ports.WithAttribute("stylesheet", layout.EntryStylesheet()),
		ports.WithAttribute("force", force),
	)
	defer span.End()

	artifact, err := m.resolve(ctx, layout, force)
	if err != nil {
		span.RecordError(err)
		return domain.Artifact{}, err
	}

	span.SetAttribute("cached", artifact.Cached)
	span.SetAttribute("fingerprint", artifact.Fingerprint.String())
	return artifact, nil
}

func (m *Manager) resolve(ctx context.Context, layout domain.Layout, force bool) (domain.Artifact, error) {
	release, err := m.store.Lock(ctx, layout)
	if err != nil {
		return domain.Artifact{}, err
	}
	defer release()

	fingerprint, err := m.hasher.Fingerprint(layout.OutputDir, layout.Stylesheets)
	if err != nil {
		return domain.Artifact{}, err
	}

	if !force {
		cached, err := m.store.Get(layout)
		if err != nil {
			return domain.Artifact{}, err
		}
		if cached != nil && cached.Fingerprint == fingerprint {
			m.logger.Info(fmt.Sprintf("stylesheet unchanged, using cache (%s)", humanize.Bytes(uint64(len(cached.Content)))))
			return *cached, nil
		}
	}

	m.logger.Debug("compiling " + layout.EntryStylesheet())
	start := time.Now()

	content, err := m.compiler.Compile(ctx, layout)
	if err != nil {
		return domain.Artifact{}, errors.Join(domain.ErrCompileFailed, err)
	}

	artifact := domain.Artifact{Fingerprint: fingerprint, Content: content}
	if err := m.store.Put(layout, artifact); err != nil {
		return domain.Artifact{}, zerr.With(zerr.Wrap(err, "failed to persist compiled stylesheet"), "fingerprint", fingerprint.String())
	}

	m.logger.Info(fmt.Sprintf("compiled stylesheet in %.1fs (%s)",
		time.Since(start).Seconds(), humanize.Bytes(uint64(len(content)))))

	return artifact, nil
}
