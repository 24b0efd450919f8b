// Package cas implements the on-disk store for the compiled stylesheet.
package cas

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
)

// lockRetryDelay is the interval between attempts to take the cache lock.
const lockRetryDelay = 50 * time.Millisecond

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore with two sibling files: the artifact and its fingerprint.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the cached artifact, or nil if either file is missing.
func (s *Store) Get(layout domain.Layout) (*domain.Artifact, error) {
	hash, ok, err := readOptional(layout.HashPath)
	if err != nil || !ok {
		return nil, err
	}

	content, ok, err := readOptional(layout.ArtifactPath)
	if err != nil || !ok {
		return nil, err
	}

	return &domain.Artifact{
		Fingerprint: domain.Fingerprint(strings.TrimSpace(string(hash))),
		Content:     content,
		Cached:      true,
	}, nil
}

// Put persists the artifact and then its fingerprint.
// The old fingerprint is removed first so an interrupted write never pairs
// a fingerprint with an artifact compiled from different sources.
func (s *Store) Put(layout domain.Layout, artifact domain.Artifact) error {
	if err := os.MkdirAll(layout.CacheDir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrStoreCreateFailed, zerr.With(err, "path", layout.CacheDir))
	}

	if err := os.Remove(layout.HashPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", layout.HashPath))
	}

	if err := atomic.WriteFile(layout.ArtifactPath, bytes.NewReader(artifact.Content)); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", layout.ArtifactPath))
	}

	if err := atomic.WriteFile(layout.HashPath, strings.NewReader(artifact.Fingerprint.String())); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", layout.HashPath))
	}

	return nil
}

// Lock takes an exclusive lock on layout.LockPath, waiting until it is free or ctx is done.
func (s *Store) Lock(ctx context.Context, layout domain.Layout) (func(), error) {
	if err := os.MkdirAll(layout.CacheDir, domain.DirPerm); err != nil {
		return nil, errors.Join(domain.ErrStoreCreateFailed, zerr.With(err, "path", layout.CacheDir))
	}

	fl := flock.New(layout.LockPath)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, errors.Join(domain.ErrLockFailed, zerr.With(err, "path", layout.LockPath))
	}
	if !locked {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockFailed, "lock not acquired"), "path", layout.LockPath)
	}

	return func() {
		_ = fl.Close()
	}, nil
}

// Clear removes the artifact and fingerprint files. Missing files are ignored.
func (s *Store) Clear(layout domain.Layout) error {
	for _, path := range []string{layout.HashPath, layout.ArtifactPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", path))
		}
	}
	return nil
}

func readOptional(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the layout
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Join(domain.ErrStoreReadFailed, zerr.With(err, "path", path))
	}
	return data, true, nil
}
