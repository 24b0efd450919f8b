package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/natefinch/atomic"
	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileWriter = (*Writer)(nil)

// Writer replaces files atomically.
type Writer struct {
	hasher *Hasher
}

// NewWriter creates a new Writer.
func NewWriter(hasher *Hasher) *Writer {
	return &Writer{hasher: hasher}
}

// WriteFile atomically replaces path with data.
// New files get domain.FilePerm; existing files keep their mode.
func (w *Writer) WriteFile(path string, data []byte, skipUnchanged bool) (bool, error) {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if exists && skipUnchanged {
		current, err := w.hasher.ComputeFileHash(path)
		if err == nil && current == xxhash.Sum64(data) {
			return false, nil
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return false, errors.Join(domain.ErrFileWriteFailed, zerr.With(err, "path", path))
	}

	if !exists {
		if err := os.Chmod(path, domain.FilePerm); err != nil {
			return true, zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", path)
		}
	}

	return true, nil
}

// Remove deletes path. A missing file is not an error.
func (w *Writer) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return errors.Join(domain.ErrFileRemoveFailed, zerr.With(err, "path", path))
	}
	return nil
}
