package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes stylesheet fingerprints and content hashes.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint computes the SHA-256 digest over the contents of files, in order.
// A missing file contributes zero bytes, so creating or deleting one changes the result
// only through the bytes of the remaining files.
func (h *Hasher) Fingerprint(root string, files []string) (domain.Fingerprint, error) {
	digest := sha256.New()

	for _, name := range files {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, name)
		}

		if err := h.hashInto(digest, path); err != nil {
			return "", errors.Join(domain.ErrFingerprintFailed,
				zerr.With(zerr.Wrap(err, "failed to read stylesheet"), "path", path))
		}
	}

	return domain.Fingerprint(hex.EncodeToString(digest.Sum(nil))), nil
}

func (h *Hasher) hashInto(w io.Writer, path string) error {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	_, err = io.Copy(w, f)
	return err
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}
