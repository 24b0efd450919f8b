package fs_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prerender/internal/adapters/fs"
	"go.trai.ch/prerender/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func sha256Hex(s string) domain.Fingerprint {
	sum := sha256.Sum256([]byte(s))
	return domain.Fingerprint(hex.EncodeToString(sum[:]))
}

func TestHasher_Fingerprint_ConcatenatesInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "default.xsl"), "A")
	writeFile(t, filepath.Join(root, "core.xsl"), "B")

	h := fs.NewHasher()

	got, err := h.Fingerprint(root, []string{"default.xsl", "core.xsl"})
	require.NoError(t, err)
	assert.Equal(t, sha256Hex("AB"), got)

	reversed, err := h.Fingerprint(root, []string{"core.xsl", "default.xsl"})
	require.NoError(t, err)
	assert.Equal(t, sha256Hex("BA"), reversed)
}

func TestHasher_Fingerprint_MissingFilesContributeNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "default.xsl"), "A")

	got, err := fs.NewHasher().Fingerprint(root, domain.DefaultStylesheets())
	require.NoError(t, err)
	assert.Equal(t, sha256Hex("A"), got)
}

func TestHasher_Fingerprint_AllMissing(t *testing.T) {
	got, err := fs.NewHasher().Fingerprint(t.TempDir(), domain.DefaultStylesheets())
	require.NoError(t, err)
	assert.Equal(t, domain.Fingerprint("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"), got)
}

func TestHasher_Fingerprint_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "default.xsl"), "<xsl:stylesheet/>")

	h := fs.NewHasher()
	first, err := h.Fingerprint(root, []string{"default.xsl"})
	require.NoError(t, err)
	second, err := h.Fingerprint(root, []string{"default.xsl"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.String(), 64)
}

func TestHasher_Fingerprint_ContentChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "tree.xsl")
	writeFile(t, path, "one")

	h := fs.NewHasher()
	before, err := h.Fingerprint(root, []string{"tree.xsl"})
	require.NoError(t, err)

	writeFile(t, path, "two")
	after, err := h.Fingerprint(root, []string{"tree.xsl"})
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestHasher_Fingerprint_UnreadableEntry(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "default.xsl"), domain.DirPerm))

	_, err := fs.NewHasher().Fingerprint(root, []string{"default.xsl"})
	require.ErrorIs(t, err, domain.ErrFingerprintFailed)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	writeFile(t, path, "<html/>")

	got, err := fs.NewHasher().ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64String("<html/>"), got)

	_, err = fs.NewHasher().ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
