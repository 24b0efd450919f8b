// Package fs provides file system adapters for discovering, hashing and writing documents.
package fs

import (
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/prerender/internal/core/domain"
	"go.trai.ch/prerender/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DocumentFinder = (*Finder)(nil)

// Finder discovers document directories below the output directory.
type Finder struct{}

// NewFinder creates a new Finder.
func NewFinder() *Finder {
	return &Finder{}
}

// Find returns one document per immediate child directory of layout.OutputDir that
// contains the entry document. Deeper directories are not searched.
func (f *Finder) Find(layout domain.Layout) ([]domain.Document, error) {
	entries, err := os.ReadDir(layout.OutputDir)
	if err != nil {
		return nil, errors.Join(domain.ErrDiscoveryFailed,
			zerr.With(zerr.Wrap(err, "failed to read output directory"), "path", layout.OutputDir))
	}

	var docs []domain.Document
	for name := range f.candidates(layout.OutputDir, entries) {
		doc := layout.Document(name)
		info, err := os.Stat(doc.SourcePath)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(domain.ErrDiscoveryFailed,
				zerr.With(zerr.Wrap(err, "failed to stat entry document"), "path", doc.SourcePath))
		}
		if info.Mode().IsRegular() {
			docs = append(docs, doc)
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// candidates yields the names of child directories, following symlinks.
func (f *Finder) candidates(root string, entries []iofs.DirEntry) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, entry := range entries {
			if !f.isDir(root, entry) {
				continue
			}
			if !yield(entry.Name()) {
				return
			}
		}
	}
}

func (f *Finder) isDir(root string, entry iofs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&iofs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}
