package ports

import "go.trai.ch/prerender/internal/core/domain"

// DocumentFinder discovers the documents to transform.
//
//go:generate go run go.uber.org/mock/mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type DocumentFinder interface {
	// Find returns one document per immediate child directory of layout.OutputDir
	// that contains the entry document, ordered by name.
	Find(layout domain.Layout) ([]domain.Document, error)
}

// FileWriter writes and removes working and output files.
type FileWriter interface {
	// WriteFile atomically replaces path with data.
	// With skipUnchanged set, an existing file with identical content is left untouched
	// and written is false.
	WriteFile(path string, data []byte, skipUnchanged bool) (written bool, err error)

	// Remove deletes path. A missing file is not an error.
	Remove(path string) error
}
