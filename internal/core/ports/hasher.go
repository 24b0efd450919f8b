package ports

import "go.trai.ch/prerender/internal/core/domain"

// Hasher defines the interface for computing content digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint digests the named files, in order, relative to root.
	// Missing files contribute no bytes.
	Fingerprint(root string, files []string) (domain.Fingerprint, error)
}
