package ports

import "go.trai.ch/prerender/internal/core/domain"

// ConfigLoader defines the interface for loading the run configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and merges it onto the defaults.
	// An empty path picks up prerender.yaml from the working directory when present
	// and returns the defaults otherwise.
	Load(path string) (*domain.Config, error)
}
