// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/prerender/internal/adapters/cas"
	_ "go.trai.ch/prerender/internal/adapters/config"
	_ "go.trai.ch/prerender/internal/adapters/fs"
	_ "go.trai.ch/prerender/internal/adapters/logger"
	_ "go.trai.ch/prerender/internal/adapters/shell"
	_ "go.trai.ch/prerender/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/prerender/internal/app"
	_ "go.trai.ch/prerender/internal/engine/batch"
	_ "go.trai.ch/prerender/internal/engine/stylesheet"
)
