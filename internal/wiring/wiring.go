// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shelf/internal/adapters/cachefs"
	_ "go.trai.ch/shelf/internal/adapters/config"
	_ "go.trai.ch/shelf/internal/adapters/fetcher"
	_ "go.trai.ch/shelf/internal/adapters/fs"
	_ "go.trai.ch/shelf/internal/adapters/logger"
	_ "go.trai.ch/shelf/internal/adapters/metrics"
	_ "go.trai.ch/shelf/internal/adapters/replay"
	_ "go.trai.ch/shelf/internal/adapters/runstate"
	_ "go.trai.ch/shelf/internal/adapters/secret"
	_ "go.trai.ch/shelf/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/shelf/internal/app"
	_ "go.trai.ch/shelf/internal/engine/cleanup"
	_ "go.trai.ch/shelf/internal/engine/retrieval"
)
