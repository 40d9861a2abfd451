// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ccdrive/internal/adapters/cas"
	_ "go.trai.ch/ccdrive/internal/adapters/codegen"
	_ "go.trai.ch/ccdrive/internal/adapters/config"
	_ "go.trai.ch/ccdrive/internal/adapters/detector"
	_ "go.trai.ch/ccdrive/internal/adapters/fs"
	_ "go.trai.ch/ccdrive/internal/adapters/libcache"
	_ "go.trai.ch/ccdrive/internal/adapters/logger"
	_ "go.trai.ch/ccdrive/internal/adapters/shell"
	_ "go.trai.ch/ccdrive/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/ccdrive/internal/app"
	_ "go.trai.ch/ccdrive/internal/engine/pipeline"
)
