// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fpdgen/internal/adapters/config"
	_ "go.trai.ch/fpdgen/internal/adapters/fpd"
	_ "go.trai.ch/fpdgen/internal/adapters/fs"
	_ "go.trai.ch/fpdgen/internal/adapters/logger"
	_ "go.trai.ch/fpdgen/internal/adapters/shell"
	_ "go.trai.ch/fpdgen/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/fpdgen/internal/app"
)
