// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/modsync/internal/adapters/config"
	_ "go.trai.ch/modsync/internal/adapters/fetch"
	_ "go.trai.ch/modsync/internal/adapters/fs"
	_ "go.trai.ch/modsync/internal/adapters/logger"
	_ "go.trai.ch/modsync/internal/adapters/modpack"
	_ "go.trai.ch/modsync/internal/adapters/provider"
	_ "go.trai.ch/modsync/internal/adapters/store"
	_ "go.trai.ch/modsync/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/modsync/internal/app"
	_ "go.trai.ch/modsync/internal/engine/installer"
	_ "go.trai.ch/modsync/internal/engine/resolver"
	_ "go.trai.ch/modsync/internal/engine/updater"
)
