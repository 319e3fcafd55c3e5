// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for pwck8s.
//
// Settings live in a single TOML file with sensible defaults, environment
// variable overrides, validation and hot reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Backend URL, dashboard URL and request pacing
//   - TimingConfig: Grace period, popup duration and countdown tick
//   - Watcher: fsnotify-based reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the caller)
//   - Environment variables (PWCK8S_*)
//   - ~/.pwck8s/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
//	    // push a reload message into the UI
//	})
//	defer w.Close()
package config
