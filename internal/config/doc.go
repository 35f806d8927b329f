// Package config provides the configuration system for inertia.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (INERTIA_*) │
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/inertia/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Layering is done by viper. Files are parsed by the loader sub-package
// (TOML or YAML, chosen by extension) and merged into viper as maps.
//
// # Sub-packages
//
//   - loader: TOML and YAML file loading
//   - watcher: fsnotify-based live reload
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithFile("inertia.toml"))
//	if err != nil {
//	    return err
//	}
//	view.SetConfig(cfg.Scroll)
//
// # Configuration Files
//
//	# ~/.config/inertia/config.toml
//	[scroll]
//	deceleration = 0.98
//	bounce = 0.7
//	flick_min_distance = 10
//
//	[log]
//	level = "debug"
//	file = "/tmp/inertia.log"
//
// # Error Handling
//
//   - ErrValidationFailed: a value lies outside its documented domain
//   - ErrFileNotFound: an explicitly named config file doesn't exist
//   - ErrUnsupportedFormat: the file extension has no loader
package config
