// supervisor.go: Argus-backed hot reload for cache sizing
//
// Every Config field (TotalBytes, DirectoryBytes, SingleThreaded) is
// construction-time only: resizing a membuffer core means building a
// new directory and arena, so a reload rebuilds and atomically swaps
// the whole Core rather than patching fields in place.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/agilira/argus"
)

// Supervisor watches a configuration file and rebuilds the Core it
// guards whenever the file changes, swapping the active Core
// atomically so concurrent Get/Set callers always see either the old
// or the new generation, never a half-built one.
type Supervisor struct {
	active  atomic.Pointer[Core]
	watcher *argus.Watcher
	logger  Logger

	// OnReload is called after a new Core has been built and swapped
	// in. Optional; must be fast and non-blocking.
	OnReload func(old, new *Core)
}

// SupervisorOptions configures a Supervisor.
type SupervisorOptions struct {
	// ConfigPath is the file Argus watches. Supports any format
	// argus.UniversalConfigWatcher does (JSON, YAML, TOML, HCL, INI,
	// Properties).
	ConfigPath string

	// PollInterval is how often Argus checks the file. Default 1s,
	// clamped to a 100ms minimum.
	PollInterval time.Duration

	// Logger receives reload events. Default NoOpLogger.
	Logger Logger

	// OnReload is called after a successful rebuild-and-swap.
	OnReload func(old, new *Core)
}

// NewSupervisor builds an initial Core from DefaultConfig, then starts
// watching ConfigPath for total_bytes/directory_bytes/single_threaded
// overrides.
func NewSupervisor(opts SupervisorOptions) (*Supervisor, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("membuf: supervisor requires a config_path")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	sup := &Supervisor{logger: opts.Logger, OnReload: opts.OnReload}
	sup.active.Store(NewCore(DefaultConfig()))

	watcher, err := argus.UniversalConfigWatcherWithConfig(
		opts.ConfigPath,
		sup.handleConfigChange,
		argus.Config{PollInterval: opts.PollInterval},
	)
	if err != nil {
		return nil, err
	}
	sup.watcher = watcher

	return sup, nil
}

// Core returns the currently active generation. Safe to call
// concurrently with a reload swapping it out.
func (s *Supervisor) Core() *Core {
	return s.active.Load()
}

// Start begins watching the configuration file.
func (s *Supervisor) Start() error {
	if s.watcher.IsRunning() {
		return nil
	}
	return s.watcher.Start()
}

// Stop stops watching the configuration file. The last active Core
// remains usable; Stop does not tear it down.
func (s *Supervisor) Stop() error {
	return s.watcher.Stop()
}

func (s *Supervisor) handleConfigChange(data map[string]interface{}) {
	cfg := DefaultConfig()

	if v, ok := parsePositiveUint(data["total_bytes"]); ok {
		cfg.TotalBytes = v
	}
	if v, ok := parsePositiveUint(data["directory_bytes"]); ok {
		cfg.DirectoryBytes = v
	}
	if v, ok := data["single_threaded"].(bool); ok {
		cfg.SingleThreaded = v
	}

	next := NewCore(cfg)
	old := s.active.Swap(next)

	s.logger.Info("membuf: core reloaded",
		"total_bytes", cfg.TotalBytes, "directory_bytes", cfg.DirectoryBytes)

	if s.OnReload != nil {
		s.OnReload(old, next)
	}
}

// parsePositiveUint extracts a positive uint64 from a config value
// that may arrive as int or float64 depending on the source format
// (YAML decodes integers as int, JSON as float64).
func parsePositiveUint(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return uint64(v), true
		}
	case int64:
		if v > 0 {
			return uint64(v), true
		}
	case float64:
		if v > 0 {
			return uint64(v), true
		}
	}
	return 0, false
}
