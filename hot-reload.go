// hot-reload.go: dynamic configuration with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// ReloadableSettings is the subset of a cache's tuning knobs that can be
// changed without rebuilding the cache. MaxSize is deliberately absent:
// changing capacity would invalidate the entry set's size invariants
// mid-flight, so it requires constructing a new Factory/cache instead.
type ReloadableSettings struct {
	AgeThreshold float64
	Descending   bool
}

// hotReloadable is implemented by *RankedCache[T, V, M] for any T, V, M;
// HotConfig depends only on this narrow surface so it need not be generic.
type hotReloadable interface {
	SetAgeThreshold(float64)
	SetDescending(bool)
}

// HotConfig watches a configuration file with Argus and applies
// ReloadableSettings changes to a running cache as they are detected.
type HotConfig struct {
	cache   hotReloadable
	watcher *argus.Watcher
	mu      sync.RWMutex
	current ReloadableSettings

	// OnReload is called after configuration is successfully reloaded.
	// Must be fast and non-blocking.
	OnReload func(old, new ReloadableSettings)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch. Supports
	// JSON, YAML, TOML, HCL, INI, and Properties formats (Argus auto-detects
	// by extension).
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(old, new ReloadableSettings)

	Logger Logger
}

// NewHotConfig creates a new hot-reloadable configuration wrapper around
// cache and starts watching opts.ConfigPath immediately.
//
// Example configuration file (YAML):
//
//	cache:
//	  age_threshold: 0.25
//	  descending: false
//
// Supported keys:
//   - cache.age_threshold (float, 0.0-1.0): fraction of capacity, oldest
//     entries first, that ranked eviction considers
//   - cache.descending (bool): evict largest-ranked candidates first
func NewHotConfig(cache hotReloadable, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hc := &HotConfig{
		cache:   cache,
		OnReload: opts.OnReload,
		current: ReloadableSettings{AgeThreshold: DefaultAgeThreshold},
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// Current returns the most recently applied settings.
func (hc *HotConfig) Current() ReloadableSettings {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.current
}

func (hc *HotConfig) handleConfigChange(data map[string]interface{}) {
	hc.mu.Lock()
	old := hc.current
	next := hc.parseSettings(data, old)
	hc.current = next
	hc.mu.Unlock()

	hc.cache.SetAgeThreshold(next.AgeThreshold)
	hc.cache.SetDescending(next.Descending)

	if hc.OnReload != nil {
		hc.OnReload(old, next)
	}
}

func (hc *HotConfig) parseSettings(data map[string]interface{}, fallback ReloadableSettings) ReloadableSettings {
	next := fallback

	section, ok := data["cache"].(map[string]interface{})
	if !ok {
		if _, hasThreshold := data["age_threshold"]; hasThreshold {
			section = data
		} else {
			return next
		}
	}

	if v, ok := parseFloatInRange(section["age_threshold"], -0.0000001, 1.0000001); ok {
		next.AgeThreshold = v
	}
	if v, ok := section["descending"].(bool); ok {
		next.Descending = v
	}

	return next
}

// parseFloatInRange extracts a float64 within the specified range (min, max).
func parseFloatInRange(value interface{}, min, max float64) (float64, bool) {
	if v, ok := value.(float64); ok {
		if v > min && v < max {
			return v, true
		}
	}
	return 0, false
}
