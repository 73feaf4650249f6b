// config.go: construction parameters for a ranked cache
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

// FactoryConfig holds the parameters shared by every cache a Factory
// produces: the ranking policy and capacity shape. These are fixed for the
// lifetime of the Factory; MaxSize changes require building a new
// Factory, since hot-reload only re-tunes AgeThreshold and Descending.
type FactoryConfig struct {
	// MaxSize is the maximum number of entries a cache produced by this
	// factory can hold after a completed trim. Must be > 0.
	MaxSize int

	// AgeThreshold sets the age window for ranked eviction: each pass
	// ranks only the oldest max(1, floor(MaxSize * AgeThreshold)) entries,
	// so younger entries are shielded while older candidates remain.
	// Must be within [0, 1]. Default: DefaultAgeThreshold.
	AgeThreshold float64

	// Descending, if true, evicts the largest-ranked candidates first;
	// otherwise the smallest-ranked candidates are evicted first.
	Descending bool

	// Clock provides monotonic time for entry stamping and invoke/lookup
	// timing. If nil, NewSystemClock() is used.
	Clock Clock

	// Logger receives diagnostic messages; the cache logs only when Dispose
	// succeeds. If nil, NoOpLogger is used.
	Logger Logger

	// MetricsCollector receives operation telemetry. If nil,
	// NoOpMetricsCollector is used.
	MetricsCollector MetricsCollector
}

// Validate normalizes defaults and rejects genuinely invalid configuration.
// MaxSize and AgeThreshold map directly to invalid-argument errors: a
// cache with zero capacity or a threshold outside [0, 1] has no sensible
// default, so Validate rejects it rather than silently substituting one.
func (c *FactoryConfig) Validate() error {
	if c.MaxSize <= 0 {
		return NewErrInvalidMaxSize(c.MaxSize)
	}
	if c.AgeThreshold == 0 {
		c.AgeThreshold = DefaultAgeThreshold
	}
	if c.AgeThreshold < 0 || c.AgeThreshold > 1 {
		return NewErrInvalidAgeThreshold(c.AgeThreshold)
	}
	if c.Clock == nil {
		c.Clock = NewSystemClock()
	}
	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}
	return nil
}

// CacheOptions configures a single cache produced by a Factory.
type CacheOptions struct {
	// CacheErrors, if true, captures errors returned by the compute
	// function into cached Error outcomes; if false, errors propagate to
	// the caller and are never cached.
	CacheErrors bool
}
