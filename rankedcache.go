// rankedcache.go: package-wide constants for the ranked memoization cache
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

const (
	// Version of the rankedcache library.
	Version = "v0.1.0-dev"

	// DefaultMaxSize is a conventional MaxSize value. FactoryConfig.Validate
	// does not substitute it: a zero MaxSize is rejected.
	DefaultMaxSize = 10_000

	// DefaultAgeThreshold is the default fraction of capacity, counted from
	// the oldest entries, that ranked eviction considers as candidates.
	DefaultAgeThreshold = 0.25
)
