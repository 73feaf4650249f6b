// factory.go: Factory and cache construction
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

// Factory holds the ranking policy and capacity shape shared by every cache
// it produces. M is the ranker's metric type (e.g. uint64 for HitCountRanker,
// time.Duration for TotalDurationRanker); T is the key type; V is the value
// type. One Factory can stamp out many independent caches over the same
// memoization shape but different compute functions: the ranking policy
// and capacity shape are fixed once, while each cache supplies its own
// compute function and error-caching choice.
type Factory[T any, V any, M Ordered] struct {
	ranker Ranker[M]
	cfg    FactoryConfig
}

// NewFactory validates cfg and binds it to ranker. Returns InvalidArgument
// (via FactoryConfig.Validate, plus a nil-ranker check of its own) for any
// of: ranker == nil, MaxSize <= 0, AgeThreshold outside [0, 1].
func NewFactory[T any, V any, M Ordered](ranker Ranker[M], cfg FactoryConfig) (*Factory[T, V, M], error) {
	if ranker == nil {
		return nil, NewErrNilRanker()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Factory[T, V, M]{ranker: ranker, cfg: cfg}, nil
}

// CreateCache builds a new RankedCache that memoizes compute. compute must
// be non-nil and is called at most once per live key between evictions,
// except that an error result is not cached unless opts.CacheErrors is
// set, so the next GetOrAdd for that key calls compute again.
func (f *Factory[T, V, M]) CreateCache(compute func(*T) (V, error), opts CacheOptions) (*RankedCache[T, V, M], error) {
	if compute == nil {
		return nil, NewErrNilCompute()
	}
	return newRankedCache(f.ranker, f.cfg, compute, opts), nil
}
