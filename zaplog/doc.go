// Package zaplog adapts zap.Logger to rankedcache.Logger.
//
// # Quick Start
//
//	z, _ := zap.NewProduction()
//	logger := zaplog.New(z)
//
//	factory, err := rankedcache.NewFactory[Document, string, uint64](
//	    rankedcache.HitCountRanker,
//	    rankedcache.FactoryConfig{
//	        MaxSize: 10_000,
//	        Logger:  logger,
//	    },
//	)
//
// keyvals passed to Debug/Info/Warn/Error are treated as alternating
// key/value pairs and converted to zap.Field via zap.Any; a trailing
// unpaired value is logged under the key "extra".
//
// # License
//
// Same as rankedcache core (see LICENSE in main repository).
package zaplog
