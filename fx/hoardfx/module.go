// Package hoardfx provides an fx module for a string-keyed byte cache, the
// common shape for caching serialized payloads in services.
package hoardfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/hoard"
	"github.com/discochess/hoard/internal/stats"
	"github.com/discochess/hoard/internal/stats/logger"
)

// Config holds the cache configuration supplied by the application.
type Config struct {
	// Capacity is the maximum total weight of resident entries. Required.
	Capacity int64

	// Policy selects the eviction policy. Defaults to LRU when empty.
	Policy hoard.PolicyKind

	// CompactionPercent is the fraction of capacity freed beyond the limit
	// during compaction. Defaults to 0.05 when zero.
	CompactionPercent float64
}

// Module provides a *hoard.Cache[string, []byte] with metrics logged through
// the application logger. Requires a *zap.Logger and a Config.
var Module = fx.Module("hoard",
	fx.Provide(
		newStatsCollector,
		newCache,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("hoard.stats"))
}

// Params holds dependencies for creating the cache.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

func newCache(p Params) (*hoard.Cache[string, []byte], error) {
	opts := []hoard.Option[string, []byte]{
		hoard.WithLogger[string, []byte](p.Logger.Named("hoard")),
		hoard.WithStats[string, []byte](p.Collector),
	}
	if p.Config.Policy != "" {
		opts = append(opts, hoard.WithPolicy[string, []byte](p.Config.Policy))
	}
	if p.Config.CompactionPercent != 0 {
		opts = append(opts, hoard.WithCompactionPercent[string, []byte](p.Config.CompactionPercent))
	}

	cache, err := hoard.New[string, []byte](p.Config.Capacity, opts...)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})

	return cache, nil
}
