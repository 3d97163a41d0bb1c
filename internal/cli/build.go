package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/foundyear/internal/cache"
	"github.com/ppiankov/foundyear/internal/extract"
	"github.com/ppiankov/foundyear/internal/lookup"
	"github.com/ppiankov/foundyear/internal/metrics"
	"github.com/ppiankov/foundyear/internal/model"
	"github.com/ppiankov/foundyear/internal/pipeline"
)

// newPipeline wires lookup, cache, estimator and renderer from cfg. m may be nil.
func newPipeline(cfg *model.Config, logger *slog.Logger, m *metrics.Metrics) (*pipeline.Pipeline, error) {
	var opts []lookup.Option
	if cfg.Cache.Enabled {
		opts = append(opts, lookup.WithCache(cache.New(cache.Options{
			MemoryTTL: cfg.Cache.MemoryTTL,
			Dir:       cfg.Cache.Dir,
			DiskTTL:   cfg.Cache.DiskTTL,
			KindTTL:   map[string]time.Duration{cache.KindSearch: cfg.Cache.SearchTTL},
		})))
	}
	if m != nil {
		opts = append(opts, lookup.WithObserver(m.ObserveRequest))
	}

	l, err := lookup.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create lookup: %w", err)
	}

	estimator, err := newEstimator(cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.NewPipeline(l, estimator, pipeline.NewRenderer(cfg.Output.LegacyLists), logger), nil
}

func newEstimator(cfg *model.Config) (*extract.Estimator, error) {
	estimator, err := extract.NewEstimatorFromConfig(cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("create estimator: %w", err)
	}
	return estimator, nil
}
