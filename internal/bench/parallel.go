package bench

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	kws "github.com/jamesainslie/go-kws"
)

// ScoreCorpora scores every corpus with its own aligner and engine,
// concurrently up to cfg.Parallelism, then merges the statistics in corpus
// order so the result does not depend on scheduling.
//
// The merged engine's duration is cfg.Duration when positive, otherwise the
// sum of corpus durations. A zero total is not rejected here; metric
// computation reports it as kws.ErrInvalidConfig.
func ScoreCorpora(ctx context.Context, corpora []*Corpus, cfg Config) (*kws.Metrics, []CorpusResult, error) {
	parts := make([]*kws.Metrics, len(corpora))
	results := make([]CorpusResult, len(corpora))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	}
	for i, c := range corpora {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, res, err := ScoreCorpus(c, cfg)
			if err != nil {
				return err
			}
			parts[i], results[i] = m, res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	duration := cfg.Duration
	if duration <= 0 {
		for _, c := range corpora {
			duration += c.Duration
		}
	}

	merged := kws.NewMetrics(metricsOptions(cfg, duration)...)
	for i, p := range parts {
		if err := merged.Merge(p); err != nil {
			return nil, nil, fmt.Errorf("merging corpus %s: %w", corpora[i].ID, err)
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("bench: corpora scored",
			"corpora", len(corpora),
			"keywords", merged.NumKeywords(),
			"duration", duration,
		)
	}
	return merged, results, nil
}
