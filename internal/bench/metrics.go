package bench

import (
	"fmt"
	"log/slog"

	kws "github.com/jamesainslie/go-kws"
)

// Config holds scoring parameters shared by all corpora.
type Config struct {
	MaxDistance int
	ScoreFunc   kws.ScoreFunc
	// Metrics configures every engine. The audio duration is set per corpus
	// and for the merged total, so options here should not include it.
	Metrics []kws.MetricsOption
	// Duration, when positive, replaces the summed corpus durations for the
	// merged engine.
	Duration    float64
	Parallelism int
	Logger      *slog.Logger
}

// DefaultConfig returns default scoring configuration.
func DefaultConfig() Config {
	return Config{
		MaxDistance: kws.DefaultMaxDistance,
		ScoreFunc:   kws.CenterDistanceScore,
		Parallelism: 4,
		Logger:      slog.Default(),
	}
}

// CorpusResult summarises the alignment of one corpus.
type CorpusResult struct {
	ID          string
	Refs        int
	Hyps        int
	Matched     int
	Misses      int
	FalseAlarms int
	Alignment   *kws.Alignment
}

// ScoreCorpus aligns one corpus and returns an engine holding its
// statistics, configured with the corpus's own duration.
func ScoreCorpus(c *Corpus, cfg Config) (*kws.Metrics, CorpusResult, error) {
	al, err := kws.NewAligner(
		kws.WithMaxDistance(cfg.MaxDistance),
		kws.WithScoreFunc(cfg.ScoreFunc),
		kws.WithAlignerLogger(cfg.Logger),
	)
	if err != nil {
		return nil, CorpusResult{}, fmt.Errorf("corpus %s: %w", c.ID, err)
	}
	for i, r := range c.Refs {
		if err := al.AddRef(r); err != nil {
			return nil, CorpusResult{}, fmt.Errorf("corpus %s: reference %d: %w", c.ID, i+1, err)
		}
	}
	for i, h := range c.Hyps {
		if err := al.AddHyp(h); err != nil {
			return nil, CorpusResult{}, fmt.Errorf("corpus %s: hypothesis %d: %w", c.ID, i+1, err)
		}
	}

	ali := al.Align()
	res := CorpusResult{
		ID:        c.ID,
		Refs:      al.NumRefs(),
		Hyps:      al.NumHyps(),
		Alignment: ali,
	}
	res.Matched, res.Misses, res.FalseAlarms = ali.Counts()

	m := kws.NewMetrics(metricsOptions(cfg, c.Duration)...)
	m.AddAlignment(ali)
	return m, res, nil
}

func metricsOptions(cfg Config, duration float64) []kws.MetricsOption {
	opts := make([]kws.MetricsOption, 0, len(cfg.Metrics)+2)
	opts = append(opts, cfg.Metrics...)
	opts = append(opts, kws.WithAudioDuration(duration), kws.WithMetricsLogger(cfg.Logger))
	return opts
}
