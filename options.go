package kws

import (
	"fmt"
	"log/slog"
)

// Default option values, following the KWS15 evaluation plan.
const (
	DefaultMaxDistance      = 50
	DefaultCostFA           = 0.1
	DefaultValueCorr        = 1.0
	DefaultPriorProbability = 1e-4
	DefaultScoreThreshold   = 0.5
	DefaultSweepStep        = 0.05
)

// AlignerOption configures an Aligner.
type AlignerOption func(*alignerConfig)

type alignerConfig struct {
	maxDistance int
	scoreFunc   ScoreFunc
	logger      *slog.Logger
}

func (c alignerConfig) validate() error {
	if c.maxDistance < 0 {
		return fmt.Errorf("%w: max_distance must not be negative, got %d", ErrInvalidConfig, c.maxDistance)
	}
	if c.scoreFunc == nil {
		return fmt.Errorf("%w: score function is nil", ErrInvalidConfig)
	}
	return nil
}

func defaultAlignerConfig() alignerConfig {
	return alignerConfig{
		maxDistance: DefaultMaxDistance,
		scoreFunc:   CenterDistanceScore,
		logger:      slog.Default(),
	}
}

// WithMaxDistance sets the maximum center distance, in frames, between a
// reference and a hypothesis considered for a match (default: 50).
func WithMaxDistance(frames int) AlignerOption {
	return func(c *alignerConfig) {
		c.maxDistance = frames
	}
}

// WithScoreFunc replaces the match scoring policy (default: CenterDistanceScore).
func WithScoreFunc(f ScoreFunc) AlignerOption {
	return func(c *alignerConfig) {
		c.scoreFunc = f
	}
}

// WithAlignerLogger sets the logger (default: slog.Default()).
func WithAlignerLogger(l *slog.Logger) AlignerOption {
	return func(c *alignerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// MetricsOption configures a Metrics engine.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	costFA           float64
	valueCorr        float64
	priorProbability float64
	scoreThreshold   float64
	sweepStep        float64
	audioDuration    float64
	logger           *slog.Logger
}

func defaultMetricsConfig() metricsConfig {
	return metricsConfig{
		costFA:           DefaultCostFA,
		valueCorr:        DefaultValueCorr,
		priorProbability: DefaultPriorProbability,
		scoreThreshold:   DefaultScoreThreshold,
		sweepStep:        DefaultSweepStep,
		logger:           slog.Default(),
	}
}

// beta is the weight of one unit of false-alarm probability.
func (c metricsConfig) beta() float64 {
	return (c.costFA / c.valueCorr) * (1/c.priorProbability - 1)
}

// WithCostFA sets the cost of a false alarm (default: 0.1).
func WithCostFA(v float64) MetricsOption {
	return func(c *metricsConfig) {
		c.costFA = v
	}
}

// WithValueCorr sets the value of a correct detection (default: 1.0).
func WithValueCorr(v float64) MetricsOption {
	return func(c *metricsConfig) {
		c.valueCorr = v
	}
}

// WithPriorProbability sets the keyword prior (default: 1e-4).
func WithPriorProbability(p float64) MetricsOption {
	return func(c *metricsConfig) {
		c.priorProbability = p
	}
}

// WithScoreThreshold sets the decision threshold used for ATWV (default: 0.5).
func WithScoreThreshold(t float64) MetricsOption {
	return func(c *metricsConfig) {
		c.scoreThreshold = t
	}
}

// WithSweepStep sets the bin width of the oracle threshold sweep (default: 0.05).
func WithSweepStep(s float64) MetricsOption {
	return func(c *metricsConfig) {
		c.sweepStep = s
	}
}

// WithAudioDuration sets the total audio duration in seconds. It has no
// default and every metric fails until it is set to a positive value.
func WithAudioDuration(seconds float64) MetricsOption {
	return func(c *metricsConfig) {
		c.audioDuration = seconds
	}
}

// WithMetricsLogger sets the logger (default: slog.Default()).
func WithMetricsLogger(l *slog.Logger) MetricsOption {
	return func(c *metricsConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
