package kws

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
)

// kwStats accumulates detection events for one keyword.
type kwStats struct {
	ntrue int
	corr  []float64 // scores of correct detections
	fa    []float64 // scores of false alarms
}

// Metrics accumulates alignments and computes the Term-Weighted Value family
// of scores from them.
//
// Statistics are cumulative across AddAlignment and AddStats calls until
// Reset. Metrics is not safe for concurrent use.
type Metrics struct {
	cfg    metricsConfig
	logger *slog.Logger
	stats  map[string]*kwStats
}

// NewMetrics creates a Metrics engine. Options are checked when a metric is
// computed, so a missing audio duration surfaces as ErrInvalidConfig there.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Metrics{
		cfg:    cfg,
		logger: cfg.logger,
		stats:  make(map[string]*kwStats),
	}
}

// Beta returns the per-false-alarm penalty weight.
func (m *Metrics) Beta() float64 { return m.cfg.beta() }

// AudioDuration returns the configured audio duration in seconds.
func (m *Metrics) AudioDuration() float64 { return m.cfg.audioDuration }

// ScoreThreshold returns the ATWV decision threshold.
func (m *Metrics) ScoreThreshold() float64 { return m.cfg.scoreThreshold }

// AddAlignment folds every entry of ali into the statistics.
func (m *Metrics) AddAlignment(ali *Alignment) {
	for _, e := range ali.All() {
		switch e.kind {
		case Matched:
			s := m.keyword(e.ref.KwID)
			s.ntrue++
			s.corr = append(s.corr, e.hyp.Score)
		case Miss:
			m.keyword(e.ref.KwID).ntrue++
		case FalseAlarm:
			s := m.keyword(e.hyp.KwID)
			s.fa = append(s.fa, e.hyp.Score)
		}
	}
}

// Reset forgets all accumulated statistics. Configuration is kept.
func (m *Metrics) Reset() {
	m.stats = make(map[string]*kwStats)
}

// NumKeywords returns the number of keywords with at least one reference
// occurrence, i.e. the keywords that enter the averages.
func (m *Metrics) NumKeywords() int {
	n := 0
	for _, s := range m.stats {
		if s.ntrue > 0 {
			n++
		}
	}
	return n
}

func (m *Metrics) keyword(kw string) *kwStats {
	s, ok := m.stats[kw]
	if !ok {
		s = &kwStats{}
		m.stats[kw] = s
	}
	return s
}

// scoredKeywords returns the ids of keywords with reference occurrences in
// sorted order, so every metric accumulates in the same order.
func (m *Metrics) scoredKeywords() []string {
	ids := make([]string, 0, len(m.stats))
	for kw, s := range m.stats {
		if s.ntrue > 0 {
			ids = append(ids, kw)
		}
	}
	sort.Strings(ids)
	return ids
}

func (m *Metrics) validate() error {
	c := m.cfg
	switch {
	case !(c.audioDuration > 0) || math.IsInf(c.audioDuration, 0):
		return fmt.Errorf("%w: audio_duration must be a positive number of seconds, got %v", ErrInvalidConfig, c.audioDuration)
	case !(c.priorProbability > 0 && c.priorProbability < 1):
		return fmt.Errorf("%w: prior_probability must be in (0, 1), got %v", ErrInvalidConfig, c.priorProbability)
	case !(c.valueCorr > 0):
		return fmt.Errorf("%w: value_corr must be positive, got %v", ErrInvalidConfig, c.valueCorr)
	case !(c.costFA >= 0):
		return fmt.Errorf("%w: cost_fa must not be negative, got %v", ErrInvalidConfig, c.costFA)
	case math.IsNaN(c.scoreThreshold):
		return fmt.Errorf("%w: score_threshold is NaN", ErrInvalidConfig)
	}
	return nil
}

// twv computes a keyword's value from its counts at some threshold.
func (m *Metrics) twv(ntrue, corr, fa int) (pCorr, pFA, value float64) {
	nonTarget := math.Max(m.cfg.audioDuration-float64(ntrue), 1)
	pCorr = clamp01(float64(corr) / float64(ntrue))
	pFA = clamp01(float64(fa) / nonTarget)
	return pCorr, pFA, pCorr - m.cfg.beta()*pFA
}

// ATWV returns the Actual Term-Weighted Value at the configured score
// threshold. With no scored keywords it returns 0.
func (m *Metrics) ATWV() (float64, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}
	ids := m.scoredKeywords()
	if len(ids) == 0 {
		return 0, nil
	}
	var sum float64
	for _, kw := range ids {
		s := m.stats[kw]
		_, _, v := m.twv(s.ntrue, countAtLeast(s.corr, m.cfg.scoreThreshold), countAtLeast(s.fa, m.cfg.scoreThreshold))
		sum += v
	}
	return sum / float64(len(ids)), nil
}

// STWV returns the Supreme Term-Weighted Value: every keyword is scored at
// the threshold, chosen among its own detection scores, that maximizes its
// TWV. A keyword is never worse than 0, the value of rejecting everything.
func (m *Metrics) STWV() (float64, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}
	ids := m.scoredKeywords()
	if len(ids) == 0 {
		return 0, nil
	}

	type event struct {
		score float64
		corr  bool
	}
	var sum float64
	var events []event
	for _, kw := range ids {
		s := m.stats[kw]
		events = events[:0]
		for _, v := range s.corr {
			events = append(events, event{score: v, corr: true})
		}
		for _, v := range s.fa {
			events = append(events, event{score: v})
		}
		slices.SortFunc(events, func(a, b event) int {
			switch {
			case a.score > b.score:
				return -1
			case a.score < b.score:
				return 1
			}
			return 0
		})

		var best float64
		var corr, fa int
		for i, ev := range events {
			if ev.corr {
				corr++
			} else {
				fa++
			}
			// Only evaluate once all events sharing this score are counted.
			if i+1 < len(events) && events[i+1].score == ev.score {
				continue
			}
			_, _, v := m.twv(s.ntrue, corr, fa)
			best = math.Max(best, v)
		}
		sum += best
	}
	return sum / float64(len(ids)), nil
}

// KeywordResult is one keyword's standing at the ATWV threshold.
type KeywordResult struct {
	KwID        string
	NTrue       int
	Corr        int
	FalseAlarms int
	PMiss       float64
	PFA         float64
	TWV         float64
	// Excluded is set for keywords without reference occurrences. They
	// carry false alarms only and take no part in any average.
	Excluded bool
}

// KeywordReport returns per-keyword results at the ATWV threshold, sorted by
// keyword id.
func (m *Metrics) KeywordReport() ([]KeywordResult, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(m.stats))
	for kw := range m.stats {
		ids = append(ids, kw)
	}
	sort.Strings(ids)

	out := make([]KeywordResult, 0, len(ids))
	for _, kw := range ids {
		s := m.stats[kw]
		r := KeywordResult{
			KwID:        kw,
			NTrue:       s.ntrue,
			Corr:        countAtLeast(s.corr, m.cfg.scoreThreshold),
			FalseAlarms: countAtLeast(s.fa, m.cfg.scoreThreshold),
		}
		if s.ntrue == 0 {
			r.Excluded = true
		} else {
			pCorr, pFA, v := m.twv(s.ntrue, r.Corr, r.FalseAlarms)
			r.PMiss, r.PFA, r.TWV = 1-pCorr, pFA, v
		}
		out = append(out, r)
	}
	return out, nil
}

func countAtLeast(scores []float64, threshold float64) int {
	n := 0
	for _, s := range scores {
		if s >= threshold {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
