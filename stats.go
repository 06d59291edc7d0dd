package kws

import (
	"fmt"
	"slices"
	"sort"
)

// KeywordStats is the raw detection record of one keyword.
type KeywordStats struct {
	KwID  string
	NTrue int
	// Corr holds hypothesis scores of correct detections, FalseAlarms those
	// of detections without a reference.
	Corr        []float64
	FalseAlarms []float64
}

// Stats is a snapshot of a Metrics engine's accumulated statistics, sorted
// by keyword id. Snapshots from independent corpora can be added into one
// engine before any metric is computed.
type Stats struct {
	Keywords []KeywordStats
}

// Stats returns a deep copy of the accumulated statistics.
func (m *Metrics) Stats() Stats {
	ids := make([]string, 0, len(m.stats))
	for kw := range m.stats {
		ids = append(ids, kw)
	}
	sort.Strings(ids)

	out := Stats{Keywords: make([]KeywordStats, 0, len(ids))}
	for _, kw := range ids {
		s := m.stats[kw]
		out.Keywords = append(out.Keywords, KeywordStats{
			KwID:        kw,
			NTrue:       s.ntrue,
			Corr:        slices.Clone(s.corr),
			FalseAlarms: slices.Clone(s.fa),
		})
	}
	return out
}

// AddStats sums st into the accumulated statistics. Sweeps are not additive
// across corpora, so partial results must be merged here, before computing.
func (m *Metrics) AddStats(st Stats) error {
	for i, k := range st.Keywords {
		if k.KwID == "" {
			return fmt.Errorf("%w: stats entry %d has empty keyword id", ErrInvalidTerm, i)
		}
		if k.NTrue < 0 {
			return fmt.Errorf("%w: stats for keyword %q have negative ntrue %d", ErrInvalidTerm, k.KwID, k.NTrue)
		}
	}
	for _, k := range st.Keywords {
		s := m.keyword(k.KwID)
		s.ntrue += k.NTrue
		s.corr = append(s.corr, k.Corr...)
		s.fa = append(s.fa, k.FalseAlarms...)
	}
	return nil
}

// Merge adds another engine's statistics into m. other is not modified.
func (m *Metrics) Merge(other *Metrics) error {
	return m.AddStats(other.Stats())
}
