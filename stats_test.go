package kws

import (
	"errors"
	"testing"
)

func TestMerge_MatchesSingleEngine(t *testing.T) {
	ali := twoKeywordAlignment()

	whole := unitBetaMetrics()
	whole.AddAlignment(ali)

	// Split the same entries across two engines.
	left, right := unitBetaMetrics(), unitBetaMetrics()
	for i, e := range ali.All() {
		if i%2 == 0 {
			left.AddAlignment(NewAlignment(e))
		} else {
			right.AddAlignment(NewAlignment(e))
		}
	}
	if err := left.Merge(right); err != nil {
		t.Fatalf("Merge() failed: %v", err)
	}

	want, err := whole.OracleMeasures()
	if err != nil {
		t.Fatalf("OracleMeasures() failed: %v", err)
	}
	got, err := left.OracleMeasures()
	if err != nil {
		t.Fatalf("OracleMeasures() failed: %v", err)
	}
	if !approxEqual(got.MTWV, want.MTWV) || !approxEqual(got.OTWV, want.OTWV) || !approxEqual(got.MTWVThreshold, want.MTWVThreshold) {
		t.Errorf("merged OracleMeasures() = %+v, want %+v", got, want)
	}

	// right is untouched by the merge.
	if n := len(right.Stats().Keywords); n != 2 {
		t.Errorf("right has %d keywords after merge, want 2", n)
	}
}

func TestStats_IsDeepCopy(t *testing.T) {
	m := unitBetaMetrics()
	m.AddAlignment(twoKeywordAlignment())

	st := m.Stats()
	st.Keywords[0].Corr[0] = 42
	st.Keywords[0].NTrue = 99

	again := m.Stats()
	if again.Keywords[0].Corr[0] == 42 || again.Keywords[0].NTrue == 99 {
		t.Errorf("Stats() shares memory with the engine: %+v", again.Keywords[0])
	}
}

func TestStats_SortedByKeyword(t *testing.T) {
	m := NewMetrics(WithAudioDuration(10))
	for _, kw := range []string{"zulu", "alpha", "mike"} {
		m.AddAlignment(NewAlignment(MissEntry(Term{KwID: kw, End: 1})))
	}

	st := m.Stats()
	var ids []string
	for _, k := range st.Keywords {
		ids = append(ids, k.KwID)
	}
	want := []string{"alpha", "mike", "zulu"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("keyword order = %v, want %v", ids, want)
		}
	}
}

func TestAddStats_Validation(t *testing.T) {
	tests := []struct {
		name string
		st   Stats
	}{
		{"empty keyword", Stats{Keywords: []KeywordStats{{NTrue: 1}}}},
		{"negative ntrue", Stats{Keywords: []KeywordStats{{KwID: "kw", NTrue: -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics(WithAudioDuration(10))
			if err := m.AddStats(tt.st); !errors.Is(err, ErrInvalidTerm) {
				t.Errorf("AddStats() error = %v, want ErrInvalidTerm", err)
			}
			if len(m.Stats().Keywords) != 0 {
				t.Error("rejected stats were partially applied")
			}
		})
	}
}
