package bench

import (
	"context"
	"errors"
	"math"
	"testing"

	kws "github.com/jamesainslie/go-kws"
)

func TestScoreCorpus(t *testing.T) {
	tests := []struct {
		name        string
		refs        []kws.Term
		hyps        []kws.Term
		wantMatched int
		wantMisses  int
		wantFAs     int
	}{
		{
			name:        "perfect match",
			refs:        []kws.Term{{UttID: 1, KwID: "a", Start: 10, End: 30}},
			hyps:        []kws.Term{{UttID: 1, KwID: "a", Start: 12, End: 30, Score: 0.9}},
			wantMatched: 1,
		},
		{
			name:       "false negative",
			refs:       []kws.Term{{UttID: 1, KwID: "a", Start: 10, End: 30}},
			wantMisses: 1,
		},
		{
			name:    "false positive",
			hyps:    []kws.Term{{UttID: 1, KwID: "a", Start: 10, End: 30, Score: 0.9}},
			wantFAs: 1,
		},
		{
			name:        "outside distance",
			refs:        []kws.Term{{UttID: 1, KwID: "a", Start: 0, End: 20}},
			hyps:        []kws.Term{{UttID: 1, KwID: "a", Start: 200, End: 220, Score: 0.9}},
			wantMisses:  1,
			wantFAs:     1,
			wantMatched: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Corpus{ID: "c", Duration: 100, Refs: tt.refs, Hyps: tt.hyps}
			_, got, err := ScoreCorpus(c, DefaultConfig())
			if err != nil {
				t.Fatalf("ScoreCorpus() error = %v", err)
			}
			if got.Matched != tt.wantMatched {
				t.Errorf("Matched = %d, want %d", got.Matched, tt.wantMatched)
			}
			if got.Misses != tt.wantMisses {
				t.Errorf("Misses = %d, want %d", got.Misses, tt.wantMisses)
			}
			if got.FalseAlarms != tt.wantFAs {
				t.Errorf("FalseAlarms = %d, want %d", got.FalseAlarms, tt.wantFAs)
			}
		})
	}
}

func TestScoreCorpus_InvalidTerm(t *testing.T) {
	c := &Corpus{ID: "broken", Refs: []kws.Term{{UttID: 1, Start: 0, End: 10}}}
	_, _, err := ScoreCorpus(c, DefaultConfig())
	if !errors.Is(err, kws.ErrInvalidTerm) {
		t.Errorf("ScoreCorpus() error = %v, want ErrInvalidTerm", err)
	}
}

func TestScoreCorpus_InvalidAlignerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDistance = -5
	c := &Corpus{ID: "c", Duration: 100, Refs: []kws.Term{{UttID: 1, KwID: "a", Start: 0, End: 10}}}
	if _, _, err := ScoreCorpus(c, cfg); !errors.Is(err, kws.ErrInvalidConfig) {
		t.Errorf("ScoreCorpus() error = %v, want ErrInvalidConfig", err)
	}
}

func TestScoreCorpora_MatchesSingleCorpus(t *testing.T) {
	refsA := []kws.Term{{UttID: 1, KwID: "a", Start: 0, End: 20}, {UttID: 2, KwID: "b", Start: 0, End: 20}}
	hypsA := []kws.Term{{UttID: 1, KwID: "a", Start: 0, End: 20, Score: 0.9}, {UttID: 3, KwID: "b", Start: 0, End: 20, Score: 0.7}}
	refsB := []kws.Term{{UttID: 9, KwID: "a", Start: 50, End: 70}}
	hypsB := []kws.Term{{UttID: 9, KwID: "a", Start: 55, End: 70, Score: 0.3}, {UttID: 9, KwID: "c", Start: 0, End: 5, Score: 0.95}}

	cfg := DefaultConfig()
	corpora := []*Corpus{
		{ID: "A", Duration: 1800, Refs: refsA, Hyps: hypsA},
		{ID: "B", Duration: 1800, Refs: refsB, Hyps: hypsB},
	}
	merged, results, err := ScoreCorpora(context.Background(), corpora, cfg)
	if err != nil {
		t.Fatalf("ScoreCorpora() error = %v", err)
	}
	if len(results) != 2 || results[0].ID != "A" || results[1].ID != "B" {
		t.Fatalf("results = %+v, want A then B", results)
	}
	if merged.AudioDuration() != 3600 {
		t.Errorf("AudioDuration() = %v, want 3600", merged.AudioDuration())
	}

	whole := &Corpus{
		ID:       "AB",
		Duration: 3600,
		Refs:     append(append([]kws.Term{}, refsA...), refsB...),
		Hyps:     append(append([]kws.Term{}, hypsA...), hypsB...),
	}
	single, _, err := ScoreCorpus(whole, cfg)
	if err != nil {
		t.Fatalf("ScoreCorpus() error = %v", err)
	}

	gotATWV, err := merged.ATWV()
	if err != nil {
		t.Fatalf("ATWV() error = %v", err)
	}
	wantATWV, _ := single.ATWV()
	if math.Abs(gotATWV-wantATWV) > 1e-12 {
		t.Errorf("merged ATWV = %v, want %v", gotATWV, wantATWV)
	}

	gotOracle, err := merged.OracleMeasures()
	if err != nil {
		t.Fatalf("OracleMeasures() error = %v", err)
	}
	wantOracle, _ := single.OracleMeasures()
	if math.Abs(gotOracle.MTWV-wantOracle.MTWV) > 1e-12 || math.Abs(gotOracle.OTWV-wantOracle.OTWV) > 1e-12 {
		t.Errorf("merged oracle = %+v, want %+v", gotOracle, wantOracle)
	}
}

func TestScoreCorpora_DurationOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 42
	merged, _, err := ScoreCorpora(context.Background(), []*Corpus{{ID: "x", Duration: 10}}, cfg)
	if err != nil {
		t.Fatalf("ScoreCorpora() error = %v", err)
	}
	if merged.AudioDuration() != 42 {
		t.Errorf("AudioDuration() = %v, want 42", merged.AudioDuration())
	}
}

func TestScoreCorpora_PropagatesErrors(t *testing.T) {
	corpora := []*Corpus{
		{ID: "good", Duration: 10, Refs: []kws.Term{{UttID: 0, KwID: "a", End: 10}}},
		{ID: "bad", Duration: 10, Hyps: []kws.Term{{UttID: 0, End: 10}}},
	}
	_, _, err := ScoreCorpora(context.Background(), corpora, DefaultConfig())
	if !errors.Is(err, kws.ErrInvalidTerm) {
		t.Errorf("ScoreCorpora() error = %v, want ErrInvalidTerm", err)
	}
}

func TestScoreCorpora_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ScoreCorpora(ctx, []*Corpus{{ID: "x", Duration: 10}}, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ScoreCorpora() error = %v, want context.Canceled", err)
	}
}
