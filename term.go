package kws

import (
	"fmt"
	"math"
)

// Term is a single keyword occurrence, either a reference (ground truth) or
// a hypothesis produced by a detector. Times are in frames.
//
// The zero Term is invalid and stands for "no occurrence".
type Term struct {
	UttID int
	KwID  string
	Start int
	End   int
	Score float64
}

// Valid reports whether t carries a keyword.
func (t Term) Valid() bool {
	return t.KwID != ""
}

// Center returns the midpoint of the term in frames.
func (t Term) Center() float64 {
	return float64(t.Start+t.End) / 2
}

// validate checks the fields an aligner relies on for bucketing and matching.
func (t Term) validate() error {
	if !t.Valid() {
		return fmt.Errorf("%w: empty keyword id (utterance %d)", ErrInvalidTerm, t.UttID)
	}
	if t.UttID < 0 {
		return fmt.Errorf("%w: negative utterance id %d for keyword %q", ErrInvalidTerm, t.UttID, t.KwID)
	}
	if t.End < t.Start {
		return fmt.Errorf("%w: end %d before start %d for keyword %q", ErrInvalidTerm, t.End, t.Start, t.KwID)
	}
	if math.IsNaN(t.Score) || math.IsInf(t.Score, 0) {
		return fmt.Errorf("%w: non-finite score for keyword %q", ErrInvalidTerm, t.KwID)
	}
	return nil
}

func centerDistance(a, b Term) float64 {
	return math.Abs(a.Center() - b.Center())
}
