package kws

import (
	"log/slog"
)

type bucketKey struct {
	utt int
	kw  string
}

// Aligner matches hypothesized detections to reference occurrences.
//
// All AddRef and AddHyp calls must happen before Align. Align does not
// modify ingested terms and may be called repeatedly. An Aligner is not safe
// for concurrent use; score independent corpora with separate Aligners.
type Aligner struct {
	maxDistance float64
	scoreFunc   ScoreFunc
	logger      *slog.Logger

	// Reference storage is append-only. bucketIndex maps (utt, kw) to a
	// position in buckets, which keeps first-seen order for miss output.
	bucketIndex map[bucketKey]int
	buckets     [][]Term
	hyps        []Term
	nRefs       int
	nHyps       int
}

// NewAligner creates an Aligner. A negative maximum distance or a nil score
// function is reported as ErrInvalidConfig.
func NewAligner(opts ...AlignerOption) (*Aligner, error) {
	cfg := defaultAlignerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Aligner{
		maxDistance: float64(cfg.maxDistance),
		scoreFunc:   cfg.scoreFunc,
		logger:      cfg.logger,
		bucketIndex: make(map[bucketKey]int),
	}, nil
}

// AddRef ingests a reference occurrence.
func (a *Aligner) AddRef(ref Term) error {
	if err := ref.validate(); err != nil {
		return err
	}
	key := bucketKey{utt: ref.UttID, kw: ref.KwID}
	idx, ok := a.bucketIndex[key]
	if !ok {
		idx = len(a.buckets)
		a.bucketIndex[key] = idx
		a.buckets = append(a.buckets, nil)
	}
	a.buckets[idx] = append(a.buckets[idx], ref)
	a.nRefs++
	return nil
}

// AddHyp ingests a hypothesized detection.
func (a *Aligner) AddHyp(hyp Term) error {
	if err := hyp.validate(); err != nil {
		return err
	}
	a.hyps = append(a.hyps, hyp)
	a.nHyps++
	return nil
}

// NumRefs returns the number of references ingested so far.
func (a *Aligner) NumRefs() int { return a.nRefs }

// NumHyps returns the number of hypotheses ingested so far.
func (a *Aligner) NumHyps() int { return a.nHyps }

// Align computes the alignment over everything ingested so far.
//
// Hypotheses are visited in ingestion order. Each one takes the unused
// reference in its (utterance, keyword) bucket that lies within the maximum
// center distance and has the highest match score; ties go to the reference
// ingested first. Hypotheses without a candidate become false alarms and
// references left unused become misses.
func (a *Aligner) Align() *Alignment {
	used := make([][]bool, len(a.buckets))
	for i, b := range a.buckets {
		used[i] = make([]bool, len(b))
	}

	ali := &Alignment{entries: make([]Entry, 0, a.nRefs+a.nHyps)}
	var matched int
	for _, hyp := range a.hyps {
		bi, ri, score := a.findBestRef(hyp, used)
		if ri < 0 {
			ali.add(FalseAlarmEntry(hyp))
			continue
		}
		used[bi][ri] = true
		ali.add(MatchedEntry(a.buckets[bi][ri], hyp, score))
		matched++
	}

	for bi, bucket := range a.buckets {
		for ri, ref := range bucket {
			if !used[bi][ri] {
				ali.add(MissEntry(ref))
			}
		}
	}

	a.logger.Debug("kws: alignment complete",
		"refs", a.nRefs,
		"hyps", a.nHyps,
		"matched", matched,
		"misses", a.nRefs-matched,
		"false_alarms", a.nHyps-matched,
	)
	return ali
}

// findBestRef returns the bucket and reference index of the best candidate
// for hyp, or ri == -1 when there is none.
func (a *Aligner) findBestRef(hyp Term, used [][]bool) (bi, ri int, score float64) {
	bi, ok := a.bucketIndex[bucketKey{utt: hyp.UttID, kw: hyp.KwID}]
	if !ok {
		return -1, -1, 0
	}

	ri = -1
	for i, ref := range a.buckets[bi] {
		if used[bi][i] || centerDistance(ref, hyp) > a.maxDistance {
			continue
		}
		s := a.scoreFunc(ref, hyp)
		if ri < 0 || (s > score && !sameScore(s, score)) {
			ri, score = i, s
		}
	}
	return bi, ri, score
}
