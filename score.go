package kws

import "math"

// ScoreFunc rates how well hyp matches ref. Higher is better. The aligner
// only calls it for pairs that already share utterance and keyword and lie
// within the configured center distance.
type ScoreFunc func(ref, hyp Term) float64

// CenterDistanceScore is the default policy: 1/(1+d) where d is the distance
// between the term centers in frames. Detection confidence plays no part.
func CenterDistanceScore(ref, hyp Term) float64 {
	return 1 / (1 + centerDistance(ref, hyp))
}

// OverlapScore rates a pair by temporal intersection over union. Pairs that
// touch without overlapping, or zero-length pairs, score 0.
func OverlapScore(ref, hyp Term) float64 {
	overlap := min(ref.End, hyp.End) - max(ref.Start, hyp.Start)
	union := max(ref.End, hyp.End) - min(ref.Start, hyp.Start)
	if overlap <= 0 || union <= 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}

// sameScore treats scores within a few ulps as tied so ties resolve by
// bucket order rather than by rounding noise.
func sameScore(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
