package kws

import (
	"fmt"
	"math"
	"slices"
)

// binEpsilon absorbs rounding so a score sitting exactly on a grid
// threshold (0.5 with step 0.05) lands in the bin that threshold opens.
const binEpsilon = 1e-9

// SweepPoint is the averaged TWV at one grid threshold.
type SweepPoint struct {
	Threshold float64
	TWV       float64
}

// OracleResult holds the metrics that need a threshold sweep.
type OracleResult struct {
	// MTWV is the best averaged TWV under one threshold shared by all keywords.
	MTWV float64
	// MTWVThreshold is the grid threshold achieving MTWV.
	MTWVThreshold float64
	// OTWV averages each keyword's best TWV over the same grid.
	OTWV float64
}

// oracleSweep is the shared result of one pass over the binned statistics.
type oracleSweep struct {
	points []SweepPoint // descending threshold
	otwv   float64
}

// OracleMeasures returns MTWV, its threshold, and OTWV. They are computed
// together from the same per-keyword partial sums.
//
// Thresholds are restricted to multiples of the sweep step, so MTWV is
// within one step of the true maximum over all thresholds.
func (m *Metrics) OracleMeasures() (OracleResult, error) {
	sw, err := m.sweep()
	if err != nil {
		return OracleResult{}, err
	}
	res := OracleResult{OTWV: sw.otwv}
	for i, p := range sw.points {
		if i == 0 || p.TWV > res.MTWV {
			res.MTWV, res.MTWVThreshold = p.TWV, p.Threshold
		}
	}
	return res, nil
}

// Sweep returns the averaged TWV at every grid threshold where it can
// change, in ascending threshold order.
func (m *Metrics) Sweep() ([]SweepPoint, error) {
	sw, err := m.sweep()
	if err != nil {
		return nil, err
	}
	slices.Reverse(sw.points)
	return sw.points, nil
}

func (m *Metrics) sweep() (oracleSweep, error) {
	if err := m.validate(); err != nil {
		return oracleSweep{}, err
	}
	step := m.cfg.sweepStep
	if !(step > 0) || math.IsInf(step, 0) {
		return oracleSweep{}, fmt.Errorf("%w: sweep_step must be positive, got %v", ErrInvalidConfig, step)
	}

	ids := m.scoredKeywords()
	if len(ids) == 0 {
		return oracleSweep{points: []SweepPoint{{Threshold: 0, TWV: 0}}}, nil
	}

	// global[b] is the summed change in keyword TWV when the threshold is
	// lowered to open bin b. A keyword's TWV at grid threshold k*step is the
	// suffix sum of its own changes over bins >= k, and each step is scored
	// with the same twv as ATWV.
	global := make(map[int]float64)
	counts := make(map[int]binCount)
	var bins []int
	var otwvSum float64

	for _, kw := range ids {
		s := m.stats[kw]

		clear(counts)
		for _, v := range s.corr {
			b, err := binOf(v, step)
			if err != nil {
				return oracleSweep{}, fmt.Errorf("keyword %q: %w", kw, err)
			}
			c := counts[b]
			c.corr++
			counts[b] = c
		}
		for _, v := range s.fa {
			b, err := binOf(v, step)
			if err != nil {
				return oracleSweep{}, fmt.Errorf("keyword %q: %w", kw, err)
			}
			c := counts[b]
			c.fa++
			counts[b] = c
		}

		bins = bins[:0]
		for b := range counts {
			bins = append(bins, b)
		}
		slices.Sort(bins)

		var corr, fa int
		var prev, best float64
		for i := len(bins) - 1; i >= 0; i-- {
			c := counts[bins[i]]
			corr += c.corr
			fa += c.fa
			_, _, v := m.twv(s.ntrue, corr, fa)
			best = math.Max(best, v)
			global[bins[i]] += v - prev
			prev = v
		}
		otwvSum += best
	}

	all := make([]int, 0, len(global))
	for b := range global {
		all = append(all, b)
	}
	slices.Sort(all)

	n := float64(len(ids))
	if len(all) == 0 {
		// Occurrences but no detections at all.
		return oracleSweep{points: []SweepPoint{{Threshold: 0, TWV: 0}}}, nil
	}
	points := make([]SweepPoint, 0, len(all)+1)
	// Above the highest bin nothing is detected and every keyword scores 0.
	points = append(points, SweepPoint{Threshold: float64(all[len(all)-1]+1) * step})
	var acc float64
	for i := len(all) - 1; i >= 0; i-- {
		acc += global[all[i]]
		points = append(points, SweepPoint{Threshold: float64(all[i]) * step, TWV: acc / n})
	}

	m.logger.Debug("kws: oracle sweep",
		"keywords", len(ids),
		"thresholds", len(points),
		"step", step,
	)
	return oracleSweep{points: points, otwv: otwvSum / n}, nil
}

// maxBin bounds bin indices to the range where float64 still resolves
// whole numbers.
const maxBin = 1 << 52

type binCount struct {
	corr int
	fa   int
}

func binOf(score, step float64) (int, error) {
	q := score / step
	if math.Abs(q) > maxBin {
		return 0, fmt.Errorf("%w: score %v is out of range for sweep_step %v", ErrInvalidConfig, score, step)
	}
	return int(math.Floor(q + binEpsilon)), nil
}
