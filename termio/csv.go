package termio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	kws "github.com/jamesainslie/go-kws"
)

var csvHeader = []string{
	"language", "file", "channel", "termid", "term",
	"ref_bt", "ref_et", "sys_bt", "sys_et",
	"sys_score", "sys_decision", "alignment", "aligner_score",
}

// WriteCSV writes ali in the F4DE alignment CSV layout, plus a trailing
// aligner_score column holding the match score of matched rows. Frame indices
// are converted to seconds with framesPerSec; threshold decides sys_decision.
func WriteCSV(w io.Writer, ali *kws.Alignment, framesPerSec, threshold float64) error {
	if !(framesPerSec > 0) {
		return fmt.Errorf("frames per second must be positive, got %v", framesPerSec)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	seconds := func(frames int) string {
		return strconv.FormatFloat(float64(frames)/framesPerSec, 'f', 2, 64)
	}

	row := make([]string, len(csvHeader))
	for i, e := range ali.All() {
		clear(row)
		row[1] = strconv.Itoa(e.UttID())
		row[2] = "1"
		row[3] = e.KwID()

		if ref, ok := e.Ref(); ok {
			row[5], row[6] = seconds(ref.Start), seconds(ref.End)
		}
		hyp, hasHyp := e.Hyp()
		yes := hasHyp && hyp.Score >= threshold
		if hasHyp {
			row[7], row[8] = seconds(hyp.Start), seconds(hyp.End)
			row[9] = strconv.FormatFloat(hyp.Score, 'f', 6, 64)
			row[10] = "NO"
			if yes {
				row[10] = "YES"
			}
		}
		row[11] = alignmentLabel(e.Kind(), yes)
		if e.Kind() == kws.Matched {
			row[12] = strconv.FormatFloat(e.Score(), 'f', 6, 64)
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func alignmentLabel(kind kws.EntryKind, yes bool) string {
	switch {
	case kind == kws.Matched && yes:
		return "CORR"
	case kind == kws.FalseAlarm && yes:
		return "FA"
	case kind == kws.FalseAlarm:
		return "CORR!DET"
	default:
		return "MISS"
	}
}
