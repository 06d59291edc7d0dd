// Package kws scores keyword-spotting output with the Term-Weighted Value
// (TWV) family of metrics.
//
// # Quick Start
//
//	al, err := kws.NewAligner(kws.WithMaxDistance(50))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range refs {
//	    if err := al.AddRef(r); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	for _, h := range hyps {
//	    if err := al.AddHyp(h); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
//	m := kws.NewMetrics(kws.WithAudioDuration(3600))
//	m.AddAlignment(al.Align())
//
//	atwv, err := m.ATWV()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	oracle, err := m.OracleMeasures()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("ATWV %.4f MTWV %.4f (@%.2f) OTWV %.4f\n",
//	    atwv, oracle.MTWV, oracle.MTWVThreshold, oracle.OTWV)
//
// # Alignment Policy
//
// References are bucketed by (utterance, keyword). Hypotheses are visited in
// ingestion order and each takes the unused reference in its bucket whose
// center lies within the maximum distance and which maximizes the ScoreFunc.
// The default CenterDistanceScore is 1/(1+d) for a center distance of d
// frames; ties go to the reference ingested first. Both choices are policy,
// not part of the TWV definition, and change downstream metrics.
//
// # Thread Safety
//
// Aligner and Metrics are single-owner accumulators and are not safe for
// concurrent use. To score corpora in parallel, give each corpus its own
// Aligner and Metrics and combine them with Metrics.Merge before computing
// any metric: threshold sweeps do not combine across partial results.
package kws
