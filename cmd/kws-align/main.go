package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	kws "github.com/jamesainslie/go-kws"
	"github.com/jamesainslie/go-kws/internal/config"
	"github.com/jamesainslie/go-kws/termio"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		refPath     = flag.String("ref", "", "Reference term list (required)")
		hypPath     = flag.String("hyp", "", "Hypothesis term list (required)")
		configPath  = flag.String("config", "", "Optional YAML scoring profile")
		maxDistance = flag.Int("max-distance", kws.DefaultMaxDistance, "Maximum center distance in frames")
		scoreFunc   = flag.String("score-func", "center", "Match score: center or overlap")
		fps         = flag.Float64("fps", 100, "Frames per second for CSV times")
		threshold   = flag.Float64("threshold", kws.DefaultScoreThreshold, "Decision threshold for sys_decision")
		outPath     = flag.String("out", "", "Output CSV file (default stdout)")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("kws-align %s (%s, %s)\n", version, commit, date)
		return
	}
	if *refPath == "" || *hypPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: kws-align -ref REF -hyp HYP [OPTIONS]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *configPath != "" {
		p, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if !set["max-distance"] && p.Aligner.MaxDistance != nil {
			*maxDistance = *p.Aligner.MaxDistance
		}
		if !set["score-func"] && p.Aligner.ScoreFunc != "" {
			*scoreFunc = p.Aligner.ScoreFunc
		}
		if !set["threshold"] && p.Metrics.ScoreThreshold != nil {
			*threshold = *p.Metrics.ScoreThreshold
		}
		if !set["fps"] && p.Output.FramesPerSec > 0 {
			*fps = p.Output.FramesPerSec
		}
	}

	var sf kws.ScoreFunc
	switch *scoreFunc {
	case "center":
		sf = kws.CenterDistanceScore
	case "overlap":
		sf = kws.OverlapScore
	default:
		fmt.Fprintf(os.Stderr, "Unknown score function: %s\n", *scoreFunc)
		os.Exit(1)
	}

	_, refs, err := termio.LoadTerms(*refPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading references: %v\n", err)
		os.Exit(1)
	}
	_, hyps, err := termio.LoadTerms(*hypPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading hypotheses: %v\n", err)
		os.Exit(1)
	}

	al, err := kws.NewAligner(kws.WithMaxDistance(*maxDistance), kws.WithScoreFunc(sf))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, r := range refs {
		if err := al.AddRef(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	for _, h := range hyps {
		if err := al.AddHyp(h); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	ali := al.Align()

	if err := writeCSV(*outPath, ali, *fps, *threshold); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}

	matched, misses, fas := ali.Counts()
	fmt.Fprintf(os.Stderr, "Aligned %d refs, %d hyps: %d matched, %d missed, %d false alarms\n",
		al.NumRefs(), al.NumHyps(), matched, misses, fas)
}

// writeCSV writes ali to path, or to stdout when path is empty.
func writeCSV(path string, ali *kws.Alignment, fps, threshold float64) error {
	if path == "" {
		bw := bufio.NewWriter(os.Stdout)
		if err := termio.WriteCSV(bw, ali, fps, threshold); err != nil {
			return err
		}
		return bw.Flush()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := termio.WriteCSV(bw, ali, fps, threshold); err != nil {
		_ = f.Close() // the write error takes precedence
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
