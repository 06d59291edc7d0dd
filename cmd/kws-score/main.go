package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	kws "github.com/jamesainslie/go-kws"
	"github.com/jamesainslie/go-kws/internal/bench"
	"github.com/jamesainslie/go-kws/internal/config"
	"github.com/jamesainslie/go-kws/internal/wire"
	"github.com/jamesainslie/go-kws/termio"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		refPath     = flag.String("ref", "", "Reference term list")
		hypPath     = flag.String("hyp", "", "Hypothesis term list")
		corporaList = flag.String("corpora", "", "Comma-separated corpus directories (each with ref.txt and hyp.txt)")
		configPath  = flag.String("config", "", "Optional YAML scoring profile")
		duration    = flag.Float64("duration", 0, "Total audio duration in seconds (overrides term list headers)")
		maxDistance = flag.Int("max-distance", kws.DefaultMaxDistance, "Maximum center distance in frames")
		scoreFunc   = flag.String("score-func", "center", "Match score: center or overlap")
		costFA      = flag.Float64("cost-fa", kws.DefaultCostFA, "Cost of a false alarm")
		valueCorr   = flag.Float64("value-corr", kws.DefaultValueCorr, "Value of a correct detection")
		prior       = flag.Float64("prior", kws.DefaultPriorProbability, "Prior probability of a keyword")
		threshold   = flag.Float64("threshold", kws.DefaultScoreThreshold, "ATWV decision threshold")
		step        = flag.Float64("step", kws.DefaultSweepStep, "Threshold sweep step for MTWV and OTWV")
		parallel    = flag.Int("parallel", 4, "Corpora scored concurrently")
		dumpStats   = flag.String("dump-stats", "", "Write merged statistics to this file")
		statsFiles  = flag.String("stats", "", "Comma-separated statistics files to add (requires -duration)")
		curve       = flag.Bool("curve", false, "Print the MTWV threshold curve")
		keywords    = flag.Bool("keywords", false, "Print the per-keyword report")
		verbose     = flag.Bool("v", false, "Verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("kws-score %s (%s, %s)\n", version, commit, date)
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	pairMode := *refPath != "" || *hypPath != ""
	if pairMode && (*refPath == "" || *hypPath == "") {
		fmt.Fprintln(os.Stderr, "error: -ref and -hyp must be given together")
		flag.Usage()
		os.Exit(1)
	}
	if pairMode && *corporaList != "" {
		fmt.Fprintln(os.Stderr, "error: use either -ref/-hyp or -corpora")
		flag.Usage()
		os.Exit(1)
	}
	if !pairMode && *corporaList == "" && *statsFiles == "" {
		fmt.Fprintln(os.Stderr, "error: -ref/-hyp, -corpora or -stats required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := bench.DefaultConfig()
	cfg.Logger = logger
	if *configPath != "" {
		p, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = p.Apply(cfg)
	}
	if err := applyFlags(&cfg, flagValues{
		duration:    *duration,
		maxDistance: *maxDistance,
		scoreFunc:   *scoreFunc,
		costFA:      *costFA,
		valueCorr:   *valueCorr,
		prior:       *prior,
		threshold:   *threshold,
		step:        *step,
		parallel:    *parallel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var corpora []*bench.Corpus
	switch {
	case pairMode:
		c, err := loadPair(*refPath, *hypPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading terms: %v\n", err)
			os.Exit(1)
		}
		corpora = []*bench.Corpus{c}
	case *corporaList != "":
		var err error
		corpora, err = bench.LoadCorpora(splitList(*corporaList))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading corpora: %v\n", err)
			os.Exit(1)
		}
	}

	if *statsFiles != "" && cfg.Duration <= 0 {
		fmt.Fprintln(os.Stderr, "error: -stats requires -duration covering all scored audio")
		os.Exit(1)
	}

	m, results, err := bench.ScoreCorpora(context.Background(), corpora, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error scoring: %v\n", err)
		os.Exit(1)
	}
	for _, r := range results {
		fmt.Printf("%-20s refs=%-6d hyps=%-6d matched=%-6d miss=%-6d fa=%d\n",
			r.ID, r.Refs, r.Hyps, r.Matched, r.Misses, r.FalseAlarms)
	}

	for _, path := range splitList(*statsFiles) {
		st, err := wire.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading stats: %v\n", err)
			os.Exit(1)
		}
		if err := m.AddStats(st); err != nil {
			fmt.Fprintf(os.Stderr, "error adding stats from %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	if *dumpStats != "" {
		if err := wire.WriteFile(*dumpStats, m.Stats()); err != nil {
			fmt.Fprintf(os.Stderr, "error writing stats: %v\n", err)
			os.Exit(1)
		}
	}

	if err := printSummary(m); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *curve {
		if err := printCurve(m); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *keywords {
		if err := printKeywords(m); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

type flagValues struct {
	duration    float64
	maxDistance int
	scoreFunc   string
	costFA      float64
	valueCorr   float64
	prior       float64
	threshold   float64
	step        float64
	parallel    int
}

// applyFlags overlays explicitly set flags on cfg. Flags left at their
// defaults do not override a loaded profile.
func applyFlags(cfg *bench.Config, v flagValues) error {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["duration"] {
		cfg.Duration = v.duration
	}
	if set["max-distance"] {
		cfg.MaxDistance = v.maxDistance
	}
	if set["score-func"] {
		switch v.scoreFunc {
		case "center":
			cfg.ScoreFunc = kws.CenterDistanceScore
		case "overlap":
			cfg.ScoreFunc = kws.OverlapScore
		default:
			return fmt.Errorf("unknown score function %q", v.scoreFunc)
		}
	}
	if set["parallel"] {
		cfg.Parallelism = v.parallel
	}
	if set["cost-fa"] {
		cfg.Metrics = append(cfg.Metrics, kws.WithCostFA(v.costFA))
	}
	if set["value-corr"] {
		cfg.Metrics = append(cfg.Metrics, kws.WithValueCorr(v.valueCorr))
	}
	if set["prior"] {
		cfg.Metrics = append(cfg.Metrics, kws.WithPriorProbability(v.prior))
	}
	if set["threshold"] {
		cfg.Metrics = append(cfg.Metrics, kws.WithScoreThreshold(v.threshold))
	}
	if set["step"] {
		cfg.Metrics = append(cfg.Metrics, kws.WithSweepStep(v.step))
	}
	return nil
}

func loadPair(refPath, hypPath string) (*bench.Corpus, error) {
	refHeader, refs, err := termio.LoadTerms(refPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", refPath, err)
	}
	hypHeader, hyps, err := termio.LoadTerms(hypPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hypPath, err)
	}
	c := &bench.Corpus{
		ID:       strings.TrimSuffix(filepath.Base(refPath), filepath.Ext(refPath)),
		Dir:      filepath.Dir(refPath),
		Duration: refHeader.Duration,
		Refs:     refs,
		Hyps:     hyps,
	}
	if c.Duration == 0 {
		c.Duration = hypHeader.Duration
	}
	return c, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printSummary(m *kws.Metrics) error {
	atwv, err := m.ATWV()
	if err != nil {
		return err
	}
	stwv, err := m.STWV()
	if err != nil {
		return err
	}
	oracle, err := m.OracleMeasures()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Keywords: %d  Duration: %.1fs  Beta: %.2f\n", m.NumKeywords(), m.AudioDuration(), m.Beta())
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("ATWV: %.4f  (threshold %.3f)\n", atwv, m.ScoreThreshold())
	fmt.Printf("MTWV: %.4f  (threshold %.3f)\n", oracle.MTWV, oracle.MTWVThreshold)
	fmt.Printf("OTWV: %.4f\n", oracle.OTWV)
	fmt.Printf("STWV: %.4f\n", stwv)
	return nil
}

func printCurve(m *kws.Metrics) error {
	points, err := m.Sweep()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%-10s %-10s\n", "Thresh", "TWV")
	fmt.Println(strings.Repeat("-", 22))
	for _, p := range points {
		fmt.Printf("%-10.3f %-10.4f\n", p.Threshold, p.TWV)
	}
	return nil
}

func printKeywords(m *kws.Metrics) error {
	report, err := m.KeywordReport()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%-20s %-6s %-6s %-6s %-8s %-10s %-8s\n", "Keyword", "NTrue", "Corr", "FA", "PMiss", "PFA", "TWV")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range report {
		if r.Excluded {
			fmt.Printf("%-20s %-6d %-6d %-6d %-8s %-10s %-8s\n", r.KwID, r.NTrue, r.Corr, r.FalseAlarms, "-", "-", "excluded")
			continue
		}
		fmt.Printf("%-20s %-6d %-6d %-6d %-8.4f %-10.2e %-8.4f\n",
			r.KwID, r.NTrue, r.Corr, r.FalseAlarms, r.PMiss, r.PFA, r.TWV)
	}
	return nil
}
