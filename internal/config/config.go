// Package config loads YAML scoring profiles for the command-line tools.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	kws "github.com/jamesainslie/go-kws"
	"github.com/jamesainslie/go-kws/internal/bench"
)

// Profile is a scoring profile. Unset fields keep library defaults.
type Profile struct {
	Aligner     AlignerProfile `yaml:"aligner"`
	Metrics     MetricsProfile `yaml:"metrics"`
	Output      OutputProfile  `yaml:"output"`
	Parallelism int            `yaml:"parallelism" validate:"omitempty,gte=1,lte=256"`
}

// AlignerProfile configures term alignment.
type AlignerProfile struct {
	MaxDistance *int   `yaml:"max_distance" validate:"omitempty,gte=0"`
	ScoreFunc   string `yaml:"score_func" validate:"omitempty,oneof=center overlap"`
}

// MetricsProfile configures the TWV engine.
type MetricsProfile struct {
	CostFA           *float64 `yaml:"cost_fa" validate:"omitempty,gte=0"`
	ValueCorr        *float64 `yaml:"value_corr" validate:"omitempty,gt=0"`
	PriorProbability *float64 `yaml:"prior_probability" validate:"omitempty,gt=0,lt=1"`
	ScoreThreshold   *float64 `yaml:"score_threshold"`
	SweepStep        *float64 `yaml:"sweep_step" validate:"omitempty,gt=0"`
	AudioDuration    *float64 `yaml:"audio_duration" validate:"omitempty,gt=0"`
}

// OutputProfile configures CSV export.
type OutputProfile struct {
	FramesPerSec float64 `yaml:"frames_per_sec" validate:"omitempty,gt=0"`
}

var (
	vOnce sync.Once
	v     *validator.Validate
)

// validate returns the shared validator, reporting yaml field names.
func validate() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("yaml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
	})
	return v
}

// Load reads and validates the profile at path.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	p, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}
	return p, nil
}

// LoadFromReader decodes a profile from r and validates it. An empty
// document yields the zero Profile.
func LoadFromReader(r io.Reader) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks field ranges and reports every violation, each naming the
// offending option by its yaml path.
func Validate(p *Profile) error {
	err := validate().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", kws.ErrInvalidConfig, err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%w: %s fails %q (value %v)",
			kws.ErrInvalidConfig, yamlPath(fe.Namespace()), fe.ActualTag(), fe.Value()))
	}
	return errors.Join(errs...)
}

// yamlPath drops the root struct name from a validator namespace.
func yamlPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// Apply overlays the profile on base and returns the result.
func (p *Profile) Apply(base bench.Config) bench.Config {
	cfg := base
	if p.Aligner.MaxDistance != nil {
		cfg.MaxDistance = *p.Aligner.MaxDistance
	}
	switch p.Aligner.ScoreFunc {
	case "center":
		cfg.ScoreFunc = kws.CenterDistanceScore
	case "overlap":
		cfg.ScoreFunc = kws.OverlapScore
	}
	if p.Parallelism > 0 {
		cfg.Parallelism = p.Parallelism
	}

	m := p.Metrics
	opts := append([]kws.MetricsOption(nil), base.Metrics...)
	if m.CostFA != nil {
		opts = append(opts, kws.WithCostFA(*m.CostFA))
	}
	if m.ValueCorr != nil {
		opts = append(opts, kws.WithValueCorr(*m.ValueCorr))
	}
	if m.PriorProbability != nil {
		opts = append(opts, kws.WithPriorProbability(*m.PriorProbability))
	}
	if m.ScoreThreshold != nil {
		opts = append(opts, kws.WithScoreThreshold(*m.ScoreThreshold))
	}
	if m.SweepStep != nil {
		opts = append(opts, kws.WithSweepStep(*m.SweepStep))
	}
	cfg.Metrics = opts
	if m.AudioDuration != nil {
		cfg.Duration = *m.AudioDuration
	}
	return cfg
}
