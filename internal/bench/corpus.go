// Package bench loads scoring corpora and scores them, in parallel when
// there are several.
package bench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kws "github.com/jamesainslie/go-kws"
	"github.com/jamesainslie/go-kws/termio"
)

// File names expected inside a corpus directory.
const (
	RefFile = "ref.txt"
	HypFile = "hyp.txt"
)

// Corpus is one reference/hypothesis pair of term lists.
type Corpus struct {
	ID       string // directory base name
	Dir      string
	Duration float64 // seconds, from the reference header; 0 if absent
	Refs     []kws.Term
	Hyps     []kws.Term
}

// LoadCorpus loads ref.txt and hyp.txt from dir.
func LoadCorpus(dir string) (*Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat corpus: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus %s is not a directory", dir)
	}

	refHeader, refs, err := termio.LoadTerms(filepath.Join(dir, RefFile))
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}
	hypHeader, hyps, err := termio.LoadTerms(filepath.Join(dir, HypFile))
	if err != nil {
		return nil, fmt.Errorf("load hypotheses: %w", err)
	}

	duration := refHeader.Duration
	if duration == 0 {
		duration = hypHeader.Duration
	}

	return &Corpus{
		ID:       filepath.Base(filepath.Clean(dir)),
		Dir:      dir,
		Duration: duration,
		Refs:     refs,
		Hyps:     hyps,
	}, nil
}

// LoadCorpora loads every directory in dirs, in order.
func LoadCorpora(dirs []string) ([]*Corpus, error) {
	if len(dirs) == 0 {
		return nil, errors.New("no corpus directories given")
	}
	corpora := make([]*Corpus, 0, len(dirs))
	for _, dir := range dirs {
		c, err := LoadCorpus(dir)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", dir, err)
		}
		corpora = append(corpora, c)
	}
	return corpora, nil
}
