// Package termio reads keyword term lists and writes alignments as CSV.
package termio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	kws "github.com/jamesainslie/go-kws"
)

// Header holds metadata from leading "# key: value" comment lines.
type Header struct {
	// Duration is the audio duration in seconds, or 0 when absent.
	Duration float64
	// Fields keeps every recognised key, lower-cased.
	Fields map[string]string
}

// ReadTerms parses a term list with one term per line:
//
//	KWID UTT START END SCORE
//
// Leading "#" lines form the header and blank lines are skipped.
func ReadTerms(r io.Reader) (Header, []kws.Term, error) {
	h := Header{Fields: make(map[string]string)}
	var terms []kws.Term

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	inHeader := true
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if !inHeader {
				continue
			}
			if err := h.parseLine(line); err != nil {
				return Header{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		inHeader = false

		t, err := parseTerm(line)
		if err != nil {
			return Header{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		terms = append(terms, t)
	}
	if err := scanner.Err(); err != nil {
		return Header{}, nil, fmt.Errorf("scan terms: %w", err)
	}
	return h, terms, nil
}

// LoadTerms reads a term list from a file.
func LoadTerms(path string) (Header, []kws.Term, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("open terms: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only; close error carries no data

	h, terms, err := ReadTerms(f)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, terms, nil
}

func (h *Header) parseLine(line string) error {
	line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return nil // free-form comment
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	h.Fields[key] = value

	if key == "duration" {
		d, err := strconv.ParseFloat(value, 64)
		if err != nil || d < 0 || math.IsInf(d, 0) || math.IsNaN(d) {
			return fmt.Errorf("invalid duration %q", value)
		}
		h.Duration = d
	}
	return nil
}

func parseTerm(line string) (kws.Term, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return kws.Term{}, fmt.Errorf("want 5 fields (KWID UTT START END SCORE), got %d", len(fields))
	}

	var ints [3]int
	for i, name := range []string{"utterance", "start", "end"} {
		v, err := parseFrame(fields[i+1])
		if err != nil {
			return kws.Term{}, fmt.Errorf("%s: %w", name, err)
		}
		ints[i] = v
	}
	score, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return kws.Term{}, fmt.Errorf("score: %w", err)
	}

	return kws.Term{
		KwID:  fields[0],
		UttID: ints[0],
		Start: ints[1],
		End:   ints[2],
		Score: score,
	}, nil
}

// parseFrame accepts integers and integral floats such as "12.0", which
// Kaldi vector tables write for their double entries.
func parseFrame(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not an integral frame index: %q", s)
	}
	return int(f), nil
}
