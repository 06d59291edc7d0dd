// Package wire reads and writes TWV statistics snapshots as protobuf
// messages (internal/proto/stats.proto).
package wire

import (
	"errors"
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/proto"

	kws "github.com/jamesainslie/go-kws"
	pb "github.com/jamesainslie/go-kws/internal/proto"
)

// ErrMalformed indicates the input is not a valid statistics snapshot.
var ErrMalformed = errors.New("wire: malformed stats")

// MarshalStats encodes st.
func MarshalStats(st kws.Stats) ([]byte, error) {
	msg := &pb.Stats{Keywords: make([]*pb.Keyword, 0, len(st.Keywords))}
	for _, k := range st.Keywords {
		if k.NTrue < 0 {
			return nil, fmt.Errorf("keyword %q: negative ntrue %d", k.KwID, k.NTrue)
		}
		msg.Keywords = append(msg.Keywords, &pb.Keyword{
			KwId:        k.KwID,
			Ntrue:       uint64(k.NTrue),
			Corr:        k.Corr,
			FalseAlarms: k.FalseAlarms,
		})
	}
	b, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshaling stats: %w", err)
	}
	return b, nil
}

// UnmarshalStats decodes a snapshot written by MarshalStats. Unknown fields
// are ignored.
func UnmarshalStats(b []byte) (kws.Stats, error) {
	var msg pb.Stats
	if err := proto.Unmarshal(b, &msg); err != nil {
		return kws.Stats{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	st := kws.Stats{Keywords: make([]kws.KeywordStats, 0, len(msg.GetKeywords()))}
	for i, k := range msg.GetKeywords() {
		if k.GetKwId() == "" {
			return kws.Stats{}, fmt.Errorf("%w: keyword %d: missing kw_id", ErrMalformed, i)
		}
		if k.GetNtrue() > math.MaxInt32 {
			return kws.Stats{}, fmt.Errorf("%w: keyword %q: ntrue %d out of range", ErrMalformed, k.GetKwId(), k.GetNtrue())
		}
		st.Keywords = append(st.Keywords, kws.KeywordStats{
			KwID:        k.GetKwId(),
			NTrue:       int(k.GetNtrue()),
			Corr:        k.GetCorr(),
			FalseAlarms: k.GetFalseAlarms(),
		})
	}
	return st, nil
}

// WriteFile writes st to path.
func WriteFile(path string, st kws.Stats) error {
	b, err := MarshalStats(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (kws.Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kws.Stats{}, fmt.Errorf("reading stats: %w", err)
	}
	st, err := UnmarshalStats(data)
	if err != nil {
		return kws.Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}
