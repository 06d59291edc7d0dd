package wire

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	kws "github.com/jamesainslie/go-kws"
	pb "github.com/jamesainslie/go-kws/internal/proto"
)

func mustMarshal(t *testing.T, st kws.Stats) []byte {
	t.Helper()
	b, err := MarshalStats(st)
	if err != nil {
		t.Fatalf("MarshalStats() error = %v", err)
	}
	return b
}

func sampleStats() kws.Stats {
	return kws.Stats{Keywords: []kws.KeywordStats{
		{KwID: "KW-001", NTrue: 3, Corr: []float64{0.9, 0.41}, FalseAlarms: []float64{0.7}},
		{KwID: "KW-002", NTrue: 0, FalseAlarms: []float64{0.2, 0.05}},
		{KwID: "KW-003", NTrue: 2},
	}}
}

func TestStats_RoundTripPreservesMetrics(t *testing.T) {
	src := kws.NewMetrics(kws.WithAudioDuration(600))
	if err := src.AddStats(sampleStats()); err != nil {
		t.Fatalf("AddStats() error = %v", err)
	}

	decoded, err := UnmarshalStats(mustMarshal(t, src.Stats()))
	if err != nil {
		t.Fatalf("UnmarshalStats() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, src.Stats()) {
		t.Errorf("decoded = %+v, want %+v", decoded, src.Stats())
	}

	dst := kws.NewMetrics(kws.WithAudioDuration(600))
	if err := dst.AddStats(decoded); err != nil {
		t.Fatalf("AddStats() error = %v", err)
	}
	want, err := src.OracleMeasures()
	if err != nil {
		t.Fatalf("OracleMeasures() error = %v", err)
	}
	got, err := dst.OracleMeasures()
	if err != nil {
		t.Fatalf("OracleMeasures() error = %v", err)
	}
	if got != want {
		t.Errorf("OracleMeasures() after round trip = %+v, want %+v", got, want)
	}
}

func TestUnmarshalStats_SkipsUnknownFields(t *testing.T) {
	b := mustMarshal(t, sampleStats())
	b = protowire.AppendTag(b, 15, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	st, err := UnmarshalStats(b)
	if err != nil {
		t.Fatalf("UnmarshalStats() error = %v", err)
	}
	if len(st.Keywords) != 3 {
		t.Errorf("got %d keywords, want 3", len(st.Keywords))
	}
}

func TestUnmarshalStats_Malformed(t *testing.T) {
	missingID, err := proto.Marshal(&pb.Stats{Keywords: []*pb.Keyword{{Ntrue: 1}}})
	if err != nil {
		t.Fatal(err)
	}

	oddScores := protowire.AppendTag(nil, 1, protowire.BytesType)
	oddScores = protowire.AppendString(oddScores, "kw")
	oddScores = protowire.AppendTag(oddScores, 3, protowire.BytesType)
	oddScores = protowire.AppendBytes(oddScores, []byte{1, 2, 3})
	badPacked := protowire.AppendTag(nil, 1, protowire.BytesType)
	badPacked = protowire.AppendBytes(badPacked, oddScores)

	tests := []struct {
		name  string
		input []byte
	}{
		{"truncated", mustMarshal(t, sampleStats())[:5]},
		{"missing keyword id", missingID},
		{"packed length", badPacked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalStats(tt.input); !errors.Is(err, ErrMalformed) {
				t.Errorf("UnmarshalStats() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestMarshalStats_Rejects(t *testing.T) {
	tests := []struct {
		name string
		st   kws.Stats
	}{
		{"negative ntrue", kws.Stats{Keywords: []kws.KeywordStats{{KwID: "kw", NTrue: -1}}}},
		{"invalid utf-8 keyword", kws.Stats{Keywords: []kws.KeywordStats{{KwID: "kw\xff"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := MarshalStats(tt.st); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMarshalStats_MatchesGeneratedMessage(t *testing.T) {
	b := mustMarshal(t, sampleStats())
	var msg pb.Stats
	if err := proto.Unmarshal(b, &msg); err != nil {
		t.Fatalf("proto.Unmarshal() error = %v", err)
	}
	if len(msg.GetKeywords()) != 3 {
		t.Fatalf("got %d keywords, want 3", len(msg.GetKeywords()))
	}
	k := msg.GetKeywords()[0]
	if k.GetKwId() != "KW-001" || k.GetNtrue() != 3 || len(k.GetCorr()) != 2 || len(k.GetFalseAlarms()) != 1 {
		t.Errorf("keyword 0 = %v", k)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stats")
	if err := WriteFile(path, sampleStats()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	st, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(st.Keywords) != 3 || st.Keywords[0].KwID != "KW-001" {
		t.Errorf("ReadFile() = %+v", st)
	}
}
