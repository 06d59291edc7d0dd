package kws

// EntryKind tags the three possible outcomes of aligning a term.
type EntryKind uint8

const (
	// Matched pairs a hypothesis with a reference.
	Matched EntryKind = iota + 1
	// Miss is a reference that no hypothesis was aligned to.
	Miss
	// FalseAlarm is a hypothesis with no matching reference.
	FalseAlarm
)

func (k EntryKind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Miss:
		return "miss"
	case FalseAlarm:
		return "false-alarm"
	default:
		return "unknown"
	}
}

// Entry is one row of an Alignment. Entries are only built by the aligner
// (or the constructors below), so a row with neither side valid cannot exist.
type Entry struct {
	kind  EntryKind
	ref   Term
	hyp   Term
	score float64
}

// MatchedEntry pairs ref and hyp with the aligner's match score.
func MatchedEntry(ref, hyp Term, score float64) Entry {
	return Entry{kind: Matched, ref: ref, hyp: hyp, score: score}
}

// MissEntry records a reference with no detection.
func MissEntry(ref Term) Entry {
	return Entry{kind: Miss, ref: ref}
}

// FalseAlarmEntry records a detection with no reference.
func FalseAlarmEntry(hyp Term) Entry {
	return Entry{kind: FalseAlarm, hyp: hyp}
}

// Kind returns the entry's case.
func (e Entry) Kind() EntryKind { return e.kind }

// Ref returns the reference side. ok is false for false alarms.
func (e Entry) Ref() (ref Term, ok bool) {
	return e.ref, e.kind == Matched || e.kind == Miss
}

// Hyp returns the hypothesis side. ok is false for misses.
func (e Entry) Hyp() (hyp Term, ok bool) {
	return e.hyp, e.kind == Matched || e.kind == FalseAlarm
}

// Score is the aligner's match quality. It is zero unless the entry is Matched.
func (e Entry) Score() float64 { return e.score }

// KwID returns the keyword of whichever side is present.
func (e Entry) KwID() string {
	if e.kind == FalseAlarm {
		return e.hyp.KwID
	}
	return e.ref.KwID
}

// UttID returns the utterance of whichever side is present.
func (e Entry) UttID() int {
	if e.kind == FalseAlarm {
		return e.hyp.UttID
	}
	return e.ref.UttID
}

// Alignment is the ordered result of aligning hypotheses to references.
// Order is discovery order: matches and false alarms in hypothesis order,
// followed by misses in reference bucket order.
type Alignment struct {
	entries []Entry
}

// NewAlignment builds an alignment from prepared entries, for callers that
// reconstruct alignments outside the aligner (tests, importers).
func NewAlignment(entries ...Entry) *Alignment {
	return &Alignment{entries: append([]Entry(nil), entries...)}
}

func (a *Alignment) add(e Entry) {
	a.entries = append(a.entries, e)
}

// Len returns the number of entries.
func (a *Alignment) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// At returns the i-th entry.
func (a *Alignment) At(i int) Entry {
	return a.entries[i]
}

// All iterates entries in order.
func (a *Alignment) All() func(yield func(int, Entry) bool) {
	return func(yield func(int, Entry) bool) {
		if a == nil {
			return
		}
		for i, e := range a.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Counts returns the number of matched, missed, and false-alarm entries.
func (a *Alignment) Counts() (matched, misses, falseAlarms int) {
	for _, e := range a.All() {
		switch e.kind {
		case Matched:
			matched++
		case Miss:
			misses++
		case FalseAlarm:
			falseAlarms++
		}
	}
	return matched, misses, falseAlarms
}
