package derivation

import (
	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

// Snapshot is the form a word reached by the end of one historical period,
// with its display transcription.
type Snapshot struct {
	Period soundlaw.Period
	Form   phoneme.Sequence
	IPA    string
}

// Trace records a completed derivation: every stage application in order,
// plus the period-final snapshots the etymology draws on. A trace belongs
// to the run that produced it and is never mutated afterwards.
type Trace struct {
	Stages    []soundlaw.StageResult
	Snapshots []Snapshot
}

// Snapshot returns the period-final form for p.
func (t Trace) Snapshot(p soundlaw.Period) (Snapshot, bool) {
	for _, s := range t.Snapshots {
		if s.Period == p {
			return s, true
		}
	}
	return Snapshot{}, false
}

// Result is the complete output of one derivation run.
type Result struct {
	Root     phoneme.Sequence
	Suffix   phoneme.Sequence
	Combined phoneme.Sequence
	Phonetic phoneme.Sequence
	IPA      string
	Spelling string
	Meaning  string
	Gloss    string
	FinalE   bool
	Trace    Trace
}
