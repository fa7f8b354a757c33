// Package derivation runs the word pipeline end to end: affix combination,
// the ordered sound-change stages, spelling, and the etymology gloss. The
// pipeline is strictly linear; any step's failure aborts the run with no
// partial result.
package derivation

import (
	"fmt"
	"strings"

	"etymon/pkg/orthography"
	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

// Input is one derivation request. Root is required. Names are PIE
// citation forms shown in the gloss; when RootName is empty the root's
// symbols stand in. Meaning, when set, overrides the combined root and
// suffix meanings.
type Input struct {
	Root          phoneme.Sequence
	RootName      string
	RootMeaning   string
	Suffix        phoneme.Sequence
	SuffixName    string
	SuffixMeaning string
	Meaning       string
}

// Pipeline wires the combiner, engine, speller, and transcriber into one
// deterministic derivation function. Pipelines are immutable and safe for
// concurrent use; independent runs share nothing but the read-only tables.
type Pipeline struct {
	combiner *Combiner
	engine   *soundlaw.Engine
	speller  *orthography.Speller
	ipa      *orthography.IPA
}

// NewPipeline assembles a pipeline from its four parts, all required.
func NewPipeline(combiner *Combiner, engine *soundlaw.Engine, speller *orthography.Speller, ipa *orthography.IPA) (*Pipeline, error) {
	if combiner == nil {
		return nil, fmt.Errorf("combiner required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine required")
	}
	if speller == nil {
		return nil, fmt.Errorf("speller required")
	}
	if ipa == nil {
		return nil, fmt.Errorf("transcriber required")
	}
	return &Pipeline{combiner: combiner, engine: engine, speller: speller, ipa: ipa}, nil
}

// Derive runs one request through combine, the stage chain, and spelling.
// A silent final e is added when the word still ended in a vowel at the
// close of Middle English, matching the convention that the vowel survives
// in writing after it stopped being said.
func (p *Pipeline) Derive(in Input) (Result, error) {
	if in.Root.IsEmpty() {
		return Result{}, fmt.Errorf("derive: empty root")
	}
	combined, err := p.combiner.Combine(in.Root, in.Suffix)
	if err != nil {
		return Result{}, fmt.Errorf("derive: %w", err)
	}
	final, stages, err := p.engine.Apply(combined)
	if err != nil {
		return Result{}, fmt.Errorf("derive: %w", err)
	}
	trace := Trace{Stages: stages, Snapshots: p.snapshotPeriods(stages)}
	finalE := false
	if me, ok := trace.Snapshot(soundlaw.PeriodMiddleEnglish); ok && !me.Form.IsEmpty() {
		finalE = me.Form.At(me.Form.Len() - 1).IsVowel()
	}
	spelling, err := p.speller.Spell(final, orthography.Options{FinalE: finalE})
	if err != nil {
		return Result{}, fmt.Errorf("derive: %w", err)
	}
	rootName := in.RootName
	if rootName == "" {
		rootName = strings.Join(in.Root.Symbols(), "")
	}
	return Result{
		Root:     in.Root,
		Suffix:   in.Suffix,
		Combined: combined,
		Phonetic: final,
		IPA:      p.ipa.Render(final.Symbols()),
		Spelling: spelling,
		Meaning:  CombineMeaning(in.RootMeaning, in.SuffixMeaning, in.Meaning, !in.Suffix.IsEmpty()),
		Gloss:    BuildGloss(trace.Snapshots, rootName, in.SuffixName, spelling),
		FinalE:   finalE,
		Trace:    trace,
	}, nil
}

// snapshotPeriods keeps the last output of each period, in order of first
// appearance, with its transcription.
func (p *Pipeline) snapshotPeriods(stages []soundlaw.StageResult) []Snapshot {
	var snapshots []Snapshot
	index := make(map[soundlaw.Period]int)
	for _, st := range stages {
		form := st.Output
		if i, seen := index[st.Period]; seen {
			snapshots[i].Form = form
			snapshots[i].IPA = p.ipa.Render(form.Symbols())
			continue
		}
		index[st.Period] = len(snapshots)
		snapshots = append(snapshots, Snapshot{
			Period: st.Period,
			Form:   form,
			IPA:    p.ipa.Render(form.Symbols()),
		})
	}
	return snapshots
}
