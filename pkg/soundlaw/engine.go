package soundlaw

import (
	"fmt"

	"etymon/pkg/phoneme"
)

// Firing records one rule application inside a stage pass. Pos and Len
// describe the consumed span of the stage input; firings never overlap.
type Firing struct {
	Rule  string `json:"rule,omitempty"`
	Index int    `json:"index"`
	Pos   int    `json:"pos"`
	Len   int    `json:"len"`
}

// StageResult captures one stage application for the derivation trace.
type StageResult struct {
	Stage   string
	Period  Period
	Input   phoneme.Sequence
	Output  phoneme.Sequence
	Firings []Firing
}

// Changed reports whether the stage altered the sequence.
func (r StageResult) Changed() bool { return !r.Input.EqualPhonemes(r.Output) }

// Engine applies validated stages to sequences. Engines are immutable after
// construction and safe for concurrent use.
type Engine struct {
	vocab  *phoneme.Vocabulary
	stages []Stage
}

// NewEngine validates the stage table against the vocabulary. Stage names
// must be unique.
func NewEngine(vocab *phoneme.Vocabulary, stages []Stage) (*Engine, error) {
	if vocab == nil {
		return nil, fmt.Errorf("vocabulary required")
	}
	seen := make(map[string]struct{}, len(stages))
	for _, st := range stages {
		if err := st.Validate(vocab); err != nil {
			return nil, err
		}
		if _, dup := seen[st.Name]; dup {
			return nil, fmt.Errorf("duplicate stage %q", st.Name)
		}
		seen[st.Name] = struct{}{}
	}
	cp := make([]Stage, len(stages))
	copy(cp, stages)
	return &Engine{vocab: vocab, stages: cp}, nil
}

// Stages returns the engine's stage table in order.
func (e *Engine) Stages() []Stage {
	cp := make([]Stage, len(e.stages))
	copy(cp, e.stages)
	return cp
}

// ApplyStage runs one stage over seq as a single left-to-right pass. At
// each position the stage's rules are tried in declared order; the first
// full match fires, its output is emitted, and the cursor advances past the
// consumed span, so nothing a rule emits is re-examined in the same pass.
// Unmatched phonemes are copied. The stage may be foreign to the engine's
// table; it is validated on the way in.
func (e *Engine) ApplyStage(st Stage, seq phoneme.Sequence) (StageResult, error) {
	if err := st.Validate(e.vocab); err != nil {
		return StageResult{}, err
	}
	word := seq.Phonemes()
	var (
		out     []phoneme.Phoneme
		firings []Firing
	)
	for cursor := 0; cursor < len(word); {
		fired := false
		for ri := range st.Rules {
			rule := &st.Rules[ri]
			if !rule.MatchesAt(word, cursor) {
				continue
			}
			expanded, err := rule.Expand(e.vocab, word, cursor)
			if err != nil {
				return StageResult{}, fmt.Errorf("stage %q: %w", st.Name, err)
			}
			out = append(out, expanded...)
			firings = append(firings, Firing{Rule: rule.Name, Index: ri, Pos: cursor, Len: len(rule.Match)})
			cursor += len(rule.Match)
			fired = true
			break
		}
		if !fired {
			out = append(out, word[cursor])
			cursor++
		}
	}
	result := phoneme.New(out...).WithGloss(seq.Gloss())
	return StageResult{Stage: st.Name, Period: st.Period, Input: seq, Output: result, Firings: firings}, nil
}

// Apply folds the engine's stages over seq in chronological order, each
// stage consuming the previous stage's output, and returns the final
// sequence with the per-stage results that make up the derivation trace.
func (e *Engine) Apply(seq phoneme.Sequence) (phoneme.Sequence, []StageResult, error) {
	results := make([]StageResult, 0, len(e.stages))
	current := seq
	for _, st := range e.stages {
		res, err := e.ApplyStage(st, current)
		if err != nil {
			return phoneme.Sequence{}, nil, fmt.Errorf("apply %s: %w", st.Name, err)
		}
		results = append(results, res)
		current = res.Output
	}
	return current, results, nil
}
