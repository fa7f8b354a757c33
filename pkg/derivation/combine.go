package derivation

import (
	"fmt"

	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

// JunctionRule adjusts the seam where a suffix joins a root. Variants are
// tried in order and anchor at the last root phoneme; a variant's match may
// extend into the suffix. The first matching variant fires. A mandatory
// rule with no matching variant aborts the combination; a non-mandatory
// rule falls through to the plain concatenation.
type JunctionRule struct {
	Name      string          `json:"name"`
	Mandatory bool            `json:"mandatory,omitempty"`
	Variants  []soundlaw.Rule `json:"variants"`
}

// Combiner joins root and suffix sequences under a junction rule table.
// Immutable after construction and safe for concurrent use.
type Combiner struct {
	vocab *phoneme.Vocabulary
	rules []JunctionRule
}

// NewCombiner validates the junction table against the vocabulary.
func NewCombiner(vocab *phoneme.Vocabulary, rules []JunctionRule) (*Combiner, error) {
	if vocab == nil {
		return nil, fmt.Errorf("vocabulary required")
	}
	for i, jr := range rules {
		if jr.Name == "" {
			return nil, fmt.Errorf("junction rule %d: name required", i)
		}
		if len(jr.Variants) == 0 {
			return nil, fmt.Errorf("junction rule %q: at least one variant required", jr.Name)
		}
		for vi, v := range jr.Variants {
			if err := v.Validate(vocab); err != nil {
				return nil, fmt.Errorf("junction rule %q variant %d: %w", jr.Name, vi, err)
			}
		}
	}
	cp := make([]JunctionRule, len(rules))
	copy(cp, rules)
	return &Combiner{vocab: vocab, rules: cp}, nil
}

// Combine concatenates root and suffix and applies the junction rules at
// the seam. An empty suffix returns the root unchanged with no junction
// applied. Rules fire in declared order against the current sequence, each
// anchored at the original root-final position; firings of the default
// rules leave the seam in a shape no later default can match, so the
// anchor stays put.
func (c *Combiner) Combine(root, suffix phoneme.Sequence) (phoneme.Sequence, error) {
	if root.IsEmpty() {
		return phoneme.Sequence{}, fmt.Errorf("empty root")
	}
	if suffix.IsEmpty() {
		return root, nil
	}
	joined := root.Concat(suffix)
	word := joined.Phonemes()
	anchor := root.Len() - 1
	for _, jr := range c.rules {
		fired := false
		for _, v := range jr.Variants {
			if !v.MatchesAt(word, anchor) {
				continue
			}
			expanded, err := v.Expand(c.vocab, word, anchor)
			if err != nil {
				return phoneme.Sequence{}, fmt.Errorf("junction rule %q: %w", jr.Name, err)
			}
			rebuilt := make([]phoneme.Phoneme, 0, len(word)-len(v.Match)+len(expanded))
			rebuilt = append(rebuilt, word[:anchor]...)
			rebuilt = append(rebuilt, expanded...)
			rebuilt = append(rebuilt, word[anchor+len(v.Match):]...)
			word = rebuilt
			fired = true
			break
		}
		if !fired && jr.Mandatory {
			return phoneme.Sequence{}, &JunctionError{
				Rule:   jr.Name,
				Root:   root.String(),
				Suffix: suffix.String(),
			}
		}
	}
	return phoneme.New(word...).WithGloss(joined.Gloss()), nil
}
