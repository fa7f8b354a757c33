// Package orthography turns phoneme sequences into modern-English
// spellings and renders XSAMPA symbols as IPA for display. Spelling is
// deterministic: per-phoneme grapheme rules are ranked by context
// specificity, then a fixed series of post-processing passes adjusts the
// written form.
package orthography

import (
	"fmt"

	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

// GraphemeRule writes one phoneme. Left and Right, when set, constrain the
// adjacent phonemes (the boundary sentinel stands in beyond the word), so a
// rule with both is more specific than a rule with one, which beats the
// context-free fallback. Every vocabulary symbol needs a fallback rule.
// MagicE defers a silent e that the first post-pass places after the
// following consonant group.
type GraphemeRule struct {
	Symbol string            `json:"symbol"`
	Text   string            `json:"text"`
	MagicE bool              `json:"magic_e,omitempty"`
	Left   *soundlaw.Pattern `json:"left,omitempty"`
	Right  *soundlaw.Pattern `json:"right,omitempty"`
}

func (r GraphemeRule) specificity() int {
	n := 0
	if r.Left != nil {
		n++
	}
	if r.Right != nil {
		n++
	}
	return n
}

func (r GraphemeRule) matches(left, right phoneme.Phoneme) bool {
	if r.Left != nil && !r.Left.Matches(left) {
		return false
	}
	if r.Right != nil && !r.Right.Matches(right) {
		return false
	}
	return true
}

// Table holds grapheme rules grouped by symbol in declaration order.
type Table struct {
	rules map[string][]GraphemeRule
}

// NewTable validates rules against the vocabulary: symbols must exist and
// context patterns must be well formed.
func NewTable(vocab *phoneme.Vocabulary, rules []GraphemeRule) (*Table, error) {
	t := &Table{rules: make(map[string][]GraphemeRule)}
	for i, r := range rules {
		if !vocab.Has(r.Symbol) {
			return nil, fmt.Errorf("grapheme rule %d: unknown symbol %q", i, r.Symbol)
		}
		if err := validPattern(vocab, r.Left); err != nil {
			return nil, fmt.Errorf("grapheme rule %d (%s): left: %w", i, r.Symbol, err)
		}
		if err := validPattern(vocab, r.Right); err != nil {
			return nil, fmt.Errorf("grapheme rule %d (%s): right: %w", i, r.Symbol, err)
		}
		t.rules[r.Symbol] = append(t.rules[r.Symbol], r)
	}
	return t, nil
}

func validPattern(vocab *phoneme.Vocabulary, p *soundlaw.Pattern) error {
	if p == nil {
		return nil
	}
	return p.Validate(vocab)
}

// CoverageGaps returns vocabulary symbols without a context-free fallback
// rule, sorted. An empty result is the invariant spelled output relies on.
func (t *Table) CoverageGaps(vocab *phoneme.Vocabulary) []string {
	var gaps []string
	for _, sym := range vocab.Symbols() {
		if !t.hasFallback(sym) {
			gaps = append(gaps, sym)
		}
	}
	return gaps
}

func (t *Table) hasFallback(symbol string) bool {
	for _, r := range t.rules[symbol] {
		if r.specificity() == 0 {
			return true
		}
	}
	return false
}

// pick selects the most specific matching rule for the phoneme at i, ties
// resolved by declaration order.
func (t *Table) pick(word []phoneme.Phoneme, i int) (GraphemeRule, bool) {
	left := phoneme.Edge()
	if i > 0 {
		left = word[i-1]
	}
	right := phoneme.Edge()
	if i+1 < len(word) {
		right = word[i+1]
	}
	best := GraphemeRule{}
	bestSpec := -1
	for _, r := range t.rules[word[i].Symbol] {
		if !r.matches(left, right) {
			continue
		}
		if r.specificity() > bestSpec {
			best = r
			bestSpec = r.specificity()
		}
	}
	return best, bestSpec >= 0
}
