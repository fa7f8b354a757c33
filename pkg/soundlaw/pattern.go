// Package soundlaw models ordered historical sound-change rules and applies
// them to phoneme sequences. A stage is a single deterministic left-to-right
// pass: at each position the first matching rule fires, emits its output,
// and the cursor moves past the consumed phonemes, so rule output is never
// re-examined within its own stage. Chronology lives in the stage order.
package soundlaw

import (
	"fmt"

	"etymon/pkg/phoneme"
)

// Pattern matches one phoneme slot. Exactly one of Symbols, Class, Any, or
// Edge selects the mode. Word boundaries are matched against an explicit
// edge sentinel: positive patterns never match it, Edge patterns match only
// it, and Not patterns match it unless Real is set.
type Pattern struct {
	Symbols []string      `json:"symbols,omitempty"`
	Class   phoneme.Class `json:"class,omitempty"`
	Any     bool          `json:"any,omitempty"`
	Edge    bool          `json:"edge,omitempty"`
	Not     bool          `json:"not,omitempty"`
	Real    bool          `json:"real,omitempty"`
}

// Matches reports whether p accepts the phoneme, which may be the boundary
// sentinel.
func (p Pattern) Matches(ph phoneme.Phoneme) bool {
	if p.Edge {
		return ph.IsEdge()
	}
	if ph.IsEdge() {
		return p.Not && !p.Real
	}
	base := p.Any
	if len(p.Symbols) > 0 {
		for _, sym := range p.Symbols {
			if ph.Symbol == sym {
				base = true
				break
			}
		}
	} else if p.Class != "" {
		base = ph.Is(p.Class)
	}
	if p.Not {
		return !base
	}
	return base
}

// Validate checks the pattern's mode and resolves its symbols and class
// against the vocabulary.
func (p Pattern) Validate(vocab *phoneme.Vocabulary) error {
	modes := 0
	if len(p.Symbols) > 0 {
		modes++
	}
	if p.Class != "" {
		modes++
	}
	if p.Any {
		modes++
	}
	if p.Edge {
		modes++
	}
	if modes != 1 {
		return fmt.Errorf("pattern must use exactly one of symbols, class, any, edge")
	}
	if p.Not && (p.Any || p.Edge) {
		return fmt.Errorf("not cannot combine with any or edge")
	}
	if p.Real && !p.Not {
		return fmt.Errorf("real is only meaningful with not")
	}
	for _, sym := range p.Symbols {
		if !vocab.Has(sym) {
			return fmt.Errorf("unknown symbol %q", sym)
		}
	}
	if p.Class != "" && !phoneme.KnownClass(p.Class) {
		return fmt.Errorf("unknown class %q", p.Class)
	}
	return nil
}

// Context constrains one side of a match site. Next patterns bind the
// adjacent slots, nearest first, with the edge sentinel standing in beyond
// the word. Contains patterns must occur in order scanning outward through
// the remaining span; Lacks patterns must not occur there at all; Final
// binds the outermost phoneme of the remaining span (word-final on the
// right, word-initial on the left) and fails when the span is empty.
type Context struct {
	Next     []Pattern `json:"next,omitempty"`
	Contains []Pattern `json:"contains,omitempty"`
	Lacks    []Pattern `json:"lacks,omitempty"`
	Final    *Pattern  `json:"final,omitempty"`
}

func (c Context) isZero() bool {
	return len(c.Next) == 0 && len(c.Contains) == 0 && len(c.Lacks) == 0 && c.Final == nil
}

func (c Context) validate(vocab *phoneme.Vocabulary) error {
	for i, p := range c.Next {
		if err := p.Validate(vocab); err != nil {
			return fmt.Errorf("next[%d]: %w", i, err)
		}
	}
	for i, p := range c.Contains {
		if err := p.Validate(vocab); err != nil {
			return fmt.Errorf("contains[%d]: %w", i, err)
		}
	}
	for i, p := range c.Lacks {
		if err := p.Validate(vocab); err != nil {
			return fmt.Errorf("lacks[%d]: %w", i, err)
		}
	}
	if c.Final != nil {
		if err := c.Final.Validate(vocab); err != nil {
			return fmt.Errorf("final: %w", err)
		}
	}
	return nil
}

// holdsLeft evaluates the context against everything before site start.
func (c Context) holdsLeft(word []phoneme.Phoneme, start int) bool {
	for k, pat := range c.Next {
		idx := start - 1 - k
		ph := phoneme.Edge()
		if idx >= 0 {
			ph = word[idx]
		}
		if !pat.Matches(ph) {
			return false
		}
	}
	spanEnd := start - 1 - len(c.Next) // scanned outward toward the word start
	if len(c.Contains) > 0 {
		ci := 0
		for i := spanEnd; i >= 0 && ci < len(c.Contains); i-- {
			if c.Contains[ci].Matches(word[i]) {
				ci++
			}
		}
		if ci < len(c.Contains) {
			return false
		}
	}
	for i := spanEnd; i >= 0; i-- {
		for _, pat := range c.Lacks {
			if pat.Matches(word[i]) {
				return false
			}
		}
	}
	if c.Final != nil {
		if spanEnd < 0 || !c.Final.Matches(word[0]) {
			return false
		}
	}
	return true
}

// holdsRight evaluates the context against everything from site end on.
func (c Context) holdsRight(word []phoneme.Phoneme, end int) bool {
	for k, pat := range c.Next {
		idx := end + k
		ph := phoneme.Edge()
		if idx < len(word) {
			ph = word[idx]
		}
		if !pat.Matches(ph) {
			return false
		}
	}
	spanStart := end + len(c.Next)
	if len(c.Contains) > 0 {
		ci := 0
		for i := spanStart; i < len(word) && ci < len(c.Contains); i++ {
			if c.Contains[ci].Matches(word[i]) {
				ci++
			}
		}
		if ci < len(c.Contains) {
			return false
		}
	}
	for i := spanStart; i < len(word); i++ {
		for _, pat := range c.Lacks {
			if pat.Matches(word[i]) {
				return false
			}
		}
	}
	if c.Final != nil {
		if spanStart >= len(word) || !c.Final.Matches(word[len(word)-1]) {
			return false
		}
	}
	return true
}
