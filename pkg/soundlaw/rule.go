package soundlaw

import (
	"fmt"
	"strconv"
	"strings"

	"etymon/pkg/phoneme"
)

// Period labels the historical era a stage belongs to. Several stages may
// share a period; the final output of each period is what traces and
// glosses display.
type Period string

// Periods in chronological order.
const (
	PeriodLatePIE        Period = "late_pie"
	PeriodProtoGermanic  Period = "proto_germanic"
	PeriodOldEnglish     Period = "old_english"
	PeriodLateOldEnglish Period = "late_old_english"
	PeriodMiddleEnglish  Period = "middle_english"
	PeriodModernEnglish  Period = "modern_english"
)

// KnownPeriod reports whether p is one of the defined periods.
func KnownPeriod(p Period) bool {
	switch p {
	case PeriodLatePIE, PeriodProtoGermanic, PeriodOldEnglish,
		PeriodLateOldEnglish, PeriodMiddleEnglish, PeriodModernEnglish:
		return true
	}
	return false
}

// Abbrev returns the short display form used in etymology lines.
func (p Period) Abbrev() string {
	switch p {
	case PeriodLatePIE:
		return "LPIE"
	case PeriodProtoGermanic:
		return "PGmc"
	case PeriodOldEnglish:
		return "OEng"
	case PeriodLateOldEnglish:
		return "LOEng"
	case PeriodMiddleEnglish:
		return "MiddleEng"
	case PeriodModernEnglish:
		return "ModEng"
	}
	return string(p)
}

// Label returns the long display form.
func (p Period) Label() string {
	switch p {
	case PeriodLatePIE:
		return "Late PIE"
	case PeriodProtoGermanic:
		return "Proto-Germanic"
	case PeriodOldEnglish:
		return "Old English"
	case PeriodLateOldEnglish:
		return "Late Old English"
	case PeriodMiddleEnglish:
		return "Middle English"
	case PeriodModernEnglish:
		return "Modern English"
	}
	return string(p)
}

// Rule rewrites a run of one to three phonemes. Output entries are literal
// vocabulary symbols or $i references to matched slots; an empty output
// deletes the run. Same demands that every matched slot carry the same
// symbol. A rule sees nothing beyond its match slots and declared contexts.
type Rule struct {
	Name   string    `json:"name,omitempty"`
	Match  []Pattern `json:"match"`
	Output []string  `json:"output"`
	Left   Context   `json:"left,omitempty"`
	Right  Context   `json:"right,omitempty"`
	Same   bool      `json:"same,omitempty"`
}

const maxMatchLen = 3

// Validate checks the rule's patterns, contexts, and outputs against the
// vocabulary.
func (r Rule) Validate(vocab *phoneme.Vocabulary) error {
	if len(r.Match) == 0 || len(r.Match) > maxMatchLen {
		return fmt.Errorf("match must cover 1 to %d slots, got %d", maxMatchLen, len(r.Match))
	}
	for i, p := range r.Match {
		if err := p.Validate(vocab); err != nil {
			return fmt.Errorf("match[%d]: %w", i, err)
		}
		if p.Edge {
			return fmt.Errorf("match[%d]: edge cannot be consumed", i)
		}
	}
	for i, out := range r.Output {
		if slot, ok := slotRef(out); ok {
			if slot < 0 || slot >= len(r.Match) {
				return fmt.Errorf("output[%d]: slot reference %s out of range", i, out)
			}
			continue
		}
		if !vocab.Has(out) {
			return fmt.Errorf("output[%d]: unknown symbol %q", i, out)
		}
	}
	if r.Same && len(r.Match) < 2 {
		return fmt.Errorf("same requires at least two match slots")
	}
	if err := r.Left.validate(vocab); err != nil {
		return fmt.Errorf("left: %w", err)
	}
	if err := r.Right.validate(vocab); err != nil {
		return fmt.Errorf("right: %w", err)
	}
	return nil
}

func slotRef(out string) (int, bool) {
	if !strings.HasPrefix(out, "$") {
		return 0, false
	}
	n, err := strconv.Atoi(out[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MatchesAt reports whether the rule fires with its first slot at position
// pos of word.
func (r Rule) MatchesAt(word []phoneme.Phoneme, pos int) bool {
	if pos+len(r.Match) > len(word) {
		return false
	}
	for i, pat := range r.Match {
		if !pat.Matches(word[pos+i]) {
			return false
		}
	}
	if r.Same {
		first := word[pos].Symbol
		for i := 1; i < len(r.Match); i++ {
			if word[pos+i].Symbol != first {
				return false
			}
		}
	}
	return r.Left.holdsLeft(word, pos) && r.Right.holdsRight(word, pos+len(r.Match))
}

// Expand resolves the rule's outputs for a match at pos: slot references
// copy the matched phoneme, literals are looked up in the vocabulary. The
// caller has already established the match.
func (r Rule) Expand(vocab *phoneme.Vocabulary, word []phoneme.Phoneme, pos int) ([]phoneme.Phoneme, error) {
	out := make([]phoneme.Phoneme, 0, len(r.Output))
	for _, sym := range r.Output {
		if slot, ok := slotRef(sym); ok {
			out = append(out, word[pos+slot])
			continue
		}
		ph, found := vocab.Lookup(sym)
		if !found {
			return nil, fmt.Errorf("output symbol %q not in vocabulary", sym)
		}
		out = append(out, ph)
	}
	return out, nil
}

// Stage is a named ordered rule group applied as one pass. Rules are tried
// in declared order at each position; the first match wins.
type Stage struct {
	Name   string `json:"name"`
	Period Period `json:"period"`
	Rules  []Rule `json:"rules"`
}

// Validate checks the stage's rules against the vocabulary.
func (s Stage) Validate(vocab *phoneme.Vocabulary) error {
	if s.Name == "" {
		return fmt.Errorf("stage name required")
	}
	if !KnownPeriod(s.Period) {
		return fmt.Errorf("stage %q: unknown period %q", s.Name, s.Period)
	}
	for i, rule := range s.Rules {
		if err := rule.Validate(vocab); err != nil {
			if rule.Name != "" {
				return fmt.Errorf("stage %q rule %q: %w", s.Name, rule.Name, err)
			}
			return fmt.Errorf("stage %q rule %d: %w", s.Name, i, err)
		}
	}
	return nil
}
