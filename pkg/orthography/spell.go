package orthography

import (
	"strings"

	"etymon/pkg/phoneme"
)

// Options adjust a single spelling run.
type Options struct {
	// FinalE appends a silent e when the written form does not already end
	// in one. The pipeline sets it when the Middle English snapshot ended
	// in a vowel.
	FinalE bool
}

// Speller produces one deterministic spelling per sequence.
type Speller struct {
	table *Table
}

// NewSpeller wraps a validated grapheme table.
func NewSpeller(table *Table) *Speller { return &Speller{table: table} }

type glyph struct {
	text   string
	ph     phoneme.Phoneme
	magicE bool
}

// Spell maps each phoneme to its best grapheme, then runs the fixed
// post-processing passes: magic-e placement, final sonorant support, the
// optional final silent e, and letter cleanup. Passes run once, in order,
// and never re-trigger grapheme selection. A phoneme with no applicable
// rule aborts with an UnspellableError.
func (s *Speller) Spell(seq phoneme.Sequence, opts Options) (string, error) {
	word := seq.Phonemes()
	glyphs := make([]glyph, 0, len(word))
	for i, ph := range word {
		rule, ok := s.table.pick(word, i)
		if !ok {
			return "", &UnspellableError{Symbol: ph.Symbol, Position: i}
		}
		glyphs = append(glyphs, glyph{text: rule.Text, ph: ph, magicE: rule.MagicE})
	}

	glyphs = placeMagicE(glyphs)
	glyphs = supportFinalSonorant(glyphs)

	spelled := strings.Builder{}
	for _, g := range glyphs {
		spelled.WriteString(g.text)
	}
	out := spelled.String()
	if opts.FinalE && !strings.HasSuffix(out, "e") && out != "" {
		out += "e"
	}
	return cleanupLetters(out), nil
}

// placeMagicE moves each deferred e after the consonant group that follows
// its carrier, but only when that group runs to the end of the word. A
// following vowel cancels the deferral: the vowel letter itself separates,
// as in paper against paste.
func placeMagicE(glyphs []glyph) []glyph {
	for i := range glyphs {
		if !glyphs[i].magicE {
			continue
		}
		glyphs[i].magicE = false
		end := i
		for j := i + 1; j < len(glyphs) && glyphs[j].ph.Is(phoneme.ClassConsonant); j++ {
			end = j
		}
		if end > i && end == len(glyphs)-1 {
			glyphs[end].text += "e"
		}
	}
	return glyphs
}

// supportFinalSonorant inserts e before a word-final w/r/l/m/n that sits
// directly on another consonant, so clusters like tl or tr read as a final
// syllable. A final glyph that already carries a vowel letter, from its
// own rule or from magic-e placement, needs no support.
func supportFinalSonorant(glyphs []glyph) []glyph {
	if len(glyphs) < 2 {
		return glyphs
	}
	last := len(glyphs) - 1
	if !isSonorantConsonant(glyphs[last].ph) {
		return glyphs
	}
	if !glyphs[last-1].ph.Is(phoneme.ClassConsonant) {
		return glyphs
	}
	if strings.ContainsFunc(glyphs[last].text, isVowelLetter) {
		return glyphs
	}
	glyphs[last].text = "e" + glyphs[last].text
	return glyphs
}

func isSonorantConsonant(p phoneme.Phoneme) bool {
	switch p.Symbol {
	case "w", "r\\", "l", "m", "n":
		return true
	}
	return false
}

// cleanupLetters collapses letter pileups left by grapheme junctions:
// runs of three or more of one letter drop to two, and doubled vowel
// letters across a junction collapse to one unless the double is a real
// digraph (ee, oo).
func cleanupLetters(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i >= 2 && runes[i-1] == r && runes[i-2] == r {
			continue
		}
		if i >= 1 && runes[i-1] == r && isVowelLetter(r) && r != 'e' && r != 'o' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isVowelLetter(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
