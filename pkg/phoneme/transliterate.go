package phoneme

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Transliterator reads PIE dictionary orthography ("ph₂tḗr", "*bʰer-",
// "wĺ̥kʷos") into vocabulary sequences. Input is NFD-normalized first:
// aspiration and labialization modifiers become plain letters, laryngeal
// subscripts become digits, macrons become length marks, an acute on a
// vowel records stress, an acute on a consonant marks palatals, and
// syllabicity marks are dropped. The cleaned form is then tokenized by
// longest match against the transliteration table.
type Transliterator struct {
	vocab    *Vocabulary
	mappings map[string]string
	maxKey   int
}

// NewTransliterator validates the table: keys must be non-empty and every
// value must resolve in the vocabulary.
func NewTransliterator(v *Vocabulary, mappings map[string]string) (*Transliterator, error) {
	t := &Transliterator{vocab: v, mappings: make(map[string]string, len(mappings))}
	for key, symbol := range mappings {
		if key == "" {
			return nil, &DefinitionError{Symbol: symbol, Reason: "empty transliteration key"}
		}
		if !v.Has(symbol) {
			return nil, &DefinitionError{Symbol: symbol, Reason: "transliteration target not in vocabulary"}
		}
		t.mappings[key] = symbol
		if len(key) > t.maxKey {
			t.maxKey = len(key)
		}
	}
	return t, nil
}

// Read converts one dictionary headword into a sequence. Unreadable text
// aborts with a ParseError naming the offending run; no partial sequence
// is returned.
func (t *Transliterator) Read(word string) (Sequence, error) {
	clean, stressAt := t.normalize(word)
	var (
		phonemes []Phoneme
		spans    []int
	)
	for pos := 0; pos < len(clean); {
		if clean[pos] == ' ' {
			pos++
			continue
		}
		matched := false
		for l := min(t.maxKey, len(clean)-pos); l >= 1; l-- {
			symbol, ok := t.mappings[clean[pos:pos+l]]
			if !ok {
				continue
			}
			p, _ := t.vocab.Lookup(symbol)
			phonemes = append(phonemes, p)
			spans = append(spans, pos)
			pos += l
			matched = true
			break
		}
		if !matched {
			return Sequence{}, &ParseError{Input: word, Token: clean[pos:], Offset: pos}
		}
	}
	seq := New(phonemes...)
	if stressAt >= 0 {
		for i := len(spans) - 1; i >= 0; i-- {
			if spans[i] <= stressAt && phonemes[i].IsVowel() {
				seq, _ = seq.WithStress(i)
				break
			}
		}
	}
	return seq, nil
}

const (
	combiningAcute       = '́'
	combiningMacron      = '̄'
	combiningRingBelow   = '̥'
	combiningBreveBelow  = '̯'
	modifierAspiration   = 'ʰ'
	modifierLabialization = 'ʷ'
)

// normalize lowers the headword into the ASCII working form the token
// table is written against. It returns the working string and the byte
// position of the stressed vowel, -1 when unmarked.
func (t *Transliterator) normalize(word string) (string, int) {
	var b strings.Builder
	stressAt := -1
	lastBase := -1
	for _, r := range norm.NFD.String(word) {
		switch {
		case r == '*' || r == '-':
		case r == modifierAspiration:
			b.WriteByte('h')
		case r == modifierLabialization:
			b.WriteByte('w')
		case r >= '₀' && r <= '₉':
			b.WriteByte(byte('0' + r - '₀'))
		case unicode.Is(unicode.Mn, r):
			switch r {
			case combiningAcute:
				if lastBase >= 0 {
					switch base := b.String()[lastBase]; base {
					case 'a', 'e', 'i', 'o', 'u', 'y':
						stressAt = lastBase
					case 'k', 'g':
						b.WriteByte('\'')
					}
				}
			case combiningMacron:
				b.WriteByte(':')
			case combiningBreveBelow:
				if lastBase >= 0 && lastBase == b.Len()-1 {
					s := b.String()
					switch s[lastBase] {
					case 'u':
						b.Reset()
						b.WriteString(s[:lastBase])
						b.WriteByte('w')
					case 'i':
						b.Reset()
						b.WriteString(s[:lastBase])
						b.WriteByte('j')
					}
				}
			case combiningRingBelow:
				// syllabicity is not carried into the working form
			}
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		default:
			lastBase = b.Len()
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String(), stressAt
}
