package phoneme

import "strings"

// NoStress marks a sequence without a stressed position.
const NoStress = -1

// Sequence is an immutable ordered run of phonemes with an optional stress
// index and an optional gloss tag. The zero value is the empty sequence.
type Sequence struct {
	phonemes []Phoneme
	stress   int
	gloss    string
}

// New builds a sequence from phonemes. Stress defaults to the first vowel,
// NoStress when the sequence has none.
func New(phonemes ...Phoneme) Sequence {
	cp := make([]Phoneme, len(phonemes))
	copy(cp, phonemes)
	return Sequence{phonemes: cp, stress: firstVowel(cp)}
}

func firstVowel(phonemes []Phoneme) int {
	for i, p := range phonemes {
		if p.IsVowel() {
			return i
		}
	}
	return NoStress
}

// Len returns the number of phonemes.
func (s Sequence) Len() int { return len(s.phonemes) }

// IsEmpty reports whether the sequence has no phonemes.
func (s Sequence) IsEmpty() bool { return len(s.phonemes) == 0 }

// At returns the phoneme at index i. It panics when i is out of range, like
// a slice access.
func (s Sequence) At(i int) Phoneme { return s.phonemes[i] }

// Stress returns the stress index, NoStress when absent.
func (s Sequence) Stress() int { return s.stress }

// Gloss returns the gloss tag, empty when untagged.
func (s Sequence) Gloss() string { return s.gloss }

// WithStress returns a copy of s stressed at index i. It reports an error
// when i is neither NoStress nor a valid offset.
func (s Sequence) WithStress(i int) (Sequence, error) {
	if i != NoStress && (i < 0 || i >= len(s.phonemes)) {
		return Sequence{}, &StressError{Index: i, Len: len(s.phonemes)}
	}
	s.stress = i
	return s, nil
}

// WithGloss returns a copy of s tagged with gloss.
func (s Sequence) WithGloss(gloss string) Sequence {
	s.gloss = gloss
	return s
}

// Slice returns the subsequence [i, j). Stress is re-derived from the
// retained phonemes; the gloss tag is kept.
func (s Sequence) Slice(i, j int) Sequence {
	part := make([]Phoneme, j-i)
	copy(part, s.phonemes[i:j])
	return Sequence{phonemes: part, stress: firstVowel(part), gloss: s.gloss}
}

// Concat returns s followed by t. No junction logic is applied; the
// combiner owns seam adjustments. Stress is re-derived from the joined
// phonemes and the receiver's gloss wins when both are tagged.
func (s Sequence) Concat(t Sequence) Sequence {
	joined := make([]Phoneme, 0, len(s.phonemes)+len(t.phonemes))
	joined = append(joined, s.phonemes...)
	joined = append(joined, t.phonemes...)
	gloss := s.gloss
	if gloss == "" {
		gloss = t.gloss
	}
	return Sequence{phonemes: joined, stress: firstVowel(joined), gloss: gloss}
}

// Phonemes returns a copy of the underlying phonemes.
func (s Sequence) Phonemes() []Phoneme {
	cp := make([]Phoneme, len(s.phonemes))
	copy(cp, s.phonemes)
	return cp
}

// Symbols returns the phoneme symbols in order.
func (s Sequence) Symbols() []string {
	out := make([]string, len(s.phonemes))
	for i, p := range s.phonemes {
		out[i] = p.Symbol
	}
	return out
}

// String renders the sequence as space-delimited XSAMPA symbols.
func (s Sequence) String() string { return strings.Join(s.Symbols(), " ") }

// Equal reports value equality: same phonemes, stress, and gloss.
func (s Sequence) Equal(t Sequence) bool {
	if len(s.phonemes) != len(t.phonemes) || s.stress != t.stress || s.gloss != t.gloss {
		return false
	}
	for i := range s.phonemes {
		if s.phonemes[i] != t.phonemes[i] {
			return false
		}
	}
	return true
}

// EqualPhonemes reports whether s and t contain the same phonemes in the
// same order, ignoring stress and gloss.
func (s Sequence) EqualPhonemes(t Sequence) bool {
	if len(s.phonemes) != len(t.phonemes) {
		return false
	}
	for i := range s.phonemes {
		if s.phonemes[i] != t.phonemes[i] {
			return false
		}
	}
	return true
}
