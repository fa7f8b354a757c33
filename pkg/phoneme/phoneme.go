// Package phoneme defines the immutable phoneme and sequence values that the
// derivation pipeline rewrites, together with the vocabulary that interprets
// raw XSAMPA or PIE dictionary orthography into sequences.
package phoneme

// Category identifies the broad articulatory class of a phoneme.
type Category string

// Supported phoneme categories. CategoryEdge is reserved for the word
// boundary sentinel used during rule matching and never appears inside a
// sequence.
const (
	CategoryVowel     Category = "vowel"
	CategoryConsonant Category = "consonant"
	CategoryLaryngeal Category = "laryngeal"
	CategoryEdge      Category = "edge"
)

// Class names a derived predicate over phoneme features. Classes are the
// only feature access rule tables get; they keep the tables declarative.
type Class string

// Classes recognised by rule patterns and grapheme contexts.
const (
	ClassVowel      Class = "vowel"
	ClassShortVowel Class = "short_vowel"
	ClassLongVowel  Class = "long_vowel"
	ClassConsonant  Class = "consonant"
	ClassVoiced     Class = "voiced"
	ClassVoiceless  Class = "voiceless"
	ClassNasal      Class = "nasal"
	ClassLiquid     Class = "liquid"
	ClassGlide      Class = "glide"
	ClassLabial     Class = "labial"
)

// Phoneme is an immutable sound value. Symbol is the XSAMPA spelling used
// throughout rule tables; the remaining fields are hand-tagged features.
// Phonemes compare by value.
type Phoneme struct {
	Symbol    string   `json:"symbol"`
	Category  Category `json:"category"`
	Voiced    bool     `json:"voiced,omitempty"`
	Long      bool     `json:"long,omitempty"`
	Nasal     bool     `json:"nasal,omitempty"`
	Liquid    bool     `json:"liquid,omitempty"`
	Glide     bool     `json:"glide,omitempty"`
	Labial    bool     `json:"labial,omitempty"`
	Stop      bool     `json:"stop,omitempty"`
	Fricative bool     `json:"fricative,omitempty"`
}

// Edge returns the word boundary sentinel.
func Edge() Phoneme {
	return Phoneme{Symbol: "#", Category: CategoryEdge}
}

// IsEdge reports whether p is the boundary sentinel.
func (p Phoneme) IsEdge() bool { return p.Category == CategoryEdge }

// IsVowel reports whether p is a vowel.
func (p Phoneme) IsVowel() bool { return p.Category == CategoryVowel }

// Is reports whether p satisfies the named class. The edge sentinel
// satisfies no class.
func (p Phoneme) Is(c Class) bool {
	if p.IsEdge() {
		return false
	}
	switch c {
	case ClassVowel:
		return p.Category == CategoryVowel
	case ClassShortVowel:
		return p.Category == CategoryVowel && !p.Long
	case ClassLongVowel:
		return p.Category == CategoryVowel && p.Long
	case ClassConsonant:
		return p.Category == CategoryConsonant || p.Category == CategoryLaryngeal
	case ClassVoiced:
		return p.Voiced
	case ClassVoiceless:
		return !p.Voiced
	case ClassNasal:
		return p.Nasal
	case ClassLiquid:
		return p.Liquid
	case ClassGlide:
		return p.Glide
	case ClassLabial:
		return p.Labial
	default:
		return false
	}
}

// KnownClass reports whether c is one of the classes Is understands.
func KnownClass(c Class) bool {
	switch c {
	case ClassVowel, ClassShortVowel, ClassLongVowel, ClassConsonant,
		ClassVoiced, ClassVoiceless, ClassNasal, ClassLiquid, ClassGlide, ClassLabial:
		return true
	}
	return false
}
