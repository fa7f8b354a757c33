package soundlaw

import (
	"testing"

	"etymon/pkg/phoneme"
)

func testVocab(t *testing.T) *phoneme.Vocabulary {
	t.Helper()
	defs := []phoneme.Phoneme{
		{Symbol: "a", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "e", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "i", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "o", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "u", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "ae", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "a:", Category: phoneme.CategoryVowel, Voiced: true, Long: true},
		{Symbol: "e:", Category: phoneme.CategoryVowel, Voiced: true, Long: true},
		{Symbol: "i:", Category: phoneme.CategoryVowel, Voiced: true, Long: true},
		{Symbol: "p", Category: phoneme.CategoryConsonant, Labial: true, Stop: true},
		{Symbol: "b", Category: phoneme.CategoryConsonant, Voiced: true, Labial: true, Stop: true},
		{Symbol: "t", Category: phoneme.CategoryConsonant, Stop: true},
		{Symbol: "d", Category: phoneme.CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "k", Category: phoneme.CategoryConsonant, Stop: true},
		{Symbol: "g", Category: phoneme.CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "f", Category: phoneme.CategoryConsonant, Labial: true, Fricative: true},
		{Symbol: "v", Category: phoneme.CategoryConsonant, Voiced: true, Labial: true, Fricative: true},
		{Symbol: "T", Category: phoneme.CategoryConsonant, Fricative: true},
		{Symbol: "s", Category: phoneme.CategoryConsonant, Fricative: true},
		{Symbol: "z", Category: phoneme.CategoryConsonant, Voiced: true, Fricative: true},
		{Symbol: "x", Category: phoneme.CategoryConsonant, Fricative: true},
		{Symbol: "h", Category: phoneme.CategoryConsonant, Fricative: true},
		{Symbol: "r", Category: phoneme.CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "r\\", Category: phoneme.CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "l", Category: phoneme.CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "m", Category: phoneme.CategoryConsonant, Voiced: true, Nasal: true, Labial: true},
		{Symbol: "n", Category: phoneme.CategoryConsonant, Voiced: true, Nasal: true},
		{Symbol: "j", Category: phoneme.CategoryConsonant, Voiced: true, Glide: true},
		{Symbol: "w", Category: phoneme.CategoryConsonant, Voiced: true, Glide: true, Labial: true},
		{Symbol: "tS", Category: phoneme.CategoryConsonant},
		{Symbol: "h2", Category: phoneme.CategoryLaryngeal},
	}
	v, err := phoneme.NewVocabulary(defs)
	if err != nil {
		t.Fatalf("build vocabulary: %v", err)
	}
	return v
}

func seq(t *testing.T, v *phoneme.Vocabulary, input string) phoneme.Sequence {
	t.Helper()
	s, err := v.Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return s
}

func oneOf(symbols ...string) Pattern { return Pattern{Symbols: symbols} }

func class(c phoneme.Class) Pattern { return Pattern{Class: c} }
