package orthography

import (
	"testing"

	"etymon/pkg/phoneme"
)

func cons(symbol string, voiced bool) phoneme.Phoneme {
	return phoneme.Phoneme{Symbol: symbol, Category: phoneme.CategoryConsonant, Voiced: voiced}
}

func vowel(symbol string, long bool) phoneme.Phoneme {
	return phoneme.Phoneme{Symbol: symbol, Category: phoneme.CategoryVowel, Voiced: true, Long: long}
}

func testVocab(t *testing.T) *phoneme.Vocabulary {
	t.Helper()
	defs := []phoneme.Phoneme{
		cons("p", false),
		cons("t", false),
		cons("k", false),
		cons("s", false),
		cons("f", false),
		cons("tS", false),
		cons("d", true),
		cons("g", true),
		cons("v", true),
		{Symbol: "m", Category: phoneme.CategoryConsonant, Voiced: true, Nasal: true},
		{Symbol: "n", Category: phoneme.CategoryConsonant, Voiced: true, Nasal: true},
		{Symbol: "l", Category: phoneme.CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "r\\", Category: phoneme.CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "w", Category: phoneme.CategoryConsonant, Voiced: true, Glide: true, Labial: true},
		{Symbol: "j", Category: phoneme.CategoryConsonant, Voiced: true, Glide: true},
		vowel("a", false),
		vowel("e", false),
		vowel("i", false),
		vowel("o", false),
		vowel("u", false),
		vowel("@", false),
		vowel("eI", true),
		vowel("aI", true),
		vowel("oU", true),
		vowel("i:", true),
	}
	vocab, err := phoneme.NewVocabulary(defs)
	if err != nil {
		t.Fatalf("NewVocabulary() error = %v", err)
	}
	return vocab
}

// plainRules maps every vocabulary symbol to a bare fallback so tables in
// tests validate without naming each consonant.
func plainRules(t *testing.T, vocab *phoneme.Vocabulary) []GraphemeRule {
	t.Helper()
	text := map[string]string{
		"r\\": "r", "tS": "ch", "@": "e",
		"eI": "a", "aI": "i", "oU": "o", "i:": "ee",
	}
	var rules []GraphemeRule
	for _, sym := range vocab.Symbols() {
		out, ok := text[sym]
		if !ok {
			out = sym
		}
		rules = append(rules, GraphemeRule{Symbol: sym, Text: out})
	}
	return rules
}

func seq(t *testing.T, vocab *phoneme.Vocabulary, symbols ...string) phoneme.Sequence {
	t.Helper()
	phs := make([]phoneme.Phoneme, 0, len(symbols))
	for _, sym := range symbols {
		ph, ok := vocab.Lookup(sym)
		if !ok {
			t.Fatalf("symbol %q not in test vocabulary", sym)
		}
		phs = append(phs, ph)
	}
	return phoneme.New(phs...)
}
