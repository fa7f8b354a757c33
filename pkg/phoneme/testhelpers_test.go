package phoneme

import "testing"

func testVocabulary(t *testing.T) *Vocabulary {
	t.Helper()
	defs := []Phoneme{
		{Symbol: "a", Category: CategoryVowel, Voiced: true},
		{Symbol: "e", Category: CategoryVowel, Voiced: true},
		{Symbol: "i", Category: CategoryVowel, Voiced: true},
		{Symbol: "o", Category: CategoryVowel, Voiced: true},
		{Symbol: "u", Category: CategoryVowel, Voiced: true},
		{Symbol: "ae", Category: CategoryVowel, Voiced: true},
		{Symbol: "@", Category: CategoryVowel, Voiced: true},
		{Symbol: "eI", Category: CategoryVowel, Voiced: true},
		{Symbol: "a:", Category: CategoryVowel, Voiced: true, Long: true},
		{Symbol: "e:", Category: CategoryVowel, Voiced: true, Long: true},
		{Symbol: "i:", Category: CategoryVowel, Voiced: true, Long: true},
		{Symbol: "o:", Category: CategoryVowel, Voiced: true, Long: true},
		{Symbol: "u:", Category: CategoryVowel, Voiced: true, Long: true},
		{Symbol: "p", Category: CategoryConsonant, Labial: true, Stop: true},
		{Symbol: "b", Category: CategoryConsonant, Voiced: true, Labial: true, Stop: true},
		{Symbol: "t", Category: CategoryConsonant, Stop: true},
		{Symbol: "d", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "k", Category: CategoryConsonant, Stop: true},
		{Symbol: "g", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "kw", Category: CategoryConsonant, Stop: true},
		{Symbol: "gw", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "bh", Category: CategoryConsonant, Voiced: true, Labial: true, Stop: true},
		{Symbol: "dh", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "gh", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "gwh", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "k_>", Category: CategoryConsonant, Stop: true},
		{Symbol: "g_>", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "g_>h", Category: CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "s", Category: CategoryConsonant, Fricative: true},
		{Symbol: "z", Category: CategoryConsonant, Voiced: true, Fricative: true},
		{Symbol: "f", Category: CategoryConsonant, Labial: true, Fricative: true},
		{Symbol: "v", Category: CategoryConsonant, Voiced: true, Labial: true, Fricative: true},
		{Symbol: "T", Category: CategoryConsonant, Fricative: true},
		{Symbol: "x", Category: CategoryConsonant, Fricative: true},
		{Symbol: "h", Category: CategoryConsonant, Fricative: true},
		{Symbol: "r\\", Category: CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "l", Category: CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "m", Category: CategoryConsonant, Voiced: true, Nasal: true, Labial: true},
		{Symbol: "n", Category: CategoryConsonant, Voiced: true, Nasal: true},
		{Symbol: "w", Category: CategoryConsonant, Voiced: true, Glide: true, Labial: true},
		{Symbol: "j", Category: CategoryConsonant, Voiced: true, Glide: true},
		{Symbol: "h1", Category: CategoryLaryngeal},
		{Symbol: "h2", Category: CategoryLaryngeal},
		{Symbol: "h3", Category: CategoryLaryngeal},
	}
	v, err := NewVocabulary(defs)
	if err != nil {
		t.Fatalf("build vocabulary: %v", err)
	}
	return v
}

func testTransliterator(t *testing.T, v *Vocabulary) *Transliterator {
	t.Helper()
	tr, err := NewTransliterator(v, map[string]string{
		"p": "p", "b": "b", "t": "t", "d": "d", "k": "k", "g": "g",
		"kw": "kw", "gw": "gw", "bh": "bh", "dh": "dh", "gh": "gh", "gwh": "gwh",
		"k'": "k_>", "g'": "g_>", "g'h": "g_>h",
		"s": "s", "r": "r\\", "l": "l", "m": "m", "n": "n", "w": "w", "y": "j", "h": "h",
		"a": "a", "e": "e", "i": "i", "o": "o", "u": "u",
		"a:": "a:", "e:": "e:", "i:": "i:", "o:": "o:", "u:": "u:",
		"ei": "eI", "ey": "eI",
		"h1": "h1", "h2": "h2", "h3": "h3",
	})
	if err != nil {
		t.Fatalf("build transliterator: %v", err)
	}
	return tr
}

func mustParse(t *testing.T, v *Vocabulary, input string) Sequence {
	t.Helper()
	seq, err := v.Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return seq
}
