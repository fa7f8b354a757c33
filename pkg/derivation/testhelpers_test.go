package derivation

import (
	"testing"

	"etymon/pkg/orthography"
	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

func testVocab(t *testing.T) *phoneme.Vocabulary {
	t.Helper()
	defs := []phoneme.Phoneme{
		{Symbol: "p", Category: phoneme.CategoryConsonant, Stop: true},
		{Symbol: "b", Category: phoneme.CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "t", Category: phoneme.CategoryConsonant, Stop: true},
		{Symbol: "d", Category: phoneme.CategoryConsonant, Voiced: true, Stop: true},
		{Symbol: "k", Category: phoneme.CategoryConsonant, Stop: true},
		{Symbol: "s", Category: phoneme.CategoryConsonant, Fricative: true},
		{Symbol: "f", Category: phoneme.CategoryConsonant, Fricative: true},
		{Symbol: "v", Category: phoneme.CategoryConsonant, Voiced: true, Fricative: true},
		{Symbol: "n", Category: phoneme.CategoryConsonant, Voiced: true, Nasal: true},
		{Symbol: "m", Category: phoneme.CategoryConsonant, Voiced: true, Nasal: true},
		{Symbol: "l", Category: phoneme.CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "r\\", Category: phoneme.CategoryConsonant, Voiced: true, Liquid: true},
		{Symbol: "h2", Category: phoneme.CategoryLaryngeal},
		{Symbol: "a", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "e", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "i", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "o", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "u", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "@", Category: phoneme.CategoryVowel, Voiced: true},
		{Symbol: "e:", Category: phoneme.CategoryVowel, Voiced: true, Long: true},
	}
	vocab, err := phoneme.NewVocabulary(defs)
	if err != nil {
		t.Fatalf("NewVocabulary() error = %v", err)
	}
	return vocab
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

func oneOf(symbols ...string) soundlaw.Pattern {
	return soundlaw.Pattern{Symbols: symbols}
}

func class(c phoneme.Class) soundlaw.Pattern {
	return soundlaw.Pattern{Class: c}
}

// defaultJunctions is the seam table most tests use: identical consonants
// degeminate, a root-final short vowel is elided before a suffix vowel.
func defaultJunctions() []JunctionRule {
	return []JunctionRule{
		{
			Name: "degemination",
			Variants: []soundlaw.Rule{{
				Match:  []soundlaw.Pattern{class(phoneme.ClassConsonant), class(phoneme.ClassConsonant)},
				Output: []string{"$0"},
				Same:   true,
			}},
		},
		{
			Name: "vowel-elision",
			Variants: []soundlaw.Rule{{
				Match:  []soundlaw.Pattern{class(phoneme.ClassShortVowel), class(phoneme.ClassVowel)},
				Output: []string{"$1"},
			}},
		},
	}
}

func newCombiner(t *testing.T, vocab *phoneme.Vocabulary, rules []JunctionRule) *Combiner {
	t.Helper()
	c, err := NewCombiner(vocab, rules)
	if err != nil {
		t.Fatalf("NewCombiner() error = %v", err)
	}
	return c
}

// buildPipeline assembles a pipeline over the test vocabulary with a plain
// one-letter grapheme table, overridden where XSAMPA and spelling diverge.
func buildPipeline(t *testing.T, vocab *phoneme.Vocabulary, junctions []JunctionRule, stages []soundlaw.Stage) *Pipeline {
	t.Helper()
	text := map[string]string{"r\\": "r", "e:": "e", "@": "e", "h2": "h"}
	var rules []orthography.GraphemeRule
	for _, sym := range vocab.Symbols() {
		out, ok := text[sym]
		if !ok {
			out = sym
		}
		rules = append(rules, orthography.GraphemeRule{Symbol: sym, Text: out})
	}
	return buildPipelineWith(t, vocab, junctions, stages, rules)
}

func buildPipelineWith(t *testing.T, vocab *phoneme.Vocabulary, junctions []JunctionRule, stages []soundlaw.Stage, rules []orthography.GraphemeRule) *Pipeline {
	t.Helper()
	table, err := orthography.NewTable(vocab, rules)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	engine, err := soundlaw.NewEngine(vocab, stages)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	ipa := orthography.NewIPA(map[string]string{"r\\": "ɹ", "e:": "eː", "@": "ə", "h2": "h₂"})
	pipeline, err := NewPipeline(newCombiner(t, vocab, junctions), engine, orthography.NewSpeller(table), ipa)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return pipeline
}
