// Package tables embeds the shipped rule data and hands out the validated
// pieces built from it: the phoneme vocabulary, the PIE transliteration
// table, the sound-change engine, junction rules, the grapheme table, the
// IPA display map, and the seed dictionary of roots and suffixes. Every
// accessor parses and validates its file once and caches the result.
package tables

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"etymon/pkg/derivation"
	"etymon/pkg/orthography"
	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

// Entry is one seed dictionary row. Key is the plain-ASCII lookup form,
// Citation the dictionary headword, and Pronunciation the space-separated
// XSAMPA form parsed against the vocabulary.
type Entry struct {
	Key           string `json:"key"`
	Citation      string `json:"citation,omitempty"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

type phonemeDoc struct {
	Phonemes        []phoneme.Phoneme `json:"phonemes"`
	Transliteration map[string]string `json:"transliteration"`
}

type stageDoc struct {
	Stages []soundlaw.Stage `json:"stages"`
}

type junctionDoc struct {
	Junctions []derivation.JunctionRule `json:"junctions"`
}

type graphemeDoc struct {
	Graphemes []orthography.GraphemeRule `json:"graphemes"`
}

type ipaDoc struct {
	IPA map[string]string `json:"ipa"`
}

type dictionaryDoc struct {
	Entries []Entry `json:"entries"`
}

// Phoneme vocabulary and PIE orthography transliteration table.
//
//go:embed data/phonemes.json
var phonemesJSON []byte

// Ordered sound-change stages from late PIE to Modern English.
//
//go:embed data/stages.json
var stagesJSON []byte

// Junction rules applied where root meets suffix.
//
//go:embed data/junctions.json
var junctionsJSON []byte

// Grapheme rules for the Modern English speller.
//
//go:embed data/graphemes.json
var graphemesJSON []byte

// XSAMPA to IPA display map.
//
//go:embed data/ipa.json
var ipaJSON []byte

// Seed dictionary of PIE roots.
//
//go:embed data/roots.json
var rootsJSON []byte

// Seed dictionary of PIE suffixes.
//
//go:embed data/suffixes.json
var suffixesJSON []byte

var (
	vocabOnce sync.Once
	vocab     *phoneme.Vocabulary
	vocabErr  error

	translitOnce sync.Once
	translit     *phoneme.Transliterator
	translitErr  error

	engineOnce sync.Once
	engine     *soundlaw.Engine
	engineErr  error

	combinerOnce sync.Once
	combiner     *derivation.Combiner
	combinerErr  error

	graphemeOnce sync.Once
	graphemes    *orthography.Table
	graphemeErr  error

	ipaOnce sync.Once
	ipa     *orthography.IPA
	ipaErr  error

	rootsOnce sync.Once
	roots     []Entry
	rootsErr  error

	suffixOnce sync.Once
	suffixes   []Entry
	suffixErr  error
)

// Vocabulary returns the shipped phoneme vocabulary.
func Vocabulary() (*phoneme.Vocabulary, error) {
	vocabOnce.Do(func() {
		var doc phonemeDoc
		vocabErr = json.Unmarshal(phonemesJSON, &doc)
		if vocabErr == nil {
			vocab, vocabErr = phoneme.NewVocabulary(doc.Phonemes)
		}
	})
	return vocab, vocabErr
}

// Transliterator returns the reader for PIE dictionary orthography.
func Transliterator() (*phoneme.Transliterator, error) {
	translitOnce.Do(func() {
		v, err := Vocabulary()
		if err != nil {
			translitErr = err
			return
		}
		var doc phonemeDoc
		translitErr = json.Unmarshal(phonemesJSON, &doc)
		if translitErr == nil {
			translit, translitErr = phoneme.NewTransliterator(v, doc.Transliteration)
		}
	})
	return translit, translitErr
}

// Engine returns the sound-change engine over the shipped stage table.
func Engine() (*soundlaw.Engine, error) {
	engineOnce.Do(func() {
		v, err := Vocabulary()
		if err != nil {
			engineErr = err
			return
		}
		var doc stageDoc
		engineErr = json.Unmarshal(stagesJSON, &doc)
		if engineErr == nil {
			engine, engineErr = soundlaw.NewEngine(v, doc.Stages)
		}
	})
	return engine, engineErr
}

// Combiner returns the root-suffix combiner over the shipped junction rules.
func Combiner() (*derivation.Combiner, error) {
	combinerOnce.Do(func() {
		v, err := Vocabulary()
		if err != nil {
			combinerErr = err
			return
		}
		var doc junctionDoc
		combinerErr = json.Unmarshal(junctionsJSON, &doc)
		if combinerErr == nil {
			combiner, combinerErr = derivation.NewCombiner(v, doc.Junctions)
		}
	})
	return combiner, combinerErr
}

// Graphemes returns the spelling table. Loading fails if any vocabulary
// phoneme lacks a context-free fallback rule, so a table that loads can
// spell every sequence.
func Graphemes() (*orthography.Table, error) {
	graphemeOnce.Do(func() {
		v, err := Vocabulary()
		if err != nil {
			graphemeErr = err
			return
		}
		var doc graphemeDoc
		graphemeErr = json.Unmarshal(graphemesJSON, &doc)
		if graphemeErr != nil {
			return
		}
		tbl, err := orthography.NewTable(v, doc.Graphemes)
		if err != nil {
			graphemeErr = err
			return
		}
		if gaps := tbl.CoverageGaps(v); len(gaps) > 0 {
			graphemeErr = fmt.Errorf("grapheme table leaves %d phonemes without a fallback: %s",
				len(gaps), strings.Join(gaps, " "))
			return
		}
		graphemes = tbl
	})
	return graphemes, graphemeErr
}

// IPA returns the XSAMPA to IPA transcriber.
func IPA() (*orthography.IPA, error) {
	ipaOnce.Do(func() {
		var doc ipaDoc
		ipaErr = json.Unmarshal(ipaJSON, &doc)
		if ipaErr == nil {
			ipa = orthography.NewIPA(doc.IPA)
		}
	})
	return ipa, ipaErr
}

// Roots returns the seed root dictionary.
func Roots() ([]Entry, error) {
	rootsOnce.Do(func() {
		roots, rootsErr = loadEntries(rootsJSON, "root")
	})
	return roots, rootsErr
}

// Suffixes returns the seed suffix dictionary.
func Suffixes() ([]Entry, error) {
	suffixOnce.Do(func() {
		suffixes, suffixErr = loadEntries(suffixesJSON, "suffix")
	})
	return suffixes, suffixErr
}

func loadEntries(raw []byte, kind string) ([]Entry, error) {
	v, err := Vocabulary()
	if err != nil {
		return nil, err
	}
	var doc dictionaryDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(doc.Entries))
	for i, e := range doc.Entries {
		if e.Key == "" {
			return nil, fmt.Errorf("%s entry %d: empty key", kind, i)
		}
		if _, dup := seen[e.Key]; dup {
			return nil, fmt.Errorf("%s entry %q: duplicate key", kind, e.Key)
		}
		seen[e.Key] = struct{}{}
		if _, err := v.Parse(e.Pronunciation); err != nil {
			return nil, fmt.Errorf("%s entry %q: %w", kind, e.Key, err)
		}
	}
	return doc.Entries, nil
}

// Pipeline assembles the full derivation pipeline from the shipped tables.
// The parts are cached; assembly itself is cheap.
func Pipeline() (*derivation.Pipeline, error) {
	comb, err := Combiner()
	if err != nil {
		return nil, err
	}
	eng, err := Engine()
	if err != nil {
		return nil, err
	}
	tbl, err := Graphemes()
	if err != nil {
		return nil, err
	}
	transcriber, err := IPA()
	if err != nil {
		return nil, err
	}
	return derivation.NewPipeline(comb, eng, orthography.NewSpeller(tbl), transcriber)
}
