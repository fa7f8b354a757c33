package phoneme

import (
	"sort"
	"strings"
	"unicode"
)

// Vocabulary is the closed set of phonemes rule tables may mention. It
// interprets raw token input into sequences; lookups are by XSAMPA symbol.
type Vocabulary struct {
	symbols map[string]Phoneme
}

// NewVocabulary builds a vocabulary from phoneme definitions. Symbols must
// be unique, non-empty, and carry a non-edge category.
func NewVocabulary(defs []Phoneme) (*Vocabulary, error) {
	v := &Vocabulary{symbols: make(map[string]Phoneme, len(defs))}
	for _, def := range defs {
		if def.Symbol == "" {
			return nil, &DefinitionError{Symbol: def.Symbol, Reason: "empty symbol"}
		}
		if strings.ContainsFunc(def.Symbol, unicode.IsSpace) {
			return nil, &DefinitionError{Symbol: def.Symbol, Reason: "symbol contains whitespace"}
		}
		switch def.Category {
		case CategoryVowel, CategoryConsonant, CategoryLaryngeal:
		case CategoryEdge:
			return nil, &DefinitionError{Symbol: def.Symbol, Reason: "edge is reserved for the boundary sentinel"}
		default:
			return nil, &DefinitionError{Symbol: def.Symbol, Reason: "unknown category"}
		}
		if _, dup := v.symbols[def.Symbol]; dup {
			return nil, &DefinitionError{Symbol: def.Symbol, Reason: "duplicate symbol"}
		}
		v.symbols[def.Symbol] = def
	}
	return v, nil
}

// Has reports whether symbol is in the vocabulary.
func (v *Vocabulary) Has(symbol string) bool {
	_, ok := v.symbols[symbol]
	return ok
}

// Lookup returns the phoneme for symbol.
func (v *Vocabulary) Lookup(symbol string) (Phoneme, bool) {
	p, ok := v.symbols[symbol]
	return p, ok
}

// Symbols returns every symbol in the vocabulary, sorted.
func (v *Vocabulary) Symbols() []string {
	out := make([]string, 0, len(v.symbols))
	for sym := range v.symbols {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int { return len(v.symbols) }

// Parse interprets space-delimited XSAMPA tokens ("p h2 t e: r\") as a
// sequence. The first unknown token aborts the parse with a ParseError and
// no partial sequence.
func (v *Vocabulary) Parse(input string) (Sequence, error) {
	var phonemes []Phoneme
	for offset := 0; offset < len(input); {
		if isSpace(input[offset]) {
			offset++
			continue
		}
		end := offset
		for end < len(input) && !isSpace(input[end]) {
			end++
		}
		token := input[offset:end]
		p, ok := v.symbols[token]
		if !ok {
			return Sequence{}, &ParseError{Input: input, Token: token, Offset: offset}
		}
		phonemes = append(phonemes, p)
		offset = end
	}
	return New(phonemes...), nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
