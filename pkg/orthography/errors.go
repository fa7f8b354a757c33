package orthography

import "fmt"

// UnspellableError reports a phoneme no grapheme rule covers.
type UnspellableError struct {
	Symbol   string
	Position int
}

func (e *UnspellableError) Error() string {
	return fmt.Sprintf("no grapheme rule for phoneme %q at position %d", e.Symbol, e.Position)
}
