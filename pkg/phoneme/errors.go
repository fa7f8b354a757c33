package phoneme

import "fmt"

// ParseError reports malformed phoneme input. Token is the first offending
// token and Offset its byte position within Input. No partial sequence
// accompanies a ParseError.
type ParseError struct {
	Input  string
	Token  string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed phoneme input %q: unknown token %q at offset %d", e.Input, e.Token, e.Offset)
}

// StressError reports a stress index outside the sequence.
type StressError struct {
	Index int
	Len   int
}

func (e *StressError) Error() string {
	return fmt.Sprintf("stress index %d out of range for sequence of length %d", e.Index, e.Len)
}

// DefinitionError reports an invalid vocabulary definition.
type DefinitionError struct {
	Symbol string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid phoneme definition %q: %s", e.Symbol, e.Reason)
}
