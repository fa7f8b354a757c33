package derivation

import "fmt"

// JunctionError reports a mandatory junction rule with no variant matching
// the root-suffix seam.
type JunctionError struct {
	Rule   string
	Root   string
	Suffix string
}

func (e *JunctionError) Error() string {
	return fmt.Sprintf("junction rule %q: no variant matches [%s] + [%s]", e.Rule, e.Root, e.Suffix)
}
