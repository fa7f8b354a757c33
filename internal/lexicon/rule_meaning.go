package lexicon

import (
	"context"
	"fmt"
	"strings"
)

// MeaningRule warns when a root or suffix is stored without a gloss. The
// pipeline falls back to "(unknown)" for such entries, so the commit is
// allowed through.
func MeaningRule() Rule {
	return meaningRule{}
}

type meaningRule struct{}

func (meaningRule) Name() string { return "meaning-present" }

func (meaningRule) Evaluate(_ context.Context, _ TransactionView, changes []Change) (Result, error) {
	res := Result{}
	for _, change := range changes {
		if change.Action == ActionDelete || change.After == nil {
			continue
		}
		var (
			meaning string
			key     string
		)
		switch after := change.After.(type) {
		case Root:
			meaning, key = after.Meaning, after.Key
		case Suffix:
			meaning, key = after.Meaning, after.Key
		default:
			continue
		}
		if strings.TrimSpace(meaning) == "" {
			res.Violations = append(res.Violations, Violation{
				Rule:     "meaning-present",
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("%s %q has no meaning", change.Entity, key),
				Entity:   change.Entity,
				EntityID: key,
			})
		}
	}
	return res, nil
}
