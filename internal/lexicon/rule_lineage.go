package lexicon

import (
	"context"
	"fmt"
)

// LineageRule blocks any state in which a saved derivation references a
// root or suffix key that no longer exists. Evaluating the whole snapshot
// catches both bad creates and deletes that would orphan records.
func LineageRule() Rule {
	return lineageRule{}
}

type lineageRule struct{}

func (lineageRule) Name() string { return "derivation-lineage" }

func (lineageRule) Evaluate(_ context.Context, view TransactionView, _ []Change) (Result, error) {
	res := Result{}
	for _, rec := range view.ListDerivations() {
		if rec.RootKey == "" {
			res.Violations = append(res.Violations, lineageViolation(rec.ID, fmt.Sprintf("derivation %s has no root key", rec.ID)))
		} else if _, ok := view.FindRoot(rec.RootKey); !ok {
			res.Violations = append(res.Violations, lineageViolation(rec.ID, fmt.Sprintf("derivation %s references missing root %q", rec.ID, rec.RootKey)))
		}
		if rec.SuffixKey == "" {
			continue
		}
		if _, ok := view.FindSuffix(rec.SuffixKey); !ok {
			res.Violations = append(res.Violations, lineageViolation(rec.ID, fmt.Sprintf("derivation %s references missing suffix %q", rec.ID, rec.SuffixKey)))
		}
	}
	return res, nil
}

func lineageViolation(entityID, message string) Violation {
	return Violation{
		Rule:     "derivation-lineage",
		Severity: SeverityBlock,
		Message:  message,
		Entity:   EntityDerivation,
		EntityID: entityID,
	}
}
