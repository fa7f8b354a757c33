package lexicon

import (
	"context"
	"fmt"

	"etymon/pkg/phoneme"
)

// PronunciationRule blocks entries whose stored pronunciation does not
// tokenize against the phoneme vocabulary.
func PronunciationRule(vocab *phoneme.Vocabulary) Rule {
	return pronunciationRule{vocab: vocab}
}

type pronunciationRule struct {
	vocab *phoneme.Vocabulary
}

func (pronunciationRule) Name() string { return "pronunciation-parses" }

func (r pronunciationRule) Evaluate(_ context.Context, _ TransactionView, changes []Change) (Result, error) {
	res := Result{}
	for _, change := range changes {
		if change.Action == ActionDelete || change.After == nil {
			continue
		}
		var (
			pron string
			id   string
		)
		switch after := change.After.(type) {
		case Root:
			pron, id = after.Pron, after.Key
		case Suffix:
			pron, id = after.Pron, after.Key
		case DerivationRecord:
			pron, id = after.Pron, after.ID
		default:
			continue
		}
		if _, err := r.vocab.Parse(pron); err != nil {
			res.Violations = append(res.Violations, Violation{
				Rule:     "pronunciation-parses",
				Severity: SeverityBlock,
				Message:  fmt.Sprintf("%s %s pronunciation %q does not parse: %v", change.Entity, id, pron, err),
				Entity:   change.Entity,
				EntityID: id,
			})
		}
	}
	return res, nil
}
