package core

import (
	"etymon/internal/lexicon"
	"etymon/internal/tables"
)

// NewRulesEngine constructs an empty rules engine.
func NewRulesEngine() *RulesEngine {
	return lexicon.NewRulesEngine()
}

// NewDefaultRulesEngine builds a rules engine with the built-in policy
// set: stored pronunciations must parse against the shipped vocabulary,
// entries are expected to carry a meaning, and saved derivations must
// reference roots and suffixes that exist.
func NewDefaultRulesEngine() (*RulesEngine, error) {
	vocab, err := tables.Vocabulary()
	if err != nil {
		return nil, err
	}
	engine := lexicon.NewRulesEngine()
	engine.Register(lexicon.PronunciationRule(vocab))
	engine.Register(lexicon.MeaningRule())
	engine.Register(lexicon.LineageRule())
	return engine, nil
}
