package core

import "etymon/internal/lexicon"

type (
	EntityType         = lexicon.EntityType
	Severity           = lexicon.Severity
	Base               = lexicon.Base
	Root               = lexicon.Root
	Suffix             = lexicon.Suffix
	DerivationRecord   = lexicon.DerivationRecord
	Change             = lexicon.Change
	Action             = lexicon.Action
	Violation          = lexicon.Violation
	Result             = lexicon.Result
	Rule               = lexicon.Rule
	RulesEngine        = lexicon.RulesEngine
	RuleViolationError = lexicon.RuleViolationError
	NotFoundError      = lexicon.NotFoundError
)

const (
	EntityRoot       = lexicon.EntityRoot
	EntitySuffix     = lexicon.EntitySuffix
	EntityDerivation = lexicon.EntityDerivation
)

const (
	SeverityBlock = lexicon.SeverityBlock
	SeverityWarn  = lexicon.SeverityWarn
	SeverityLog   = lexicon.SeverityLog
)

const (
	ActionCreate = lexicon.ActionCreate
	ActionUpdate = lexicon.ActionUpdate
	ActionDelete = lexicon.ActionDelete
)
