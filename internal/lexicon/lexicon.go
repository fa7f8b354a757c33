// Package lexicon defines the stored word-hoard entities, the change and
// rule-evaluation primitives guarding mutations, and the persistence
// contracts every storage backend implements.
package lexicon

import (
	"fmt"
	"time"
)

// EntityType identifies the type of record stored in the lexicon.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityRoot identifies a reconstructed root entry.
	EntityRoot EntityType = "root"
	// EntitySuffix identifies a suffix entry.
	EntitySuffix EntityType = "suffix"
	// EntityDerivation identifies a saved derivation record.
	EntityDerivation EntityType = "derivation"
)

// Base carries the identity and audit timestamps shared by all records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Root is a reconstructed Proto-Indo-European root entry.
type Root struct {
	Base
	Key      string `json:"key"`
	Citation string `json:"citation,omitempty"`
	Pron     string `json:"pron"`
	Meaning  string `json:"meaning"`
}

// Suffix is a Proto-Indo-European suffix entry.
type Suffix struct {
	Base
	Key      string `json:"key"`
	Citation string `json:"citation,omitempty"`
	Pron     string `json:"pron"`
	Meaning  string `json:"meaning"`
}

// DerivationRecord is a saved derivation outcome tied back to its inputs.
type DerivationRecord struct {
	Base
	RootKey   string `json:"root_key"`
	SuffixKey string `json:"suffix_key,omitempty"`
	Spelling  string `json:"spelling"`
	IPA       string `json:"ipa"`
	Pron      string `json:"pron"`
	Gloss     string `json:"gloss"`
	Meaning   string `json:"meaning"`
	Seed      int64  `json:"seed"`
}

// Change captures a single mutation applied within a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported mutations captured for rule evaluation.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation describes a rule violation discovered during evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Severity grades a violation.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError signals that a transaction was rejected by blocking violations.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}

// NotFoundError reports a lookup miss for a keyed lexicon record.
type NotFoundError struct {
	Kind EntityType
	Key  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", string(e.Kind), e.Key)
}
