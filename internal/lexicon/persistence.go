package lexicon

import "context"

// Transaction exposes the lexicon operations that a persistence
// implementation must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateRoot(Root) (Root, error)
	UpdateRoot(key string, mutator func(*Root) error) (Root, error)
	DeleteRoot(key string) error
	CreateSuffix(Suffix) (Suffix, error)
	UpdateSuffix(key string, mutator func(*Suffix) error) (Suffix, error)
	DeleteSuffix(key string) error
	CreateDerivation(DerivationRecord) (DerivationRecord, error)
	DeleteDerivation(id string) error
}

// TransactionView provides read-only access to snapshot data for rules and reads.
type TransactionView interface {
	ListRoots() []Root
	ListSuffixes() []Suffix
	ListDerivations() []DerivationRecord
	FindRoot(key string) (Root, bool)
	FindSuffix(key string) (Suffix, bool)
	FindDerivation(id string) (DerivationRecord, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetRoot(key string) (Root, bool)
	ListRoots() []Root
	GetSuffix(key string) (Suffix, bool)
	ListSuffixes() []Suffix
	GetDerivation(id string) (DerivationRecord, bool)
	ListDerivations() []DerivationRecord
}
