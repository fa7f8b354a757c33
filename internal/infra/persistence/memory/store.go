// Package memory provides the in-memory transactional store used for tests,
// ephemeral runs, and as the state engine behind the durable backends.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"etymon/internal/lexicon"
)

// Compile-time contract assertion ensuring Store adheres to the lexicon persistence interface.
var _ lexicon.PersistentStore = (*Store)(nil)

// Aliases keep method signatures concise while still exposing lexicon types
// from this infra package.
type (
	// Root is an alias of lexicon.Root.
	Root = lexicon.Root
	// Suffix is an alias of lexicon.Suffix.
	Suffix = lexicon.Suffix
	// DerivationRecord is an alias of lexicon.DerivationRecord.
	DerivationRecord = lexicon.DerivationRecord
	// Change is an alias of lexicon.Change.
	Change = lexicon.Change
	// Result is an alias of lexicon.Result.
	Result = lexicon.Result
	// RulesEngine is an alias of lexicon.RulesEngine.
	RulesEngine = lexicon.RulesEngine
	// Transaction is an alias of lexicon.Transaction.
	Transaction = lexicon.Transaction
	// TransactionView is an alias of lexicon.TransactionView.
	TransactionView = lexicon.TransactionView
)

type memoryState struct {
	roots       map[string]Root
	suffixes    map[string]Suffix
	derivations map[string]DerivationRecord
}

// Snapshot is the serialisable representation of the in-memory state.
type Snapshot struct {
	Roots       map[string]Root             `json:"roots"`
	Suffixes    map[string]Suffix           `json:"suffixes"`
	Derivations map[string]DerivationRecord `json:"derivations"`
}

func newMemoryState() memoryState {
	return memoryState{
		roots:       map[string]Root{},
		suffixes:    map[string]Suffix{},
		derivations: map[string]DerivationRecord{},
	}
}

// Entities are plain value structs, so copying maps entry by entry is a
// deep clone.
func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.roots {
		cloned.roots[k] = v
	}
	for k, v := range s.suffixes {
		cloned.suffixes[k] = v
	}
	for k, v := range s.derivations {
		cloned.derivations[k] = v
	}
	return cloned
}

func snapshotFromState(state memoryState) Snapshot {
	snap := Snapshot{
		Roots:       make(map[string]Root, len(state.roots)),
		Suffixes:    make(map[string]Suffix, len(state.suffixes)),
		Derivations: make(map[string]DerivationRecord, len(state.derivations)),
	}
	for k, v := range state.roots {
		snap.Roots[k] = v
	}
	for k, v := range state.suffixes {
		snap.Suffixes[k] = v
	}
	for k, v := range state.derivations {
		snap.Derivations[k] = v
	}
	return snap
}

func stateFromSnapshot(snap Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range snap.Roots {
		state.roots[k] = v
	}
	for k, v := range snap.Suffixes {
		state.suffixes[k] = v
	}
	for k, v := range snap.Derivations {
		state.derivations[k] = v
	}
	return state
}

// Store provides an in-memory transactional lexicon store.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = lexicon.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// SetNowFunc overrides the transaction clock. Intended for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

// NowFunc returns the clock used to stamp records. Higher layers align
// their own clocks with it when the store provides one.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// Tx represents a mutation set applied to the store state.
type Tx struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

var _ Transaction = (*Tx)(nil)

type view struct {
	state *memoryState
}

var _ TransactionView = view{}

func newView(state *memoryState) view {
	return view{state: state}
}

// ListRoots returns all roots within the snapshot, ordered by key.
func (v view) ListRoots() []Root {
	out := make([]Root, 0, len(v.state.roots))
	for _, r := range v.state.roots {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ListSuffixes returns all suffixes within the snapshot, ordered by key.
func (v view) ListSuffixes() []Suffix {
	out := make([]Suffix, 0, len(v.state.suffixes))
	for _, s := range v.state.suffixes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ListDerivations returns all saved derivations, ordered by ID.
func (v view) ListDerivations() []DerivationRecord {
	out := make([]DerivationRecord, 0, len(v.state.derivations))
	for _, d := range v.state.derivations {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindRoot retrieves a root by key from the snapshot.
func (v view) FindRoot(key string) (Root, bool) {
	r, ok := v.state.roots[key]
	return r, ok
}

// FindSuffix retrieves a suffix by key from the snapshot.
func (v view) FindSuffix(key string) (Suffix, bool) {
	sfx, ok := v.state.suffixes[key]
	return sfx, ok
}

// FindDerivation retrieves a saved derivation by ID from the snapshot.
func (v view) FindDerivation(id string) (DerivationRecord, bool) {
	d, ok := v.state.derivations[id]
	return d, ok
}

// RunInTransaction executes fn within a transactional copy of the store
// state, evaluates the registered rules against the resulting snapshot, and
// commits only when nothing blocks.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, newView(&tx.state), tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, lexicon.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(ctx context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(newView(&snapshot))
}

// Snapshot exposes the transactional state as a read-only view.
func (tx *Tx) Snapshot() TransactionView {
	return newView(&tx.state)
}

func (tx *Tx) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// CreateRoot stores a new root within the transaction, keyed by Root.Key.
func (tx *Tx) CreateRoot(r Root) (Root, error) {
	if r.Key == "" {
		return Root{}, fmt.Errorf("root key required")
	}
	if _, exists := tx.state.roots[r.Key]; exists {
		return Root{}, fmt.Errorf("root %q already exists", r.Key)
	}
	if r.ID == "" {
		r.ID = tx.store.newID()
	}
	r.CreatedAt = tx.now
	r.UpdatedAt = tx.now
	tx.state.roots[r.Key] = r
	tx.recordChange(Change{Entity: lexicon.EntityRoot, Action: lexicon.ActionCreate, After: r})
	return r, nil
}

// UpdateRoot mutates a root using the provided mutator function. The key and
// identity fields stay fixed across the mutation.
func (tx *Tx) UpdateRoot(key string, mutator func(*Root) error) (Root, error) {
	current, ok := tx.state.roots[key]
	if !ok {
		return Root{}, lexicon.NotFoundError{Kind: lexicon.EntityRoot, Key: key}
	}
	before := current
	if err := mutator(&current); err != nil {
		return Root{}, err
	}
	current.Key = key
	current.ID = before.ID
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.roots[key] = current
	tx.recordChange(Change{Entity: lexicon.EntityRoot, Action: lexicon.ActionUpdate, Before: before, After: current})
	return current, nil
}

// DeleteRoot removes a root from the transaction state.
func (tx *Tx) DeleteRoot(key string) error {
	current, ok := tx.state.roots[key]
	if !ok {
		return lexicon.NotFoundError{Kind: lexicon.EntityRoot, Key: key}
	}
	delete(tx.state.roots, key)
	tx.recordChange(Change{Entity: lexicon.EntityRoot, Action: lexicon.ActionDelete, Before: current})
	return nil
}

// CreateSuffix stores a new suffix, keyed by Suffix.Key.
func (tx *Tx) CreateSuffix(sfx Suffix) (Suffix, error) {
	if sfx.Key == "" {
		return Suffix{}, fmt.Errorf("suffix key required")
	}
	if _, exists := tx.state.suffixes[sfx.Key]; exists {
		return Suffix{}, fmt.Errorf("suffix %q already exists", sfx.Key)
	}
	if sfx.ID == "" {
		sfx.ID = tx.store.newID()
	}
	sfx.CreatedAt = tx.now
	sfx.UpdatedAt = tx.now
	tx.state.suffixes[sfx.Key] = sfx
	tx.recordChange(Change{Entity: lexicon.EntitySuffix, Action: lexicon.ActionCreate, After: sfx})
	return sfx, nil
}

// UpdateSuffix mutates an existing suffix.
func (tx *Tx) UpdateSuffix(key string, mutator func(*Suffix) error) (Suffix, error) {
	current, ok := tx.state.suffixes[key]
	if !ok {
		return Suffix{}, lexicon.NotFoundError{Kind: lexicon.EntitySuffix, Key: key}
	}
	before := current
	if err := mutator(&current); err != nil {
		return Suffix{}, err
	}
	current.Key = key
	current.ID = before.ID
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.suffixes[key] = current
	tx.recordChange(Change{Entity: lexicon.EntitySuffix, Action: lexicon.ActionUpdate, Before: before, After: current})
	return current, nil
}

// DeleteSuffix removes a suffix from the transaction state.
func (tx *Tx) DeleteSuffix(key string) error {
	current, ok := tx.state.suffixes[key]
	if !ok {
		return lexicon.NotFoundError{Kind: lexicon.EntitySuffix, Key: key}
	}
	delete(tx.state.suffixes, key)
	tx.recordChange(Change{Entity: lexicon.EntitySuffix, Action: lexicon.ActionDelete, Before: current})
	return nil
}

// CreateDerivation stores a saved derivation outcome keyed by generated ID.
func (tx *Tx) CreateDerivation(d DerivationRecord) (DerivationRecord, error) {
	if d.ID == "" {
		d.ID = tx.store.newID()
	}
	if _, exists := tx.state.derivations[d.ID]; exists {
		return DerivationRecord{}, fmt.Errorf("derivation %q already exists", d.ID)
	}
	d.CreatedAt = tx.now
	d.UpdatedAt = tx.now
	tx.state.derivations[d.ID] = d
	tx.recordChange(Change{Entity: lexicon.EntityDerivation, Action: lexicon.ActionCreate, After: d})
	return d, nil
}

// DeleteDerivation removes a saved derivation.
func (tx *Tx) DeleteDerivation(id string) error {
	current, ok := tx.state.derivations[id]
	if !ok {
		return lexicon.NotFoundError{Kind: lexicon.EntityDerivation, Key: id}
	}
	delete(tx.state.derivations, id)
	tx.recordChange(Change{Entity: lexicon.EntityDerivation, Action: lexicon.ActionDelete, Before: current})
	return nil
}

// GetRoot retrieves a root by key from committed state.
func (s *Store) GetRoot(key string) (Root, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.roots[key]
	return r, ok
}

// ListRoots returns all roots from committed state, ordered by key.
func (s *Store) ListRoots() []Root {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newView(&s.state).ListRoots()
}

// GetSuffix retrieves a suffix by key from committed state.
func (s *Store) GetSuffix(key string) (Suffix, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sfx, ok := s.state.suffixes[key]
	return sfx, ok
}

// ListSuffixes returns all suffixes from committed state, ordered by key.
func (s *Store) ListSuffixes() []Suffix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newView(&s.state).ListSuffixes()
}

// GetDerivation retrieves a saved derivation by ID from committed state.
func (s *Store) GetDerivation(id string) (DerivationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.derivations[id]
	return d, ok
}

// ListDerivations returns all saved derivations from committed state.
func (s *Store) ListDerivations() []DerivationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newView(&s.state).ListDerivations()
}

// ExportState returns a deep copy snapshot of current state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snapshot)
}

// RulesEngine exposes the currently configured engine for integration points.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}
