// Package core wires the derivation pipeline, the lexicon store, and the
// blob archive behind one transactional, instrumented service API.
package core

import (
	"context"
	"time"

	"etymon/internal/blob"
	"etymon/internal/infra/persistence/memory"
	"etymon/internal/lexicon"
	"etymon/internal/tables"
	"etymon/pkg/derivation"
	"etymon/pkg/phoneme"
)

// Service exposes derivation and lexicon operations over a persistent
// store. Every operation is traced, measured, and logged through the
// attached observability hooks; mutating operations also feed the audit
// trail.
type Service struct {
	store    lexicon.PersistentStore
	pipeline *derivation.Pipeline
	vocab    *phoneme.Vocabulary
	blobs    blob.Store
	clock    Clock
	logger   Logger
	audit    AuditRecorder
	metrics  MetricsRecorder
	tracer   Tracer
}

// NewService constructs a service over the supplied store and pipeline.
// When the store exposes its record clock the service aligns with it;
// WithClock still overrides.
func NewService(store lexicon.PersistentStore, pipeline *derivation.Pipeline, vocab *phoneme.Vocabulary, opts ...Option) *Service {
	options := defaultServiceOptions()
	if provider, ok := store.(interface{ NowFunc() func() time.Time }); ok {
		if fn := provider.NowFunc(); fn != nil {
			options.clock = ClockFunc(fn)
		}
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Service{
		store:    store,
		pipeline: pipeline,
		vocab:    vocab,
		blobs:    options.blobs,
		clock:    options.clock,
		logger:   options.logger,
		audit:    options.audit,
		metrics:  options.metrics,
		tracer:   options.tracer,
	}
}

// NewInMemoryService assembles a service over a fresh in-memory store and
// the shipped tables.
func NewInMemoryService(engine *RulesEngine, opts ...Option) (*Service, error) {
	pipeline, err := tables.Pipeline()
	if err != nil {
		return nil, err
	}
	vocab, err := tables.Vocabulary()
	if err != nil {
		return nil, err
	}
	return NewService(memory.NewStore(engine), pipeline, vocab, opts...), nil
}

// Store returns the underlying persistent store.
func (s *Service) Store() lexicon.PersistentStore {
	return s.store
}

// operationMetadata maps audited operations to their entity and action.
// Operations absent from the map are instrumented but not audited.
var operationMetadata = map[string]struct {
	entity EntityType
	action Action
}{
	"create_root":       {entity: EntityRoot, action: ActionCreate},
	"update_root":       {entity: EntityRoot, action: ActionUpdate},
	"delete_root":       {entity: EntityRoot, action: ActionDelete},
	"create_suffix":     {entity: EntitySuffix, action: ActionCreate},
	"update_suffix":     {entity: EntitySuffix, action: ActionUpdate},
	"delete_suffix":     {entity: EntitySuffix, action: ActionDelete},
	"derive":            {entity: EntityDerivation, action: ActionCreate},
	"delete_derivation": {entity: EntityDerivation, action: ActionDelete},
}

func (s *Service) recordAuditSuccess(ctx context.Context, operation, entityID string, duration time.Duration) {
	meta, ok := operationMetadata[operation]
	if !ok {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: operation,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: s.clock.Now(),
	})
}

func (s *Service) recordAuditError(ctx context.Context, operation string, duration time.Duration) {
	meta, ok := operationMetadata[operation]
	if !ok {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: operation,
		Entity:    meta.entity,
		Action:    meta.action,
		Status:    AuditStatusError,
		Duration:  duration,
		Timestamp: s.clock.Now(),
	})
}

// transact runs fn inside a store transaction wrapped with tracing,
// metrics, logging, and the audit trail. entityID, when non-nil, names
// the record the successful operation touched.
func (s *Service) transact(ctx context.Context, operation string, fn func(lexicon.Transaction) error, entityID func() string) (Result, error) {
	ctx, span := s.tracer.Start(ctx, operation)
	start := s.clock.Now()
	res, err := s.store.RunInTransaction(ctx, fn)
	duration := s.clock.Now().Sub(start)
	s.metrics.Observe(ctx, operation, err == nil, duration)
	span.End(err)
	if err != nil {
		s.logger.Error(operation+" failed", "error", err)
		s.recordAuditError(ctx, operation, duration)
		return res, err
	}
	id := ""
	if entityID != nil {
		id = entityID()
	}
	s.logger.Debug(operation+" completed", "entity_id", id)
	s.recordAuditSuccess(ctx, operation, id, duration)
	return res, nil
}

// instrument wraps a non-transactional operation with tracing, metrics,
// and logging.
func (s *Service) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, operation)
	start := s.clock.Now()
	err := fn(ctx)
	duration := s.clock.Now().Sub(start)
	s.metrics.Observe(ctx, operation, err == nil, duration)
	span.End(err)
	if err != nil {
		s.logger.Error(operation+" failed", "error", err)
		return err
	}
	s.logger.Debug(operation + " completed")
	return nil
}

// CreateRoot persists a new root entry.
func (s *Service) CreateRoot(ctx context.Context, root Root) (Root, Result, error) {
	var created Root
	res, err := s.transact(ctx, "create_root", func(tx lexicon.Transaction) error {
		var err error
		created, err = tx.CreateRoot(root)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateRoot mutates the root stored under key.
func (s *Service) UpdateRoot(ctx context.Context, key string, mutator func(*Root) error) (Root, Result, error) {
	var updated Root
	res, err := s.transact(ctx, "update_root", func(tx lexicon.Transaction) error {
		var err error
		updated, err = tx.UpdateRoot(key, mutator)
		return err
	}, func() string { return updated.ID })
	return updated, res, err
}

// DeleteRoot removes the root stored under key.
func (s *Service) DeleteRoot(ctx context.Context, key string) (Result, error) {
	return s.transact(ctx, "delete_root", func(tx lexicon.Transaction) error {
		return tx.DeleteRoot(key)
	}, func() string { return key })
}

// CreateSuffix persists a new suffix entry.
func (s *Service) CreateSuffix(ctx context.Context, suffix Suffix) (Suffix, Result, error) {
	var created Suffix
	res, err := s.transact(ctx, "create_suffix", func(tx lexicon.Transaction) error {
		var err error
		created, err = tx.CreateSuffix(suffix)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdateSuffix mutates the suffix stored under key.
func (s *Service) UpdateSuffix(ctx context.Context, key string, mutator func(*Suffix) error) (Suffix, Result, error) {
	var updated Suffix
	res, err := s.transact(ctx, "update_suffix", func(tx lexicon.Transaction) error {
		var err error
		updated, err = tx.UpdateSuffix(key, mutator)
		return err
	}, func() string { return updated.ID })
	return updated, res, err
}

// DeleteSuffix removes the suffix stored under key.
func (s *Service) DeleteSuffix(ctx context.Context, key string) (Result, error) {
	return s.transact(ctx, "delete_suffix", func(tx lexicon.Transaction) error {
		return tx.DeleteSuffix(key)
	}, func() string { return key })
}

// DeleteDerivation removes a saved derivation record.
func (s *Service) DeleteDerivation(ctx context.Context, id string) (Result, error) {
	return s.transact(ctx, "delete_derivation", func(tx lexicon.Transaction) error {
		return tx.DeleteDerivation(id)
	}, func() string { return id })
}

// PutRoot creates the root when its key is new and updates the stored
// entry otherwise.
func (s *Service) PutRoot(ctx context.Context, root Root) (Root, Result, error) {
	if _, ok := s.store.GetRoot(root.Key); ok {
		return s.UpdateRoot(ctx, root.Key, func(r *Root) error {
			r.Citation = root.Citation
			r.Pron = root.Pron
			r.Meaning = root.Meaning
			return nil
		})
	}
	return s.CreateRoot(ctx, root)
}

// PutSuffix creates the suffix when its key is new and updates the stored
// entry otherwise.
func (s *Service) PutSuffix(ctx context.Context, suffix Suffix) (Suffix, Result, error) {
	if _, ok := s.store.GetSuffix(suffix.Key); ok {
		return s.UpdateSuffix(ctx, suffix.Key, func(sf *Suffix) error {
			sf.Citation = suffix.Citation
			sf.Pron = suffix.Pron
			sf.Meaning = suffix.Meaning
			return nil
		})
	}
	return s.CreateSuffix(ctx, suffix)
}

// GetRoot returns the root stored under key.
func (s *Service) GetRoot(key string) (Root, bool) {
	return s.store.GetRoot(key)
}

// GetSuffix returns the suffix stored under key.
func (s *Service) GetSuffix(key string) (Suffix, bool) {
	return s.store.GetSuffix(key)
}

// ListRoots returns all roots ordered by key.
func (s *Service) ListRoots() []Root {
	return s.store.ListRoots()
}

// ListSuffixes returns all suffixes ordered by key.
func (s *Service) ListSuffixes() []Suffix {
	return s.store.ListSuffixes()
}

// ListDerivations returns all saved derivation records.
func (s *Service) ListDerivations() []DerivationRecord {
	return s.store.ListDerivations()
}
