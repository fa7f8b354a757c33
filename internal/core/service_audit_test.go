package core

import (
	"context"
	"testing"
	"time"

	"etymon/internal/infra/persistence/memory"
	"etymon/internal/tables"
)

func newBareService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	pipeline, err := tables.Pipeline()
	if err != nil {
		t.Fatalf("assemble pipeline: %v", err)
	}
	vocab, err := tables.Vocabulary()
	if err != nil {
		t.Fatalf("load vocabulary: %v", err)
	}
	return NewService(clockOverrideStore{Store: memory.NewStore(nil)}, pipeline, vocab, opts...)
}

func TestRecordAuditSuccessUsesMetadata(t *testing.T) {
	fixed := time.Date(2025, 10, 1, 8, 30, 0, 0, time.UTC)
	recorder := &auditRecorderStub{}
	svc := newBareService(t,
		WithAuditRecorder(recorder),
		WithClock(ClockFunc(func() time.Time { return fixed })),
	)

	entityID := "root-123"
	duration := 42 * time.Millisecond
	svc.recordAuditSuccess(context.Background(), "create_root", entityID, duration)

	if len(recorder.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.Operation != "create_root" {
		t.Fatalf("unexpected operation: %s", entry.Operation)
	}
	if entry.Entity != EntityRoot {
		t.Fatalf("expected entity root, got %s", entry.Entity)
	}
	if entry.Action != ActionCreate {
		t.Fatalf("expected create action, got %s", entry.Action)
	}
	if entry.EntityID != entityID {
		t.Fatalf("expected entity id %s, got %s", entityID, entry.EntityID)
	}
	if entry.Status != AuditStatusSuccess {
		t.Fatalf("expected success status, got %s", entry.Status)
	}
	if entry.Duration != duration {
		t.Fatalf("expected duration %v, got %v", duration, entry.Duration)
	}
	if !entry.Timestamp.Equal(fixed) {
		t.Fatalf("expected timestamp %v, got %v", fixed, entry.Timestamp)
	}
}

func TestRecordAuditErrorUsesMetadata(t *testing.T) {
	recorder := &auditRecorderStub{}
	svc := newBareService(t, WithAuditRecorder(recorder))

	svc.recordAuditError(context.Background(), "delete_suffix", time.Second)

	if len(recorder.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.Entity != EntitySuffix || entry.Action != ActionDelete {
		t.Fatalf("unexpected metadata: %+v", entry)
	}
	if entry.Status != AuditStatusError {
		t.Fatalf("expected error status, got %s", entry.Status)
	}
	if entry.EntityID != "" {
		t.Fatalf("expected empty entity id on error, got %s", entry.EntityID)
	}
}

func TestRecordAuditSuccessIgnoresUnknownOperation(t *testing.T) {
	recorder := &auditRecorderStub{}
	svc := newBareService(t, WithAuditRecorder(recorder))

	svc.recordAuditSuccess(context.Background(), "unknown_operation", "entity", time.Second)

	if len(recorder.entries) != 0 {
		t.Fatalf("expected no audit entries for unknown operation, got %d", len(recorder.entries))
	}
}

func TestNoopImplementations(t *testing.T) {
	var logger noopLogger
	logger.Debug("noop")
	logger.Info("noop")
	logger.Warn("noop")
	logger.Error("noop")

	var audit noopAuditRecorder
	audit.Record(context.Background(), AuditEntry{})

	var metrics noopMetricsRecorder
	metrics.Observe(context.Background(), "noop", true, 0)

	tracer := noopTracer{}
	ctx, span := tracer.Start(context.Background(), "op")
	if ctx == nil {
		t.Fatalf("expected context from tracer")
	}
	span.End(nil)
}

type auditRecorderStub struct {
	entries []AuditEntry
}

func (r *auditRecorderStub) Record(_ context.Context, entry AuditEntry) {
	r.entries = append(r.entries, entry)
}

// clockOverrideStore hides the embedded store clock so WithClock and the
// default clock stay in charge.
type clockOverrideStore struct {
	*memory.Store
}

func (clockOverrideStore) NowFunc() func() time.Time {
	return nil
}
