package core

import (
	"context"
	"testing"

	"etymon/internal/tables"
)

func TestSeedLexiconPopulatesStarterEntries(t *testing.T) {
	ctx := context.Background()
	svc := newEmptyService(t)

	created, err := SeedLexicon(ctx, svc.Store())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	rootEntries, err := tables.Roots()
	if err != nil {
		t.Fatalf("load roots: %v", err)
	}
	suffixEntries, err := tables.Suffixes()
	if err != nil {
		t.Fatalf("load suffixes: %v", err)
	}
	if want := len(rootEntries) + len(suffixEntries); created != want {
		t.Fatalf("created = %d, want %d", created, want)
	}
	if got := len(svc.ListRoots()); got != len(rootEntries) {
		t.Fatalf("roots = %d, want %d", got, len(rootEntries))
	}
	if got := len(svc.ListSuffixes()); got != len(suffixEntries) {
		t.Fatalf("suffixes = %d, want %d", got, len(suffixEntries))
	}

	root, ok := svc.GetRoot("wodr")
	if !ok {
		t.Fatal("expected seeded root wodr")
	}
	if root.Citation != "wódr̥" || root.Meaning != "water" {
		t.Fatalf("seeded root = %+v", root)
	}
	suffix, ok := svc.GetSuffix("ter")
	if !ok {
		t.Fatal("expected seeded suffix ter")
	}
	if suffix.Citation != "-ter" || suffix.Meaning != "doer" {
		t.Fatalf("seeded suffix = %+v", suffix)
	}
}

func TestSeedLexiconIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newEmptyService(t)

	if _, err := SeedLexicon(ctx, svc.Store()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	before := len(svc.ListRoots()) + len(svc.ListSuffixes())

	created, err := SeedLexicon(ctx, svc.Store())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if created != 0 {
		t.Fatalf("second seed created %d entries", created)
	}
	if after := len(svc.ListRoots()) + len(svc.ListSuffixes()); after != before {
		t.Fatalf("entry count changed: %d vs %d", after, before)
	}
}

func TestSeedLexiconKeepsLocalEdits(t *testing.T) {
	ctx := context.Background()
	svc := newEmptyService(t)
	if _, err := SeedLexicon(ctx, svc.Store()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, _, err := svc.UpdateRoot(ctx, "wodr", func(r *Root) error {
		r.Meaning = "rain"
		return nil
	}); err != nil {
		t.Fatalf("update root: %v", err)
	}
	if _, err := SeedLexicon(ctx, svc.Store()); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	root, _ := svc.GetRoot("wodr")
	if root.Meaning != "rain" {
		t.Fatalf("reseed overwrote local edit: %+v", root)
	}
}
