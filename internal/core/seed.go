package core

import (
	"context"

	"etymon/internal/lexicon"
	"etymon/internal/tables"
)

// SeedLexicon loads the shipped starter dictionary into the store,
// skipping entries whose keys already exist. It returns the number of
// entries created and is safe to run on every startup.
func SeedLexicon(ctx context.Context, store PersistentStore) (int, error) {
	rootEntries, err := tables.Roots()
	if err != nil {
		return 0, err
	}
	suffixEntries, err := tables.Suffixes()
	if err != nil {
		return 0, err
	}
	created := 0
	_, err = store.RunInTransaction(ctx, func(tx lexicon.Transaction) error {
		view := tx.Snapshot()
		for _, e := range rootEntries {
			if _, ok := view.FindRoot(e.Key); ok {
				continue
			}
			if _, err := tx.CreateRoot(lexicon.Root{
				Key:      e.Key,
				Citation: e.Citation,
				Pron:     e.Pronunciation,
				Meaning:  e.Meaning,
			}); err != nil {
				return err
			}
			created++
		}
		for _, e := range suffixEntries {
			if _, ok := view.FindSuffix(e.Key); ok {
				continue
			}
			if _, err := tx.CreateSuffix(lexicon.Suffix{
				Key:      e.Key,
				Citation: e.Citation,
				Pron:     e.Pronunciation,
				Meaning:  e.Meaning,
			}); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
