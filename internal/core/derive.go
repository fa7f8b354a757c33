package core

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"etymon/internal/lexicon"
	"etymon/pkg/derivation"
)

// RandomSuffix asks Derive to pick a suffix at random.
const RandomSuffix = "random"

// DeriveRequest selects the inputs of one derivation run. Root and Suffix
// resolve against the lexicon by exact key first, then by XSAMPA
// pronunciation, then by meaning.
type DeriveRequest struct {
	Root    string // root key, pronunciation, or meaning; empty picks one at random
	Suffix  string // suffix key, pronunciation, or meaning; "random" picks one, empty derives the bare root
	Meaning string // explicit meaning for the derived word
	Seed    int64  // seed for random picks; zero draws from the clock
	Save    bool   // persist the outcome as a derivation record
}

// DeriveOutcome carries the pipeline result together with the lexicon
// entries that produced it. Record is set when the request asked to save.
type DeriveOutcome struct {
	Result derivation.Result
	Root   Root
	Suffix *Suffix
	Record *DerivationRecord
	Seed   int64
}

// Derive resolves the requested root and suffix, runs the pipeline, and
// optionally persists the outcome. The same request with the same seed
// yields an identical outcome.
func (s *Service) Derive(ctx context.Context, req DeriveRequest) (DeriveOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "derive")
	start := s.clock.Now()
	out, err := s.derive(ctx, req)
	duration := s.clock.Now().Sub(start)
	s.metrics.Observe(ctx, "derive", err == nil, duration)
	span.End(err)
	if err != nil {
		s.logger.Error("derive failed", "error", err)
		if req.Save {
			s.recordAuditError(ctx, "derive", duration)
		}
		return DeriveOutcome{}, err
	}
	s.logger.Debug("derive completed", "spelling", out.Result.Spelling, "seed", out.Seed)
	if out.Record != nil {
		s.recordAuditSuccess(ctx, "derive", out.Record.ID, duration)
	}
	return out, nil
}

func (s *Service) derive(ctx context.Context, req DeriveRequest) (DeriveOutcome, error) {
	seed := req.Seed
	if seed == 0 {
		seed = s.clock.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var root Root
	var suffix *Suffix
	if err := s.store.View(ctx, func(view lexicon.TransactionView) error {
		var err error
		root, err = resolveRoot(view, req.Root, rng)
		if err != nil {
			return err
		}
		suffix, err = resolveSuffix(view, req.Suffix, rng)
		return err
	}); err != nil {
		return DeriveOutcome{}, err
	}

	rootSeq, err := s.vocab.Parse(root.Pron)
	if err != nil {
		return DeriveOutcome{}, fmt.Errorf("root %q: %w", root.Key, err)
	}
	input := derivation.Input{
		Root:        rootSeq,
		RootName:    rootDisplayName(root),
		RootMeaning: root.Meaning,
		Meaning:     req.Meaning,
	}
	if suffix != nil {
		suffixSeq, err := s.vocab.Parse(suffix.Pron)
		if err != nil {
			return DeriveOutcome{}, fmt.Errorf("suffix %q: %w", suffix.Key, err)
		}
		input.Suffix = suffixSeq
		input.SuffixName = suffixDisplayName(*suffix)
		input.SuffixMeaning = suffix.Meaning
	}

	result, err := s.pipeline.Derive(input)
	if err != nil {
		return DeriveOutcome{}, err
	}
	out := DeriveOutcome{Result: result, Root: root, Suffix: suffix, Seed: seed}

	if req.Save {
		record := DerivationRecord{
			RootKey:  root.Key,
			Spelling: result.Spelling,
			IPA:      result.IPA,
			Pron:     result.Phonetic.String(),
			Gloss:    result.Gloss,
			Meaning:  result.Meaning,
			Seed:     seed,
		}
		if suffix != nil {
			record.SuffixKey = suffix.Key
		}
		var saved DerivationRecord
		if _, err := s.store.RunInTransaction(ctx, func(tx lexicon.Transaction) error {
			var err error
			saved, err = tx.CreateDerivation(record)
			return err
		}); err != nil {
			return DeriveOutcome{}, err
		}
		out.Record = &saved
	}
	return out, nil
}

func resolveRoot(view lexicon.TransactionView, query string, rng *rand.Rand) (Root, error) {
	roots := view.ListRoots()
	if query == "" {
		if len(roots) == 0 {
			return Root{}, fmt.Errorf("lexicon has no roots")
		}
		return roots[rng.Intn(len(roots))], nil
	}
	if root, ok := view.FindRoot(query); ok {
		return root, nil
	}
	for _, r := range roots {
		if r.Pron == query {
			return r, nil
		}
	}
	for _, r := range roots {
		if r.Meaning == query {
			return r, nil
		}
	}
	return Root{}, NotFoundError{Kind: EntityRoot, Key: query}
}

func resolveSuffix(view lexicon.TransactionView, query string, rng *rand.Rand) (*Suffix, error) {
	if query == "" {
		return nil, nil
	}
	suffixes := view.ListSuffixes()
	if query == RandomSuffix {
		if len(suffixes) == 0 {
			return nil, fmt.Errorf("lexicon has no suffixes")
		}
		pick := suffixes[rng.Intn(len(suffixes))]
		return &pick, nil
	}
	if suffix, ok := view.FindSuffix(query); ok {
		return &suffix, nil
	}
	for _, sf := range suffixes {
		if sf.Pron == query {
			return &sf, nil
		}
	}
	for _, sf := range suffixes {
		if sf.Meaning == query {
			return &sf, nil
		}
	}
	return nil, NotFoundError{Kind: EntitySuffix, Key: query}
}

// rootDisplayName is the gloss form of a root: the citation headword with
// any joining hyphen removed, falling back to the key.
func rootDisplayName(r Root) string {
	name := r.Citation
	if name == "" {
		name = r.Key
	}
	return strings.TrimSuffix(name, "-")
}

// suffixDisplayName mirrors rootDisplayName for suffix citations, which
// carry their joining hyphen in front.
func suffixDisplayName(sf Suffix) string {
	name := sf.Citation
	if name == "" {
		name = sf.Key
	}
	return strings.TrimPrefix(name, "-")
}

// FormatSummary renders the classic three-line word summary: the spelling
// with its IPA transcription, the etymological chain, and the title-cased
// meaning.
func FormatSummary(res derivation.Result) string {
	title := cases.Title(language.English).String(res.Meaning)
	return res.Spelling + " |" + res.IPA + "|\n" + res.Gloss + "\n" + title
}
