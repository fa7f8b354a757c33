package core

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"etymon/internal/lexicon"
	"etymon/pkg/derivation"
	"etymon/pkg/phoneme"
	"etymon/pkg/soundlaw"
)

// PeriodPhones lists the distinct phones observed in one historical
// period across a whole analysis run.
type PeriodPhones struct {
	Label  string   `json:"label"`
	Phones []string `json:"phones"`
}

// PhonesetReport aggregates the per-period phoneme inventories produced
// by deriving every root and suffix pairing in the lexicon.
type PhonesetReport struct {
	Pairs   int            `json:"pairs"`
	Periods []PeriodPhones `json:"periods"`
}

// Render writes the report in the phoneset layout: a label line followed
// by the comma-joined phones of that period.
func (r PhonesetReport) Render() string {
	var b strings.Builder
	for _, period := range r.Periods {
		b.WriteString(period.Label)
		b.WriteString(" phones:\n")
		b.WriteString(strings.Join(period.Phones, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// Analyze derives every root and suffix pairing and collects the phones
// each historical period produced. Pairs run concurrently; the report is
// deterministic regardless of scheduling.
func (s *Service) Analyze(ctx context.Context) (PhonesetReport, error) {
	var report PhonesetReport
	err := s.instrument(ctx, "analyze", func(ctx context.Context) error {
		var roots []Root
		var suffixes []Suffix
		if err := s.store.View(ctx, func(view lexicon.TransactionView) error {
			roots = view.ListRoots()
			suffixes = view.ListSuffixes()
			return nil
		}); err != nil {
			return err
		}
		if len(roots) == 0 || len(suffixes) == 0 {
			return fmt.Errorf("analysis needs at least one root and one suffix")
		}

		type pairing struct {
			root   Root
			suffix Suffix
		}
		pairs := make([]pairing, 0, len(roots)*len(suffixes))
		for _, r := range roots {
			for _, sf := range suffixes {
				pairs = append(pairs, pairing{root: r, suffix: sf})
			}
		}

		results := make([]derivation.Result, len(pairs))
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, p := range pairs {
			i, p := i, p
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				rootSeq, err := s.vocab.Parse(p.root.Pron)
				if err != nil {
					return fmt.Errorf("root %q: %w", p.root.Key, err)
				}
				suffixSeq, err := s.vocab.Parse(p.suffix.Pron)
				if err != nil {
					return fmt.Errorf("suffix %q: %w", p.suffix.Key, err)
				}
				res, err := s.pipeline.Derive(derivation.Input{
					Root:          rootSeq,
					RootName:      rootDisplayName(p.root),
					RootMeaning:   p.root.Meaning,
					Suffix:        suffixSeq,
					SuffixName:    suffixDisplayName(p.suffix),
					SuffixMeaning: p.suffix.Meaning,
				})
				if err != nil {
					return fmt.Errorf("derive %s+%s: %w", p.root.Key, p.suffix.Key, err)
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		report = foldPhonesets(results, len(pairs))
		return nil
	})
	if err != nil {
		return PhonesetReport{}, err
	}
	return report, nil
}

// Period labels in report order.
var phonesetLabels = []string{"PIE", "PGmc", "OldE", "MidE", "ModE"}

func foldPhonesets(results []derivation.Result, pairs int) PhonesetReport {
	inventories := make(map[string]map[string]struct{}, len(phonesetLabels))
	for _, label := range phonesetLabels {
		inventories[label] = make(map[string]struct{})
	}
	add := func(label string, seq phoneme.Sequence) {
		for _, sym := range seq.Symbols() {
			inventories[label][sym] = struct{}{}
		}
	}
	for _, res := range results {
		add("PIE", res.Combined)
		if snap, ok := res.Trace.Snapshot(soundlaw.PeriodProtoGermanic); ok {
			add("PGmc", snap.Form)
		}
		if snap, ok := res.Trace.Snapshot(soundlaw.PeriodOldEnglish); ok {
			add("OldE", snap.Form)
		}
		if snap, ok := res.Trace.Snapshot(soundlaw.PeriodMiddleEnglish); ok {
			add("MidE", snap.Form)
		}
		add("ModE", res.Phonetic)
	}

	report := PhonesetReport{Pairs: pairs}
	for _, label := range phonesetLabels {
		phones := make([]string, 0, len(inventories[label]))
		for sym := range inventories[label] {
			phones = append(phones, sym)
		}
		sort.Strings(phones)
		report.Periods = append(report.Periods, PeriodPhones{Label: label, Phones: phones})
	}
	return report
}
