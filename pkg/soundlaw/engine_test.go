package soundlaw

import (
	"reflect"
	"testing"

	"etymon/pkg/phoneme"
)

func TestApplyStageFirstMatchWins(t *testing.T) {
	v := testVocab(t)
	engine, err := NewEngine(v, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	st := Stage{Name: "priority", Period: PeriodMiddleEnglish, Rules: []Rule{
		{Name: "first", Match: []Pattern{oneOf("a")}, Output: []string{"e"}},
		{Name: "second", Match: []Pattern{oneOf("a")}, Output: []string{"o"}},
	}}
	res, err := engine.ApplyStage(st, seq(t, v, "p a t"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "p e t" {
		t.Fatalf("output = %q, want p e t", got)
	}
	if len(res.Firings) != 1 || res.Firings[0].Rule != "first" || res.Firings[0].Index != 0 {
		t.Fatalf("firings = %+v, want single firing of rule first", res.Firings)
	}
}

func TestApplyStageNeverRevisitsOutput(t *testing.T) {
	v := testVocab(t)
	engine, _ := NewEngine(v, nil)

	// A chain shift in one pass: emitted phonemes are not re-matched.
	st := Stage{Name: "chain", Period: PeriodProtoGermanic, Rules: []Rule{
		{Match: []Pattern{oneOf("p")}, Output: []string{"f"}},
		{Match: []Pattern{oneOf("b")}, Output: []string{"p"}},
	}}
	res, err := engine.ApplyStage(st, seq(t, v, "b a p a"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "p a f a" {
		t.Fatalf("output = %q, want p a f a", got)
	}

	// Self-feeding output terminates: the emitted copy is skipped.
	grow := Stage{Name: "grow", Period: PeriodProtoGermanic, Rules: []Rule{
		{Match: []Pattern{oneOf("a")}, Output: []string{"a", "a"}},
	}}
	res, err = engine.ApplyStage(grow, seq(t, v, "a"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "a a" {
		t.Fatalf("output = %q, want a a", got)
	}
}

func TestApplyStageMultiSlotOutputsAndRefs(t *testing.T) {
	v := testVocab(t)
	engine, _ := NewEngine(v, nil)
	st := Stage{Name: "clusters", Period: PeriodProtoGermanic, Rules: []Rule{
		{Name: "nasal-contraction", Match: []Pattern{oneOf("a"), oneOf("n"), oneOf("x")}, Output: []string{"a:"}},
		{Name: "metathesis", Match: []Pattern{oneOf("r\\"), oneOf("i")}, Output: []string{"$1", "$0"}},
		{Name: "drop", Match: []Pattern{oneOf("h2")}, Output: nil},
	}}
	res, err := engine.ApplyStage(st, seq(t, v, "p a n x r\\ i h2 t"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "p a: i r\\ t" {
		t.Fatalf("output = %q, want p a: i r\\ t", got)
	}
	wantLens := []int{3, 2, 1}
	if len(res.Firings) != len(wantLens) {
		t.Fatalf("firings = %+v, want 3", res.Firings)
	}
	for i, f := range res.Firings {
		if f.Len != wantLens[i] {
			t.Fatalf("firing %d len = %d, want %d", i, f.Len, wantLens[i])
		}
	}
}

func TestApplyStageSameSlotConstraint(t *testing.T) {
	v := testVocab(t)
	engine, _ := NewEngine(v, nil)
	st := Stage{Name: "degemination", Period: PeriodMiddleEnglish, Rules: []Rule{
		{Match: []Pattern{class(phoneme.ClassConsonant), class(phoneme.ClassConsonant)}, Output: []string{"$0"}, Same: true},
	}}
	res, err := engine.ApplyStage(st, seq(t, v, "a t t a t d"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "a t a t d" {
		t.Fatalf("output = %q, want a t a t d", got)
	}
}

func TestApplyStageBoundaryContexts(t *testing.T) {
	v := testVocab(t)
	engine, _ := NewEngine(v, nil)

	// Negated left context matches at the word edge, so the shift fires
	// initially but is blocked after s.
	grimm := Stage{Name: "grimm", Period: PeriodProtoGermanic, Rules: []Rule{
		{Match: []Pattern{oneOf("p")}, Output: []string{"f"}, Left: Context{Next: []Pattern{{Symbols: []string{"s"}, Not: true}}}},
	}}
	res, err := engine.ApplyStage(grimm, seq(t, v, "p a s p a p"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "f a s p a f" {
		t.Fatalf("output = %q, want f a s p a f", got)
	}

	// Positive contexts require a real neighbour on both sides.
	final := Stage{Name: "final-devoice", Period: PeriodOldEnglish, Rules: []Rule{
		{Match: []Pattern{oneOf("z")}, Output: []string{"s"}, Right: Context{Next: []Pattern{{Edge: true}}}},
		{Match: []Pattern{oneOf("v")}, Output: []string{"b"}, Left: Context{Next: []Pattern{{Edge: true}}}},
	}}
	res, err = engine.ApplyStage(final, seq(t, v, "v a z a z"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "b a z a s" {
		t.Fatalf("output = %q, want b a z a s", got)
	}
}

func TestApplyStageScanContexts(t *testing.T) {
	v := testVocab(t)
	engine, _ := NewEngine(v, nil)

	umlaut := Stage{Name: "umlaut", Period: PeriodProtoGermanic, Rules: []Rule{
		{Match: []Pattern{oneOf("e")}, Output: []string{"i"}, Right: Context{Contains: []Pattern{oneOf("i", "i:", "j")}}},
	}}
	res, err := engine.ApplyStage(umlaut, seq(t, v, "b e r\\ j a n"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "b i r\\ j a n" {
		t.Fatalf("umlaut output = %q", got)
	}
	res, err = engine.ApplyStage(umlaut, seq(t, v, "b e r\\ a n"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "b e r\\ a n" {
		t.Fatalf("umlaut must not fire without a trigger, got %q", got)
	}

	fronting := Stage{Name: "fronting", Period: PeriodOldEnglish, Rules: []Rule{
		{Match: []Pattern{oneOf("a")}, Output: []string{"ae"}, Right: Context{
			Next:  []Pattern{{Symbols: []string{"n", "o", "u"}, Not: true, Real: true}},
			Lacks: []Pattern{oneOf("n", "o", "u")},
		}},
	}}
	res, err = engine.ApplyStage(fronting, seq(t, v, "a t a"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "ae t a" {
		t.Fatalf("fronting output = %q, want ae t a", got)
	}
	for _, blocked := range []string{"a n t", "a t n", "t a"} {
		res, err = engine.ApplyStage(fronting, seq(t, v, blocked))
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if got := res.Output.String(); got != blocked {
			t.Fatalf("fronting must be blocked in %q, got %q", blocked, got)
		}
	}

	secondLengthening := Stage{Name: "second-lengthening", Period: PeriodMiddleEnglish, Rules: []Rule{
		{Name: "lengthen-first", Match: []Pattern{oneOf("e")}, Output: []string{"e:"},
			Left:  Context{Lacks: []Pattern{class(phoneme.ClassVowel)}},
			Right: Context{Final: &Pattern{Class: phoneme.ClassVowel}}},
		{Name: "drop-final", Match: []Pattern{class(phoneme.ClassVowel)}, Output: nil,
			Left:  Context{Contains: []Pattern{class(phoneme.ClassVowel)}},
			Right: Context{Next: []Pattern{{Edge: true}}}},
	}}
	res, err = engine.ApplyStage(secondLengthening, seq(t, v, "p e t a"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "p e: t" {
		t.Fatalf("second lengthening output = %q, want p e: t", got)
	}
	res, err = engine.ApplyStage(secondLengthening, seq(t, v, "p e t"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "p e t" {
		t.Fatalf("closed monosyllable must survive, got %q", got)
	}
}

func TestApplyThreadsStagesInOrder(t *testing.T) {
	v := testVocab(t)
	stages := []Stage{
		{Name: "laryngeal-loss", Period: PeriodLatePIE, Rules: []Rule{
			{Match: []Pattern{oneOf("h2")}, Output: nil, Left: Context{Next: []Pattern{class(phoneme.ClassConsonant)}}},
		}},
		{Name: "shortening", Period: PeriodMiddleEnglish, Rules: []Rule{
			{Match: []Pattern{oneOf("e:")}, Output: []string{"e"}},
		}},
	}
	engine, err := NewEngine(v, stages)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	final, results, err := engine.Apply(seq(t, v, "p h2 t e: r"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := final.String(); got != "p t e r" {
		t.Fatalf("final = %q, want p t e r", got)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 stage results, got %d", len(results))
	}
	if results[0].Stage != "laryngeal-loss" || results[1].Stage != "shortening" {
		t.Fatalf("stage order wrong: %q then %q", results[0].Stage, results[1].Stage)
	}
	if !results[0].Output.Equal(results[1].Input) {
		t.Fatalf("stage 2 must consume stage 1 output")
	}
	if got := results[0].Output.String(); got != "p t e: r" {
		t.Fatalf("intermediate = %q, want p t e: r", got)
	}
	if !results[0].Changed() || !results[1].Changed() {
		t.Fatalf("both stages altered the word")
	}
}

func TestApplyDeterminism(t *testing.T) {
	v := testVocab(t)
	stages := []Stage{
		{Name: "one", Period: PeriodProtoGermanic, Rules: []Rule{
			{Match: []Pattern{oneOf("p")}, Output: []string{"f"}},
			{Match: []Pattern{oneOf("o")}, Output: []string{"a"}},
		}},
		{Name: "two", Period: PeriodOldEnglish, Rules: []Rule{
			{Match: []Pattern{oneOf("a")}, Output: []string{"ae"}, Right: Context{Next: []Pattern{{Any: true}}}},
		}},
	}
	engine, err := NewEngine(v, stages)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	input := seq(t, v, "p o t o")
	first, firstResults, err := engine.Apply(input)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	second, secondResults, err := engine.Apply(input)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("outputs differ: %q vs %q", first, second)
	}
	if !reflect.DeepEqual(firstResults, secondResults) {
		t.Fatalf("stage results differ between runs")
	}
}

func TestFiringsPartitionConsumedSpans(t *testing.T) {
	v := testVocab(t)
	engine, _ := NewEngine(v, nil)
	st := Stage{Name: "overlap", Period: PeriodMiddleEnglish, Rules: []Rule{
		{Match: []Pattern{oneOf("a"), oneOf("b")}, Output: []string{"e"}},
		{Match: []Pattern{oneOf("b"), oneOf("d")}, Output: []string{"o"}},
	}}
	input := seq(t, v, "a b d a b d b d")
	res, err := engine.ApplyStage(st, input)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := res.Output.String(); got != "e d e d o" {
		t.Fatalf("output = %q, want e d e d o", got)
	}
	last := -1
	for _, f := range res.Firings {
		if f.Pos <= last {
			t.Fatalf("firing at %d overlaps previous end %d", f.Pos, last)
		}
		if f.Pos+f.Len > input.Len() {
			t.Fatalf("firing %+v exceeds input length %d", f, input.Len())
		}
		last = f.Pos + f.Len - 1
	}
}

func TestStageAndEngineValidation(t *testing.T) {
	v := testVocab(t)
	bad := []struct {
		name  string
		stage Stage
	}{
		{"empty name", Stage{Period: PeriodLatePIE}},
		{"unknown period", Stage{Name: "x", Period: Period("romance")}},
		{"empty match", Stage{Name: "x", Period: PeriodLatePIE, Rules: []Rule{{Output: []string{"a"}}}}},
		{"match too long", Stage{Name: "x", Period: PeriodLatePIE, Rules: []Rule{
			{Match: []Pattern{oneOf("a"), oneOf("a"), oneOf("a"), oneOf("a")}, Output: nil},
		}}},
		{"edge consumed", Stage{Name: "x", Period: PeriodLatePIE, Rules: []Rule{
			{Match: []Pattern{{Edge: true}}, Output: nil},
		}}},
		{"unknown output symbol", Stage{Name: "x", Period: PeriodLatePIE, Rules: []Rule{
			{Match: []Pattern{oneOf("a")}, Output: []string{"zz"}},
		}}},
		{"slot ref out of range", Stage{Name: "x", Period: PeriodLatePIE, Rules: []Rule{
			{Match: []Pattern{oneOf("a")}, Output: []string{"$1"}},
		}}},
		{"same with one slot", Stage{Name: "x", Period: PeriodLatePIE, Rules: []Rule{
			{Match: []Pattern{oneOf("a")}, Output: []string{"a"}, Same: true},
		}}},
		{"bad context pattern", Stage{Name: "x", Period: PeriodLatePIE, Rules: []Rule{
			{Match: []Pattern{oneOf("a")}, Output: []string{"a"}, Left: Context{Next: []Pattern{{}}}},
		}}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewEngine(v, []Stage{tc.stage}); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	if _, err := NewEngine(v, []Stage{
		{Name: "dup", Period: PeriodLatePIE},
		{Name: "dup", Period: PeriodOldEnglish},
	}); err == nil {
		t.Fatalf("expected duplicate stage rejection")
	}
	if _, err := NewEngine(nil, nil); err == nil {
		t.Fatalf("expected vocabulary requirement")
	}
}
