package derivation

import (
	"testing"

	"etymon/pkg/soundlaw"
)

func TestBuildGloss(t *testing.T) {
	snapshots := []Snapshot{
		{Period: soundlaw.PeriodLatePIE, IPA: "pħter"},
		{Period: soundlaw.PeriodProtoGermanic, IPA: "faðēr"},
		{Period: soundlaw.PeriodOldEnglish, IPA: "fæder"},
		{Period: soundlaw.PeriodLateOldEnglish, IPA: "fæder"},
		{Period: soundlaw.PeriodMiddleEnglish, IPA: "fader"},
		{Period: soundlaw.PeriodModernEnglish, IPA: "fɑːðəɹ"},
	}
	got := BuildGloss(snapshots, "ph₂tḗr", "", "father")
	want := "PIE *ph₂tḗr > PGmc faðēr > OEng fæder > MiddleEng fader > father"
	if got != want {
		t.Fatalf("BuildGloss() = %q, want %q", got, want)
	}
}

func TestBuildGlossWithSuffix(t *testing.T) {
	snapshots := []Snapshot{{Period: soundlaw.PeriodProtoGermanic, IPA: "watōr"}}
	got := BuildGloss(snapshots, "wód", "r̥", "water")
	want := "PIE *wódr̥ > PGmc watōr > water"
	if got != want {
		t.Fatalf("BuildGloss() = %q, want %q", got, want)
	}
}

func TestBuildGlossNoSnapshots(t *testing.T) {
	got := BuildGloss(nil, "bher", "", "bear")
	if want := "PIE *bher > bear"; got != want {
		t.Fatalf("BuildGloss() = %q, want %q", got, want)
	}
}

func TestCombineMeaning(t *testing.T) {
	cases := []struct {
		name      string
		root      string
		suffix    string
		explicit  string
		hasSuffix bool
		want      string
	}{
		{"explicit wins", "water", "doer", "waterer", true, "waterer"},
		{"root only", "water", "", "", false, "water"},
		{"composite", "carry", "doer", "", true, "carry + doer"},
		{"missing root", "", "", "", false, "(unknown)"},
		{"missing suffix meaning", "carry", "", "", true, "carry + (unknown)"},
		{"all missing with suffix", "", "", "", true, "(unknown) + (unknown)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CombineMeaning(tc.root, tc.suffix, tc.explicit, tc.hasSuffix)
			if got != tc.want {
				t.Fatalf("CombineMeaning(%q, %q, %q, %v) = %q, want %q",
					tc.root, tc.suffix, tc.explicit, tc.hasSuffix, got, tc.want)
			}
		})
	}
}
