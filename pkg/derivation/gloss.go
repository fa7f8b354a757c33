package derivation

import (
	"strings"

	"etymon/pkg/soundlaw"
)

// UnknownMeaning substitutes for a missing root or suffix meaning.
const UnknownMeaning = "(unknown)"

func glossedPeriod(p soundlaw.Period) bool {
	switch p {
	case soundlaw.PeriodProtoGermanic, soundlaw.PeriodOldEnglish, soundlaw.PeriodMiddleEnglish:
		return true
	}
	return false
}

// BuildGloss renders the etymological lineage from PIE citation form
// through the period snapshots to the modern spelling, for example
// "PIE *ph₂tḗr > PGmc faðēr > OEng fæder > MiddleEng fader > father".
// Only the Proto-Germanic, Old English, and Middle English snapshots
// appear; intermediate bookkeeping periods do not.
func BuildGloss(snapshots []Snapshot, rootName, suffixName, spelling string) string {
	parts := []string{"PIE *" + rootName + suffixName}
	for _, s := range snapshots {
		if !glossedPeriod(s.Period) {
			continue
		}
		parts = append(parts, s.Period.Abbrev()+" "+s.IPA)
	}
	parts = append(parts, spelling)
	return strings.Join(parts, " > ")
}

// CombineMeaning yields the derived word's meaning: the explicit target
// meaning when supplied, otherwise the root meaning joined to the suffix
// meaning with " + ". Missing meanings default to UnknownMeaning.
func CombineMeaning(rootMeaning, suffixMeaning, explicit string, hasSuffix bool) string {
	if explicit != "" {
		return explicit
	}
	if rootMeaning == "" {
		rootMeaning = UnknownMeaning
	}
	if !hasSuffix {
		return rootMeaning
	}
	if suffixMeaning == "" {
		suffixMeaning = UnknownMeaning
	}
	return rootMeaning + " + " + suffixMeaning
}
