package blob

import (
	"fmt"
	"time"
)

// ReportKey returns the canonical object key for an archived derivation report.
func ReportKey(id string) string {
	return fmt.Sprintf("reports/%s.txt", id)
}

// ExportKey returns the canonical object key for a lexicon export taken at the
// given instant. Format is the file extension (json, csv).
func ExportKey(format string, at time.Time) string {
	return fmt.Sprintf("exports/lexicon-%s.%s", at.UTC().Format("20060102T150405Z"), format)
}
