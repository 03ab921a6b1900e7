package annotation

import (
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
)

// errorWarningTags restricts bulk ignore to formal errorwarning elements;
// notes and loose warnings are left alone.
var errorWarningTags = []string{"mq:errorwarning", "errorwarning"}

// IgnoreRemaining marks every still-unignored errorwarning whose code is not
// in excludedCodes as ignored, and returns the number of annotations
// flagged. Codes belonging to already-processed categories are excluded so
// their unresolved findings stay visible for a later run.
func IgnoreRemaining(doc *mqxliff.Document, excludedCodes map[string]bool) int {
	ignored := 0
	for _, unit := range doc.Units() {
		for _, ann := range Locate(unit.Node(), errorWarningTags) {
			// The locator favors recall and may yield the same node twice
			// (direct pass plus container pass); recheck so the count is exact.
			if ann.IsIgnored() {
				continue
			}
			if excludedCodes[ann.Code()] {
				continue
			}
			ann.MarkIgnored("automated", "")
			ignored++
		}
	}
	return ignored
}
