// Package detect builds category detectors on top of the annotation locator
// and the extraction cascade, and exposes them through a registry keyed by
// category name.
package detect

import (
	"go.uber.org/zap"

	"github.com/alpdilgen/memoq-qa-resolver/internal/annotation"
	"github.com/alpdilgen/memoq-qa-resolver/internal/extract"
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
)

// Finding is one detected error: the owning unit, the annotation it came
// from, and the normalized record for the detector's category. Exactly one
// of Term/Consistency is set.
type Finding struct {
	Category    string
	Unit        *mqxliff.Unit
	Annotation  *annotation.Annotation
	Term        *extract.TermRecord
	Consistency *extract.ConsistencyRecord
}

// Detector finds all errors of one category in a document. Detection is
// read-only: running it twice on an unmutated document yields identical
// results.
type Detector interface {
	Category() string
	Detect(doc *mqxliff.Document) []Finding
}

// Entry pairs a detector with the memoQ error codes its category owns. The
// code sets are also consumed by the bulk-ignore pass to know which codes to
// leave alone.
type Entry struct {
	Codes    []string
	Detector Detector
}

// Registry returns the default category registry.
func Registry(logger *zap.Logger) map[string]Entry {
	return map[string]Entry{
		"consistency": {
			Codes:    []string{"03100", "03101"},
			Detector: NewConsistency(logger),
		},
		"terminology": {
			Codes:    []string{"03091"},
			Detector: NewTerminology(logger),
		},
	}
}

// CategoryNames returns the registered category names in processing order.
func CategoryNames() []string {
	return []string{"consistency", "terminology"}
}
