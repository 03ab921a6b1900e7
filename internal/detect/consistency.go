package detect

import (
	"go.uber.org/zap"

	"github.com/alpdilgen/memoq-qa-resolver/internal/annotation"
	"github.com/alpdilgen/memoq-qa-resolver/internal/extract"
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
)

// Code and keyword vocabulary for consistency errors. 03100/03101 are the
// formal memoQ codes.
var consistencyCodePatterns = []string{"03100", "03101", "consistency", "inconsist"}

// Consistency detects inconsistent-translation errors via the coded warning
// scan: annotations whose attributes or text carry a consistency code or
// keyword.
type Consistency struct {
	logger *zap.Logger
}

// NewConsistency creates the consistency detector.
func NewConsistency(logger *zap.Logger) *Consistency {
	return &Consistency{logger: logger}
}

// Category returns the registry key for this detector.
func (d *Consistency) Category() string { return "consistency" }

// Detect finds all consistency errors in the document.
func (d *Consistency) Detect(doc *mqxliff.Document) []Finding {
	var findings []Finding
	for _, unit := range doc.Units() {
		for _, ann := range annotation.Locate(unit.Node(), annotation.WarningTags) {
			var rec *extract.ConsistencyRecord
			switch {
			case ann.MatchesCode(consistencyCodePatterns):
				rec = extract.Consistency(ann)
			case ann.TextMatchesCode(consistencyCodePatterns):
				rec = &extract.ConsistencyRecord{}
				extract.ConsistencyFromText(ann.Text(), rec)
			default:
				continue
			}
			if rec == nil || rec.Empty() {
				d.logger.Debug("consistency warning without usable fields",
					zap.String("unit", unit.ID()))
				continue
			}
			findings = append(findings, Finding{
				Category:    d.Category(),
				Unit:        unit,
				Annotation:  ann,
				Consistency: rec,
			})
		}
	}

	d.logger.Debug("consistency detection complete", zap.Int("findings", len(findings)))
	return findings
}
