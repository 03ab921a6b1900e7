package detect

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"

	"github.com/alpdilgen/memoq-qa-resolver/internal/annotation"
	"github.com/alpdilgen/memoq-qa-resolver/internal/extract"
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
)

// Code and keyword vocabulary for terminology errors. 03091 is the formal
// memoQ code; the keywords catch warnings that never got a code.
var termCodePatterns = []string{"03091", "terminology", "term"}

// Keywords that make a note or comment a terminology pseudo-annotation.
var termNoteKeywords = []string{"term", "terminology", "glossary", "termbase"}

var noteTags = []string{"mq:note", "note", "mq:comment", "comment"}
var termbaseTags = []string{"mq:termbase", "termbase", "mq:term", "term"}

// Terminology detects terminology errors through three discovery paths:
// the coded warning scan, a keyword scan over notes and comments, and a
// document-wide scan for termbase reference nodes. Findings from all paths
// are combined without deduplication; recall wins over precision.
type Terminology struct {
	logger *zap.Logger
}

// NewTerminology creates the terminology detector.
func NewTerminology(logger *zap.Logger) *Terminology {
	return &Terminology{logger: logger}
}

// Category returns the registry key for this detector.
func (d *Terminology) Category() string { return "terminology" }

// Detect finds all terminology errors in the document.
func (d *Terminology) Detect(doc *mqxliff.Document) []Finding {
	findings := d.scanWarnings(doc)
	findings = append(findings, d.scanNotes(doc)...)
	findings = append(findings, d.scanTermbase(doc)...)

	d.logger.Debug("terminology detection complete", zap.Int("findings", len(findings)))
	return findings
}

// scanWarnings is the standard path: located warnings whose attributes or
// text carry a terminology code or keyword.
func (d *Terminology) scanWarnings(doc *mqxliff.Document) []Finding {
	var findings []Finding
	for _, unit := range doc.Units() {
		for _, ann := range annotation.Locate(unit.Node(), annotation.WarningTags) {
			var rec *extract.TermRecord
			switch {
			case ann.MatchesCode(termCodePatterns):
				rec = extract.Term(ann)
			case ann.TextMatchesCode(termCodePatterns):
				rec = &extract.TermRecord{}
				extract.TermFromText(ann.Text(), rec)
			default:
				continue
			}
			if rec == nil || rec.Empty() {
				d.logger.Debug("terminology warning without usable fields",
					zap.String("unit", unit.ID()))
				continue
			}
			findings = append(findings, Finding{
				Category:   d.Category(),
				Unit:       unit,
				Annotation: ann,
				Term:       rec,
			})
		}
	}
	return findings
}

// scanNotes treats notes and comments mentioning terminology keywords as
// pseudo-annotations even absent a formal error code.
func (d *Terminology) scanNotes(doc *mqxliff.Document) []Finding {
	var findings []Finding
	for _, unit := range doc.Units() {
		mqxliff.WalkElements(unit.Node(), func(el *xmlquery.Node) bool {
			if !matchesAnyTag(el, noteTags) {
				return true
			}
			ann := annotation.Wrap(el)
			if ann.IsIgnored() {
				return true
			}
			text := strings.ToLower(ann.Text())
			if !containsAny(text, termNoteKeywords) {
				return true
			}
			rec := &extract.TermRecord{}
			extract.TermFromText(ann.Text(), rec)
			if rec.Empty() {
				return true
			}
			findings = append(findings, Finding{
				Category:   d.Category(),
				Unit:       unit,
				Annotation: ann,
				Term:       rec,
			})
			return true
		})
	}
	return findings
}

// scanTermbase finds termbase reference nodes anywhere in the document and
// walks ancestors to the owning unit. Term fields come from the node's own
// attributes rather than the cascade.
func (d *Terminology) scanTermbase(doc *mqxliff.Document) []Finding {
	var findings []Finding
	mqxliff.WalkElements(doc.Root(), func(el *xmlquery.Node) bool {
		if !matchesAnyTag(el, termbaseTags) {
			return true
		}
		unitNode := owningUnit(el)
		if unitNode == nil {
			return true
		}
		ann := annotation.Wrap(el)
		if ann.IsIgnored() {
			return true
		}

		rec := &extract.TermRecord{}
		ann.EachAttr(func(name, value string) {
			lower := strings.ToLower(name)
			switch {
			case strings.Contains(lower, "source"):
				if rec.SourceTerm == "" {
					rec.SourceTerm = value
				}
			case strings.Contains(lower, "target"):
				if value != "" && len(rec.TargetSuggestions) == 0 {
					rec.TargetSuggestions = []string{value}
				}
			}
		})
		if rec.Empty() {
			return true
		}
		findings = append(findings, Finding{
			Category:   d.Category(),
			Unit:       mqxliff.WrapUnit(unitNode),
			Annotation: ann,
			Term:       rec,
		})
		return true
	})
	return findings
}

// owningUnit walks ancestors until it finds the enclosing trans-unit.
func owningUnit(n *xmlquery.Node) *xmlquery.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == xmlquery.ElementNode && strings.EqualFold(p.Data, "trans-unit") {
			return p
		}
	}
	return nil
}

func matchesAnyTag(n *xmlquery.Node, candidates []string) bool {
	name := n.Data
	if n.Prefix != "" {
		name = n.Prefix + ":" + n.Data
	}
	for _, c := range candidates {
		if strings.Contains(c, ":") {
			if strings.EqualFold(name, c) {
				return true
			}
		} else if strings.EqualFold(n.Data, c) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
