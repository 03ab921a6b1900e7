package extract

import (
	"strings"

	"github.com/alpdilgen/memoq-qa-resolver/internal/annotation"
)

// Term extracts a terminology record from an annotation by running the
// strategy cascade. Returns nil when no strategy yields a usable field.
func Term(ann *annotation.Annotation) *TermRecord {
	rec := &TermRecord{}

	// Strategy 1: structured localization args. On any match the result is
	// authoritative and the remaining strategies are skipped.
	if termFromLocalizationArgs(ann, rec) {
		return rec
	}

	termFromLabeledAttrs(ann, rec)
	if !rec.complete() {
		termFromLooseAttrs(ann, rec)
	}
	if !rec.complete() {
		TermFromText(ann.Text(), rec)
	}

	if rec.Empty() {
		return nil
	}
	return rec
}

// termFromLocalizationArgs reads the tab-separated localizationargs
// attribute: field one is the source term, the rest a comma-separated
// suggestion list.
func termFromLocalizationArgs(ann *annotation.Annotation, rec *TermRecord) bool {
	value, ok := ann.AttrContaining("localizationargs")
	if !ok || !strings.Contains(value, "\t") {
		return false
	}
	parts := strings.SplitN(value, "\t", 2)
	if len(parts) < 2 {
		return false
	}
	rec.SourceTerm = strings.TrimSpace(parts[0])
	rec.TargetSuggestions = splitList(parts[1], ",")
	return !rec.Empty()
}

// termFromLabeledAttrs scans shorttext/longdesc attributes for the fixed
// memoQ phrasings around source terms and suggested target terms.
func termFromLabeledAttrs(ann *annotation.Annotation, rec *TermRecord) {
	ann.EachAttr(func(name, value string) {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "shorttext") && !strings.Contains(lower, "longdesc") {
			return
		}
		if rec.SourceTerm == "" {
			if m := sourceTermAttrPattern.FindStringSubmatch(value); m != nil {
				rec.SourceTerm = m[1]
			}
		}
		if len(rec.TargetSuggestions) == 0 {
			if m := possibleTermsAttrPattern.FindStringSubmatch(value); m != nil {
				rec.TargetSuggestions = splitList(m[1], ",")
			}
		}
	})
}

// termFromLooseAttrs maps loosely-named attributes positionally: anything
// source+term-ish feeds the source term, anything target/suggest-ish feeds
// the suggestion list.
func termFromLooseAttrs(ann *annotation.Annotation, rec *TermRecord) {
	ann.EachAttr(func(name, value string) {
		lower := strings.ToLower(name)
		termish := strings.Contains(lower, "term") || strings.Contains(lower, "word")
		if !termish {
			return
		}
		switch {
		case strings.Contains(lower, "source") || strings.Contains(lower, "src"):
			if rec.SourceTerm == "" {
				rec.SourceTerm = value
			}
		case strings.Contains(lower, "target") || strings.Contains(lower, "tgt") || strings.Contains(lower, "suggest"):
			if len(rec.TargetSuggestions) == 0 && value != "" {
				rec.TargetSuggestions = splitList(value, ";")
			}
		}
	})
}

// TermFromText applies the free-text templates to an annotation's visible
// text, backfilling only fields still unset. Exported for the detector paths
// that work from note text alone.
func TermFromText(text string, rec *TermRecord) {
	if text == "" {
		return
	}

	// "Translation of source term "X" ... Possible terms: Y, Z"
	if m := sourceTermTextPattern.FindStringSubmatch(text); m != nil {
		fillTerm(rec, strings.TrimSpace(m[1]), splitList(m[2], ","))
		return
	}

	// "Term 'X' should be translated as 'Y'"
	if m := termPairPattern.FindStringSubmatch(text); m != nil {
		fillTerm(rec, m[1], []string{m[2]})
		return
	}

	// "Source: X, Target: Y"
	if m := sourceTargetPattern.FindStringSubmatch(text); m != nil {
		fillTerm(rec, strings.TrimSpace(m[1]), []string{strings.TrimSpace(m[2])})
		return
	}

	// "'X' should be 'Y'"
	if m := shouldBePattern.FindStringSubmatch(text); m != nil {
		fillTerm(rec, m[1], []string{m[2]})
		return
	}

	// Tab or colon separated "X\tY" / "X: Y, Z"
	for _, sep := range []string{"\t", ":"} {
		if strings.Contains(text, sep) {
			parts := strings.SplitN(text, sep, 2)
			if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" {
				fillTerm(rec, strings.TrimSpace(parts[0]), splitList(parts[1], ","))
				return
			}
		}
	}

	// Last resort: quoted substrings. A single quote is most likely the
	// source term with no suggestion recovered.
	first, second := quotedPair(text)
	if first != "" {
		suggestions := []string(nil)
		if second != "" {
			suggestions = []string{second}
		}
		fillTerm(rec, first, suggestions)
	}
}

func fillTerm(rec *TermRecord, sourceTerm string, suggestions []string) {
	if rec.SourceTerm == "" {
		rec.SourceTerm = sourceTerm
	}
	if len(rec.TargetSuggestions) == 0 {
		rec.TargetSuggestions = suggestions
	}
}
