package extract

import (
	"strings"

	"github.com/alpdilgen/memoq-qa-resolver/internal/annotation"
)

// Consistency extracts a consistency record from an annotation by running
// the strategy cascade. Returns nil when no strategy yields a usable field.
func Consistency(ann *annotation.Annotation) *ConsistencyRecord {
	rec := &ConsistencyRecord{}

	if consistencyFromLocalizationArgs(ann, rec) {
		return rec
	}

	consistencyFromLabeledAttrs(ann, rec)
	if !rec.complete() {
		consistencyFromLooseAttrs(ann, rec)
	}
	if !rec.complete() || len(rec.RelatedSegments) == 0 {
		ConsistencyFromText(ann.Text(), rec)
	}

	if rec.Empty() {
		return nil
	}
	return rec
}

// consistencyFromLocalizationArgs reads the tab-separated localizationargs
// attribute: field one is the consistent (previous) wording, field two the
// inconsistent (current) one.
func consistencyFromLocalizationArgs(ann *annotation.Annotation, rec *ConsistencyRecord) bool {
	value, ok := ann.AttrContaining("localizationargs")
	if !ok || !strings.Contains(value, "\t") {
		return false
	}
	parts := strings.SplitN(value, "\t", 2)
	if len(parts) < 2 {
		return false
	}
	rec.ConsistentText = strings.TrimSpace(parts[0])
	rec.InconsistentText = strings.TrimSpace(strings.SplitN(parts[1], "\t", 2)[0])
	return !rec.Empty()
}

// consistencyFromLabeledAttrs reads the memoQ phrasings out of shorttext
// ("Inconsistent translation for X") and longdesc ("The same segment was
// also translated as: Y").
func consistencyFromLabeledAttrs(ann *annotation.Annotation, rec *ConsistencyRecord) {
	ann.EachAttr(func(name, value string) {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "shorttext"):
			if rec.InconsistentText == "" {
				if idx := strings.Index(strings.ToLower(value), "inconsistent translation for"); idx >= 0 {
					rec.InconsistentText = strings.TrimSpace(value[idx+len("inconsistent translation for"):])
				}
			}
		case strings.Contains(lower, "longdesc"):
			if rec.ConsistentText == "" {
				if idx := strings.Index(strings.ToLower(value), "translated as:"); idx >= 0 {
					rec.ConsistentText = strings.TrimSpace(value[idx+len("translated as:"):])
				}
			}
		}
	})
}

// consistencyFromLooseAttrs maps loosely-named attributes positionally.
// The inconsist/current check runs first: "inconsistent" contains
// "consist" and must not feed the consistent side.
func consistencyFromLooseAttrs(ann *annotation.Annotation, rec *ConsistencyRecord) {
	ann.EachAttr(func(name, value string) {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "inconsist") || strings.Contains(lower, "current"):
			if rec.InconsistentText == "" {
				rec.InconsistentText = value
			}
		case strings.Contains(lower, "consist") || strings.Contains(lower, "expected") || strings.Contains(lower, "previous"):
			if rec.ConsistentText == "" {
				rec.ConsistentText = value
			}
		case strings.Contains(lower, "segment") || strings.Contains(lower, "related"):
			if value != "" {
				rec.RelatedSegments = append(rec.RelatedSegments, splitList(value, ";")...)
			}
		}
	})
}

// ConsistencyFromText applies the free-text templates to an annotation's
// visible text, backfilling only fields still unset. Exported for the
// detector path that works from warning text alone.
func ConsistencyFromText(text string, rec *ConsistencyRecord) {
	if text == "" {
		return
	}

	if rec.InconsistentText == "" {
		if m := inconsistentForPattern.FindStringSubmatch(text); m != nil {
			rec.InconsistentText = strings.TrimSpace(m[1])
		}
	}

	if rec.ConsistentText == "" {
		if m := translatedAsPattern.FindStringSubmatch(text); m != nil {
			rec.ConsistentText = strings.TrimSpace(m[1])
		}
	}

	if !rec.complete() {
		if m := shouldBePattern.FindStringSubmatch(text); m != nil {
			if rec.InconsistentText == "" {
				rec.InconsistentText = m[1]
			}
			if rec.ConsistentText == "" {
				rec.ConsistentText = m[2]
			}
		}
	}

	// "Inconsistent with segment N: 'A' vs 'B'". Which of A/B is the
	// canonical wording is inferred positionally: the first quote is taken
	// as the previous (consistent) wording.
	if m := inconsistentWithPattern.FindStringSubmatch(text); m != nil {
		if len(rec.RelatedSegments) == 0 {
			rec.RelatedSegments = splitList(m[1], ",")
		}
		if rec.ConsistentText == "" {
			rec.ConsistentText = m[2]
		}
		if rec.InconsistentText == "" {
			rec.InconsistentText = m[3]
		}
	}

	if !rec.complete() && strings.Contains(text, "\t") {
		parts := strings.SplitN(text, "\t", 2)
		if rec.ConsistentText == "" {
			rec.ConsistentText = strings.TrimSpace(parts[0])
		}
		if rec.InconsistentText == "" {
			rec.InconsistentText = strings.TrimSpace(strings.SplitN(parts[1], "\t", 2)[0])
		}
	}

	if len(rec.RelatedSegments) == 0 {
		for _, m := range segmentRefPattern.FindAllStringSubmatch(text, -1) {
			rec.RelatedSegments = append(rec.RelatedSegments, m[1])
		}
	}
}
