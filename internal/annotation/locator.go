package annotation

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
)

// WarningTags are the warning-element spellings seen across MQXLIFF
// versions, in search priority order.
var WarningTags = []string{"mq:errorwarning", "errorwarning", "warning", "mq:error", "error"}

// ContainerNames returns the warning-container spellings for a unit, in
// priority order. Newer documents nest warnings inside a container named
// after the unit's own id; mq:warnings40 is the fixed legacy name.
func ContainerNames(unitID string) []string {
	return []string{
		"mq:warnings" + unitID,
		"mq:warnings40",
		"mq:warnings",
		"warnings",
		"mq:warningcontainer",
		"warningcontainer",
	}
}

// Locate finds all non-ignored annotations under a unit: first warning tags
// anywhere below the unit, then the same search repeated inside each matched
// container, in container priority order. Results are appended without
// deduplication; recall is preferred over precision here.
func Locate(unit *xmlquery.Node, tags []string) []*Annotation {
	var found []*Annotation

	found = append(found, collectWarnings(unit, tags)...)

	unitID := unit.SelectAttr("id")
	for _, container := range ContainerNames(unitID) {
		mqxliff.WalkElements(unit, func(el *xmlquery.Node) bool {
			if nameMatches(el, container) {
				found = append(found, collectWarnings(el, tags)...)
			}
			return true
		})
	}

	return found
}

// collectWarnings gathers non-ignored descendants of root matching any of
// the tag spellings, in document order.
func collectWarnings(root *xmlquery.Node, tags []string) []*Annotation {
	var out []*Annotation
	mqxliff.WalkElements(root, func(el *xmlquery.Node) bool {
		if !matchesAny(el, tags) {
			return true
		}
		ann := Wrap(el)
		if ann.IsIgnored() {
			return true
		}
		out = append(out, ann)
		return true
	})
	return out
}

func matchesAny(n *xmlquery.Node, candidates []string) bool {
	for _, c := range candidates {
		if nameMatches(n, c) {
			return true
		}
	}
	return false
}

// nameMatches compares an element name against a candidate spelling. A
// prefixed candidate must match the full name; a bare candidate matches the
// local name regardless of namespace.
func nameMatches(n *xmlquery.Node, candidate string) bool {
	if strings.Contains(candidate, ":") {
		return strings.EqualFold(fullName(n), candidate)
	}
	return strings.EqualFold(n.Data, candidate)
}
