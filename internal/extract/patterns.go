package extract

import (
	"regexp"
	"strings"
)

// Anchored patterns for the labeled free-text and fallback strategies. These
// mirror the phrasings memoQ emits in shorttext/longdesc attributes and in
// warning body text.
var (
	sourceTermAttrPattern    = regexp.MustCompile(`(?i)source term\s+["']([^"']+)["']`)
	possibleTermsAttrPattern = regexp.MustCompile(`(?i)possible terms:\s+([^".]+)`)

	sourceTermTextPattern = regexp.MustCompile(`(?is)source term\s+["']([^"']+)["'].*?possible terms:\s*([^.]+)`)
	termPairPattern       = regexp.MustCompile(`(?i)term\s+['"]([^'"]+)['"].*?['"]([^'"]+)['"]`)
	sourceTargetPattern   = regexp.MustCompile(`(?i)source:?\s+([^,;:]+).*?target:?\s+([^,;:]+)`)
	shouldBePattern       = regexp.MustCompile(`["']([^"']+)["'].*?should be.*?["']([^"']+)["']`)
	quotedPattern         = regexp.MustCompile(`["']([^"']+)["']`)

	inconsistentForPattern  = regexp.MustCompile(`(?i)inconsistent\s+translation\s+for\s+([^.]+)`)
	translatedAsPattern     = regexp.MustCompile(`(?i)translated\s+as:\s+([^.]+)`)
	inconsistentWithPattern = regexp.MustCompile(`(?is)inconsistent with.*?segments?\s+([0-9,\s]+).*?['"]([^'"]+)['"].*?['"]([^'"]+)['"]`)
	segmentRefPattern       = regexp.MustCompile(`(?i)segments?\s+([0-9]+)`)
)

// splitList splits a separated list, trimming entries and dropping empties.
func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// quotedPair returns the first two distinct quoted substrings of text.
func quotedPair(text string) (first, second string) {
	for _, m := range quotedPattern.FindAllStringSubmatch(text, -1) {
		q := m[1]
		switch {
		case first == "":
			first = q
		case q != first && second == "":
			return first, q
		}
	}
	return first, second
}
