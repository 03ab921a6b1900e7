// Package annotation models QA warning markers attached to translation
// units: an open attribute bag with case-insensitive fuzzy matching, the
// one-way ignored flag, and the locator that finds annotations across the
// schema variants memoQ has used over document versions.
package annotation

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Attribute name markers meaning an annotation was already handled. The
// ignored flag is monotonic: once set it is never cleared by this tool.
var ignoredMarkers = []string{"ignore", "skip", "handled"}

// Annotation wraps a warning/error node. The same type wraps pseudo
// annotations (notes, termbase entries) discovered by auxiliary paths.
type Annotation struct {
	node *xmlquery.Node
}

// Wrap wraps a node as an Annotation.
func Wrap(n *xmlquery.Node) *Annotation {
	return &Annotation{node: n}
}

// Node returns the underlying element.
func (a *Annotation) Node() *xmlquery.Node {
	return a.node
}

// Name returns the full element name including namespace prefix.
func (a *Annotation) Name() string {
	return fullName(a.node)
}

// EachAttr calls f for every attribute with its full prefixed name.
func (a *Annotation) EachAttr(f func(name, value string)) {
	for _, attr := range a.node.Attr {
		f(attrName(attr), attr.Value)
	}
}

// AttrContaining returns the value of the first attribute whose name
// contains fragment (case-insensitive).
func (a *Annotation) AttrContaining(fragment string) (string, bool) {
	fragment = strings.ToLower(fragment)
	for _, attr := range a.node.Attr {
		if strings.Contains(strings.ToLower(attrName(attr)), fragment) {
			return attr.Value, true
		}
	}
	return "", false
}

// IsIgnored reports whether the annotation carries any ignore/skip/handled
// marker attribute.
func (a *Annotation) IsIgnored() bool {
	for _, attr := range a.node.Attr {
		name := strings.ToLower(attrName(attr))
		for _, marker := range ignoredMarkers {
			if strings.Contains(name, marker) {
				return true
			}
		}
	}
	return false
}

// Code returns the annotation's error code, taken from the first attribute
// whose name contains "code".
func (a *Annotation) Code() string {
	code, _ := a.AttrContaining("code")
	return code
}

// MatchesCode reports whether any of the code patterns appears in an
// attribute name or value (case-insensitive).
func (a *Annotation) MatchesCode(patterns []string) bool {
	for _, attr := range a.node.Attr {
		name := strings.ToLower(attrName(attr))
		value := strings.ToLower(attr.Value)
		for _, pat := range patterns {
			pat = strings.ToLower(pat)
			if strings.Contains(name, pat) || (value != "" && strings.Contains(value, pat)) {
				return true
			}
		}
	}
	return false
}

// TextMatchesCode reports whether any of the code patterns appears in the
// annotation's visible text.
func (a *Annotation) TextMatchesCode(patterns []string) bool {
	text := strings.ToLower(a.Text())
	if text == "" {
		return false
	}
	for _, pat := range patterns {
		if strings.Contains(text, strings.ToLower(pat)) {
			return true
		}
	}
	return false
}

// Text returns the annotation's visible text: direct text children first,
// falling back to the text of immediate child elements.
func (a *Annotation) Text() string {
	var sb strings.Builder
	for child := a.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			sb.WriteString(child.Data)
		}
	}
	if strings.TrimSpace(sb.String()) != "" {
		return strings.TrimSpace(sb.String())
	}

	for child := a.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		for grand := child.FirstChild; grand != nil; grand = grand.NextSibling {
			if grand.Type == xmlquery.TextNode || grand.Type == xmlquery.CharDataNode {
				sb.WriteString(grand.Data)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// MarkIgnored sets the ignored flag plus the user tag and note memoQ
// expects. Safe to call twice.
func (a *Annotation) MarkIgnored(user, note string) {
	a.node.SetAttr("mq:errorwarning-ignored", "errorwarning-ignored")
	a.node.SetAttr("mq:ignore-user", user)
	a.node.SetAttr("mq:ignore-note", note)
}

// fullName returns the element name with its namespace prefix.
func fullName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// attrName returns the attribute name with its namespace prefix.
func attrName(attr xmlquery.Attr) string {
	if attr.Name.Space != "" {
		return attr.Name.Space + ":" + attr.Name.Local
	}
	return attr.Name.Local
}
