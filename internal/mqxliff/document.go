// Package mqxliff is the tree adapter for memoQ bilingual XLIFF documents.
// It owns parsing, backup creation, serialization, and the low-level
// mutations the resolution workflow applies to translation units.
package mqxliff

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
)

// Document is a parsed MQXLIFF file, mutated in place for the lifetime of
// one run. It is not safe for concurrent use.
type Document struct {
	root *xmlquery.Node
	path string
}

// declPattern matches an XML declaration anywhere in serialized output.
var declPattern = regexp.MustCompile(`<\?xml[^>]*\?>`)

// Parse reads and parses an MQXLIFF file. A timestamped backup copy is
// written next to the original before parsing so a run can always be rolled
// back by hand.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	backup := fmt.Sprintf("%s.backup-%s", path, time.Now().Format("20060102150405"))
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return nil, &ParseError{Path: path, Cause: fmt.Errorf("creating backup: %w", err)}
	}

	return parse(bytes.NewReader(data), path)
}

// Load parses an MQXLIFF file without creating a backup. Use for read-only
// inspection such as the scan command.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	return parse(f, path)
}

// ParseReader parses MQXLIFF content from a reader. Used by tests.
func ParseReader(r io.Reader) (*Document, error) {
	return parse(r, "(reader)")
}

func parse(r io.Reader, path string) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	return &Document{root: root, path: path}, nil
}

// Path returns the file path the document was parsed from.
func (d *Document) Path() string {
	return d.path
}

// Root returns the underlying document node.
func (d *Document) Root() *xmlquery.Node {
	return d.root
}

// Units returns all trans-unit elements in document order.
func (d *Document) Units() []*Unit {
	nodes := xmlquery.Find(d.root, "//trans-unit")
	units := make([]*Unit, len(nodes))
	for i, n := range nodes {
		units[i] = &Unit{node: n}
	}
	return units
}

// Save serializes the document to path. Exactly one XML declaration is kept
// even if the in-memory tree would render duplicates.
func (d *Document) Save(path string) error {
	content := d.root.OutputXML(true)
	content = ensureSingleDeclaration(content)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &SaveError{Path: path, Cause: err}
	}
	return nil
}

// Serialize returns the document as XML with a single declaration.
func (d *Document) Serialize() string {
	return ensureSingleDeclaration(d.root.OutputXML(true))
}

// ensureSingleDeclaration drops everything before the first XML declaration
// and removes any further declarations from the output.
func ensureSingleDeclaration(content string) string {
	first := declPattern.FindStringIndex(content)
	if first == nil {
		return content
	}

	content = content[first[0]:]
	head := content[:first[1]-first[0]]
	tail := declPattern.ReplaceAllString(content[first[1]-first[0]:], "")
	return head + tail
}

// TextContent returns the concatenated character data of a node, excluding
// metadata sub-elements (mq:meta, meta).
func TextContent(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	collectText(n, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(n *xmlquery.Node, sb *strings.Builder) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			sb.WriteString(child.Data)
		case xmlquery.ElementNode:
			if strings.EqualFold(child.Data, "meta") {
				continue
			}
			collectText(child, sb)
		}
	}
}

// FindFirst returns the first descendant element with the given local name,
// in document order.
func FindFirst(n *xmlquery.Node, local string) *xmlquery.Node {
	var found *xmlquery.Node
	WalkElements(n, func(el *xmlquery.Node) bool {
		if strings.EqualFold(el.Data, local) {
			found = el
			return false
		}
		return true
	})
	return found
}

// WalkElements visits descendant elements of n in document order. The visit
// function returns false to stop the walk.
func WalkElements(n *xmlquery.Node, visit func(*xmlquery.Node) bool) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			if !visit(child) {
				return false
			}
		}
		if !WalkElements(child, visit) {
			return false
		}
	}
	return true
}
