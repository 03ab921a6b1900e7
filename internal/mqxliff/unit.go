package mqxliff

import (
	"github.com/antchfx/xmlquery"
)

// Unit is a single trans-unit element.
type Unit struct {
	node *xmlquery.Node
}

// WrapUnit wraps a trans-unit node. Used by detectors that discover units by
// walking ancestors of other nodes.
func WrapUnit(n *xmlquery.Node) *Unit {
	return &Unit{node: n}
}

// Node returns the underlying element.
func (u *Unit) Node() *xmlquery.Node {
	return u.node
}

// ID returns the unit's stable identifier.
func (u *Unit) ID() string {
	return u.node.SelectAttr("id")
}

// SourceText returns the logical source text of the unit.
func (u *Unit) SourceText() string {
	return TextContent(FindFirst(u.node, "source"))
}

// TargetText returns the logical target text of the unit. Inline markup is
// flattened to its character content; metadata sub-elements are excluded.
func (u *Unit) TargetText() string {
	return TextContent(FindFirst(u.node, "target"))
}

// ReplaceTarget replaces the unit's entire target content with a single text
// node holding newText. All prior children are discarded. Returns a
// MutationError and leaves the document untouched when the unit has no
// target element.
func (u *Unit) ReplaceTarget(newText string) error {
	target := FindFirst(u.node, "target")
	if target == nil {
		return &MutationError{UnitID: u.ID(), Message: "no target element"}
	}

	for target.FirstChild != nil {
		xmlquery.RemoveFromTree(target.FirstChild)
	}
	xmlquery.AddChild(target, &xmlquery.Node{
		Type: xmlquery.TextNode,
		Data: newText,
	})
	return nil
}
