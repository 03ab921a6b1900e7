package resolve

import (
	"github.com/alpdilgen/memoq-qa-resolver/internal/extract"
	"github.com/alpdilgen/memoq-qa-resolver/internal/oracle"
)

// Action is the operator's choice for one error.
type Action int

// Operator actions, mirroring the terminal prompt.
const (
	// ActionFix applies the oracle's suggested replacement.
	ActionFix Action = iota
	// ActionEdit applies the operator's manual replacement text.
	ActionEdit
	// ActionIgnore flags the annotation as ignored.
	ActionIgnore
	// ActionSkip leaves the error untouched and uncounted.
	ActionSkip
)

// Request is everything the operator needs to decide one error. Exactly one
// of Term/Consistency is set, matching the category.
type Request struct {
	Category    string
	UnitID      string
	Index       int
	Total       int
	SourceText  string
	TargetText  string
	Term        *extract.TermRecord
	Consistency *extract.ConsistencyRecord
	// Decision is the oracle's recommendation, shown before asking.
	Decision oracle.Decision
}

// Response is the operator's answer. ManualText is set for ActionEdit.
type Response struct {
	Action     Action
	ManualText string
}

// Asker is the pure decision boundary for interactive mode. Presentation
// (coloring, prompting, terminal vs web form) lives entirely behind it.
type Asker interface {
	Ask(req Request) (Response, error)
}
