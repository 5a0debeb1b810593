// Package node implements the tagged-sum outline node model: the five
// variants (File, Section, Project, NextAction, Comment), the nesting
// invariant that decides what a node may contain, and the per-node
// inheritance resolvers built on top of it.
package node

import "time"

// Kind identifies a node variant. Ordering matters: File < Section <
// Project < NextAction < Comment is the nesting-level comparison used by
// CanContain.
type Kind int

const (
	KindFile Kind = iota
	KindSection
	KindProject
	KindNextAction
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindSection:
		return "Section"
	case KindProject:
		return "Project"
	case KindNextAction:
		return "NextAction"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// BadLine records a raw line the tree builder could not attach anywhere.
type BadLine struct {
	LineNum int
	Raw     string
}

// Node is the single tagged-sum record backing every variant. Fields that
// only apply to some variants are documented by the section they sit in;
// callers should gate access to them on Kind (or the IsDoable/IsIndented
// capability flags), not on a type switch.
type Node struct {
	Kind Kind

	// Common to every variant.
	Text             string
	RawText          []string
	Children         []*Node
	Parent           *Node
	Contexts         map[string]bool
	CanceledContexts map[string]bool
	Priority         *int
	DueDate          *time.Time
	ReadyDate        *time.Time
	VisibleDate      *time.Time
	LineInFile       int
	Inbox            bool
	Waiting          bool

	// Indent is the leading-whitespace count of the line that introduced
	// this node. It is meaningful for every variant except File (continuation
	// absorption and, for Project/Comment, same-kind nesting both depend on
	// it); Section nesting uses HeaderDepth instead.
	Indent int

	// Doable-only (Project, NextAction).
	Done                bool
	Recurring           bool
	LastDone            *time.Time
	Ids                 []string
	Blockers            []string
	RecurUnit           string // "day", "week", or "month"
	RecurMin            int
	RecurMax            int
	RecurUnitBoundary   string
	RecurSubunitVisible string

	// NextAction-only.
	Minutes *int

	// Section-only.
	HeaderDepth int

	// Project-only.
	Ordered bool

	// File-only.
	FileName string
	BadLines []BadLine

	// IsStub marks a synthetic NeedsNextActionStub node: it never appears
	// in any tree's Children, and Patch and Source operations on it
	// delegate to Parent.
	IsStub bool
}

// Level is the nesting-level ordinal: File < Section < Project <
// NextAction < Comment.
func (n *Node) Level() int { return int(n.Kind) }

// IsDoable reports whether n can be marked done (Project or NextAction).
func (n *Node) IsDoable() bool {
	return n.Kind == KindProject || n.Kind == KindNextAction
}

// IsIndented reports whether n's nesting and continuation rules are
// governed by Indent rather than HeaderDepth.
func (n *Node) IsIndented() bool {
	return n.Kind == KindProject || n.Kind == KindNextAction || n.Kind == KindComment
}

// CanContain reports whether n may be the parent of child:
// n.Level() < child.Level(), or they share a level and that level permits
// same-kind nesting (Section by strictly greater header depth, Project and
// Comment by strictly greater indent; File and NextAction never nest with
// themselves).
func (n *Node) CanContain(child *Node) bool {
	if n.Level() < child.Level() {
		return true
	}
	if n.Level() != child.Level() {
		return false
	}
	switch n.Kind {
	case KindSection:
		return n.HeaderDepth < child.HeaderDepth
	case KindProject:
		return n.Indent < child.Indent
	case KindComment:
		return n.Indent < child.Indent
	default:
		return false
	}
}

// NewFile creates the root node of a freshly parsed outline file.
func NewFile(fileName string) *Node {
	return &Node{
		Kind:     KindFile,
		FileName: fileName,
	}
}

// addContext records a single lexer context token on n, routing reserved
// names (inbox, waiting) to their boolean flags instead of the context set.
func (n *Node) addContext(name string, cancel bool) {
	switch name {
	case "inbox":
		if !cancel {
			n.Inbox = true
		}
	case "waiting":
		if !cancel {
			n.Waiting = true
		}
	default:
		if cancel {
			if n.CanceledContexts == nil {
				n.CanceledContexts = map[string]bool{}
			}
			n.CanceledContexts[name] = true
		} else {
			if n.Contexts == nil {
				n.Contexts = map[string]bool{}
			}
			n.Contexts[name] = true
		}
	}
}
