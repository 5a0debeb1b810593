package node

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/tbrunner/vtd/internal/lexer"
)

// indentOf counts raw's leading space characters.
func indentOf(raw string) int {
	n := 0
	for _, r := range raw {
		if r != ' ' {
			break
		}
		n++
	}
	return n
}

// nearestDoable walks n and its ancestors, returning the first Doable node
// found (n itself, if it qualifies). An EVERY token always targets the
// nearest doable ancestor of the node whose text carries it.
func nearestDoable(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.IsDoable() {
			return cur
		}
	}
	return nil
}

// commitEffects applies a lexer.Effects value onto n, following the one
// documented redirect (EVERY targets the nearest doable ancestor, not
// necessarily n itself).
func commitEffects(n *Node, eff lexer.Effects) {
	if eff.DueDate != nil {
		n.DueDate = eff.DueDate
	}
	if eff.ReadyDate != nil {
		n.ReadyDate = eff.ReadyDate
	}
	if eff.VisibleDate != nil {
		n.VisibleDate = eff.VisibleDate
	}
	for _, ct := range eff.Contexts {
		n.addContext(ct.Name, ct.Cancel)
	}
	if eff.Priority != nil {
		n.Priority = eff.Priority
	}
	if eff.Done {
		n.Done = true
	}
	if len(eff.Ids) > 0 {
		n.Ids = append(n.Ids, eff.Ids...)
	}
	if len(eff.Blockers) > 0 {
		n.Blockers = append(n.Blockers, eff.Blockers...)
	}
	if eff.LastDone != nil {
		n.LastDone = eff.LastDone
	}
	if eff.Recurrence != nil {
		if target := nearestDoable(n); target != nil {
			target.Recurring = true
			target.RecurUnit = eff.Recurrence.Unit
			target.RecurMin = eff.Recurrence.Min
			target.RecurMax = eff.Recurrence.Max
			target.RecurUnitBoundary = eff.Recurrence.UnitBoundary
			target.RecurSubunitVisible = eff.Recurrence.SubunitVisible
		}
	}
	if eff.Minutes != nil && n.Kind == KindNextAction {
		n.Minutes = eff.Minutes
	}
}

// AbsorbText either absorbs raw as continuation text of n (lexed and
// merged in, raw appended to RawText) or returns false with n left
// bit-identical to its pre-call state. The File node never absorbs. A node with
// no RawText yet unconditionally absorbs its first line (the line that
// created it); later lines are absorbed only if blank or indented at least
// Indent+2.
func AbsorbText(n *Node, raw string) bool {
	if n.Kind == KindFile {
		return false
	}
	first := len(n.RawText) == 0
	if !first {
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" && indentOf(raw) < n.Indent+2 {
			return false
		}
	}

	content := strings.TrimSpace(raw)
	if first {
		// The classifier already stripped the leading sigil into n.Text;
		// that is the substance to run through the lexer.
		content = n.Text
	}
	residual, eff := lexer.Apply(content, n.Kind == KindNextAction)

	commitEffects(n, eff)
	if first {
		n.Text = residual
	} else if residual != "" {
		if n.Text == "" {
			n.Text = residual
		} else {
			n.Text = n.Text + "\n" + residual
		}
	}
	n.RawText = append(n.RawText, raw)
	return true
}

// attach makes child a child of parent, assigning a synthetic unique id to
// a fresh Doable child, wiring ordered-project positional blocking, and
// propagating a recurring parent project's recurrence parameters.
func attach(parent, child *Node) {
	child.Parent = parent
	parent.Children = append(parent.Children, child)

	if child.IsDoable() {
		child.Ids = []string{uuid.New().String()}
	}

	if parent.Kind == KindProject && parent.Ordered && child.IsDoable() {
		for i := len(parent.Children) - 2; i >= 0; i-- {
			sibling := parent.Children[i]
			if sibling.IsDoable() && !sibling.Done {
				child.Blockers = append(child.Blockers, sibling.Ids[0])
				break
			}
		}
	}

	if parent.Kind == KindProject && parent.Recurring && child.IsDoable() {
		child.Recurring = true
		child.RecurUnit = parent.RecurUnit
		child.RecurMin = parent.RecurMin
		child.RecurMax = parent.RecurMax
		child.RecurUnitBoundary = parent.RecurUnitBoundary
		child.RecurSubunitVisible = parent.RecurSubunitVisible
	}
}

// findParent walks up from cursor via the parent chain, returning the
// first ancestor A for which A.CanContain(n) holds.
func findParent(cursor, n *Node) (*Node, bool) {
	for a := cursor; a != nil; a = a.Parent {
		if a.CanContain(n) {
			return a, true
		}
	}
	return nil, false
}

// BuildTree parses lines (1-indexed line numbers implied by position) into
// a fresh tree rooted at a File node.
func BuildTree(fileName string, lines []string) *Node {
	root := NewFile(fileName)
	previous := root

	for i, raw := range lines {
		lineNum := i + 1
		if n, ok := ClassifyLine(raw); ok {
			n.LineInFile = lineNum
			parent, found := findParent(previous, n)
			if !found {
				root.BadLines = append(root.BadLines, BadLine{LineNum: lineNum, Raw: raw})
				continue
			}
			attach(parent, n)
			AbsorbText(n, raw)
			previous = n
			continue
		}
		if !AbsorbText(previous, raw) {
			root.BadLines = append(root.BadLines, BadLine{LineNum: lineNum, Raw: raw})
		}
	}

	return root
}

// LoadFile reads pathname and parses it into a fresh tree. An I/O failure
// yields a childless File node with the condition recorded in BadLines, so
// the next Refresh retries.
func LoadFile(pathname string) *Node {
	f, err := os.Open(pathname)
	if err != nil {
		root := NewFile(pathname)
		root.BadLines = append(root.BadLines, BadLine{LineNum: 0, Raw: fmt.Sprintf("open %s: %v", pathname, err)})
		return root
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return BuildTree(pathname, lines)
}
