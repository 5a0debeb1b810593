// Package patch generates unified-diff snippets that advance a node's
// completion/recurrence state without mutating the in-memory tree; the
// engine only ever observes such a change through the next Refresh.
package patch

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/tbrunner/vtd/internal/node"
)

const dateTimeLayout = "2006-01-02 15:04"

var lastDoneRe = regexp.MustCompile(`(?i)\(LASTDONE \d{4}-\d{2}-\d{2} \d{2}:\d{2}\)`)

// resolveTarget implements the NeedsNextActionStub delegation: a stub has
// no raw_text of its own, so any patch operation on it actually targets its
// parent project.
func resolveTarget(n *node.Node) *node.Node {
	if n.IsStub {
		return n.Parent
	}
	return n
}

// unifiedHunk builds a "@@ -L,N +L,N @@" hunk from the old and new raw
// lines of a node whose first raw line sits at lineInFile. oldLines and
// newLines must be the same length: only line content changes, never the
// count.
func unifiedHunk(lineInFile int, oldLines, newLines []string) string {
	// difflib writes body lines verbatim, so each must carry its own
	// newline (the same contract as difflib.SplitLines).
	a := make([]string, len(oldLines))
	for i, l := range oldLines {
		a[i] = l + "\n"
	}
	b := make([]string, len(newLines))
	for i, l := range newLines {
		b[i] = l + "\n"
	}

	diff := difflib.UnifiedDiff{
		A:       a,
		B:       b,
		Context: len(oldLines),
		Eol:     "\n",
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// GetUnifiedDiffString only errors on an internal algorithm bug;
		// oldLines/newLines are always well-formed slices of strings.
		panic(fmt.Sprintf("patch: unexpected diff error: %v", err))
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	bodyStart := 0
	for i, l := range lines {
		if strings.HasPrefix(l, "@@") {
			bodyStart = i + 1
			break
		}
	}
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", lineInFile, len(oldLines), lineInFile, len(newLines))
	return strings.Join(append([]string{header}, lines[bodyStart:]...), "\n") + "\n"
}

// MarkDONE returns the empty string if n (or its stub's parent) is already
// done, else a one-line hunk appending " (DONE YYYY-MM-DD HH:MM)" to the
// first raw line.
func MarkDONE(n *node.Node, now time.Time) string {
	target := resolveTarget(n)
	if target.Done || len(target.RawText) == 0 {
		return ""
	}

	oldFirst := target.RawText[0]
	newFirst := oldFirst + fmt.Sprintf(" (DONE %s)", now.Format(dateTimeLayout))
	return unifiedHunk(target.LineInFile, []string{oldFirst}, []string{newFirst})
}

// UpdateLASTDONE returns the empty string if n is not recurring or is
// done; otherwise a hunk spanning all raw lines that rewrites any
// existing "(LASTDONE …)" stamp to now, or, if the node has never been
// done (DateState new, i.e. last_done is nil), appends a fresh one to the
// first line.
func UpdateLASTDONE(n *node.Node, now time.Time) string {
	target := resolveTarget(n)
	if !target.Recurring || target.Done || len(target.RawText) == 0 {
		return ""
	}

	stamp := fmt.Sprintf("(LASTDONE %s)", now.Format(dateTimeLayout))
	newLines := make([]string, len(target.RawText))
	copy(newLines, target.RawText)

	if target.LastDone == nil {
		newLines[0] = newLines[0] + " " + stamp
	} else {
		replaced := false
		for i, line := range newLines {
			if lastDoneRe.MatchString(line) {
				newLines[i] = lastDoneRe.ReplaceAllString(line, stamp)
				replaced = true
			}
		}
		if !replaced {
			newLines[0] = newLines[0] + " " + stamp
		}
	}

	return unifiedHunk(target.LineInFile, target.RawText, newLines)
}

// DefaultCheckoff emits MarkDONE for non-recurring doables and
// UpdateLASTDONE for recurring ones, resolving a stub to its parent first.
func DefaultCheckoff(n *node.Node, now time.Time) string {
	target := resolveTarget(n)
	if target.Recurring {
		return UpdateLASTDONE(target, now)
	}
	return MarkDONE(target, now)
}
