// Package query implements the Trusted System read side: a registry of
// parsed outline files, the pre-order tree walk, the blocking/context/date
// predicates, and the canned query lists.
package query

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tbrunner/vtd/internal/logging"
	"github.com/tbrunner/vtd/internal/node"
	"github.com/tbrunner/vtd/internal/recurrence"
)

// ContextFilter is a lowercased include/exclude set of context names.
type ContextFilter struct {
	Include map[string]bool
	Exclude map[string]bool
}

// NewContextFilter builds a ContextFilter from (possibly mixed-case)
// include/exclude slices, lowercasing every entry.
func NewContextFilter(include, exclude []string) ContextFilter {
	f := ContextFilter{Include: map[string]bool{}, Exclude: map[string]bool{}}
	for _, c := range include {
		f.Include[lower(c)] = true
	}
	for _, c := range exclude {
		f.Exclude[lower(c)] = true
	}
	return f
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}

// OkContexts reports whether a node with the given effective contexts
// passes the filter: false if any of contexts is excluded, else true if
// the include set is empty or contains any of contexts.
func (f ContextFilter) OkContexts(contexts map[string]bool) bool {
	for c := range contexts {
		if f.Exclude[c] {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for c := range contexts {
		if f.Include[c] {
			return true
		}
	}
	return false
}

// Engine holds the parsed forest and the default context filter queries are
// evaluated against.
type Engine struct {
	Files         map[string]*node.Node
	Filter        ContextFilter
	LastRefreshed time.Time
	Logger        *zap.SugaredLogger
}

// NewEngine returns an empty Engine using filter as its default context
// filter. Logger defaults to a no-op sink; callers wanting operational
// visibility into parse failures should call SetLogger.
func NewEngine(filter ContextFilter) *Engine {
	return &Engine{Files: map[string]*node.Node{}, Filter: filter, Logger: logging.Noop()}
}

// SetLogger installs log as the registry's parse-failure sink: bad lines
// and unreadable files are surfaced at debug level alongside their
// permanent record in the owning File's BadLines.
func (e *Engine) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = logging.Noop()
	}
	e.Logger = log
}

// logBadLines reports every entry in root.BadLines through e.Logger.
func (e *Engine) logBadLines(pathname string, root *node.Node) {
	for _, bad := range root.BadLines {
		e.Logger.Debugw("unparsed line", "file", pathname, "line", bad.LineNum, "text", bad.Raw)
	}
}

// Pruner decides whether Walk should skip n's subtree entirely.
type Pruner func(n *node.Node) bool

// DefaultPruner skips subtrees rooted at a doable that is done.
func DefaultPruner(n *node.Node) bool {
	return n.IsDoable() && n.Done
}

// Walk performs a pre-order traversal of root, calling visit on every node
// not pruned by pruner (pruner, if it returns true for n, skips n and all of
// n's descendants). A nil pruner means no pruning.
func Walk(root *node.Node, pruner Pruner, visit func(*node.Node)) {
	if root == nil {
		return
	}
	if pruner != nil && pruner(root) {
		return
	}
	visit(root)
	for _, c := range root.Children {
		Walk(c, pruner, visit)
	}
}

// walkAll runs Walk over every registered file.
func (e *Engine) walkAll(pruner Pruner, visit func(*node.Node)) {
	for _, root := range e.Files {
		Walk(root, pruner, visit)
	}
}

// idIndex maps every doable's first id (and any #id aliases) to the node
// that owns it, across the whole registry.
func (e *Engine) idIndex() map[string]*node.Node {
	idx := map[string]*node.Node{}
	e.walkAll(nil, func(n *node.Node) {
		for _, id := range n.Ids {
			idx[id] = n
		}
	})
	return idx
}

// Blocked reports whether n or any ancestor names a blocker id that
// resolves to an existing, not-done node anywhere in the registry.
func (e *Engine) Blocked(n *node.Node) bool {
	idx := e.idIndex()
	for _, id := range n.EffectiveBlockers() {
		if target, ok := idx[id]; ok && !target.Done {
			return true
		}
	}
	return false
}

// dateState computes a doable's DateState: recurring nodes derive their own
// (visible, ready, due) from their recurrence params and last_done,
// independent of inheritance; non-recurring nodes use the inherited
// effective dates.
func dateState(n *node.Node, now time.Time) recurrence.State {
	if n.Recurring {
		p := recurrence.Params{
			Unit:           n.RecurUnit,
			Min:            n.RecurMin,
			Max:            n.RecurMax,
			UnitBoundary:   n.RecurUnitBoundary,
			SubunitVisible: n.RecurSubunitVisible,
		}
		return recurrence.EvaluateRecurring(p, n.LastDone, now)
	}
	return recurrence.Evaluate(n.EffectiveVisibleDate(), n.EffectiveReadyDate(), n.EffectiveDueDate(), now)
}

// DateState exposes a node's computed DateState (recurring nodes derive it
// from their own recurrence params; others use their inherited effective
// dates), for callers like internal/report that need to render it.
func DateState(n *node.Node, now time.Time) recurrence.State {
	return dateState(n, now)
}

// visibleAction reports whether n is a NextAction that is visible at now,
// not blocked, and not done.
func (e *Engine) visibleAction(n *node.Node, now time.Time) bool {
	return n.Kind == node.KindNextAction &&
		dateState(n, now) != recurrence.StateInvisible &&
		!n.Done &&
		!e.Blocked(n)
}

// stubFor synthesizes the NeedsNextActionStub for project: a NextAction-
// shaped node that delegates Patch/Source to its parent.
func stubFor(project *node.Node) *node.Node {
	return &node.Node{
		Kind:       node.KindNextAction,
		Text:       "{MISSING Next Action}",
		Parent:     project,
		Indent:     project.Indent,
		LineInFile: project.LineInFile,
		IsStub:     true,
	}
}

// ProjectsWithoutNextActions returns non-done Projects with no direct
// child that is a non-done NextAction or a non-done child Project.
func (e *Engine) ProjectsWithoutNextActions() []*node.Node {
	var out []*node.Node
	e.walkAll(nil, func(n *node.Node) {
		if n.Kind != node.KindProject || n.Done {
			return
		}
		for _, c := range n.Children {
			if c.Done {
				continue
			}
			if c.Kind == node.KindNextAction || c.Kind == node.KindProject {
				return
			}
		}
		out = append(out, n)
	})
	return out
}

// NextActions returns visible, non-recurring, non-waiting actions passing
// the context filter, plus a stub for every project lacking a next action.
func (e *Engine) NextActions(now time.Time) []*node.Node {
	var out []*node.Node
	e.walkAll(DefaultPruner, func(n *node.Node) {
		if !e.visibleAction(n, now) {
			return
		}
		if n.Recurring || n.EffectiveWaiting() {
			return
		}
		if !e.Filter.OkContexts(n.EffectiveContexts()) {
			return
		}
		out = append(out, n)
	})
	for _, p := range e.ProjectsWithoutNextActions() {
		out = append(out, stubFor(p))
	}
	return out
}

// RecurringActions returns visible recurring actions outside the inbox,
// passing the context filter.
func (e *Engine) RecurringActions(now time.Time) []*node.Node {
	var out []*node.Node
	e.walkAll(DefaultPruner, func(n *node.Node) {
		if !e.visibleAction(n, now) {
			return
		}
		if !n.Recurring || n.EffectiveInbox() {
			return
		}
		if !e.Filter.OkContexts(n.EffectiveContexts()) {
			return
		}
		out = append(out, n)
	})
	return out
}

// Inboxes returns visible actions tagged inbox, passing the context
// filter.
func (e *Engine) Inboxes(now time.Time) []*node.Node {
	var out []*node.Node
	e.walkAll(DefaultPruner, func(n *node.Node) {
		if !e.visibleAction(n, now) || !n.EffectiveInbox() {
			return
		}
		if !e.Filter.OkContexts(n.EffectiveContexts()) {
			return
		}
		out = append(out, n)
	})
	return out
}

// Waiting returns visible actions waiting on someone else. It is
// deliberately not context-filtered; it is its own list.
func (e *Engine) Waiting(now time.Time) []*node.Node {
	var out []*node.Node
	e.walkAll(DefaultPruner, func(n *node.Node) {
		if e.visibleAction(n, now) && n.EffectiveWaiting() {
			out = append(out, n)
		}
	})
	return out
}

// AllActions returns every visible, non-waiting action passing the context
// filter, plus the missing-next-action stubs.
func (e *Engine) AllActions(now time.Time) []*node.Node {
	var out []*node.Node
	e.walkAll(DefaultPruner, func(n *node.Node) {
		if !e.visibleAction(n, now) || n.EffectiveWaiting() {
			return
		}
		if !e.Filter.OkContexts(n.EffectiveContexts()) {
			return
		}
		out = append(out, n)
	})
	for _, p := range e.ProjectsWithoutNextActions() {
		out = append(out, stubFor(p))
	}
	return out
}

// NextActionsWithoutContexts returns every NextAction whose effective
// context set is empty. No date/blocked/done filtering, and no context
// filter; the whole point is to surface NextActions that would otherwise
// never match any filter.
func (e *Engine) NextActionsWithoutContexts() []*node.Node {
	var out []*node.Node
	e.walkAll(nil, func(n *node.Node) {
		if n.Kind == node.KindNextAction && len(n.EffectiveContexts()) == 0 {
			out = append(out, n)
		}
	})
	return out
}

// ContextCount is one row of ContextList's result.
type ContextCount struct {
	Context string
	Count   int
}

// ContextList counts the contexts of visible, non-waiting NextActions
// (recurring ones count too; this list is not itself context-filtered,
// since it exists to help choose a filter).
func (e *Engine) ContextList(now time.Time) []ContextCount {
	counts := map[string]int{}
	e.walkAll(DefaultPruner, func(n *node.Node) {
		if !e.visibleAction(n, now) || n.EffectiveWaiting() {
			return
		}
		for c := range n.EffectiveContexts() {
			counts[c]++
		}
	})
	out := make([]ContextCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, ContextCount{Context: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Context < out[j].Context
	})
	return out
}
