// Package report renders query results for the non-interactive CLI using
// lipgloss: a fixed ANSI palette, Foreground/Bold/Faint styles, and no
// layout engine beyond simple concatenation.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbrunner/vtd/internal/node"
	"github.com/tbrunner/vtd/internal/query"
	"github.com/tbrunner/vtd/internal/recurrence"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	lateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	readyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stubStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
)

func stateStyle(s recurrence.State) lipgloss.Style {
	switch s {
	case recurrence.StateLate:
		return lateStyle
	case recurrence.StateDue:
		return dueStyle
	case recurrence.StateNew:
		return newStyle
	default:
		return readyStyle
	}
}

// Actions renders a titled list of actions, one per line, coloring each by
// its DateState and appending its effective contexts and source file.
func Actions(title string, actions []*node.Node, now time.Time) string {
	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render(title))
	if len(actions) == 0 {
		fmt.Fprintln(&b, "  (none)")
		return b.String()
	}
	for _, n := range actions {
		if n.IsStub {
			fmt.Fprintln(&b, "  "+stubStyle.Render(n.Text)+" ("+n.Parent.Text+")")
			continue
		}
		state := query.DateState(n, now)
		line := stateStyle(state).Render(n.Text)
		if ctxs := contextList(n.EffectiveContexts()); ctxs != "" {
			line += " " + contextStyle.Render(ctxs)
		}
		line += " [" + n.EffectiveFileName() + "]"
		fmt.Fprintln(&b, "  "+line)
	}
	return b.String()
}

func contextList(contexts map[string]bool) string {
	if len(contexts) == 0 {
		return ""
	}
	var tags []string
	for c := range contexts {
		tags = append(tags, "@"+c)
	}
	sort.Strings(tags)
	return strings.Join(tags, " ")
}

// Contexts renders ContextList's (context, count) pairs.
func Contexts(counts []query.ContextCount) string {
	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render("Contexts"))
	if len(counts) == 0 {
		fmt.Fprintln(&b, "  (none)")
		return b.String()
	}
	for _, c := range counts {
		fmt.Fprintf(&b, "  %s %d\n", contextStyle.Render("@"+c.Context), c.Count)
	}
	return b.String()
}
