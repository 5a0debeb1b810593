// Package lexer recognizes the metadata tokens embedded in outline text
// (due/visible dates, contexts, priority, completion markers, ids,
// blockers, LASTDONE stamps, EVERY recurrence specs, and the NextAction
// @t: estimate) independently of which node variant owns the text.
//
// Each token pattern is anchored so it begins at the start of the line or
// after whitespace. Go's regexp package (RE2) has no lookaround, so instead
// of a zero-width end assertion, patterns match only the token body and a
// trailing-boundary check is done by inspecting the text that follows the
// match: it must be zero or more of ".!?)\";:" followed by whitespace or
// end of string. A token whose boundary check fails is treated as no match
// at all, so it never gets parsed mid-word.
package lexer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ContextToken is one @context/@@context/@!context occurrence.
type ContextToken struct {
	Name     string
	Cancel   bool
	DoubleAt bool
}

// RecurrenceSpec is the parsed payload of an EVERY token.
type RecurrenceSpec struct {
	Unit           string // "day", "week", or "month"
	Min            int
	Max            int
	UnitBoundary   string // optional "due" boundary spec
	SubunitVisible string // optional "visible" boundary spec
}

// Effects accumulates everything a single AbsorbText call discovers in a
// line of text. It is built up purely (no node mutation) so the caller can
// discard it atomically on failure.
type Effects struct {
	DueDate      *time.Time
	ReadyDate    *time.Time
	VisibleDate  *time.Time
	Contexts     []ContextToken
	Priority     *int
	Done         bool
	DoneAt       *time.Time
	Ids          []string
	Blockers     []string
	LastDone     *time.Time
	Recurrence   *RecurrenceSpec
	Minutes      *int
}

var (
	boundaryRe = regexp.MustCompile(`^[.!?)";:]*(?:\s|$)`)

	dueDateRe = regexp.MustCompile(
		`(?:^|\s)<(\d{4}-\d{2}-\d{2})(?: (\d{2}:\d{2}))?(?:\((\d+)\))?`)
	visDateRe = regexp.MustCompile(
		`(?:^|\s)>(\d{4}-\d{2}-\d{2})(?: (\d{2}:\d{2}))?`)
	contextRe = regexp.MustCompile(
		`(?:^|\s)(@{1,2})(!?)([A-Za-z0-9_]+)`)
	priorityRe = regexp.MustCompile(
		`(?:^|\s)@p:([0-4])`)
	doneRe = regexp.MustCompile(
		`(?i)(?:^|\s)\((?:DONE|WONTDO)(?: (\d{4}-\d{2}-\d{2})(?: (\d{2}:\d{2}))?)?\)`)
	idRe = regexp.MustCompile(
		`(?:^|\s)#(\w+)`)
	afterRe = regexp.MustCompile(
		`(?i)(?:^|\s)@after:(\w+)`)
	lastDoneRe = regexp.MustCompile(
		`(?i)(?:^|\s)\(LASTDONE (\d{4}-\d{2}-\d{2}) (\d{2}:\d{2})\)`)
	everyRe = regexp.MustCompile(
		`(?i)(?:^|\s)EVERY(?:\s+(\d+)-)?(?:\s*(\d+))?\s+(day|week|month)s?(?:\s*\[([^\]]*)\])?`)
	minutesRe = regexp.MustCompile(
		`(?:^|\s)@t:(\d+)`)
)

// scan walks text looking for non-overlapping matches of re. For each
// candidate match it verifies the trailing boundary, then calls apply with
// the submatch groups (group 0 excluded). apply returns the replacement
// text and whether the token was accepted; on rejection the original
// matched text is kept verbatim, exactly reproducing an unparsable token's
// "stay in place" behavior.
func scan(text string, re *regexp.Regexp, apply func(groups []string) (replacement string, ok bool)) string {
	var out strings.Builder
	last := 0
	for last <= len(text) {
		loc := re.FindStringSubmatchIndex(text[last:])
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += last
			}
		}
		start, end := loc[0], loc[1]

		if !boundaryRe.MatchString(text[end:]) {
			// Not a real token occurrence (e.g. embedded in a larger
			// word); resume scanning one rune further in.
			out.WriteString(text[last : start+1])
			last = start + 1
			continue
		}

		groups := make([]string, len(loc)/2-1)
		for i := 1; i < len(loc)/2; i++ {
			lo, hi := loc[2*i], loc[2*i+1]
			if lo >= 0 {
				groups[i-1] = text[lo:hi]
			}
		}

		replacement, ok := apply(groups)
		out.WriteString(text[last:start])
		if ok {
			out.WriteString(replacement)
		} else {
			out.WriteString(text[start:end])
		}
		last = end
	}
	out.WriteString(text[last:])
	return out.String()
}

func parseDateTime(dateStr, timeStr string, endOfDay bool) (time.Time, bool) {
	if timeStr != "" {
		t, err := time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, true
}

// Apply runs every token pattern over text in a fixed order, returning the
// residual display text and the accumulated effects. Failed token parses
// leave their source substring untouched in the residual text and
// contribute nothing to Effects.
func Apply(text string, nextAction bool) (residual string, eff Effects) {
	text = scan(text, dueDateRe, func(g []string) (string, bool) {
		due, ok := parseDateTime(g[0], g[1], true)
		if !ok {
			return "", false
		}
		days := 1
		if g[2] != "" {
			if n, err := strconv.Atoi(g[2]); err == nil {
				days = n
			}
		}
		ready := due.Add(-time.Duration(days) * 24 * time.Hour)
		eff.DueDate = &due
		eff.ReadyDate = &ready
		return "", true
	})

	text = scan(text, visDateRe, func(g []string) (string, bool) {
		vis, ok := parseDateTime(g[0], g[1], false)
		if !ok {
			return "", false
		}
		eff.VisibleDate = &vis
		return "", true
	})

	text = scan(text, contextRe, func(g []string) (string, bool) {
		ct := ContextToken{
			DoubleAt: g[0] == "@@",
			Cancel:   g[1] == "!",
			Name:     strings.ToLower(g[2]),
		}
		eff.Contexts = append(eff.Contexts, ct)
		if ct.DoubleAt {
			return " " + g[2], true
		}
		return "", true
	})

	text = scan(text, priorityRe, func(g []string) (string, bool) {
		n, err := strconv.Atoi(g[0])
		if err != nil {
			return "", false
		}
		eff.Priority = &n
		return "", true
	})

	text = scan(text, doneRe, func(g []string) (string, bool) {
		eff.Done = true
		if g[0] != "" {
			if at, ok := parseDateTime(g[0], g[1], false); ok {
				eff.DoneAt = &at
			}
		}
		return "", true
	})

	text = scan(text, idRe, func(g []string) (string, bool) {
		eff.Ids = append(eff.Ids, g[0])
		return "", true
	})

	text = scan(text, afterRe, func(g []string) (string, bool) {
		eff.Blockers = append(eff.Blockers, g[0])
		return "", true
	})

	text = scan(text, lastDoneRe, func(g []string) (string, bool) {
		ld, ok := parseDateTime(g[0], g[1], false)
		if !ok {
			return "", false
		}
		eff.LastDone = &ld
		return "", true
	})

	text = scan(text, everyRe, func(g []string) (string, bool) {
		spec := &RecurrenceSpec{Unit: g[2]}
		minStr, maxStr := g[0], g[1]
		switch {
		case minStr == "" && maxStr == "":
			spec.Min, spec.Max = 1, 1
		case minStr == "":
			n, err := strconv.Atoi(maxStr)
			if err != nil {
				return "", false
			}
			spec.Min, spec.Max = n, n
		default:
			minN, err1 := strconv.Atoi(minStr)
			maxN, err2 := strconv.Atoi(maxStr)
			if err1 != nil || err2 != nil || minN > maxN {
				return "", false
			}
			spec.Min, spec.Max = minN, maxN
		}
		if g[3] != "" {
			parts := strings.SplitN(g[3], " - ", 2)
			if len(parts) == 2 {
				spec.SubunitVisible = strings.TrimSpace(parts[0])
				spec.UnitBoundary = strings.TrimSpace(parts[1])
			} else {
				spec.UnitBoundary = strings.TrimSpace(parts[0])
			}
		}
		eff.Recurrence = spec
		return "", true
	})

	if nextAction {
		text = scan(text, minutesRe, func(g []string) (string, bool) {
			n, err := strconv.Atoi(g[0])
			if err != nil {
				return "", false
			}
			eff.Minutes = &n
			return "", true
		})
	}

	residual = text
	return residual, eff
}
