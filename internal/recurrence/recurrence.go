// Package recurrence derives (visible, ready, due) dates from a recurring
// node's EVERY parameters and last-done timestamp, and evaluates the
// five-valued DateState for any node.
package recurrence

import (
	"time"

	"github.com/tbrunner/vtd/internal/dateutil"
)

// Params is the recurrence payload of a doable node, mirroring
// node.Node's Recur* fields so this package stays independent of the node
// package's internals.
type Params struct {
	Unit           string // "day", "week", or "month"
	Min            int
	Max            int
	UnitBoundary   string
	SubunitVisible string
}

// boundaryFunc finds the latest instant strictly before an anchor
// matching a unit-specific boundary spec. advanceFunc advances an instant
// by n units.
type boundaryFunc func(t time.Time, spec string, due bool) time.Time
type advanceFunc func(t time.Time, n int, fromStart bool) time.Time

func boundaryAndAdvance(unit string) (boundaryFunc, advanceFunc) {
	switch unit {
	case "week":
		return dateutil.PreviousWeekDay, func(t time.Time, n int, _ bool) time.Time {
			return dateutil.AdvanceByWeeks(t, n)
		}
	case "month":
		return dateutil.PreviousMonthDay, dateutil.AdvanceByMonths
	default: // "day"
		return dateutil.PreviousTime, func(t time.Time, n int, _ bool) time.Time {
			return dateutil.AdvanceByDays(t, n)
		}
	}
}

// firstTokenFromStart reports whether spec's leading signed integer
// parses to >= 1 (from_start); a spec that doesn't start with a parseable
// integer, or month-day specs with day n<=0, means "count from month-end".
func firstTokenFromStart(spec string) bool {
	n, ok := dateutil.ParseMonthDaySpec(spec)
	return ok && n >= 1
}

// Dates is the computed (visible, ready, due) triple for a recurring node.
type Dates struct {
	Visible time.Time
	Ready   time.Time
	Due     time.Time
}

// Derive computes the (visible, ready, due) triple for a recurring node
// with a known last_done. The base is the latest due boundary strictly
// before last_done; if the task was completed after its due boundary but before
// the next visible boundary, the base is rebased one unit earlier so an
// overdue completion doesn't count as fulfilling the next interval.
func Derive(p Params, lastDone time.Time) Dates {
	boundary, advance := boundaryAndAdvance(p.Unit)

	dueFromStart := true
	visFromStart := true
	if p.Unit == "month" {
		dueFromStart = firstTokenFromStart(p.UnitBoundary)
		visFromStart = firstTokenFromStart(p.SubunitVisible)
	}

	base := boundary(lastDone, p.UnitBoundary, true)

	if p.SubunitVisible != "" {
		prevVis := boundary(lastDone, p.SubunitVisible, false)
		if base.After(prevVis) {
			base = advance(base, -1, dueFromStart)
		}
	}

	visible := advance(base, p.Min, visFromStart)
	if p.SubunitVisible != "" {
		visible = boundary(advance(visible, 1, visFromStart), p.SubunitVisible, false)
	}

	ready := advance(base, p.Max, dueFromStart)
	due := advance(base, p.Max+1, dueFromStart)

	return Dates{Visible: visible, Ready: ready, Due: due}
}
