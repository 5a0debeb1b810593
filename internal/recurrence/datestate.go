package recurrence

import "time"

// State is a node's five-valued DateState.
type State int

const (
	StateNew State = iota
	StateInvisible
	StateReady
	StateDue
	StateLate
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInvisible:
		return "invisible"
	case StateReady:
		return "ready"
	case StateDue:
		return "due"
	case StateLate:
		return "late"
	default:
		return "unknown"
	}
}

// Evaluate computes the DateState from the three effective dates (any may
// be nil) and now.
func Evaluate(visible, ready, due *time.Time, now time.Time) State {
	if visible != nil && now.Before(*visible) {
		return StateInvisible
	}
	if due == nil {
		return StateReady
	}
	if due.Before(now) {
		return StateLate
	}
	if ready != nil && ready.Before(now) {
		return StateDue
	}
	return StateReady
}

// EvaluateRecurring evaluates a recurring node: without a last_done it is
// always StateNew; with one, derive (visible, ready, due) per Derive and
// apply the same five-way switch.
func EvaluateRecurring(p Params, lastDone *time.Time, now time.Time) State {
	if lastDone == nil {
		return StateNew
	}
	d := Derive(p, *lastDone)
	return Evaluate(&d.Visible, &d.Ready, &d.Due, now)
}
