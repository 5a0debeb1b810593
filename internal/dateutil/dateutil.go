// Package dateutil implements the date arithmetic primitives the recurrence
// engine is built on: finding the previous instant matching a time-of-day,
// weekday, or day-of-month specifier, and advancing a timestamp by a whole
// number of days, weeks, or months (anchored either at the start or the end
// of the month).
package dateutil

import (
	"strconv"
	"strings"
	"time"
)

// defaultTime returns the fallback hour/minute/second for a boundary spec that
// is missing or fails to parse: start of day for a visible boundary, end of
// day for a due boundary.
func defaultTime(due bool) (hour, min, sec int) {
	if due {
		return 23, 59, 0
	}
	return 0, 0, 0
}

// parseClock parses an "HH:MM" string. ok is false if spec is empty or
// malformed.
func parseClock(spec string) (hour, min int, ok bool) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// PreviousTime returns the latest instant strictly before t whose
// time-of-day equals spec ("HH:MM"). An empty or unparsable spec falls back
// to 00:00 (visible) or 23:59 (due).
func PreviousTime(t time.Time, spec string, due bool) time.Time {
	hour, min, sec := defaultTime(due)
	if h, m, ok := parseClock(spec); ok {
		hour, min, sec = h, m, 0
	}

	candidate := time.Date(t.Year(), t.Month(), t.Day(), hour, min, sec, 0, t.Location())
	if !candidate.Before(t) {
		candidate = candidate.AddDate(0, 0, -1)
	}
	return candidate
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// PreviousWeekDay returns the latest instant strictly before t matching
// spec, which is "<weekday>[ HH:MM]". On parse failure the whole spec falls
// back to "Sun 00:00", regardless of due.
func PreviousWeekDay(t time.Time, spec string, due bool) time.Time {
	fields := strings.Fields(spec)
	var weekday time.Weekday
	var hour, min int
	var sec int

	if len(fields) == 0 {
		weekday, hour, min, sec = time.Sunday, 0, 0, 0
	} else if wd, ok := weekdayNames[strings.ToLower(fields[0])]; ok {
		weekday = wd
		hour, min, sec = defaultTime(due)
		if len(fields) > 1 {
			if h, m, ok := parseClock(fields[1]); ok {
				hour, min, sec = h, m, 0
			}
		}
	} else {
		weekday, hour, min, sec = time.Sunday, 0, 0, 0
	}

	d := t
	for i := 0; i < 8; i++ {
		candidate := time.Date(d.Year(), d.Month(), d.Day(), hour, min, sec, 0, t.Location())
		if candidate.Weekday() == weekday && candidate.Before(t) {
			return candidate
		}
		d = d.AddDate(0, 0, -1)
	}
	// Unreachable for a valid weekday, but keep a deterministic fallback.
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, sec, 0, t.Location())
}

// monthDayInstant returns the instant for day-of-month spec n within the
// month containing anchor, at the given clock time. n>=1 counts from the
// 1st; n<=0 counts backward from the last day of the month (0 = last day,
// -1 = second-to-last, ...).
func monthDayInstant(anchor time.Time, n, hour, min, sec int) time.Time {
	year, month, _ := anchor.Date()
	if n >= 1 {
		return time.Date(year, month, n, hour, min, sec, 0, anchor.Location())
	}
	// Day 0 of the next month is the last day of this month.
	lastDay := time.Date(year, month+1, 0, hour, min, sec, 0, anchor.Location())
	return lastDay.AddDate(0, 0, n)
}

// ParseMonthDaySpec parses the leading signed integer from a month-day
// recurrence spec ("<signed-int>[ HH:MM]"). ok is false if no integer could
// be parsed.
func ParseMonthDaySpec(spec string) (n int, ok bool) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// PreviousMonthDay returns the latest instant strictly before t matching
// spec, which is "<signed-int>[ HH:MM]". Month length varies, so the search
// steps backward a whole month at a time until the candidate is strictly
// before t.
func PreviousMonthDay(t time.Time, spec string, due bool) time.Time {
	hour, min, sec := defaultTime(due)
	n, ok := ParseMonthDaySpec(spec)
	if !ok {
		n = 0
	}
	if fields := strings.Fields(spec); len(fields) > 1 {
		if h, m, ok := parseClock(fields[1]); ok {
			hour, min, sec = h, m, 0
		}
	}

	anchor := t
	candidate := monthDayInstant(anchor, n, hour, min, sec)
	for !candidate.Before(t) {
		anchor = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location()).AddDate(0, -1, 0)
		candidate = monthDayInstant(anchor, n, hour, min, sec)
	}
	return candidate
}

// AdvanceByMonths advances t by n months. When fromStart is true this is
// ordinary calendar addition. When false, the day-of-month is counted from
// the end of the month: the offset from t to the first of the next month is
// preserved across the shift, so "N days before month-end" stays stable
// across months of different lengths.
func AdvanceByMonths(t time.Time, n int, fromStart bool) time.Time {
	if fromStart {
		return t.AddDate(0, n, 0)
	}
	firstOfNextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	offset := firstOfNextMonth.Sub(t)
	advanced := firstOfNextMonth.AddDate(0, n, 0)
	return advanced.Add(-offset)
}

// AdvanceByDays advances t by n days.
func AdvanceByDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AdvanceByWeeks advances t by n weeks.
func AdvanceByWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}
