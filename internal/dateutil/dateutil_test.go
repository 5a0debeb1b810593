package dateutil

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, layout, value string) time.Time {
	t.Helper()
	tm, err := time.Parse(layout, value)
	if err != nil {
		t.Fatalf("time.Parse(%q) error: %v", value, err)
	}
	return tm
}

func TestPreviousTime(t *testing.T) {
	tests := []struct {
		name string
		now  string
		spec string
		due  bool
		want string
	}{
		{"same day before", "2013-09-01 08:30", "23:59", true, "2013-08-31 23:59"},
		{"same day after", "2013-09-04 23:00", "23:59", true, "2013-09-03 23:59"},
		{"missing spec defaults due", "2013-09-01 08:30", "", true, "2013-08-31 23:59"},
		{"missing spec defaults visible", "2013-09-01 08:30", "", false, "2013-09-01 00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := mustParse(t, "2006-01-02 15:04", tt.now)
			want := mustParse(t, "2006-01-02 15:04", tt.want)
			got := PreviousTime(now, tt.spec, tt.due)
			if !got.Equal(want) {
				t.Errorf("PreviousTime(%s) = %v, want %v", tt.now, got, want)
			}
		})
	}
}

func TestPreviousWeekDay(t *testing.T) {
	now := mustParse(t, "2006-01-02 15:04", "2013-09-04 23:00")
	got := PreviousWeekDay(now, "Sun 00:00", false)
	want := mustParse(t, "2006-01-02 15:04", "2013-09-01 00:00")
	if !got.Equal(want) {
		t.Errorf("PreviousWeekDay() = %v, want %v", got, want)
	}
}

func TestPreviousWeekDayFallback(t *testing.T) {
	now := mustParse(t, "2006-01-02 15:04", "2013-09-04 23:00")
	got := PreviousWeekDay(now, "not-a-day", true)
	want := mustParse(t, "2006-01-02 15:04", "2013-09-01 00:00")
	if !got.Equal(want) {
		t.Errorf("PreviousWeekDay() fallback = %v, want %v", got, want)
	}
}

func TestPreviousMonthDay(t *testing.T) {
	tests := []struct {
		name string
		now  string
		spec string
		due  bool
		want string
	}{
		{"positive day", "2013-09-12 22:00", "10", true, "2013-09-10 23:59"},
		{"zero is month-end", "2013-09-05 00:00", "0", false, "2013-08-31 00:00"},
		{"negative counts back from month-end", "2013-03-01 00:00", "-1", false, "2013-02-27 00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := mustParse(t, "2006-01-02 15:04", tt.now)
			want := mustParse(t, "2006-01-02 15:04", tt.want)
			got := PreviousMonthDay(now, tt.spec, tt.due)
			if !got.Equal(want) {
				t.Errorf("PreviousMonthDay(%s, %s) = %v, want %v", tt.now, tt.spec, got, want)
			}
		})
	}
}

func TestAdvanceByMonthsFromStart(t *testing.T) {
	start := mustParse(t, "2006-01-02 15:04", "2013-01-31 00:00")
	got := AdvanceByMonths(start, 1, true)
	want := mustParse(t, "2006-01-02 15:04", "2013-03-03 00:00") // Go's AddDate normalizes Jan 31 + 1mo.
	if !got.Equal(want) {
		t.Errorf("AdvanceByMonths(fromStart) = %v, want %v", got, want)
	}
}

func TestAdvanceByMonthsFromEndStable(t *testing.T) {
	// 3 days before month-end in January should land 3 days before
	// month-end in February too, despite the different month lengths.
	jan := mustParse(t, "2006-01-02 15:04", "2013-01-29 00:00") // 3 days before Feb 1
	got := AdvanceByMonths(jan, 1, false)
	want := mustParse(t, "2006-01-02 15:04", "2013-02-26 00:00") // 3 days before Mar 1
	if !got.Equal(want) {
		t.Errorf("AdvanceByMonths(fromEnd) = %v, want %v", got, want)
	}
}
