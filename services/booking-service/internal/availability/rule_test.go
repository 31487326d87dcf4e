package availability

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want ClockTime
		ok   bool
	}{
		{"08:00:00", ClockTime{8, 0, 0}, true},
		{"22:30", ClockTime{22, 30, 0}, true},
		{"00:00:00", ClockTime{0, 0, 0}, true},
		{"23:59:59", ClockTime{23, 59, 59}, true},
		{"24:00:00", ClockTime{}, false},
		{"12:60:00", ClockTime{}, false},
		{"8:00", ClockTime{}, false},
		{"noon", ClockTime{}, false},
		{"", ClockTime{}, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseClock(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseClock(%q) expected error, got %v", tc.in, got)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseClock(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestISOWeekday(t *testing.T) {
	// 2026-01-26 is a Monday, 2026-02-01 a Sunday.
	mon := time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC)
	if got := ISOWeekday(mon); got != 1 {
		t.Fatalf("Monday = %d, want 1", got)
	}
	sun := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := ISOWeekday(sun); got != 7 {
		t.Fatalf("Sunday = %d, want 7", got)
	}
}

func TestHasAvailability(t *testing.T) {
	rules := []Rule{
		{Weekday: 3, Start: ClockTime{9, 0, 0}, End: ClockTime{12, 0, 0}, Active: true},
		{Weekday: 5, Start: ClockTime{9, 0, 0}, End: ClockTime{12, 0, 0}, Active: false},
	}
	wed := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	if !HasAvailability(rules, wed) {
		t.Fatal("expected Wednesday to be bookable")
	}
	fri := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	if HasAvailability(rules, fri) {
		t.Fatal("inactive rule must not make Friday bookable")
	}
	thu := time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)
	if HasAvailability(rules, thu) {
		t.Fatal("Thursday has no rule")
	}
}
