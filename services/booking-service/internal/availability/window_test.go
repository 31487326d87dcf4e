package availability

import (
	"testing"
	"time"
)

// 2026-01-26 is a Monday throughout these tests.
var monday = time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC)

func TestBuildWindows_Overnight(t *testing.T) {
	rules := []Rule{
		{Weekday: 1, Start: ClockTime{22, 0, 0}, End: ClockTime{2, 0, 0}, Active: true},
	}
	windows := BuildWindows(rules, monday, 1)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	wantStart := monday.Add(22 * time.Hour)
	wantEnd := monday.AddDate(0, 0, 1).Add(2 * time.Hour)
	if !windows[0].Start.Equal(wantStart) || !windows[0].End.Equal(wantEnd) {
		t.Fatalf("window = %v..%v, want %v..%v", windows[0].Start, windows[0].End, wantStart, wantEnd)
	}
}

func TestBuildWindows_FullDay(t *testing.T) {
	rules := []Rule{
		{Weekday: 1, Start: ClockTime{8, 0, 0}, End: ClockTime{8, 0, 0}, Active: true},
	}
	windows := BuildWindows(rules, monday, 0)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if got := windows[0].End.Sub(windows[0].Start); got != 24*time.Hour {
		t.Fatalf("full-day window length = %v, want 24h", got)
	}
	if !windows[0].Start.Equal(monday.Add(8 * time.Hour)) {
		t.Fatalf("full-day window starts at %v", windows[0].Start)
	}
}

func TestBuildWindows_IncludesPreviousDay(t *testing.T) {
	// A Monday-evening window must be materialized when Tuesday is the target,
	// so its tail still covers Tuesday's small hours.
	rules := []Rule{
		{Weekday: 1, Start: ClockTime{22, 0, 0}, End: ClockTime{2, 0, 0}, Active: true},
	}
	tuesday := monday.AddDate(0, 0, 1)
	windows := BuildWindows(rules, tuesday, 0)
	if len(windows) != 1 {
		t.Fatalf("expected the Monday window via the -1 day offset, got %d windows", len(windows))
	}
	if !windows[0].End.Equal(tuesday.Add(2 * time.Hour)) {
		t.Fatalf("window end = %v, want Tuesday 02:00", windows[0].End)
	}
}

func TestBuildWindows_SkipsInactiveAndSorts(t *testing.T) {
	rules := []Rule{
		{Weekday: 2, Start: ClockTime{14, 0, 0}, End: ClockTime{16, 0, 0}, Active: true},
		{Weekday: 1, Start: ClockTime{18, 0, 0}, End: ClockTime{20, 0, 0}, Active: true},
		{Weekday: 1, Start: ClockTime{9, 0, 0}, End: ClockTime{11, 0, 0}, Active: true},
		{Weekday: 1, Start: ClockTime{6, 0, 0}, End: ClockTime{7, 0, 0}, Active: false},
	}
	windows := BuildWindows(rules, monday, 1)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].Start.Before(windows[i-1].Start) {
			t.Fatalf("windows not sorted: %v before %v", windows[i].Start, windows[i-1].Start)
		}
	}
	for _, w := range windows {
		if !w.Start.Before(w.End) {
			t.Fatalf("window %v..%v violates Start < End", w.Start, w.End)
		}
	}
}

func TestCoveredBy_AdjacentWindows(t *testing.T) {
	w1 := Window{Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)}
	w2 := Window{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)}
	windows := []Window{w1, w2}

	if !coveredBy(monday.Add(9*time.Hour+30*time.Minute), monday.Add(10*time.Hour+30*time.Minute), windows) {
		t.Fatal("span across touching window edges should be covered")
	}

	gapped := []Window{w1, {Start: monday.Add(10*time.Hour + 15*time.Minute), End: monday.Add(11 * time.Hour)}}
	if coveredBy(monday.Add(9*time.Hour+30*time.Minute), monday.Add(10*time.Hour+30*time.Minute), gapped) {
		t.Fatal("span across a gap must not be covered")
	}
}
