package availability

import (
	"errors"
	"testing"
	"time"
)

// 2026-01-28 is a Wednesday.
var wednesday = time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

func wedRule(start, end ClockTime) Rule {
	return Rule{Weekday: 3, Start: start, End: end, Active: true}
}

func TestGenerate_WeekdayScenario(t *testing.T) {
	slots, err := Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})},
		TargetDate: wednesday,
		Duration:   60 * time.Minute,
		Step:       30 * time.Minute,
		MinLead:    5 * time.Minute,
		Now:        wednesday.Add(8 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []time.Time{
		wednesday.Add(9 * time.Hour),
		wednesday.Add(9*time.Hour + 30*time.Minute),
		wednesday.Add(10 * time.Hour),
		wednesday.Add(10*time.Hour + 30*time.Minute),
		wednesday.Add(11 * time.Hour),
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
	}
	for i, s := range slots {
		if !s.Start.Equal(want[i]) {
			t.Fatalf("slot %d start = %v, want %v", i, s.Start, want[i])
		}
		if !s.End.Equal(want[i].Add(60 * time.Minute)) {
			t.Fatalf("slot %d end = %v", i, s.End)
		}
	}
}

func TestGenerate_BoundaryInclusion(t *testing.T) {
	// A slot that exactly fills the window must be offered.
	slots, err := Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{10, 0, 0})},
		TargetDate: wednesday,
		Duration:   60 * time.Minute,
		Step:       15 * time.Minute,
		Now:        wednesday,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected exactly the boundary slot, got %d", len(slots))
	}
	if !slots[0].Start.Equal(wednesday.Add(9*time.Hour)) || !slots[0].End.Equal(wednesday.Add(10*time.Hour)) {
		t.Fatalf("boundary slot = %v..%v", slots[0].Start, slots[0].End)
	}
}

func TestGenerate_BusyExactness(t *testing.T) {
	busy := []Interval{
		{Start: wednesday.Add(10 * time.Hour), End: wednesday.Add(11 * time.Hour)},
	}
	slots, err := Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})},
		Busy:       busy,
		TargetDate: wednesday,
		Duration:   60 * time.Minute,
		Step:       30 * time.Minute,
		Now:        wednesday,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// 09:00-10:00 touches the busy start and 11:00-12:00 touches its end;
	// both are allowed under half-open semantics. Everything between is blocked.
	want := []time.Time{
		wednesday.Add(9 * time.Hour),
		wednesday.Add(11 * time.Hour),
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
	}
	for i, s := range slots {
		if !s.Start.Equal(want[i]) {
			t.Fatalf("slot %d start = %v, want %v", i, s.Start, want[i])
		}
	}
}

func TestGenerate_LeadTime(t *testing.T) {
	slots, err := Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})},
		TargetDate: wednesday,
		Duration:   30 * time.Minute,
		Step:       30 * time.Minute,
		MinLead:    5 * time.Minute,
		Now:        wednesday.Add(10*time.Hour + 58*time.Minute),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// 11:00 is only 2 minutes away; 11:30 is the first start satisfying the lead.
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(wednesday.Add(11*time.Hour + 30*time.Minute)) {
		t.Fatalf("slot start = %v, want 11:30", slots[0].Start)
	}
}

func TestGenerate_WindowFullyInPast(t *testing.T) {
	slots, err := Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})},
		TargetDate: wednesday,
		Duration:   60 * time.Minute,
		Step:       30 * time.Minute,
		Now:        wednesday.Add(13 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestGenerate_OvernightWindow(t *testing.T) {
	rules := []Rule{
		{Weekday: 1, Start: ClockTime{22, 0, 0}, End: ClockTime{2, 0, 0}, Active: true},
	}

	// 90 minutes starting 23:00 ends 00:30 the next day, inside the window.
	slots, err := Generate(Params{
		Rules:      rules,
		TargetDate: monday,
		Duration:   90 * time.Minute,
		Step:       60 * time.Minute,
		Now:        monday.Add(8 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	found := false
	for _, s := range slots {
		if s.Start.Equal(monday.Add(23 * time.Hour)) {
			found = true
			if !s.End.Equal(monday.Add(24*time.Hour + 30*time.Minute)) {
				t.Fatalf("23:00 slot ends %v, want 00:30 next day", s.End)
			}
		}
	}
	if !found {
		t.Fatalf("expected a 23:00 slot crossing midnight, got %v", slots)
	}

	// 240 minutes starting 23:00 would end 03:00, past the 02:00 close.
	slots, err = Generate(Params{
		Rules:      rules,
		TargetDate: monday,
		Duration:   240 * time.Minute,
		Step:       60 * time.Minute,
		Now:        monday.Add(8 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(slots) != 1 || !slots[0].Start.Equal(monday.Add(22*time.Hour)) {
		t.Fatalf("expected only the 22:00 slot that exactly fills the window, got %v", slots)
	}
}

func TestGenerate_MultiDayDuration(t *testing.T) {
	// Guest apartment style: noon-to-noon full-day rules on Friday and Saturday
	// allow a 48h stay starting Friday, and nothing later.
	rules := []Rule{
		{Weekday: 5, Start: ClockTime{12, 0, 0}, End: ClockTime{12, 0, 0}, Active: true},
		{Weekday: 6, Start: ClockTime{12, 0, 0}, End: ClockTime{12, 0, 0}, Active: true},
	}
	friday := monday.AddDate(0, 0, 4)
	slots, err := Generate(Params{
		Rules:      rules,
		TargetDate: friday,
		Duration:   48 * time.Hour,
		Step:       24 * time.Hour,
		Now:        monday,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(friday.Add(12 * time.Hour)) {
		t.Fatalf("slot start = %v, want Friday 12:00", slots[0].Start)
	}

	// A Saturday reservation in the middle kills the multi-day stay.
	busySat := []Interval{
		{Start: friday.AddDate(0, 0, 1).Add(14 * time.Hour), End: friday.AddDate(0, 0, 1).Add(16 * time.Hour)},
	}
	slots, err = Generate(Params{
		Rules:      rules,
		Busy:       busySat,
		TargetDate: friday,
		Duration:   48 * time.Hour,
		Step:       24 * time.Hour,
		Now:        monday,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots with a mid-stay reservation, got %v", slots)
	}
}

func TestGenerate_DeduplicatesOverlappingRules(t *testing.T) {
	// Two identical rules must not yield duplicate starts.
	rules := []Rule{
		wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0}),
		wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0}),
	}
	slots, err := Generate(Params{
		Rules:      rules,
		TargetDate: wednesday,
		Duration:   60 * time.Minute,
		Step:       30 * time.Minute,
		Now:        wednesday,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	seen := make(map[int64]bool)
	for i, s := range slots {
		if seen[s.Start.UnixNano()] {
			t.Fatalf("duplicate slot start %v", s.Start)
		}
		seen[s.Start.UnixNano()] = true
		if i > 0 && !slots[i-1].Start.Before(s.Start) {
			t.Fatalf("slots not in ascending order at index %d", i)
		}
	}
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}
}

func TestGenerate_InvalidArguments(t *testing.T) {
	_, err := Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})},
		TargetDate: wednesday,
		Duration:   0,
	})
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	_, err = Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})},
		TargetDate: wednesday,
		Duration:   30 * time.Minute,
		Step:       -time.Minute,
	})
	if !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}

	// A negative lead is rejected like a negative step; only zero falls back
	// to the default.
	_, err = Generate(Params{
		Rules:      []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})},
		TargetDate: wednesday,
		Duration:   30 * time.Minute,
		MinLead:    -time.Minute,
	})
	if !errors.Is(err, ErrInvalidLead) {
		t.Fatalf("expected ErrInvalidLead, got %v", err)
	}
}

func TestGenerate_NoRules(t *testing.T) {
	slots, err := Generate(Params{
		TargetDate: wednesday,
		Duration:   60 * time.Minute,
		Now:        wednesday,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty result, got %v", slots)
	}
}

func TestCovered(t *testing.T) {
	rules := []Rule{wedRule(ClockTime{9, 0, 0}, ClockTime{12, 0, 0})}
	if !Covered(wednesday.Add(10*time.Hour), wednesday.Add(11*time.Hour), rules) {
		t.Fatal("10:00-11:00 should be covered")
	}
	if Covered(wednesday.Add(11*time.Hour), wednesday.Add(13*time.Hour), rules) {
		t.Fatal("11:00-13:00 runs past the window")
	}
	if Covered(wednesday.Add(10*time.Hour), wednesday.Add(10*time.Hour), rules) {
		t.Fatal("empty span is not a valid reservation")
	}
}
