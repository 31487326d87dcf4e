package availability

import (
	"errors"
	"sort"
	"time"
)

// Interval is a half-open [Start, End) span that blocks candidate slots:
// a confirmed reservation or a maintenance blackout.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot is one bookable option offered to the user; End-Start equals the
// requested duration.
type Slot struct {
	Start time.Time
	End   time.Time
}

const (
	DefaultStep    = 15 * time.Minute
	DefaultMinLead = 5 * time.Minute
)

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidStep     = errors.New("step must be positive")
	ErrInvalidLead     = errors.New("lead time must not be negative")
)

// Params carries everything one generation call needs. The engine performs no
// I/O: the caller fetches rules and busy intervals first. Busy must cover at
// least [TargetDate-1d, TargetDate+ceil(Duration/24h)+1d] or conflicts on long
// or cross-midnight durations can be missed.
type Params struct {
	Rules      []Rule
	Busy       []Interval
	TargetDate time.Time
	Duration   time.Duration
	Step       time.Duration
	MinLead    time.Duration
	Now        time.Time
}

// Generate computes the ordered, de-duplicated bookable slots of the requested
// duration on the target date. Candidate starts come only from windows that
// open on the target date itself; coverage may extend into adjacent days.
// An empty result means no availability and is not an error.
func Generate(p Params) ([]Slot, error) {
	if p.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	step := p.Step
	if step == 0 {
		step = DefaultStep
	}
	if step < 0 {
		return nil, ErrInvalidStep
	}
	lead := p.MinLead
	if lead < 0 {
		return nil, ErrInvalidLead
	}
	if lead == 0 {
		lead = DefaultMinLead
	}

	lookAhead := int((p.Duration+24*time.Hour-1)/(24*time.Hour)) + 1
	windows := BuildWindows(p.Rules, p.TargetDate, lookAhead)
	if len(windows) == 0 {
		return nil, nil
	}

	targetDay := midnight(p.TargetDate)
	earliest := p.Now.Add(lead)
	seen := make(map[int64]struct{})

	var slots []Slot
	for _, w := range windows {
		if !sameDay(w.Start, targetDay) {
			continue
		}
		// The slot may run past this window's end as long as adjacent windows
		// keep it covered; that is what allows multi-day stays over
		// consecutive full-day rules.
		for cursor := w.Start; cursor.Before(w.End); cursor = cursor.Add(step) {
			if cursor.Before(earliest) {
				continue
			}
			if _, dup := seen[cursor.UnixNano()]; dup {
				continue
			}
			end := cursor.Add(p.Duration)
			if !coveredBy(cursor, end, windows) {
				continue
			}
			if overlapsAny(cursor, end, p.Busy) {
				continue
			}
			seen[cursor.UnixNano()] = struct{}{}
			slots = append(slots, Slot{Start: cursor, End: end})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots, nil
}

// overlapsAny uses half-open semantics: a slot that starts exactly where a
// busy interval ends, or ends exactly where one starts, does not overlap.
func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

// Overlaps is the exported form used by the commit path to pre-check a
// requested reservation against blackouts before hitting the database
// constraint.
func Overlaps(start, end time.Time, busy []Interval) bool {
	return overlapsAny(start, end, busy)
}

// Covered reports whether [start, end) fits entirely inside the availability
// implied by the rules around start's date. The commit path uses it to refuse
// reservations outside the configured schedule.
func Covered(start, end time.Time, rules []Rule) bool {
	if !end.After(start) {
		return false
	}
	lookAhead := int((end.Sub(start)+24*time.Hour-1)/(24*time.Hour)) + 1
	windows := BuildWindows(rules, start, lookAhead)
	return coveredBy(start, end, windows)
}
