package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rule is one recurring weekly bookable window for a resource, expressed in the
// resource's local clock. Weekday follows ISO 8601 (Monday=1 .. Sunday=7).
//
// Start == End means the resource is bookable a full 24 hours from Start.
// End before Start means the window crosses midnight and closes the next day.
type Rule struct {
	Weekday int
	Start   ClockTime
	End     ClockTime
	Active  bool
}

// ClockTime is a local wall-clock time of day with no date or zone attached.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock parses "HH:MM:SS" (or "HH:MM") into a ClockTime. A malformed
// value is a configuration error on the rule, not something the generator
// tolerates at runtime.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("invalid time of day %q", s)
	}

	fields := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || len(p) != 2 {
			return ClockTime{}, fmt.Errorf("invalid time of day %q", s)
		}
		fields[i] = n
	}
	c := ClockTime{Hour: fields[0], Minute: fields[1], Second: fields[2]}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return ClockTime{}, fmt.Errorf("invalid time of day %q", s)
	}
	return c, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// On anchors the clock time onto a calendar day, in that day's location.
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, c.Second, 0, day.Location())
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// HasAvailability reports whether any active rule fires on the given calendar
// date. The app's calendar grid uses this to grey out days before the user
// ever asks for slots.
func HasAvailability(rules []Rule, date time.Time) bool {
	wd := ISOWeekday(date)
	for _, r := range rules {
		if r.Active && r.Weekday == wd {
			return true
		}
	}
	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
