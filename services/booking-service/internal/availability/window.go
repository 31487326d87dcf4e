package availability

import (
	"sort"
	"time"
)

// Window is one rule instantiated onto a concrete calendar date. Start is
// always strictly before End; full-day and cross-midnight rules are already
// normalized onto the next day.
type Window struct {
	Start time.Time
	End   time.Time
}

// BuildWindows expands the weekly rules into absolute windows for every day in
// [targetDate-1, targetDate+lookAheadDays]. The extra day behind the target is
// required so a window opened the previous evening still covers early-morning
// instants of the target day. Results are ordered by Start.
func BuildWindows(rules []Rule, targetDate time.Time, lookAheadDays int) []Window {
	if lookAheadDays < 0 {
		lookAheadDays = 0
	}
	day0 := midnight(targetDate)

	var windows []Window
	for offset := -1; offset <= lookAheadDays; offset++ {
		day := day0.AddDate(0, 0, offset)
		wd := ISOWeekday(day)
		for _, r := range rules {
			if !r.Active || r.Weekday != wd {
				continue
			}
			start := r.Start.On(day)
			end := r.End.On(day)
			if !end.After(start) {
				// Start == End is a 24h window; End < Start closes tomorrow.
				end = end.AddDate(0, 0, 1)
			}
			windows = append(windows, Window{Start: start, End: end})
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})
	return windows
}

// coveredBy reports whether [start, end) lies entirely within the union of the
// windows. A cursor advances through whichever window covers it; two adjacent
// windows whose edges touch therefore still produce coverage.
func coveredBy(start, end time.Time, windows []Window) bool {
	cursor := start
	for cursor.Before(end) {
		advanced := false
		for _, w := range windows {
			if w.Start.After(cursor) || !cursor.Before(w.End) {
				continue
			}
			next := w.End
			if next.After(end) {
				next = end
			}
			cursor = next
			advanced = true
			break
		}
		if !advanced {
			return false
		}
	}
	return true
}
