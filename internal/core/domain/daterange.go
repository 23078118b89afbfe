package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateInputLayout is the layout accepted for --from/--to style inputs
const DateInputLayout = "2006-01-02"

// DateRange is an inclusive calendar range; a nil bound is open
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange normalizes start to the start of its day and end to the end of its day
func NewDateRange(start, end *time.Time) DateRange {
	var r DateRange
	if start != nil {
		s := StartOfDay(*start)
		r.Start = &s
	}
	if end != nil {
		e := EndOfDay(*end)
		r.End = &e
	}
	return r
}

// IsOpen reports whether neither bound is set
func (r DateRange) IsOpen() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether t lies within both present bounds
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// String renders the range for headers, e.g. "2024-03-01 → 2024-03-07"
func (r DateRange) String() string {
	from, to := "…", "…"
	if r.Start != nil {
		from = r.Start.Format(DateInputLayout)
	}
	if r.End != nil {
		to = r.End.Format(DateInputLayout)
	}
	return from + " → " + to
}

// StartOfDay returns 00:00:00.000 of t's day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's day in t's location
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ParseDate parses a YYYY-MM-DD value in loc. Empty input yields nil.
func ParseDate(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(DateInputLayout, value, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return &t, nil
}
