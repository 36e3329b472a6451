// Package ranking reduces record lists to what a dashboard card shows:
// the N most recent items, or the items that fall on the current day.
package ranking

import (
	"slices"
	"time"
)

// TopRecent returns up to limit items ordered by date, most recent first.
// Ties keep their input order. The input slice is left untouched.
// A negative limit returns every item.
func TopRecent[T any](items []T, date func(T) time.Time, limit int) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return date(b).Compare(date(a))
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit:limit]
	}
	return out
}

// SameDay keeps the items whose date falls on now's calendar day in loc.
// Input order is preserved. A nil loc means UTC.
func SameDay[T any](items []T, date func(T) time.Time, now time.Time, loc *time.Location) []T {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	out := []T{}
	for _, it := range items {
		iy, im, id := date(it).In(loc).Date()
		if iy == y && im == m && id == d {
			out = append(out, it)
		}
	}
	return out
}

// Greeting returns the salutation for the hour of now in loc.
func Greeting(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	switch h := now.In(loc).Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
