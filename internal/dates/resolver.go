package dates

import (
	"strconv"
	"strings"
	"time"
)

// layouts are the literal formats accepted for explicit date input,
// tried in order.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2. January 2006",
}

// Resolve converts a date expression into a point in time relative to the
// current clock. See ResolveAt for the resolution rules.
func Resolve(input string) time.Time {
	return ResolveAt(input, time.Now())
}

// ResolveAt converts a date expression into a point in time relative to now.
//
// The relative tokens are matched case-insensitively as substrings, in a
// fixed precedence order: "today" first, then "tomorrow", then "next week".
// An input containing several tokens resolves to the first one in that
// order. Anything else is parsed against the literal layouts; if none
// match, the reference time itself is returned. Lenient by contract: a
// malformed date degrades to "now" instead of blocking the calling tool.
func ResolveAt(input string, now time.Time) time.Time {
	lower := strings.ToLower(input)

	switch {
	case strings.Contains(lower, "today"):
		return now
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1)
	case strings.Contains(lower, "next week"):
		return now.AddDate(0, 0, 7)
	}

	trimmed := strings.TrimSpace(input)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return t
		}
	}

	return now
}

// WithClock combines a resolved date with a time of day given as "HH:MM",
// producing an instant on the same calendar day. Hour and minute are taken
// as-is; values outside 0-23/0-59 are not validated further. Input that is
// not of the HH:MM shape leaves the date unchanged.
func WithClock(date time.Time, clock string) time.Time {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return date
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return date
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return date
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
