package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock value with no date or zone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

var (
	amPMRegex   = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])$`)
	clock24Regex = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	dateRegex   = regexp.MustCompile(`^(\d{1,4})([/-])(\d{1,2})[/-](\d{1,4})$`)
	weekdayRegex = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun)\b`)
)

// ParseClockTime parses free-form time tokens like "3:56PM", "9:30 AM",
// "16:00:00" or "16:00". The second return value is false when the token is
// not a time; malformed input never produces an error.
func ParseClockTime(s string) (TimeOfDay, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, false
	}

	if m := amPMRegex.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second := 0
		if m[3] != "" {
			second, _ = strconv.Atoi(m[3])
		}
		if hour < 1 || hour > 12 || minute > 59 || second > 59 {
			return TimeOfDay{}, false
		}
		meridiem := strings.ToUpper(m[4])
		if meridiem == "PM" && hour != 12 {
			hour += 12
		} else if meridiem == "AM" && hour == 12 {
			hour = 0
		}
		return TimeOfDay{Hour: hour, Minute: minute, Second: second}, true
	}

	if m := clock24Regex.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second := 0
		if m[3] != "" {
			second, _ = strconv.Atoi(m[3])
		}
		if hour > 23 || minute > 59 || second > 59 {
			return TimeOfDay{}, false
		}
		return TimeOfDay{Hour: hour, Minute: minute, Second: second}, true
	}

	return TimeOfDay{}, false
}

// ParseHeaderDate parses date tokens found in schedule headers, such as
// "Thu\n5/1/25", "5/1/2025" or "2025-05-01". Multi-line labels keep only the
// last line; weekday names are stripped. Two-digit years map to 2000+YY.
// Callers must treat a false return as "not a date cell", not as an error.
func ParseHeaderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if lines := strings.Split(s, "\n"); len(lines) > 1 {
		s = strings.TrimSpace(lines[len(lines)-1])
	}
	s = strings.TrimSpace(weekdayRegex.ReplaceAllString(s, ""))

	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[3])
	c, _ := strconv.Atoi(m[4])

	var year, month, day int
	if len(m[1]) == 4 {
		// ISO order: 2025-05-01
		year, month, day = a, b, c
	} else {
		// US order: 5/1/25 or 5/1/2025
		month, day = a, b
		year = c
		if year < 100 {
			year += 2000
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Rejects normalized overflow like 2/30.
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false
	}
	return d, true
}

// Combine places a wall-clock value on the given calendar date in loc. The
// location is supplied by the caller so the policy timezone is applied exactly
// once, never inside token parsing.
func Combine(date time.Time, tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, tod.Second, 0, loc)
}
