package timeutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// weekdayWords maps full and abbreviated weekday names to time.Weekday.
var weekdayWords = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// ResolveRelativeDate turns a relative date word into a calendar date,
// relative to now as seen in loc. The returned time is midnight of that date
// in loc; only the date components are meaningful to callers.
//
// Recognized forms (case-insensitive): "today", "yesterday", "tomorrow",
// a weekday name, "this <weekday>" and "next <weekday>".
//
// A bare weekday resolves to the next occurrence strictly after today: if
// today is a Wednesday, "wednesday" is a week away, never today. "next
// <weekday>" lands one further week out, so it is always at least seven days
// ahead and never collides with the bare form. "this <weekday>" allows
// today.
func ResolveRelativeDate(token string, now time.Time, loc *time.Location) (time.Time, error) {
	today := now.In(loc)
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(token)))

	switch len(fields) {
	case 1:
		switch fields[0] {
		case "today":
			return dateOf(today, 0), nil
		case "yesterday":
			return dateOf(today, -1), nil
		case "tomorrow":
			return dateOf(today, 1), nil
		}
		if wd, ok := weekdayWords[fields[0]]; ok {
			return dateOf(today, daysUntilStrict(today.Weekday(), wd)), nil
		}
	case 2:
		wd, ok := weekdayWords[fields[1]]
		if !ok {
			break
		}
		switch fields[0] {
		case "next":
			return dateOf(today, daysUntilStrict(today.Weekday(), wd)+7), nil
		case "this":
			return dateOf(today, daysUntil(today.Weekday(), wd)), nil
		}
	}

	return time.Time{}, &UnrecognizedDateError{Token: token}
}

// daysUntil counts days from cur to target within the current seven days;
// zero when they are the same day.
func daysUntil(cur, target time.Weekday) int {
	return (int(target) - int(cur) + 7) % 7
}

// daysUntilStrict is like daysUntil but never zero: the same weekday
// resolves one full week ahead.
func daysUntilStrict(cur, target time.Weekday) int {
	d := daysUntil(cur, target)
	if d == 0 {
		d = 7
	}
	return d
}

func dateOf(t time.Time, addDays int) time.Time {
	t = t.AddDate(0, 0, addDays)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ResolveTimeOfDay parses a clock-time token into an (hour, minute) pair.
//
// Accepted forms: "9:30" (24-hour), "4pm", "9:30am" (case-insensitive).
// A bare hour with no am/pm marker is rejected as ambiguous rather than
// guessed at.
func ResolveTimeOfDay(token string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(token)))
	if m == nil {
		return 0, 0, &AmbiguousTimeError{Token: token, Reason: "not a clock time"}
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem := m[3]

	if m[2] == "" && meridiem == "" {
		return 0, 0, &AmbiguousTimeError{Token: token, Reason: "bare hour needs an am/pm marker"}
	}
	if minute > 59 {
		return 0, 0, &AmbiguousTimeError{Token: token, Reason: "minute out of range"}
	}

	switch meridiem {
	case "":
		if hour > 23 {
			return 0, 0, &AmbiguousTimeError{Token: token, Reason: "hour out of range"}
		}
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return 0, 0, &AmbiguousTimeError{Token: token, Reason: "hour out of range for am/pm"}
		}
		if meridiem == "pm" && hour != 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
	}

	return hour, minute, nil
}
