// Package model holds the canonical, provider-independent event
// representation. Providers and the wire mapper convert to and from this
// model; nothing here performs I/O.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Frequency is the recurrence frequency. Only the DAILY/WEEKLY subset is
// supported; everything else is rejected at the translation boundary.
type Frequency string

const (
	FreqDaily  Frequency = "DAILY"
	FreqWeekly Frequency = "WEEKLY"
)

// Weekday is a day of the week in Monday-first order. The ordering matters:
// BYDAY lists are emitted canonically Monday-first so that round-trips are
// deterministic.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayTokens = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

var weekdayNames = [...]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Token returns the two-letter RRULE token (e.g. "MO").
func (w Weekday) Token() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayTokens[w]
}

// Name returns the lowercase full name used by the pattern payload
// (e.g. "monday").
func (w Weekday) Name() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// WeekdayFromToken parses a two-letter RRULE day token, case-insensitive.
func WeekdayFromToken(s string) (Weekday, bool) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, tok := range weekdayTokens {
		if tok == up {
			return Weekday(i), true
		}
	}
	return 0, false
}

// WeekdayFromName parses a full lowercase day name, case-insensitive.
func WeekdayFromName(s string) (Weekday, bool) {
	low := strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if name == low {
			return Weekday(i), true
		}
	}
	return 0, false
}

// FromGoWeekday converts time.Weekday (Sunday-first) into the Monday-first
// Weekday used here.
func FromGoWeekday(w time.Weekday) Weekday {
	if w == time.Sunday {
		return Sunday
	}
	return Weekday(int(w) - 1)
}

// NormalizeDays sorts Monday-first and removes duplicates. ByDay carries set
// semantics; normalization keeps comparisons and emitted strings stable.
func NormalizeDays(days []Weekday) []Weekday {
	if len(days) == 0 {
		return nil
	}
	seen := make(map[Weekday]bool, len(days))
	out := make([]Weekday, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Recurrence is the restricted internal recurrence model.
// An empty ByDay on a WEEKLY rule means "same weekday as the event start".
type Recurrence struct {
	Frequency Frequency
	Interval  int
	ByDay     []Weekday
}

// Validate enforces the recurrence invariants: a known frequency, a positive
// interval and no ByDay on DAILY rules.
func (r Recurrence) Validate() error {
	switch r.Frequency {
	case FreqDaily:
		if len(r.ByDay) > 0 {
			return errors.New("recurrence: DAILY must not carry by-day entries")
		}
	case FreqWeekly:
		// empty ByDay is allowed: it means the start's weekday
	default:
		return fmt.Errorf("recurrence: unknown frequency %q", r.Frequency)
	}
	if r.Interval < 1 {
		return fmt.Errorf("recurrence: interval must be positive, got %d", r.Interval)
	}
	for _, d := range r.ByDay {
		if d < Monday || d > Sunday {
			return fmt.Errorf("recurrence: invalid weekday %d", int(d))
		}
	}
	return nil
}

// Equal compares two recurrences; ByDay is compared as a set.
func (r Recurrence) Equal(o Recurrence) bool {
	if r.Frequency != o.Frequency || r.Interval != o.Interval {
		return false
	}
	a, b := NormalizeDays(r.ByDay), NormalizeDays(o.ByDay)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Event is the canonical event record.
//
// Start/End are absolute instants. When AllDay is true they are the local
// midnight boundaries of the covered dates: Start inclusive at midnight of
// the first day, End exclusive at midnight of the day after the last day.
type Event struct {
	// ID is assigned by the remote service; empty on local drafts.
	ID string

	Subject  string
	Start    time.Time
	End      time.Time
	AllDay   bool
	Location string
	Body     string

	// Attendees carries set semantics; order is never significant.
	// Normalize before comparing.
	Attendees []string

	// ReminderMinutes is minutes before Start; nil means no reminder.
	ReminderMinutes *int

	Recurrence *Recurrence
}

// NormalizeAttendees sorts and deduplicates addresses so that two attendee
// sets compare equal regardless of wire order.
func NormalizeAttendees(addrs []string) []string {
	if len(addrs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Validate checks the event invariants. Defaults are a drafting-time
// concept; Validate never fills anything in.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Subject) == "" {
		return errors.New("event: subject must not be empty")
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return errors.New("event: start and end must be set")
	}
	if !e.Start.Before(e.End) {
		return fmt.Errorf("event: start %s must be before end %s",
			e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
	}
	if e.ReminderMinutes != nil && *e.ReminderMinutes < 0 {
		return fmt.Errorf("event: reminder minutes must be non-negative, got %d", *e.ReminderMinutes)
	}
	if e.Recurrence != nil {
		if err := e.Recurrence.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports field equality with attendee sets compared as sets and
// instants compared with time.Equal.
func (e *Event) Equal(o *Event) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.ID != o.ID || e.Subject != o.Subject || e.AllDay != o.AllDay ||
		e.Location != o.Location || e.Body != o.Body {
		return false
	}
	if !e.Start.Equal(o.Start) || !e.End.Equal(o.End) {
		return false
	}
	a, b := NormalizeAttendees(e.Attendees), NormalizeAttendees(o.Attendees)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	switch {
	case e.ReminderMinutes == nil && o.ReminderMinutes != nil:
		return false
	case e.ReminderMinutes != nil && o.ReminderMinutes == nil:
		return false
	case e.ReminderMinutes != nil && *e.ReminderMinutes != *o.ReminderMinutes:
		return false
	}
	switch {
	case e.Recurrence == nil && o.Recurrence != nil:
		return false
	case e.Recurrence != nil && o.Recurrence == nil:
		return false
	case e.Recurrence != nil && !e.Recurrence.Equal(*o.Recurrence):
		return false
	}
	return true
}
