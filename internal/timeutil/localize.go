// Package timeutil implements the temporal half of the quickadd pipeline:
// relative date words, clock-time tokens and the timezone resolution engine
// that promotes naive wall-clock values to absolute instants.
package timeutil

import (
	"errors"
	"os"
	"time"
)

// Context is the resolved timezone triple for one invocation. Selection
// precedence is Override > Configured > System; exactly one location is
// used, never a merge. The zero Context resolves to UTC.
type Context struct {
	System     *time.Location
	Configured *time.Location
	Override   *time.Location
}

// NewContext builds a Context from IANA zone names. Empty names are treated
// as absent. The system zone comes from OCALCLI_TZ when set, otherwise the
// process-local zone.
func NewContext(configured, override string) (Context, error) {
	ctx := Context{System: systemLocation()}

	if configured != "" {
		loc, err := time.LoadLocation(configured)
		if err != nil {
			return Context{}, err
		}
		ctx.Configured = loc
	}
	if override != "" {
		loc, err := time.LoadLocation(override)
		if err != nil {
			return Context{}, err
		}
		ctx.Override = loc
	}
	return ctx, nil
}

func systemLocation() *time.Location {
	if name := os.Getenv("OCALCLI_TZ"); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.Local
}

// Location returns the single zone selected by the precedence rule.
func (c Context) Location() *time.Location {
	switch {
	case c.Override != nil:
		return c.Override
	case c.Configured != nil:
		return c.Configured
	case c.System != nil:
		return c.System
	default:
		return time.UTC
	}
}

// Localize combines a calendar date (only date components of date are used)
// with a wall-clock time and resolves it in the context's zone using that
// zone's rules for the specific date. A wall-clock value that falls in a DST
// gap fails with InvalidLocalTimeError instead of being shifted.
func Localize(date time.Time, hour, minute int, ctx Context) (time.Time, error) {
	loc := ctx.Location()
	t := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
	// time.Date normalizes nonexistent local times; detect the shift.
	if t.Hour() != hour || t.Minute() != minute ||
		t.Day() != date.Day() || t.Month() != date.Month() || t.Year() != date.Year() {
		return time.Time{}, &InvalidLocalTimeError{
			Wall: date.Format("2006-01-02") + " " + clockString(hour, minute),
			Zone: loc.String(),
		}
	}
	return t, nil
}

// AllDayRange derives the instant boundaries of an all-day event covering
// the dates first..last inclusive: start is local midnight of first, end is
// local midnight of the day after last (end exclusive), so a single-day
// event spans exactly one local day.
func AllDayRange(first, last time.Time, ctx Context) (start, end time.Time, err error) {
	if last.Before(first) {
		return time.Time{}, time.Time{}, errors.New("all-day range: last date before first")
	}
	start, err = Localize(first, 0, 0, ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = Localize(last.AddDate(0, 0, 1), 0, 0, ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Stamp is a parsed datetime plus whether the input carried its own UTC
// offset. Explicit-offset inputs pass through untouched; naive inputs are
// localized via the context.
type Stamp struct {
	Time           time.Time
	ExplicitOffset bool
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// ParseStamp parses an explicit datetime string from a command flag.
//
// Supported forms: RFC 3339 with offset (passed through unchanged), naive
// "YYYY-MM-DDTHH:MM[:SS]" (localized under the context with DST-gap
// checking), and bare "YYYY-MM-DD" (local midnight).
func ParseStamp(s string, ctx Context) (Stamp, error) {
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Stamp{Time: t, ExplicitOffset: true}, nil
		}
	}
	loc := ctx.Location()
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			// ParseInLocation normalizes DST-gap times; verify the wall clock
			// survived.
			if t.Format(layout) != s {
				return Stamp{}, &InvalidLocalTimeError{Wall: s, Zone: loc.String()}
			}
			return Stamp{Time: t}, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return Stamp{Time: t}, nil
	}
	return Stamp{}, &UnrecognizedDateError{Token: s}
}

// CheckRange rejects a start/end pair whose explicit offsets conflict.
// When both stamps carry their own offsets and those offsets differ, there
// is no rule to pick one zone for the edit, so the pair is ambiguous.
func CheckRange(start, end Stamp) error {
	if !start.ExplicitOffset || !end.ExplicitOffset {
		return nil
	}
	_, so := start.Time.Zone()
	_, eo := end.Time.Zone()
	if so != eo {
		return &AmbiguousLocalizationError{
			Start: start.Time.Format(time.RFC3339),
			End:   end.Time.Format(time.RFC3339),
		}
	}
	return nil
}

func clockString(hour, minute int) string {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format("15:04")
}
