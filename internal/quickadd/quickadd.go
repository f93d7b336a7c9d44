// Package quickadd compiles one free-form line of text into an event draft.
//
// Grammar:
//
//	<date-token>? <time-token>[ +<duration>]: <subject>[ @ <location>]
//
// The first unescaped ':' that is not part of an H:MM clock token separates
// the time clause from the content clause; the last unescaped '@' in the
// content clause separates subject from location. "\:" and "\@" produce
// literal characters. The compiler is pure: it never touches the network or
// the clock, everything comes in as parameters.
package quickadd

import (
	"fmt"
	"strings"
	"time"

	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

// DefaultDuration is the event length used when the time clause carries no
// duration marker.
const DefaultDuration = time.Hour

// Draft is the ephemeral output of Compile. It is consumed immediately to
// build a model.Event and never persisted.
type Draft struct {
	Subject  string
	Location string
	Start    time.Time
	End      time.Time
}

// Event converts the draft into a canonical event value.
func (d *Draft) Event() model.Event {
	return model.Event{
		Subject:  d.Subject,
		Location: d.Location,
		Start:    d.Start,
		End:      d.End,
	}
}

// ParseError reports a structural failure of the quickadd grammar. Time and
// date token failures keep their own error types from timeutil.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("quickadd %q: %s", e.Input, e.Reason)
}

// Compile parses text into a Draft relative to now under the given timezone
// context.
func Compile(text string, now time.Time, tzctx timeutil.Context) (*Draft, error) {
	timeClause, content, ok := splitTimeClause(text)
	if !ok {
		return nil, &ParseError{Input: text, Reason: "missing time clause"}
	}

	subject, location := splitLocation(content)
	subject = strings.TrimSpace(unescape(subject))
	location = strings.TrimSpace(unescape(location))
	if subject == "" {
		return nil, &ParseError{Input: text, Reason: "empty subject"}
	}

	start, dur, err := resolveTimeClause(timeClause, text, now, tzctx)
	if err != nil {
		return nil, err
	}

	return &Draft{
		Subject:  subject,
		Location: location,
		Start:    start,
		End:      start.Add(dur),
	}, nil
}

// resolveTimeClause resolves the clause before the ':' into a start instant
// and a duration. The clause is whitespace-split into an optional relative
// date token (possibly two words, e.g. "next friday"), a required clock
// token, and an optional trailing "+<duration>" marker.
func resolveTimeClause(clause, input string, now time.Time, tzctx timeutil.Context) (time.Time, time.Duration, error) {
	fields := strings.Fields(clause)
	if len(fields) == 0 {
		return time.Time{}, 0, &ParseError{Input: input, Reason: "missing time clause"}
	}

	dur := DefaultDuration
	if last := fields[len(fields)-1]; strings.HasPrefix(last, "+") {
		d, err := time.ParseDuration(strings.TrimPrefix(last, "+"))
		if err != nil || d <= 0 {
			return time.Time{}, 0, &ParseError{Input: input, Reason: fmt.Sprintf("bad duration marker %q", last)}
		}
		dur = d
		fields = fields[:len(fields)-1]
		if len(fields) == 0 {
			return time.Time{}, 0, &ParseError{Input: input, Reason: "missing time clause"}
		}
	}

	clock := fields[len(fields)-1]
	dateToken := strings.Join(fields[:len(fields)-1], " ")
	if dateToken == "" {
		dateToken = "today"
	}

	date, err := timeutil.ResolveRelativeDate(dateToken, now, tzctx.Location())
	if err != nil {
		return time.Time{}, 0, err
	}
	hour, minute, err := timeutil.ResolveTimeOfDay(clock)
	if err != nil {
		return time.Time{}, 0, err
	}
	start, err := timeutil.Localize(date, hour, minute, tzctx)
	if err != nil {
		return time.Time{}, 0, err
	}
	return start, dur, nil
}

// splitTimeClause finds the separating ':'. A colon flanked by digits on
// both sides belongs to an H:MM clock token and is skipped; a colon preceded
// by a backslash is escaped.
func splitTimeClause(text string) (clause, content string, ok bool) {
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != ':' {
			continue
		}
		if i > 0 && runes[i-1] == '\\' {
			continue
		}
		if i > 0 && i+1 < len(runes) && isDigit(runes[i-1]) && isDigit(runes[i+1]) {
			continue
		}
		return strings.TrimSpace(string(runes[:i])), string(runes[i+1:]), true
	}
	return "", "", false
}

// splitLocation splits content on its last unescaped '@'. No '@' means no
// location.
func splitLocation(content string) (subject, location string) {
	runes := []rune(content)
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] != '@' {
			continue
		}
		if i > 0 && runes[i-1] == '\\' {
			continue
		}
		return string(runes[:i]), string(runes[i+1:])
	}
	return content, ""
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, `\:`, ":")
	s = strings.ReplaceAll(s, `\@`, "@")
	return s
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
