// Package recurrence translates the restricted internal recurrence model to
// and from its two external encodings: the service's pattern payload and the
// RRULE subset text used for file interchange.
//
// Decoding is strict. Any key, frequency or field outside the supported
// DAILY/WEEKLY subset rejects the whole input; silently dropping an
// unsupported clause would produce a recurrence the user did not ask for.
package recurrence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teambition/rrule-go"

	"github.com/hamzaafridi/ocalcli/internal/model"
)

// UnsupportedError reports a recurrence construct outside the supported
// subset. Input carries the offending text or field for diagnostics.
type UnsupportedError struct {
	Input  string
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported recurrence %q: %s", e.Input, e.Reason)
}

// Pattern is the wire encoding of a recurrence rule (the service's pattern
// payload, distinct from RRULE text).
type Pattern struct {
	Pattern PatternRule  `json:"pattern"`
	Range   PatternRange `json:"range"`
}

// PatternRule mirrors the service's pattern object.
type PatternRule struct {
	Type       string   `json:"type"`
	Interval   int      `json:"interval"`
	DaysOfWeek []string `json:"daysOfWeek,omitempty"`
}

// PatternRange mirrors the service's range object. Only open-ended rules are
// in the supported subset.
type PatternRange struct {
	Type string `json:"type"`
}

const rangeNoEnd = "noEnd"

// ToPattern encodes a recurrence as a pattern payload. Day order in the
// output is canonical Monday-first.
func ToPattern(r model.Recurrence) (Pattern, error) {
	if err := r.Validate(); err != nil {
		return Pattern{}, &UnsupportedError{Input: string(r.Frequency), Reason: err.Error()}
	}
	rule := PatternRule{
		Type:     strings.ToLower(string(r.Frequency)),
		Interval: r.Interval,
	}
	for _, d := range model.NormalizeDays(r.ByDay) {
		rule.DaysOfWeek = append(rule.DaysOfWeek, d.Name())
	}
	return Pattern{Pattern: rule, Range: PatternRange{Type: rangeNoEnd}}, nil
}

// FromPattern decodes a pattern payload, rejecting anything outside the
// subset: unknown frequencies, bounded ranges, unknown day names.
func FromPattern(p Pattern) (model.Recurrence, error) {
	var freq model.Frequency
	switch strings.ToLower(p.Pattern.Type) {
	case "daily":
		freq = model.FreqDaily
	case "weekly":
		freq = model.FreqWeekly
	default:
		return model.Recurrence{}, &UnsupportedError{Input: p.Pattern.Type, Reason: "frequency outside DAILY/WEEKLY subset"}
	}

	if p.Range.Type != "" && p.Range.Type != rangeNoEnd {
		return model.Recurrence{}, &UnsupportedError{Input: p.Range.Type, Reason: "bounded recurrence ranges are not supported"}
	}

	interval := p.Pattern.Interval
	if interval == 0 {
		interval = 1
	}
	if interval < 1 {
		return model.Recurrence{}, &UnsupportedError{Input: strconv.Itoa(p.Pattern.Interval), Reason: "interval must be positive"}
	}

	var days []model.Weekday
	for _, name := range p.Pattern.DaysOfWeek {
		d, ok := model.WeekdayFromName(name)
		if !ok {
			return model.Recurrence{}, &UnsupportedError{Input: name, Reason: "unknown day of week"}
		}
		days = append(days, d)
	}
	if freq == model.FreqDaily && len(days) > 0 {
		return model.Recurrence{}, &UnsupportedError{Input: p.Pattern.Type, Reason: "daysOfWeek is only valid for weekly patterns"}
	}

	out := model.Recurrence{Frequency: freq, Interval: interval, ByDay: model.NormalizeDays(days)}
	if err := out.Validate(); err != nil {
		return model.Recurrence{}, &UnsupportedError{Input: p.Pattern.Type, Reason: err.Error()}
	}
	return out, nil
}

// rruleKeys is the exhaustive set of keys the RRULE subset admits. Anything
// else in the input rejects the whole string.
var rruleKeys = map[string]bool{"FREQ": true, "INTERVAL": true, "BYDAY": true}

// rruleDayMap translates rrule-go weekday constants; positional forms like
// "2MO" produce values outside this map and are rejected.
var rruleDayMap = map[rrule.Weekday]model.Weekday{
	rrule.MO: model.Monday,
	rrule.TU: model.Tuesday,
	rrule.WE: model.Wednesday,
	rrule.TH: model.Thursday,
	rrule.FR: model.Friday,
	rrule.SA: model.Saturday,
	rrule.SU: model.Sunday,
}

// FromRRule decodes an RRULE subset string, e.g.
// "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE". A leading "RRULE:" marker is
// tolerated. The key set is checked before parsing so that COUNT, UNTIL,
// BYMONTHDAY and every other construct outside the subset fails outright.
func FromRRule(s string) (model.Recurrence, error) {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "RRULE:"))
	if text == "" {
		return model.Recurrence{}, &UnsupportedError{Input: s, Reason: "empty rule"}
	}

	sawFreq := false
	for _, attr := range strings.Split(text, ";") {
		key, _, ok := strings.Cut(attr, "=")
		if !ok {
			return model.Recurrence{}, &UnsupportedError{Input: s, Reason: fmt.Sprintf("malformed clause %q", attr)}
		}
		if !rruleKeys[key] {
			return model.Recurrence{}, &UnsupportedError{Input: s, Reason: fmt.Sprintf("key %s outside supported subset", key)}
		}
		if key == "FREQ" {
			sawFreq = true
		}
	}
	if !sawFreq {
		return model.Recurrence{}, &UnsupportedError{Input: s, Reason: "missing FREQ"}
	}

	opt, err := rrule.StrToROption(text)
	if err != nil {
		return model.Recurrence{}, &UnsupportedError{Input: s, Reason: err.Error()}
	}

	var freq model.Frequency
	switch opt.Freq {
	case rrule.DAILY:
		freq = model.FreqDaily
	case rrule.WEEKLY:
		freq = model.FreqWeekly
	default:
		return model.Recurrence{}, &UnsupportedError{Input: s, Reason: "frequency outside DAILY/WEEKLY subset"}
	}

	interval := opt.Interval
	if interval == 0 {
		interval = 1
	}
	if interval < 1 {
		return model.Recurrence{}, &UnsupportedError{Input: s, Reason: "interval must be positive"}
	}

	var days []model.Weekday
	for _, w := range opt.Byweekday {
		d, ok := rruleDayMap[w]
		if !ok {
			return model.Recurrence{}, &UnsupportedError{Input: s, Reason: "positional BYDAY values are not supported"}
		}
		days = append(days, d)
	}
	if freq == model.FreqDaily && len(days) > 0 {
		return model.Recurrence{}, &UnsupportedError{Input: s, Reason: "BYDAY is only valid with FREQ=WEEKLY"}
	}

	out := model.Recurrence{Frequency: freq, Interval: interval, ByDay: model.NormalizeDays(days)}
	if err := out.Validate(); err != nil {
		return model.Recurrence{}, &UnsupportedError{Input: s, Reason: err.Error()}
	}
	return out, nil
}

// ToRRule encodes a recurrence as canonical RRULE subset text: INTERVAL is
// omitted when 1, BYDAY is emitted Monday-first, so equal recurrences always
// produce byte-identical strings.
func ToRRule(r model.Recurrence) (string, error) {
	if err := r.Validate(); err != nil {
		return "", &UnsupportedError{Input: string(r.Frequency), Reason: err.Error()}
	}
	parts := []string{"FREQ=" + string(r.Frequency)}
	if r.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(r.Interval))
	}
	if days := model.NormalizeDays(r.ByDay); len(days) > 0 {
		tokens := make([]string, len(days))
		for i, d := range days {
			tokens[i] = d.Token()
		}
		parts = append(parts, "BYDAY="+strings.Join(tokens, ","))
	}
	return strings.Join(parts, ";"), nil
}
