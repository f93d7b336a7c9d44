// Package ics converts ICS files into canonical events for import.
//
// Parsing leans on the library's VTIMEZONE/TZID handling for proper
// time.Time construction; all-day events are detected from the DTSTART
// value form. A VEVENT that cannot be converted (missing fields, recurrence
// outside the supported subset) is logged and skipped so the rest of the
// file still imports.
package ics

import (
	"bytes"
	"errors"
	"strings"

	ical "github.com/arran4/golang-ical"

	appLog "github.com/hamzaafridi/ocalcli/internal/log"
	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/recurrence"
)

// Parse reads an ICS payload and returns the importable events.
func Parse(body []byte) ([]model.Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0)
	skipped := 0

	for _, ve := range cal.Events() {
		ev, cerr := convertVEvent(ve)
		if cerr != nil {
			skipped++
			appLog.Error("ics vevent skipped", cerr, "uid", veUID(ve))
			continue
		}
		events = append(events, ev)
	}

	appLog.Info("ics parse completed", "event_count", len(events), "skipped", skipped)
	return events, nil
}

func veUID(ve *ical.VEvent) string {
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		return p.Value
	}
	return ""
}

func convertVEvent(ve *ical.VEvent) (model.Event, error) {
	var out model.Event

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Subject = p.Value
	}
	if out.Subject == "" {
		return out, errors.New("missing SUMMARY")
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Body = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	out.AllDay = isAllDay(ve)

	var err error
	if out.AllDay {
		out.Start, err = ve.GetAllDayStartAt()
		if err != nil {
			return out, err
		}
		out.End, err = ve.GetAllDayEndAt()
		if err != nil {
			// DTEND is optional for all-day events; default to one day.
			out.End = out.Start.AddDate(0, 0, 1)
		}
	} else {
		out.Start, err = ve.GetStartAt()
		if err != nil {
			return out, err
		}
		out.End, err = ve.GetEndAt()
		if err != nil {
			return out, err
		}
	}

	for _, att := range ve.Attendees() {
		if email := att.Email(); email != "" {
			out.Attendees = append(out.Attendees, email)
		}
	}
	out.Attendees = model.NormalizeAttendees(out.Attendees)

	// Recurrence outside the DAILY/WEEKLY subset fails the whole event;
	// importing it stripped would create a schedule the file did not
	// describe.
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		r, rerr := recurrence.FromRRule(p.Value)
		if rerr != nil {
			return out, rerr
		}
		out.Recurrence = &r
	}

	if verr := out.Validate(); verr != nil {
		return out, verr
	}
	return out, nil
}

// isAllDay reports whether DTSTART carries VALUE=DATE or a bare date form.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}
