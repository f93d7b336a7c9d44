package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/hamzaafridi/ocalcli/internal/model"
)

func fixture(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func TestParse(t *testing.T) {
	body := fixture(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:timed-1",
		"SUMMARY:Coffee with Ali",
		"DESCRIPTION:bring the plans",
		"LOCATION:Cafe Nero",
		"DTSTART:20250115T160000Z",
		"DTEND:20250115T170000Z",
		"ATTENDEE:mailto:ali@example.com",
		"ATTENDEE:mailto:zed@example.com",
		"RRULE:FREQ=WEEKLY;BYDAY=WE",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:allday-1",
		"SUMMARY:Conference",
		"DTSTART;VALUE=DATE:20250120",
		"DTEND;VALUE=DATE:20250122",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	events, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	timed := events[0]
	if timed.Subject != "Coffee with Ali" || timed.Location != "Cafe Nero" || timed.Body != "bring the plans" {
		t.Errorf("timed = %+v", timed)
	}
	if timed.AllDay {
		t.Error("timed event marked all-day")
	}
	wantStart := time.Date(2025, 1, 15, 16, 0, 0, 0, time.UTC)
	if !timed.Start.Equal(wantStart) || !timed.End.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("timed boundaries = %v..%v", timed.Start, timed.End)
	}
	if len(timed.Attendees) != 2 || timed.Attendees[0] != "ali@example.com" {
		t.Errorf("attendees = %v", timed.Attendees)
	}
	if timed.Recurrence == nil || timed.Recurrence.Frequency != model.FreqWeekly ||
		len(timed.Recurrence.ByDay) != 1 || timed.Recurrence.ByDay[0] != model.Wednesday {
		t.Errorf("recurrence = %+v", timed.Recurrence)
	}

	allday := events[1]
	if !allday.AllDay {
		t.Error("all-day event not detected")
	}
	if allday.Start.Format("2006-01-02") != "2025-01-20" {
		t.Errorf("all-day start = %v", allday.Start)
	}
	// ICS DTEND for dates is already exclusive.
	if allday.End.Format("2006-01-02") != "2025-01-22" {
		t.Errorf("all-day end = %v", allday.End)
	}
}

func TestParseSkipsBadEvents(t *testing.T) {
	body := fixture(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:no-summary",
		"DTSTART:20250115T160000Z",
		"DTEND:20250115T170000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:monthly",
		"SUMMARY:Rent",
		"DTSTART:20250101T090000Z",
		"DTEND:20250101T100000Z",
		"RRULE:FREQ=MONTHLY;BYMONTHDAY=1",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:good",
		"SUMMARY:Standup",
		"DTSTART:20250115T090000Z",
		"DTEND:20250115T091500Z",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	events, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(events) != 1 || events[0].Subject != "Standup" {
		t.Errorf("events = %+v", events)
	}
}

func TestParseRejectsEmptyAndGarbage(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Error("empty body: want error")
	}
	if _, err := Parse([]byte("not an ics file")); err == nil {
		t.Error("garbage body: want error")
	}
}

func TestAllDayWithoutEndDefaultsToOneDay(t *testing.T) {
	body := fixture(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:single",
		"SUMMARY:Holiday",
		"DTSTART;VALUE=DATE:20250120",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	events, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.End.Sub(e.Start) != 24*time.Hour {
		t.Errorf("span = %v, want 24h", e.End.Sub(e.Start))
	}
}
