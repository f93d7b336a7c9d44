// Package wire defines the event payload exchanged with the remote calendar
// service (and used for file interchange) plus the bidirectional mapping to
// the canonical model.
//
// The mapping is an explicit struct-to-struct conversion per direction, so
// adding a canonical field shows up as a compile-visible omission here
// rather than a silent drop.
package wire

import (
	"fmt"
	"time"

	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/recurrence"
)

// DateTime is the wire form of an event boundary: a date-time string plus
// the zone it is expressed in. For all-day events DateTime holds a bare
// calendar date.
type DateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Event is the wire payload. Attendees are an ordered list on the wire but
// carry set semantics internally; consumers must not rely on the order.
type Event struct {
	ID           string              `json:"id,omitempty"`
	Subject      string              `json:"subject"`
	Start        *DateTime           `json:"start"`
	End          *DateTime           `json:"end"`
	IsAllDay     bool                `json:"isAllDay"`
	Location     string              `json:"location,omitempty"`
	Body         string              `json:"body,omitempty"`
	Attendees    []string            `json:"attendees,omitempty"`
	IsReminderOn bool                `json:"isReminderOn"`
	Reminder     int                 `json:"reminderMinutesBeforeStart,omitempty"`
	Recurrence   *recurrence.Pattern `json:"recurrence,omitempty"`
}

// MalformedPayloadError reports a wire payload that cannot be decoded.
// Defaults are a drafting-time concept; decoding never substitutes them.
type MalformedPayloadError struct {
	Field  string
	Detail string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: field %q: %s", e.Field, e.Detail)
}

const (
	dateLayout = "2006-01-02"
)

// FromEvent encodes a canonical event as a wire payload.
func FromEvent(e model.Event) (*Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	out := &Event{
		ID:        e.ID,
		Subject:   e.Subject,
		IsAllDay:  e.AllDay,
		Location:  e.Location,
		Body:      e.Body,
		Attendees: model.NormalizeAttendees(e.Attendees),
	}

	out.Start = encodeBoundary(e.Start, e.AllDay)
	out.End = encodeBoundary(e.End, e.AllDay)

	if e.ReminderMinutes != nil {
		out.IsReminderOn = true
		out.Reminder = *e.ReminderMinutes
	}

	if e.Recurrence != nil {
		p, err := recurrence.ToPattern(*e.Recurrence)
		if err != nil {
			return nil, err
		}
		out.Recurrence = &p
	}

	return out, nil
}

// ToEvent decodes a wire payload into a canonical event. Payloads missing
// subject, start or end fail with MalformedPayloadError.
func ToEvent(w *Event) (model.Event, error) {
	if w == nil {
		return model.Event{}, &MalformedPayloadError{Field: "event", Detail: "payload is empty"}
	}
	if w.Subject == "" {
		return model.Event{}, &MalformedPayloadError{Field: "subject", Detail: "required field is missing"}
	}

	start, err := decodeBoundary(w.Start, w.IsAllDay, "start")
	if err != nil {
		return model.Event{}, err
	}
	end, err := decodeBoundary(w.End, w.IsAllDay, "end")
	if err != nil {
		return model.Event{}, err
	}

	out := model.Event{
		ID:        w.ID,
		Subject:   w.Subject,
		Start:     start,
		End:       end,
		AllDay:    w.IsAllDay,
		Location:  w.Location,
		Body:      w.Body,
		Attendees: model.NormalizeAttendees(w.Attendees),
	}

	if w.IsReminderOn {
		if w.Reminder < 0 {
			return model.Event{}, &MalformedPayloadError{Field: "reminderMinutesBeforeStart", Detail: "must be non-negative"}
		}
		minutes := w.Reminder
		out.ReminderMinutes = &minutes
	}

	if w.Recurrence != nil {
		r, err := recurrence.FromPattern(*w.Recurrence)
		if err != nil {
			return model.Event{}, err
		}
		out.Recurrence = &r
	}

	if err := out.Validate(); err != nil {
		return model.Event{}, &MalformedPayloadError{Field: "event", Detail: err.Error()}
	}
	return out, nil
}

// encodeBoundary renders one start/end value. Timed events carry RFC 3339
// instants so explicit offsets survive even when the zone has no IANA name;
// all-day events carry the bare calendar date interpreted in TimeZone.
func encodeBoundary(t time.Time, allDay bool) *DateTime {
	if allDay {
		return &DateTime{DateTime: t.Format(dateLayout), TimeZone: zoneName(t.Location())}
	}
	return &DateTime{DateTime: t.Format(time.RFC3339), TimeZone: zoneName(t.Location())}
}

func decodeBoundary(dt *DateTime, allDay bool, field string) (time.Time, error) {
	if dt == nil || dt.DateTime == "" {
		return time.Time{}, &MalformedPayloadError{Field: field, Detail: "required field is missing"}
	}

	loc := decodeLocation(dt.TimeZone)

	if allDay {
		t, err := time.ParseInLocation(dateLayout, dt.DateTime, loc)
		if err != nil {
			return time.Time{}, &MalformedPayloadError{Field: field, Detail: fmt.Sprintf("bad date %q", dt.DateTime)}
		}
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, dt.DateTime)
	if err != nil {
		return time.Time{}, &MalformedPayloadError{Field: field, Detail: fmt.Sprintf("bad instant %q", dt.DateTime)}
	}
	// Re-express in the named zone when we have one; the instant is
	// unchanged either way.
	if dt.TimeZone != "" {
		t = t.In(loc)
	}
	return t, nil
}

// zoneName names a location for the wire. Fixed-offset zones parsed from
// RFC 3339 input have no useful name; the offset inside the instant string
// carries the information instead.
func zoneName(loc *time.Location) string {
	if loc == nil {
		return "UTC"
	}
	return loc.String()
}

// decodeLocation is total over anything zoneName produces.
func decodeLocation(name string) *time.Location {
	switch name {
	case "", "UTC":
		return time.UTC
	case "Local":
		return time.Local
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
