// Package google implements the calendar provider on top of the Google
// Calendar API. Recurrence rules cross this boundary as RRULE text, routed
// through the recurrence translator in both directions.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	appLog "github.com/hamzaafridi/ocalcli/internal/log"
	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/provider"
	"github.com/hamzaafridi/ocalcli/internal/recurrence"
)

const defaultMaxResults = 250

// Client is a Google Calendar provider.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

// New creates a Google provider. calendarID empty means the primary
// calendar.
func New(ctx context.Context, calendarID string, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{svc: svc, calendarID: calendarID}, nil
}

var _ provider.Provider = (*Client)(nil)

func (c *Client) Agenda(ctx context.Context, start, end time.Time, query string) ([]model.Event, error) {
	call := c.svc.Events.List(c.calendarID).
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(defaultMaxResults).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339))
	if query != "" {
		call = call.Q(query)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]model.Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		e, cerr := fromGoogle(item)
		if cerr != nil {
			appLog.Error("skipping unconvertible event", cerr, "id", item.Id)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (model.Event, error) {
	item, err := c.svc.Events.Get(c.calendarID, id).Context(ctx).Do()
	if err != nil {
		return model.Event{}, mapError(err)
	}
	return fromGoogle(item)
}

func (c *Client) Add(ctx context.Context, e model.Event) (model.Event, error) {
	body, err := toGoogle(e)
	if err != nil {
		return model.Event{}, err
	}
	item, err := c.svc.Events.Insert(c.calendarID, body).Context(ctx).Do()
	if err != nil {
		return model.Event{}, mapError(err)
	}
	return fromGoogle(item)
}

func (c *Client) Edit(ctx context.Context, id string, e model.Event) (model.Event, error) {
	body, err := toGoogle(e)
	if err != nil {
		return model.Event{}, err
	}
	item, err := c.svc.Events.Update(c.calendarID, id, body).Context(ctx).Do()
	if err != nil {
		return model.Event{}, mapError(err)
	}
	return fromGoogle(item)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.svc.Events.Delete(c.calendarID, id).Context(ctx).Do(); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) Search(ctx context.Context, query string, start, end time.Time) ([]model.Event, error) {
	if start.IsZero() {
		start = time.Now()
	}
	if end.IsZero() {
		end = start.AddDate(0, 0, 30)
	}
	return c.Agenda(ctx, start, end, query)
}

// toGoogle encodes a canonical event as a calendar API event.
func toGoogle(e model.Event) (*calendar.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	out := &calendar.Event{
		Summary:     e.Subject,
		Description: e.Body,
		Location:    e.Location,
		Start:       toGoogleTime(e.Start, e.AllDay),
		End:         toGoogleTime(e.End, e.AllDay),
	}

	for _, addr := range model.NormalizeAttendees(e.Attendees) {
		out.Attendees = append(out.Attendees, &calendar.EventAttendee{Email: addr})
	}

	if e.ReminderMinutes != nil {
		out.Reminders = &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(*e.ReminderMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}

	if e.Recurrence != nil {
		rr, err := recurrence.ToRRule(*e.Recurrence)
		if err != nil {
			return nil, err
		}
		out.Recurrence = []string{"RRULE:" + rr}
	}

	return out, nil
}

func toGoogleTime(t time.Time, allDay bool) *calendar.EventDateTime {
	if allDay {
		return &calendar.EventDateTime{Date: t.Format("2006-01-02")}
	}
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: t.Location().String(),
	}
}

// fromGoogle decodes a calendar API event into the canonical model.
func fromGoogle(item *calendar.Event) (model.Event, error) {
	if item == nil {
		return model.Event{}, errors.New("google: nil event")
	}

	allDay := item.Start != nil && item.Start.Date != ""

	start, err := fromGoogleTime(item.Start, "start")
	if err != nil {
		return model.Event{}, err
	}
	end, err := fromGoogleTime(item.End, "end")
	if err != nil {
		return model.Event{}, err
	}

	out := model.Event{
		ID:       item.Id,
		Subject:  item.Summary,
		Start:    start,
		End:      end,
		AllDay:   allDay,
		Location: item.Location,
		Body:     item.Description,
	}

	for _, att := range item.Attendees {
		if att != nil && att.Email != "" {
			out.Attendees = append(out.Attendees, att.Email)
		}
	}
	out.Attendees = model.NormalizeAttendees(out.Attendees)

	if item.Reminders != nil && !item.Reminders.UseDefault {
		for _, ov := range item.Reminders.Overrides {
			if ov == nil {
				continue
			}
			minutes := int(ov.Minutes)
			out.ReminderMinutes = &minutes
			break
		}
	}

	for _, line := range item.Recurrence {
		if !strings.HasPrefix(line, "RRULE:") {
			continue
		}
		r, rerr := recurrence.FromRRule(line)
		if rerr != nil {
			return model.Event{}, rerr
		}
		out.Recurrence = &r
		break
	}

	return out, nil
}

func fromGoogleTime(dt *calendar.EventDateTime, field string) (time.Time, error) {
	if dt == nil {
		return time.Time{}, fmt.Errorf("google: event missing %s", field)
	}
	if dt.Date != "" {
		loc := time.UTC
		if dt.TimeZone != "" {
			if l, err := time.LoadLocation(dt.TimeZone); err == nil {
				loc = l
			}
		}
		return time.ParseInLocation("2006-01-02", dt.Date, loc)
	}
	t, err := time.Parse(time.RFC3339, dt.DateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("google: bad %s time %q", field, dt.DateTime)
	}
	if dt.TimeZone != "" {
		if loc, lerr := time.LoadLocation(dt.TimeZone); lerr == nil {
			t = t.In(loc)
		}
	}
	return t, nil
}

// mapError converts googleapi errors into the provider error kinds.
func mapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &provider.AuthError{Detail: gerr.Message}
		case http.StatusNotFound:
			return provider.ErrEventNotFound
		}
		return &provider.APIError{Status: gerr.Code, Detail: gerr.Message}
	}
	return &provider.APIError{Detail: err.Error()}
}
