// Package graph implements the calendar provider against the Graph-style
// HTTP API. It is a thin consumer of the wire mapper plus a network call;
// every payload goes through internal/wire in both directions.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	appLog "github.com/hamzaafridi/ocalcli/internal/log"
	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/provider"
	"github.com/hamzaafridi/ocalcli/internal/wire"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Client is a Graph calendar provider. The HTTP client is expected to carry
// authentication (an oauth2 transport); Client itself never touches tokens.
type Client struct {
	http       *http.Client
	baseURL    string
	calendarID string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-default API root (tests use this
// with httptest servers).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCalendarID targets a specific calendar instead of the primary one.
func WithCalendarID(id string) Option {
	return func(c *Client) { c.calendarID = id }
}

// New creates a Graph provider on top of the given authenticated HTTP
// client. A nil client gets a plain 15-second-timeout client, which only
// makes sense against unauthenticated test servers.
func New(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	c := &Client{
		http:    httpClient,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ provider.Provider = (*Client)(nil)

// eventsPath returns the events collection path for the selected calendar.
func (c *Client) eventsPath() string {
	if c.calendarID == "" {
		return "/me/calendar/events"
	}
	return "/me/calendars/" + url.PathEscape(c.calendarID) + "/events"
}

func (c *Client) viewPath() string {
	if c.calendarID == "" {
		return "/me/calendar/calendarView"
	}
	return "/me/calendars/" + url.PathEscape(c.calendarID) + "/calendarView"
}

// listResponse is the collection envelope.
type listResponse struct {
	Value []*wire.Event `json:"value"`
}

func (c *Client) Agenda(ctx context.Context, start, end time.Time, query string) ([]model.Event, error) {
	q := url.Values{}
	q.Set("startDateTime", start.Format(time.RFC3339))
	q.Set("endDateTime", end.Format(time.RFC3339))
	q.Set("$orderby", "start/dateTime")

	var header http.Header
	if query != "" {
		q.Set("$search", fmt.Sprintf("%q", query))
		header = http.Header{"ConsistencyLevel": []string{"eventual"}}
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, c.viewPath()+"?"+q.Encode(), header, nil, &resp); err != nil {
		return nil, err
	}
	return c.decodeList(resp.Value), nil
}

func (c *Client) Get(ctx context.Context, id string) (model.Event, error) {
	var payload wire.Event
	if err := c.do(ctx, http.MethodGet, c.eventsPath()+"/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return model.Event{}, err
	}
	return wire.ToEvent(&payload)
}

func (c *Client) Add(ctx context.Context, e model.Event) (model.Event, error) {
	body, err := wire.FromEvent(e)
	if err != nil {
		return model.Event{}, err
	}
	var payload wire.Event
	if err := c.do(ctx, http.MethodPost, c.eventsPath(), nil, body, &payload); err != nil {
		return model.Event{}, err
	}
	return wire.ToEvent(&payload)
}

func (c *Client) Edit(ctx context.Context, id string, e model.Event) (model.Event, error) {
	body, err := wire.FromEvent(e)
	if err != nil {
		return model.Event{}, err
	}
	var payload wire.Event
	if err := c.do(ctx, http.MethodPatch, c.eventsPath()+"/"+url.PathEscape(id), nil, body, &payload); err != nil {
		return model.Event{}, err
	}
	return wire.ToEvent(&payload)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.eventsPath()+"/"+url.PathEscape(id), nil, nil, nil)
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

// decodeList converts wire payloads, logging and skipping the ones that do
// not decode so one bad event cannot hide the rest of the agenda.
func (c *Client) decodeList(items []*wire.Event) []model.Event {
	out := make([]model.Event, 0, len(items))
	for _, item := range items {
		e, err := wire.ToEvent(item)
		if err != nil {
			appLog.Error("skipping undecodable event", err, "id", item.ID)
			continue
		}
		out = append(out, e)
	}
	return out
}

// errorResponse is the service's error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs one request, encoding body as JSON when present and decoding
// into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &provider.APIError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &provider.AuthError{Detail: "token rejected; run 'ocalcli login' to re-authenticate"}
	case http.StatusNotFound:
		return provider.ErrEventNotFound
	}

	detail := resp.Status
	var envelope errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		detail = envelope.Error.Message
	}
	return &provider.APIError{Status: resp.StatusCode, Detail: detail}
}
