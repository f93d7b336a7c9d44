// Package provider defines the calendar backend interface and the error
// kinds shared by its implementations.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hamzaafridi/ocalcli/internal/model"
)

// ErrEventNotFound reports a lookup for an event the service does not know.
var ErrEventNotFound = errors.New("event not found")

// AuthError reports a failed or missing authentication.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Detail
}

// APIError reports a non-auth service failure.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Detail)
	}
	return "api request failed: " + e.Detail
}

// Provider is a calendar backend. All operations speak the canonical model;
// wire conversion is each implementation's concern.
//
// Edit is whole-value replacement: the caller sends a fully resolved event,
// never a partial merge.
type Provider interface {
	// Agenda returns events overlapping [start, end), optionally filtered
	// by a free-text query, ordered by start.
	Agenda(ctx context.Context, start, end time.Time, query string) ([]model.Event, error)

	// Get returns one event by ID, or ErrEventNotFound.
	Get(ctx context.Context, id string) (model.Event, error)

	// Add creates the event and returns it with its service-assigned ID.
	Add(ctx context.Context, e model.Event) (model.Event, error)

	// Edit replaces the stored event's fields with e and returns the
	// updated event.
	Edit(ctx context.Context, id string, e model.Event) (model.Event, error)

	// Delete removes the event, or returns ErrEventNotFound.
	Delete(ctx context.Context, id string) error

	// Search finds events matching query, optionally bounded in time.
	Search(ctx context.Context, query string, start, end time.Time) ([]model.Event, error)
}
