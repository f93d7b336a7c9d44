package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

func timedEvent(start, end time.Time) model.Event {
	return model.Event{Subject: "Coffee", Start: start, End: end}
}

func TestApplyBoundaryEditsTimedToAllDay(t *testing.T) {
	tzctx = timeutil.Context{Configured: time.UTC}

	// A plain --all-day switch with no --start/--end must convert an
	// ordinary timed event into a single-day all-day event.
	e := timedEvent(
		time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC),
	)
	e.AllDay = false

	if err := applyBoundaryEdits(boundaryEdit{allDay: true, allDaySet: true}, &e); err != nil {
		t.Fatalf("all-day switch: %v", err)
	}
	if !e.AllDay {
		t.Error("AllDay not set")
	}
	if !e.Start.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v, want local midnight", e.Start)
	}
	if !e.End.Equal(time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v, want next local midnight", e.End)
	}
}

func TestApplyBoundaryEditsTimedEndingAtMidnight(t *testing.T) {
	tzctx = timeutil.Context{Configured: time.UTC}

	// 23:00 to midnight touches only one calendar day; the exclusive end
	// must not drag in the next one.
	e := timedEvent(
		time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	)
	if err := applyBoundaryEdits(boundaryEdit{allDay: true, allDaySet: true}, &e); err != nil {
		t.Fatalf("all-day switch: %v", err)
	}
	if !e.End.Equal(time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v, want 2025-01-16 midnight", e.End)
	}
}

func TestApplyBoundaryEditsAllDayStartPastEndClamps(t *testing.T) {
	tzctx = timeutil.Context{Configured: time.UTC}

	// Stored single-day all-day event on Jan 15; moving --start past the
	// stored last day without --end clamps to a single day.
	e := timedEvent(
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	)
	e.AllDay = true

	ed := boundaryEdit{start: "2025-01-20", startSet: true}
	if err := applyBoundaryEdits(ed, &e); err != nil {
		t.Fatalf("start move: %v", err)
	}
	if !e.Start.Equal(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)) ||
		!e.End.Equal(time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("boundaries = %v..%v", e.Start, e.End)
	}
}

func TestApplyBoundaryEditsAllDayExplicitRange(t *testing.T) {
	tzctx = timeutil.Context{Configured: time.UTC}

	e := timedEvent(
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	)
	e.AllDay = true

	ed := boundaryEdit{start: "2025-02-03", startSet: true, end: "2025-02-05", endSet: true}
	if err := applyBoundaryEdits(ed, &e); err != nil {
		t.Fatalf("explicit range: %v", err)
	}
	// End date is inclusive on the flag, exclusive on the stored instant.
	if !e.End.Equal(time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", e.End)
	}

	ed = boundaryEdit{start: "2025-02-05", startSet: true, end: "2025-02-03", endSet: true}
	if err := applyBoundaryEdits(ed, &e); err == nil {
		t.Error("explicit reversed range: want error")
	}
}

func TestApplyBoundaryEditsTimedStamps(t *testing.T) {
	tzctx = timeutil.Context{Configured: time.UTC}

	e := timedEvent(
		time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC),
	)

	ed := boundaryEdit{start: "2025-01-16T09:00", startSet: true}
	if err := applyBoundaryEdits(ed, &e); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	if !e.Start.Equal(time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", e.Start)
	}
	// End stays untouched when only --start is given.
	if !e.End.Equal(time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", e.End)
	}
}

func TestApplyBoundaryEditsConflictingOffsets(t *testing.T) {
	tzctx = timeutil.Context{Configured: time.UTC}

	e := timedEvent(
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
	)

	ed := boundaryEdit{
		start: "2025-06-01T12:00:00+02:00", startSet: true,
		end: "2025-06-01T15:00:00+05:00", endSet: true,
	}
	err := applyBoundaryEdits(ed, &e)
	var ae *timeutil.AmbiguousLocalizationError
	if !errors.As(err, &ae) {
		t.Errorf("want AmbiguousLocalizationError, got %v", err)
	}
}

func TestApplyBoundaryEditsNoFlags(t *testing.T) {
	tzctx = timeutil.Context{Configured: time.UTC}

	e := timedEvent(
		time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC),
	)
	before := e
	if err := applyBoundaryEdits(boundaryEdit{}, &e); err != nil {
		t.Fatal(err)
	}
	if !e.Equal(&before) {
		t.Errorf("event changed without boundary flags: %+v", e)
	}
}
