package quickadd

import (
	"errors"
	"testing"
	"time"

	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

func dublinCtx(t *testing.T) (timeutil.Context, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Dublin")
	if err != nil {
		t.Fatal(err)
	}
	return timeutil.Context{Configured: loc}, loc
}

func TestCompile(t *testing.T) {
	ctx, dublin := dublinCtx(t)
	// Tuesday morning.
	now := time.Date(2025, 1, 14, 10, 0, 0, 0, dublin)

	tests := []struct {
		name     string
		input    string
		subject  string
		location string
		start    time.Time
		end      time.Time
	}{
		{
			name:     "date, time, subject and location",
			input:    "Tomorrow 4pm: Coffee with Ali @ Cafe Nero",
			subject:  "Coffee with Ali",
			location: "Cafe Nero",
			start:    time.Date(2025, 1, 15, 16, 0, 0, 0, dublin),
			end:      time.Date(2025, 1, 15, 17, 0, 0, 0, dublin),
		},
		{
			name:    "time only defaults to today",
			input:   "9:30: Standup",
			subject: "Standup",
			start:   time.Date(2025, 1, 14, 9, 30, 0, 0, dublin),
			end:     time.Date(2025, 1, 14, 10, 30, 0, 0, dublin),
		},
		{
			name:    "two-word date token",
			input:   "next friday 9:30am: Sprint review",
			subject: "Sprint review",
			// Bare friday from Tuesday Jan 14 is Jan 17; next adds a week.
			start: time.Date(2025, 1, 24, 9, 30, 0, 0, dublin),
			end:   time.Date(2025, 1, 24, 10, 30, 0, 0, dublin),
		},
		{
			name:    "explicit duration",
			input:   "tomorrow 2pm +90m: Planning",
			subject: "Planning",
			start:   time.Date(2025, 1, 15, 14, 0, 0, 0, dublin),
			end:     time.Date(2025, 1, 15, 15, 30, 0, 0, dublin),
		},
		{
			name:     "escaped separators in content",
			input:    `tomorrow 4pm: Deploy v2\: rollout @ Room \@HQ`,
			subject:  "Deploy v2: rollout",
			location: "@HQ",
			start:    time.Date(2025, 1, 15, 16, 0, 0, 0, dublin),
			end:      time.Date(2025, 1, 15, 17, 0, 0, 0, dublin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Compile(tt.input, now, ctx)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.input, err)
			}
			if d.Subject != tt.subject {
				t.Errorf("Subject = %q, want %q", d.Subject, tt.subject)
			}
			if d.Location != tt.location {
				t.Errorf("Location = %q, want %q", d.Location, tt.location)
			}
			if !d.Start.Equal(tt.start) {
				t.Errorf("Start = %v, want %v", d.Start, tt.start)
			}
			if !d.End.Equal(tt.end) {
				t.Errorf("End = %v, want %v", d.End, tt.end)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	ctx, dublin := dublinCtx(t)
	now := time.Date(2025, 1, 14, 10, 0, 0, 0, dublin)

	t.Run("missing time clause", func(t *testing.T) {
		var pe *ParseError
		if _, err := Compile("just some words", now, ctx); !errors.As(err, &pe) {
			t.Errorf("want ParseError, got %v", err)
		}
	})

	t.Run("empty subject", func(t *testing.T) {
		var pe *ParseError
		if _, err := Compile("tomorrow 4pm:   ", now, ctx); !errors.As(err, &pe) {
			t.Errorf("want ParseError, got %v", err)
		}
	})

	t.Run("bad duration marker", func(t *testing.T) {
		var pe *ParseError
		if _, err := Compile("tomorrow 4pm +later: Thing", now, ctx); !errors.As(err, &pe) {
			t.Errorf("want ParseError, got %v", err)
		}
	})

	t.Run("bare hour is ambiguous", func(t *testing.T) {
		var ae *timeutil.AmbiguousTimeError
		if _, err := Compile("tomorrow 4: Thing", now, ctx); !errors.As(err, &ae) {
			t.Errorf("want AmbiguousTimeError, got %v", err)
		}
	})

	t.Run("unknown date word", func(t *testing.T) {
		var ue *timeutil.UnrecognizedDateError
		if _, err := Compile("someday 4pm: Thing", now, ctx); !errors.As(err, &ue) {
			t.Errorf("want UnrecognizedDateError, got %v", err)
		}
	})
}

func TestSplitTimeClause(t *testing.T) {
	tests := []struct {
		input   string
		clause  string
		content string
		ok      bool
	}{
		{"tomorrow 4pm: Coffee", "tomorrow 4pm", " Coffee", true},
		// The clock colon is flanked by digits and must not split.
		{"9:30: Standup", "9:30", " Standup", true},
		{`tomorrow 4pm\: nope`, "", "", false},
		{"no separator here", "", "", false},
	}
	for _, tt := range tests {
		clause, content, ok := splitTimeClause(tt.input)
		if ok != tt.ok || clause != tt.clause || content != tt.content {
			t.Errorf("splitTimeClause(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.input, clause, content, ok, tt.clause, tt.content, tt.ok)
		}
	}
}

func TestDraftEvent(t *testing.T) {
	ctx, dublin := dublinCtx(t)
	now := time.Date(2025, 1, 14, 10, 0, 0, 0, dublin)

	d, err := Compile("tomorrow 4pm: Coffee @ Nero", now, ctx)
	if err != nil {
		t.Fatal(err)
	}
	e := d.Event()
	if err := e.Validate(); err != nil {
		t.Fatalf("compiled event does not validate: %v", err)
	}
	if e.ID != "" || e.AllDay || e.Recurrence != nil || e.ReminderMinutes != nil {
		t.Error("draft must only fill subject, location and boundaries")
	}
}
