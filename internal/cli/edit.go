package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/recurrence"
	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

var (
	editSubject     string
	editStart       string
	editEnd         string
	editAllDay      bool
	editLocation    string
	editBody        string
	editAttendees   []string
	editReminder    int
	editRecurrence  string
	editNoReminder  bool
	editNoRecurring bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an event",
	Long: `Edits an event by replacing whole fields. Only the fields whose flags
are set change; --attendee replaces the entire attendee list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		e, err := prov.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("subject") {
			e.Subject = strings.TrimSpace(editSubject)
		}
		if cmd.Flags().Changed("location") {
			e.Location = editLocation
		}
		if cmd.Flags().Changed("body") {
			e.Body = editBody
		}
		if cmd.Flags().Changed("attendee") {
			e.Attendees = editAttendees
		}
		if editNoReminder {
			e.ReminderMinutes = nil
		} else if cmd.Flags().Changed("reminder") {
			minutes := editReminder
			e.ReminderMinutes = &minutes
		}
		if editNoRecurring {
			e.Recurrence = nil
		} else if cmd.Flags().Changed("recurrence") {
			r, rerr := recurrence.FromRRule(editRecurrence)
			if rerr != nil {
				return rerr
			}
			e.Recurrence = &r
		}

		if err := applyBoundaryEdits(boundaryEditFromFlags(cmd), &e); err != nil {
			return err
		}

		updated, err := prov.Edit(cmd.Context(), id, e)
		if err != nil {
			return err
		}
		return printEvent(updated)
	},
}

// boundaryEdit captures the --start/--end/--all-day flag state for one edit.
type boundaryEdit struct {
	start, end       string
	startSet, endSet bool
	allDay           bool
	allDaySet        bool
}

func boundaryEditFromFlags(cmd *cobra.Command) boundaryEdit {
	return boundaryEdit{
		start:     editStart,
		end:       editEnd,
		startSet:  cmd.Flags().Changed("start"),
		endSet:    cmd.Flags().Changed("end"),
		allDay:    editAllDay,
		allDaySet: cmd.Flags().Changed("all-day"),
	}
}

// applyBoundaryEdits recomputes the boundaries when --start, --end or
// --all-day is given. Unchanged sides keep the stored values.
func applyBoundaryEdits(ed boundaryEdit, e *model.Event) error {
	if !ed.startSet && !ed.endSet && !ed.allDaySet {
		return nil
	}

	if ed.allDaySet {
		e.AllDay = ed.allDay
	}

	if e.AllDay {
		// Derive the covered dates from the stored instants, dropping any
		// clock components. End is exclusive, so the last covered day is
		// the date just before it.
		loc := tzctx.Location()
		first := midnightOf(e.Start.In(loc))
		last := midnightOf(e.End.In(loc).Add(-time.Nanosecond))
		var err error
		if ed.startSet {
			first, err = parseDate(ed.start)
			if err != nil {
				return err
			}
		}
		if ed.endSet {
			last, err = parseDate(ed.end)
			if err != nil {
				return err
			}
		} else if last.Before(first) {
			last = first
		}
		start, end, err := timeutil.AllDayRange(first, last, tzctx)
		if err != nil {
			return err
		}
		e.Start, e.End = start, end
		return nil
	}

	start := timeutil.Stamp{Time: e.Start}
	end := timeutil.Stamp{Time: e.End}
	var err error
	if ed.startSet {
		start, err = timeutil.ParseStamp(ed.start, tzctx)
		if err != nil {
			return err
		}
	}
	if ed.endSet {
		end, err = timeutil.ParseStamp(ed.end, tzctx)
		if err != nil {
			return err
		}
	}
	if err := timeutil.CheckRange(start, end); err != nil {
		return err
	}
	e.Start, e.End = start.Time, end.Time
	return nil
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func init() {
	editCmd.Flags().StringVar(&editSubject, "subject", "", "new subject")
	editCmd.Flags().StringVar(&editStart, "start", "", "new start")
	editCmd.Flags().StringVar(&editEnd, "end", "", "new end")
	editCmd.Flags().BoolVar(&editAllDay, "all-day", false, "switch all-day mode on or off")
	editCmd.Flags().StringVar(&editLocation, "location", "", "new location")
	editCmd.Flags().StringVar(&editBody, "body", "", "new body text")
	editCmd.Flags().StringArrayVar(&editAttendees, "attendee", nil, "replacement attendee email (repeatable)")
	editCmd.Flags().IntVar(&editReminder, "reminder", 0, "reminder minutes before start")
	editCmd.Flags().StringVar(&editRecurrence, "recurrence", "", "replacement recurrence rule")
	editCmd.Flags().BoolVar(&editNoReminder, "no-reminder", false, "remove the reminder")
	editCmd.Flags().BoolVar(&editNoRecurring, "no-recurrence", false, "remove the recurrence rule")
	rootCmd.AddCommand(editCmd)
}
