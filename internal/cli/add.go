package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/recurrence"
	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

var (
	addStart      string
	addEnd        string
	addAllDay     bool
	addLocation   string
	addBody       string
	addAttendees  []string
	addReminder   int
	addRecurrence string
)

var addCmd = &cobra.Command{
	Use:   "add <subject>",
	Short: "Add an event",
	Long: `Adds an event with explicit fields.

Timed events take --start and --end as "YYYY-MM-DDTHH:MM" (localized under
the active timezone) or full RFC 3339 with offset. All-day events take
--start and --end as bare dates, end inclusive; a missing --end means a
single-day event.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := model.Event{
			Subject:   strings.Join(args, " "),
			Location:  addLocation,
			Body:      addBody,
			Attendees: addAttendees,
			AllDay:    addAllDay,
		}

		if err := resolveBoundaries(cmd, &e); err != nil {
			return err
		}

		if cmd.Flags().Changed("reminder") {
			minutes := addReminder
			e.ReminderMinutes = &minutes
		}
		if addRecurrence != "" {
			r, err := recurrence.FromRRule(addRecurrence)
			if err != nil {
				return err
			}
			e.Recurrence = &r
		}

		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		created, err := prov.Add(cmd.Context(), e)
		if err != nil {
			return err
		}
		return printEvent(created)
	},
}

// resolveBoundaries fills Start and End from the --start/--end flags
// according to the all-day mode.
func resolveBoundaries(cmd *cobra.Command, e *model.Event) error {
	if addStart == "" {
		return fmt.Errorf("--start is required")
	}

	if e.AllDay {
		first, err := parseDate(addStart)
		if err != nil {
			return err
		}
		last := first
		if addEnd != "" {
			last, err = parseDate(addEnd)
			if err != nil {
				return err
			}
		}
		start, end, err := timeutil.AllDayRange(first, last, tzctx)
		if err != nil {
			return err
		}
		e.Start, e.End = start, end
		return nil
	}

	start, err := timeutil.ParseStamp(addStart, tzctx)
	if err != nil {
		return err
	}
	end := timeutil.Stamp{Time: start.Time.Add(time.Hour), ExplicitOffset: start.ExplicitOffset}
	if addEnd != "" {
		end, err = timeutil.ParseStamp(addEnd, tzctx)
		if err != nil {
			return err
		}
		if err := timeutil.CheckRange(start, end); err != nil {
			return err
		}
	}
	e.Start, e.End = start.Time, end.Time
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, tzctx.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

func init() {
	addCmd.Flags().StringVar(&addStart, "start", "", "event start")
	addCmd.Flags().StringVar(&addEnd, "end", "", "event end (timed: default start+1h; all-day: last day, inclusive)")
	addCmd.Flags().BoolVar(&addAllDay, "all-day", false, "create an all-day event; --start/--end are bare dates")
	addCmd.Flags().StringVar(&addLocation, "location", "", "event location")
	addCmd.Flags().StringVar(&addBody, "body", "", "event body text")
	addCmd.Flags().StringArrayVar(&addAttendees, "attendee", nil, "attendee email (repeatable)")
	addCmd.Flags().IntVar(&addReminder, "reminder", 0, "reminder minutes before start")
	addCmd.Flags().StringVar(&addRecurrence, "recurrence", "", "recurrence rule, e.g. \"RRULE:FREQ=WEEKLY;BYDAY=MO,WE\"")
	rootCmd.AddCommand(addCmd)
}
