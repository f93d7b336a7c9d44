package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

var (
	agendaFrom string
	agendaTo   string
	agendaDays int
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "List upcoming events",
	Long:  "Lists events in a window. Without flags the window is today through the next 7 days in the active timezone.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := agendaWindow()
		if err != nil {
			return err
		}
		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		events, err := prov.Agenda(cmd.Context(), start, end, "")
		if err != nil {
			return err
		}
		return printEvents(events)
	},
}

// agendaWindow resolves the --from/--to/--days flags into instants. The
// default window starts at local midnight today.
func agendaWindow() (time.Time, time.Time, error) {
	loc := tzctx.Location()
	now := time.Now().In(loc)

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if agendaFrom != "" {
		st, err := timeutil.ParseStamp(agendaFrom, tzctx)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = st.Time
	}

	end := start.AddDate(0, 0, agendaDays)
	if agendaTo != "" {
		st, err := timeutil.ParseStamp(agendaTo, tzctx)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = st.Time
	}
	return start, end, nil
}

func init() {
	agendaCmd.Flags().StringVar(&agendaFrom, "from", "", "window start (YYYY-MM-DD or RFC 3339)")
	agendaCmd.Flags().StringVar(&agendaTo, "to", "", "window end (YYYY-MM-DD or RFC 3339)")
	agendaCmd.Flags().IntVar(&agendaDays, "days", 7, "window length in days when --to is not given")
	rootCmd.AddCommand(agendaCmd)
}
