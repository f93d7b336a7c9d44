package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

var (
	searchFrom string
	searchTo   string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search events by text",
	Long:  "Searches subject, body and location. Without --from/--to the window is the next 30 days.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		var start, end time.Time
		if searchFrom != "" {
			st, err := timeutil.ParseStamp(searchFrom, tzctx)
			if err != nil {
				return err
			}
			start = st.Time
		}
		if searchTo != "" {
			st, err := timeutil.ParseStamp(searchTo, tzctx)
			if err != nil {
				return err
			}
			end = st.Time
		}

		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		events, err := prov.Search(cmd.Context(), query, start, end)
		if err != nil {
			return err
		}
		return printEvents(events)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "window start (YYYY-MM-DD or RFC 3339)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "window end (YYYY-MM-DD or RFC 3339)")
	rootCmd.AddCommand(searchCmd)
}
