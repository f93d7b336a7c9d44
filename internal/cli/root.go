// Package cli wires the command surface: configuration loading, timezone
// context setup and provider construction happen here, so the command
// implementations stay thin calls into the core packages.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/auth"
	"github.com/hamzaafridi/ocalcli/internal/config"
	appLog "github.com/hamzaafridi/ocalcli/internal/log"
	"github.com/hamzaafridi/ocalcli/internal/model"
	"github.com/hamzaafridi/ocalcli/internal/provider"
	"github.com/hamzaafridi/ocalcli/internal/provider/google"
	"github.com/hamzaafridi/ocalcli/internal/provider/graph"
	"github.com/hamzaafridi/ocalcli/internal/timeutil"
)

var (
	flagConfig string
	flagTZ     string
	flagJSON   bool

	cfg   *config.Config
	tzctx timeutil.Context
)

var rootCmd = &cobra.Command{
	Use:           "ocalcli",
	Short:         "Calendar from the command line",
	Long:          "ocalcli manages your calendar from the terminal: agenda views, quick natural-language event entry, search, and ICS import.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagTZ, "tz", "", "IANA timezone overriding configuration and system zone")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON instead of a table")
}

// Execute runs the root command and reports failure via the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ocalcli:", err)
		os.Exit(1)
	}
}

// initApp loads configuration and resolves the timezone context for this
// invocation.
func initApp() error {
	path := flagConfig
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	cfg = c

	tzctx, err = timeutil.NewContext(cfg.Timezone, flagTZ)
	if err != nil {
		return fmt.Errorf("resolve timezone: %w", err)
	}

	appLog.Debug("configuration loaded", "path", path, "provider", cfg.Provider, "zone", tzctx.Location().String())
	return nil
}

// configPath returns the effective config file location for commands that
// write it back.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

// newProvider constructs the configured calendar backend.
func newProvider(ctx context.Context) (provider.Provider, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		opts, err := auth.GoogleClientOptions(ctx, cfg.GoogleCredentials)
		if err != nil {
			return nil, err
		}
		return google.New(ctx, cfg.CalendarID, opts...)
	default:
		httpClient, err := auth.GraphClient(ctx, cfg.ClientID, cfg.Tenant)
		if err != nil {
			return nil, err
		}
		return graph.New(httpClient, graph.WithCalendarID(cfg.CalendarID)), nil
	}
}

// printEvents renders a list of events as a table, or JSON with --json.
func printEvents(events []model.Event) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "START\tEND\tSUBJECT\tLOCATION\tID")
	for i := range events {
		e := &events[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			formatBoundary(e.Start, e.AllDay),
			formatBoundary(e.End, e.AllDay),
			e.Subject, e.Location, e.ID)
	}
	return w.Flush()
}

// printEvent renders one event in detail.
func printEvent(e model.Event) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", e.ID)
	fmt.Fprintf(w, "Subject:\t%s\n", e.Subject)
	fmt.Fprintf(w, "Start:\t%s\n", formatBoundary(e.Start, e.AllDay))
	fmt.Fprintf(w, "End:\t%s\n", formatBoundary(e.End, e.AllDay))
	if e.AllDay {
		fmt.Fprintf(w, "All day:\tyes\n")
	}
	if e.Location != "" {
		fmt.Fprintf(w, "Location:\t%s\n", e.Location)
	}
	if len(e.Attendees) > 0 {
		fmt.Fprintf(w, "Attendees:\t%s\n", joinComma(e.Attendees))
	}
	if e.ReminderMinutes != nil {
		fmt.Fprintf(w, "Reminder:\t%d minutes before\n", *e.ReminderMinutes)
	}
	if e.Recurrence != nil {
		fmt.Fprintf(w, "Repeats:\t%s\n", describeRecurrence(e.Recurrence))
	}
	if e.Body != "" {
		fmt.Fprintf(w, "Body:\t%s\n", e.Body)
	}
	return w.Flush()
}

func formatBoundary(t time.Time, allDay bool) string {
	if allDay {
		return t.In(tzctx.Location()).Format("2006-01-02")
	}
	return t.In(tzctx.Location()).Format("2006-01-02 15:04")
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func describeRecurrence(r *model.Recurrence) string {
	unit := "day"
	if r.Frequency == model.FreqWeekly {
		unit = "week"
	}
	desc := fmt.Sprintf("every %d %s(s)", r.Interval, unit)
	if len(r.ByDay) > 0 {
		names := make([]string, 0, len(r.ByDay))
		for _, d := range r.ByDay {
			names = append(names, d.Name())
		}
		desc += " on " + joinComma(names)
	}
	return desc
}
