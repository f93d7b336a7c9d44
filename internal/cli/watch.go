package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	appLog "github.com/hamzaafridi/ocalcli/internal/log"
	"github.com/hamzaafridi/ocalcli/internal/provider"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the agenda on a schedule",
	Long:  "Keeps running and reprints the agenda on the cron schedule from the 'refresh' config value. Stop with Ctrl-C.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		prov, err := newProvider(ctx)
		if err != nil {
			return err
		}

		refresh := func() {
			if rerr := printAgendaOnce(ctx, prov); rerr != nil {
				appLog.Error("agenda refresh failed", rerr)
			}
		}

		c := cron.New()
		if _, err := c.AddFunc(cfg.RefreshCron, refresh); err != nil {
			return fmt.Errorf("bad refresh schedule %q: %w", cfg.RefreshCron, err)
		}

		appLog.Info("watch started", "schedule", cfg.RefreshCron)
		refresh()
		c.Start()
		<-ctx.Done()
		<-c.Stop().Done()
		appLog.Info("watch stopped")
		return nil
	},
}

func printAgendaOnce(ctx context.Context, prov provider.Provider) error {
	start, end, err := agendaWindow()
	if err != nil {
		return err
	}
	events, err := prov.Agenda(ctx, start, end, "")
	if err != nil {
		return err
	}
	fmt.Println()
	return printEvents(events)
}

func init() {
	watchCmd.Flags().IntVar(&agendaDays, "days", 7, "window length in days")
	rootCmd.AddCommand(watchCmd)
}
