package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set configuration values",
	Long:  "Writes the given values into the config file. Only flags that are set change; everything else is preserved.",
	RunE: func(cmd *cobra.Command, args []string) error {
		apply := map[string]func(string){
			"provider":           func(v string) { cfg.Provider = v },
			"timezone":           func(v string) { cfg.Timezone = v },
			"client-id":          func(v string) { cfg.ClientID = v },
			"tenant":             func(v string) { cfg.Tenant = v },
			"calendar-id":        func(v string) { cfg.CalendarID = v },
			"google-credentials": func(v string) { cfg.GoogleCredentials = v },
			"refresh":            func(v string) { cfg.RefreshCron = v },
		}

		changed := 0
		for name, set := range apply {
			if cmd.Flags().Changed(name) {
				v, _ := cmd.Flags().GetString(name)
				set(v)
				changed++
			}
		}

		if cmd.Flags().Changed("timezone") {
			if tz, _ := cmd.Flags().GetString("timezone"); tz != "" {
				if _, err := time.LoadLocation(tz); err != nil {
					return fmt.Errorf("unknown timezone %q", tz)
				}
			}
		}

		// No flags means inspection only; do not touch the file.
		if changed > 0 {
			path, err := configPath()
			if err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(os.Stderr, "no values given; current configuration:")
		}
		fmt.Printf("provider: %s\n", cfg.Provider)
		fmt.Printf("timezone: %s\n", cfg.Timezone)
		fmt.Printf("client_id: %s\n", cfg.ClientID)
		fmt.Printf("tenant: %s\n", cfg.Tenant)
		fmt.Printf("calendar_id: %s\n", cfg.CalendarID)
		fmt.Printf("google_credentials: %s\n", cfg.GoogleCredentials)
		fmt.Printf("refresh: %s\n", cfg.RefreshCron)
		return nil
	},
}

func init() {
	configureCmd.Flags().String("provider", "", "calendar backend: graph or google")
	configureCmd.Flags().String("timezone", "", "default IANA timezone")
	configureCmd.Flags().String("client-id", "", "app registration client ID (graph)")
	configureCmd.Flags().String("tenant", "", "directory tenant (graph)")
	configureCmd.Flags().String("calendar-id", "", "non-primary calendar to target")
	configureCmd.Flags().String("google-credentials", "", "path to OAuth client secrets JSON (google)")
	configureCmd.Flags().String("refresh", "", "cron schedule for 'ocalcli watch'")
	rootCmd.AddCommand(configureCmd)
}
