package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/ics"
	appLog "github.com/hamzaafridi/ocalcli/internal/log"
)

var importCmd = &cobra.Command{
	Use:   "import <file.ics>",
	Short: "Import events from an ICS file",
	Long:  "Parses an ICS file and creates its events on the configured calendar. Events that fail to create are reported and skipped.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		events, err := ics.Parse(body)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		if len(events) == 0 {
			fmt.Println("No importable events found.")
			return nil
		}

		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}

		created, failed := 0, 0
		for i := range events {
			if _, aerr := prov.Add(cmd.Context(), events[i]); aerr != nil {
				failed++
				appLog.Error("import failed for event", aerr, "subject", events[i].Subject)
				continue
			}
			created++
		}

		fmt.Printf("Imported %d event(s)", created)
		if failed > 0 {
			fmt.Printf(", %d failed", failed)
		}
		fmt.Println(".")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
