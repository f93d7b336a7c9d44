package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an event",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}

		if !deleteYes {
			e, gerr := prov.Get(cmd.Context(), id)
			if gerr != nil {
				return gerr
			}
			fmt.Fprintf(os.Stderr, "Delete %q (%s)? [y/N] ", e.Subject, formatBoundary(e.Start, e.AllDay))
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Fprintln(os.Stderr, "aborted")
				return nil
			}
		}

		if err := prov.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")
	rootCmd.AddCommand(deleteCmd)
}
