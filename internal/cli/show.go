package cli

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one event in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		e, err := prov.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printEvent(e)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
