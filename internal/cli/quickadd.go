package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/quickadd"
)

var quickaddCmd = &cobra.Command{
	Use:     "quickadd <text>",
	Aliases: []string{"qa"},
	Short:   "Add an event from one line of text",
	Long: `Compiles a natural-language line into an event and creates it.

  ocalcli quickadd "Tomorrow 4pm: Coffee with Ali @ Cafe Nero"
  ocalcli quickadd "next friday 9:30 +90m: Sprint review"

The part before the colon is when (optional date word, clock time, optional
+duration; one hour by default), then the subject, then an optional location
after '@'. Use '\:' and '\@' for literal characters.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		draft, err := quickadd.Compile(text, time.Now(), tzctx)
		if err != nil {
			return err
		}

		prov, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}
		created, err := prov.Add(cmd.Context(), draft.Event())
		if err != nil {
			return err
		}
		return printEvent(created)
	},
}

func init() {
	rootCmd.AddCommand(quickaddCmd)
}
