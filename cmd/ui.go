package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/plantcare/internal/tui"
)

// uiCmd represents the ui command.
var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Open the interactive screen",
	Long: `Open the interactive screen: a report form on the left, the searchable
list of report cards on the right.

Keys:
  tab / shift+tab   move between fields, search and the card list
  enter             save the report
  ↑/↓ and d         pick a card and delete it
  ctrl+t            toggle dark mode
  esc               quit`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	return tui.Run(ctx.RequestContext(), ctx.Controller, tui.Options{
		BannerTimeout: ctx.Config.UI.BannerTimeout,
	})
}
