package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/plantcare/internal/controller"
)

// List command flags.
var listFlagSearch string

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "Show plant-care reports",
	Long: `Show every report as a card, oldest first. The time of your previous
visit in this login session is shown above the list.

With --search, only reports whose name or location contains the term
are shown (case does not matter). Searching does not count as a visit.

Examples:
  plantcare list
  plantcare list --search kitchen
  plantcare list --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFlagSearch, "search", "s", "", "Only show reports whose name or location contains this")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listFlagSearch != "" {
		return ctx.Dispatch(controller.SetSearchTerm{Term: listFlagSearch})
	}
	return ctx.Dispatch(controller.LoadView{})
}
