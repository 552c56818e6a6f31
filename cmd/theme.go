package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/output"
)

// Theme command flags.
var themeFlagShow bool

// themeCmd represents the theme command.
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Switch between light and dark mode",
	Long: `Switch between light and dark mode. The choice is saved and used by
both the command line and the interactive screen.

Examples:
  plantcare theme
  plantcare theme --show`,
	Args: cobra.NoArgs,
	RunE: runTheme,
}

func init() {
	themeCmd.Flags().BoolVar(&themeFlagShow, "show", false, "Print the current theme without changing it")

	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	if !themeFlagShow {
		if err := ctx.Dispatch(controller.ToggleTheme{}); err != nil {
			return err
		}
	}

	dark := ctx.Controller.Dark()
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTheme(dark)
	}

	cli := ctx.CLIFormatter()
	if themeFlagShow {
		cli.Println("Theme: " + output.ThemeName(dark))
		return nil
	}
	cli.Success("Switched to " + output.ThemeName(dark) + " mode.")
	return nil
}
