package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/plantcare/internal/errors"
	"github.com/manav03panchal/plantcare/internal/output"
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export [FILE]",
	Aliases: []string{"ex", "dump"},
	Short:   "Write all reports as JSON",
	Long: `Write every report as a JSON array, the same layout the reports are
stored in. Without FILE the array goes to standard output.

Examples:
  plantcare export
  plantcare export plants.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	reports := ctx.Store.Reports()

	if len(args) == 0 {
		return ctx.JSONFormatter().PrintReports(reports)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return errors.NewUserErrorWithCause(
			fmt.Sprintf("cannot create %s", args[0]),
			"Check that the directory exists and is writable.",
			err,
		)
	}
	defer f.Close()

	fileOut := output.NewFormatter()
	fileOut.Writer = f
	if err := output.NewJSONFormatter(fileOut).PrintReports(reports); err != nil {
		return errors.NewSystemErrorWithOp("export", "cannot write export file", err)
	}
	if err := f.Close(); err != nil {
		return errors.NewSystemErrorWithOp("export", "cannot write export file", err)
	}

	if !ctx.IsJSON() {
		ctx.CLIFormatter().Success(fmt.Sprintf("Exported %d reports to %s", len(reports), args[0]))
	}
	return nil
}
