package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/plantcare/internal/errors"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// Import command flags.
var importFlagDryRun bool

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"imp", "restore"},
	Short:   "Replace all reports with those in a file",
	Long: `Replace every report with the reports in FILE, a JSON array as written
by 'plantcare export'. Every report in the file must pass the same checks
as a new report, and ids must be unique; otherwise nothing changes.

Examples:
  plantcare import plants.json
  plantcare import plants.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagDryRun, "dry-run", false, "Check the file without changing anything")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.NewUserErrorWithCause(
			fmt.Sprintf("cannot read %s", args[0]),
			"Check the file path.",
			err,
		)
	}

	reports, err := decodeReports(data, time.Now())
	if err != nil {
		return err
	}

	if importFlagDryRun {
		if !ctx.IsJSON() {
			ctx.CLIFormatter().Success(fmt.Sprintf("%s holds %d valid reports. Nothing was changed.", args[0], len(reports)))
		}
		return nil
	}

	if err := ctx.Store.ReplaceAll(reports); err != nil {
		if errors.Is(err, errors.ErrInvalidID) {
			return errors.NewUserErrorWithCause(err.Error(), errors.Suggestions[errors.ErrInvalidImport], errors.ErrInvalidImport)
		}
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReports(ctx.Store.Reports())
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Imported %d reports from %s", len(reports), args[0]))
	return nil
}

// decodeReports parses an export file and checks every report in it.
func decodeReports(data []byte, now time.Time) ([]model.Report, error) {
	invalid := func(msg string) error {
		return errors.NewUserErrorWithCause(msg, errors.Suggestions[errors.ErrInvalidImport], errors.ErrInvalidImport)
	}

	var reports []model.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, invalid("file is not a JSON array of reports: " + err.Error())
	}

	seen := make(map[int64]bool, len(reports))
	for i, r := range reports {
		if r.ID <= 0 {
			return nil, invalid(fmt.Sprintf("report %d has no id", i+1))
		}
		if seen[r.ID] {
			return nil, invalid(fmt.Sprintf("id %d appears more than once", r.ID))
		}
		seen[r.ID] = true

		results := validate.All(reportFields(r), now)
		if failed := results.Failed(); len(failed) > 0 {
			var msgs []string
			for _, id := range failed {
				msgs = append(msgs, results[id].Message)
			}
			return nil, invalid(fmt.Sprintf("report %d (%s): %s", i+1, r.Name, strings.Join(msgs, " ")))
		}
	}
	return reports, nil
}

func reportFields(r model.Report) model.Fields {
	return model.Fields{
		model.FieldName:      r.Name,
		model.FieldLocation:  r.Location,
		model.FieldFrequency: r.Frequency,
		model.FieldDate:      r.Date,
		model.FieldNotes:     r.Notes,
	}
}
