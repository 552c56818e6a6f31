package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// Add command flags.
var (
	addFlagName      string
	addFlagLocation  string
	addFlagFrequency string
	addFlagDate      string
	addFlagNotes     string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"new", "a"},
	Short:   "Add a plant-care report",
	Long: `Add a plant-care report. Every field is checked before anything is
saved; invalid fields are listed with the reason.

Without flags on a terminal, a form asks for each field.

Examples:
  plantcare add --name Fern --location Kitchen --frequency 7 \
      --date 2024-06-14 --notes "Needs indirect light daily"
  plantcare add -n Cactus -l "Bedroom window" -q 21 -d "3 days ago" \
      --notes "Barely needs any water at all"
  plantcare add`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFlagName, "name", "n", "", "Plant name (at least 3 characters)")
	addCmd.Flags().StringVarP(&addFlagLocation, "location", "l", "", "Where the plant lives")
	addCmd.Flags().StringVarP(&addFlagFrequency, "frequency", "q", "", "Days between waterings")
	addCmd.Flags().StringVarP(&addFlagDate, "date", "d", "", "Last watered: YYYY-MM-DD or e.g. 'yesterday'")
	addCmd.Flags().StringVar(&addFlagNotes, "notes", "", "Care notes (at least 15 characters)")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	fields := model.Fields{
		model.FieldName:      addFlagName,
		model.FieldLocation:  addFlagLocation,
		model.FieldFrequency: addFlagFrequency,
		model.FieldDate:      addFlagDate,
		model.FieldNotes:     addFlagNotes,
	}

	if cmd.Flags().NFlag() == 0 && ctx.IsCLI() && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := askFields(fields); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.CLIFormatter().Muted("Nothing saved.")
				return nil
			}
			return err
		}
	}

	return ctx.Dispatch(controller.SubmitReport{Fields: fields})
}

// askFields fills fields from an interactive form, checking each field
// with the same rules as a submit.
func askFields(fields model.Fields) error {
	values := make([]string, len(model.AllFields))
	inputs := make([]huh.Field, len(model.AllFields))
	for i, id := range model.AllFields {
		values[i] = fields[id]
		input := huh.NewInput().
			Title(id.Label()).
			Value(&values[i]).
			Validate(func(s string) error {
				if res := validate.Field(id, s, time.Now()); !res.Valid {
					return errors.New(res.Message)
				}
				return nil
			})
		if id == model.FieldDate {
			input = input.Placeholder("YYYY-MM-DD or 'yesterday'")
		}
		inputs[i] = input
	}

	form := huh.NewForm(huh.NewGroup(inputs...))
	if ctx.Controller.Dark() {
		form = form.WithTheme(huh.ThemeDracula())
	}
	if err := form.Run(); err != nil {
		return err
	}

	for i, id := range model.AllFields {
		fields[id] = values[i]
	}
	return nil
}
