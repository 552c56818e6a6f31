package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/errors"
)

// Delete command flags.
var deleteFlagYes bool

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a plant-care report",
	Long: `Delete the report with the given id. The id is shown on every card
by 'plantcare list'. You are asked to confirm unless --yes is given;
without a terminal to ask on, the command fails and nothing is deleted.

Examples:
  plantcare delete 1718000000000
  plantcare delete 1718000000000 --yes`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeReportIDs,
	RunE:              runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteFlagYes, "yes", "y", false, "Delete without asking")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseReportID(args[0])
	if err != nil {
		return err
	}

	ctx.Controller.SetConfirmer(&promptConfirmer{
		yes: deleteFlagYes,
		in:  os.Stdin,
		out: cmd.ErrOrStderr(),
	})

	if err := ctx.Dispatch(controller.DeleteReport{ID: id}); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return nil
	}
	if _, kept := ctx.Store.Find(id); kept {
		ctx.CLIFormatter().Warning(fmt.Sprintf("Report %d was not deleted.", id))
		return nil
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Report %d deleted.", id))
	return nil
}

func parseReportID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &errors.UserError{
			Message:    "not a report id",
			Suggestion: errors.Suggestions[errors.ErrInvalidID],
			Field:      "id",
			Value:      s,
			Cause:      errors.ErrInvalidID,
		}
	}
	return id, nil
}

// promptConfirmer asks on the terminal. Without a terminal it fails with
// ErrConfirmationNeeded unless yes is set.
type promptConfirmer struct {
	yes bool
	in  *os.File
	out io.Writer
}

func (p *promptConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	if p.yes {
		return true, nil
	}
	if !isTerminal(p.in) {
		return false, errors.NewUserErrorWithCause("cannot ask for confirmation without a terminal",
			errors.Suggestions[errors.ErrConfirmationNeeded], errors.ErrConfirmationNeeded)
	}

	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
