// Package controller turns user actions into validation, storage and
// presentation calls. It owns no state of its own beyond the current
// search term and theme flag; reports live in the storage.ReportStore.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/manav03panchal/plantcare/internal/errors"
	"github.com/manav03panchal/plantcare/internal/logging"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/parser"
	"github.com/manav03panchal/plantcare/internal/storage"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// Banner and prompt texts.
const (
	MsgSaved        = "Report saved successfully!"
	MsgFixErrors    = "Please fix the errors in the form."
	MsgDeletePrompt = "Are you sure you want to delete this report?"
	MsgSaveFailed   = "Could not save your reports. Changes are kept until the next save."
	MsgNotSaved     = "Could not save your reports. Nothing was changed; please try again."
)

// LastVisitedLayout formats the last-visited marker.
const LastVisitedLayout = "1/2/2006, 3:04:05 PM"

// Options configures a Controller.
type Options struct {
	Store     *storage.ReportStore
	Prefs     *storage.PrefsRepo
	Session   *storage.SessionRepo
	Presenter Presenter
	Confirmer Confirmer
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// KeepUnsaved is set when the controller lives on after a failed write,
	// as in the terminal UI, so the next mutation can still save the change.
	KeepUnsaved bool
}

// Controller dispatches user commands.
type Controller struct {
	store     *storage.ReportStore
	prefs     *storage.PrefsRepo
	session   *storage.SessionRepo
	view      Presenter
	confirmer Confirmer
	now       func() time.Time
	keep      bool

	term string
	dark bool
}

// New creates a controller. Store and Presenter are required.
func New(opts Options) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = AlwaysConfirm
	}
	return &Controller{
		store:     opts.Store,
		prefs:     opts.Prefs,
		session:   opts.Session,
		view:      opts.Presenter,
		confirmer: confirmer,
		now:       now,
		keep:      opts.KeepUnsaved,
	}
}

// Init loads the report collection and the theme preference.
func (c *Controller) Init() {
	c.store.Load()
	if c.prefs != nil {
		c.dark = c.prefs.DarkMode()
	}
	c.view.SetTheme(c.dark)
}

// SetPresenter swaps the presenter. The terminal UI uses this to attach
// itself once its model exists.
func (c *Controller) SetPresenter(p Presenter) {
	c.view = p
}

// SetConfirmer swaps the confirmer used by DeleteReport.
func (c *Controller) SetConfirmer(cf Confirmer) {
	c.confirmer = cf
}

// Dark reports the current theme.
func (c *Controller) Dark() bool {
	return c.dark
}

// Visible returns the reports matching the active search term.
func (c *Controller) Visible() []model.Report {
	return Filter(c.store.Reports(), c.term)
}

// Dispatch runs one command to completion.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	log := logging.LoggerFromContext(ctx).With(logging.KeyCommand, cmd.commandName())
	log.Debug("dispatch")

	var err error
	switch cmd := cmd.(type) {
	case EditField:
		c.editField(ctx, cmd)
	case SubmitReport:
		err = c.submit(ctx, cmd)
	case SetSearchTerm:
		c.search(ctx, cmd)
	case DeleteReport:
		err = c.delete(ctx, cmd)
	case ToggleTheme:
		err = c.toggleTheme()
	case LoadView:
		c.loadView(ctx)
	default:
		err = fmt.Errorf("unknown command %T", cmd)
	}

	if err != nil {
		log.Debug("command failed", logging.KeyError, err)
	}
	return err
}

func (c *Controller) editField(ctx context.Context, cmd EditField) {
	value := validate.SanitizeFields(model.Fields{cmd.Field: cmd.Value})[cmd.Field]
	res := validate.Field(cmd.Field, value, c.now())
	if !res.Valid {
		logging.DebugContext(ctx, "field invalid", logging.KeyField, cmd.Field)
	}
	c.view.AnnotateField(cmd.Field, res)
}

func (c *Controller) submit(ctx context.Context, cmd SubmitReport) error {
	now := c.now()
	fields := validate.SanitizeFields(cmd.Fields)

	results := validate.All(fields, now)
	for _, id := range model.AllFields {
		c.view.AnnotateField(id, results[id])
	}

	if failed := results.Failed(); len(failed) > 0 {
		c.view.ShowBanner(MsgFixErrors, BannerError)
		first := failed[0]
		return &errors.UserError{
			Message:    results[first].Message,
			Suggestion: errors.Suggestions[errors.ErrInvalidReport],
			Field:      string(first),
			Value:      fields[first],
			Cause:      errors.ErrInvalidReport,
		}
	}

	fields[model.FieldDate] = parser.ParseDate(fields[model.FieldDate], now).String()
	fields[model.FieldFrequency] = validate.NormalizeFrequency(fields[model.FieldFrequency])
	report := model.NewReport(c.store.NextID(now), fields)

	if err := c.store.Append(report); err != nil {
		if errors.IsSystemError(err) {
			logging.WarnContext(ctx, "report not saved", logging.KeyReportID, report.ID, logging.KeyError, err)
			c.saveFailed()
		} else {
			c.view.ShowBanner(err.Error(), BannerError)
		}
		return err
	}

	logging.InfoContext(ctx, "report saved", logging.KeyReportID, report.ID)
	c.view.ResetForm()
	c.view.ShowBanner(MsgSaved, BannerSuccess)
	c.view.RenderList(c.Visible())
	return nil
}

func (c *Controller) search(ctx context.Context, cmd SetSearchTerm) {
	c.term = cmd.Term
	visible := c.Visible()
	logging.DebugContext(ctx, "search", logging.KeyTerm, cmd.Term, logging.KeyCount, len(visible))
	c.view.RenderList(visible)
}

func (c *Controller) delete(ctx context.Context, cmd DeleteReport) error {
	if _, ok := c.store.Find(cmd.ID); !ok {
		return &errors.UserError{
			Message:    fmt.Sprintf("no report with id %d", cmd.ID),
			Suggestion: errors.Suggestions[errors.ErrReportNotFound],
			Cause:      errors.ErrReportNotFound,
		}
	}

	ok, err := c.confirmer.Confirm(ctx, MsgDeletePrompt)
	if err != nil {
		return err
	}
	if !ok {
		logging.DebugContext(ctx, "delete declined", logging.KeyReportID, cmd.ID)
		return nil
	}

	if _, err := c.store.RemoveByID(cmd.ID); err != nil {
		c.saveFailed()
		return err
	}
	c.view.RenderList(c.Visible())

	logging.InfoContext(ctx, "report deleted", logging.KeyReportID, cmd.ID)
	return nil
}

// saveFailed reports a failed write. A controller that keeps unsaved
// changes shows them; otherwise they die with the process.
func (c *Controller) saveFailed() {
	if !c.keep {
		c.view.ShowBanner(MsgNotSaved, BannerError)
		return
	}
	c.view.RenderList(c.Visible())
	c.view.ShowBanner(MsgSaveFailed, BannerError)
}

func (c *Controller) toggleTheme() error {
	c.dark = !c.dark
	c.view.SetTheme(c.dark)
	if c.prefs == nil {
		return nil
	}
	if err := c.prefs.SetDarkMode(c.dark); err != nil {
		return errors.NewSystemErrorWithOp("persist", "cannot save theme preference",
			errors.Join(errors.ErrStorageWrite, err))
	}
	return nil
}

func (c *Controller) loadView(ctx context.Context) {
	c.view.RenderList(c.Visible())
	if c.session == nil {
		return
	}

	if ts, ok := c.session.LastViewed(); ok {
		c.view.ShowLastVisited(ts)
	}
	if err := c.session.SetLastViewed(c.now().Format(LastVisitedLayout)); err != nil {
		logging.WarnContext(ctx, "failed to record last visit", logging.KeyError, err)
	}
}
