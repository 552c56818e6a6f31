package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/logging"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// DefaultBannerTimeout is how long a success banner stays up.
const DefaultBannerTimeout = 3 * time.Second

// focus positions after the form fields.
var (
	focusSearch = len(model.AllFields)
	focusList   = focusSearch + 1
	focusCount  = focusSearch + 2
)

// bannerExpiredMsg clears the success banner it was scheduled for.
type bannerExpiredMsg struct {
	seq int
}

type banner struct {
	msg  string
	kind controller.BannerKind
	seq  int
}

// Model is the bubbletea model of the report screen. It is also the
// controller's Presenter and Confirmer while the program runs.
type Model struct {
	ctx  context.Context
	ctrl *controller.Controller
	keys KeyMap
	help help.Model

	inputs []textinput.Model
	search textinput.Model
	errors map[model.FieldID]string
	focus  int

	reports  []model.Report
	selected int

	banner        banner
	bannerTimeout time.Duration
	pendingExpiry bool

	dark        bool
	styles      Styles
	lastVisited string

	// Delete confirmation. confirmed is bound to the huh form and read back
	// by Confirm when the controller asks.
	form      *huh.Form
	pendingID int64
	confirmed bool

	width  int
	height int
}

var (
	_ controller.Presenter = (*Model)(nil)
	_ controller.Confirmer = (*Model)(nil)
)

// Options configures the terminal UI.
type Options struct {
	BannerTimeout time.Duration
}

// New creates the model and attaches it to ctrl. The controller must
// already be initialized.
func New(ctx context.Context, ctrl *controller.Controller, opts Options) *Model {
	if opts.BannerTimeout <= 0 {
		opts.BannerTimeout = DefaultBannerTimeout
	}

	m := &Model{
		ctx:           ctx,
		ctrl:          ctrl,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		errors:        make(map[model.FieldID]string),
		bannerTimeout: opts.BannerTimeout,
	}

	for _, id := range model.AllFields {
		in := textinput.New()
		in.Placeholder = placeholder(id)
		in.Prompt = ""
		in.CharLimit = 500
		m.inputs = append(m.inputs, in)
	}
	m.search = textinput.New()
	m.search.Placeholder = "Search by name or location"
	m.search.Prompt = "⌕ "

	ctrl.SetPresenter(m)
	ctrl.SetConfirmer(m)
	m.SetTheme(ctrl.Dark())
	m.setFocus(0)
	m.dispatch(controller.LoadView{})
	return m
}

func placeholder(id model.FieldID) string {
	switch id {
	case model.FieldName:
		return "e.g. Boston fern"
	case model.FieldLocation:
		return "e.g. Kitchen window"
	case model.FieldFrequency:
		return "days between watering"
	case model.FieldDate:
		return "YYYY-MM-DD or 'yesterday'"
	case model.FieldNotes:
		return "at least 15 characters"
	}
	return ""
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m, m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case bannerExpiredMsg:
		if msg.seq == m.banner.seq && m.banner.kind == controller.BannerSuccess {
			m.banner = banner{seq: m.banner.seq}
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.updateFocused(msg)
}

// handleKey handles keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Theme):
		m.dispatch(controller.ToggleTheme{})
		return nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % focusCount)
		return nil

	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return nil

	case key.Matches(msg, m.keys.Search):
		m.setFocus(focusSearch)
		return nil
	}

	if m.focus == focusList {
		return m.handleListKey(msg)
	}

	if m.focus < len(m.inputs) && key.Matches(msg, m.keys.Submit) {
		return m.submit()
	}

	return m.updateFocused(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.reports)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Delete):
		if len(m.reports) > 0 {
			return m.askDelete(m.reports[m.selected].ID)
		}
	}
	return nil
}

// updateFocused forwards msg to the focused input and dispatches a
// command when its value changed.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case m.focus < len(m.inputs):
		before := m.inputs[m.focus].Value()
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if value := m.inputs[m.focus].Value(); value != before {
			m.dispatch(controller.EditField{Field: model.AllFields[m.focus], Value: value})
		}

	case m.focus == focusSearch:
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if term := m.search.Value(); term != before {
			m.dispatch(controller.SetSearchTerm{Term: term})
		}
	}

	return cmd
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	if i == focusSearch {
		m.search.Focus()
	} else {
		m.search.Blur()
	}
}

// Fields returns the current form values.
func (m *Model) Fields() model.Fields {
	fields := make(model.Fields, len(m.inputs))
	for i, id := range model.AllFields {
		fields[id] = m.inputs[i].Value()
	}
	return fields
}

func (m *Model) submit() tea.Cmd {
	m.dispatch(controller.SubmitReport{Fields: m.Fields()})
	if len(m.errors) == 0 {
		m.setFocus(0)
	}
	return m.expiryCmd()
}

func (m *Model) askDelete(id int64) tea.Cmd {
	m.pendingID = id
	m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(controller.MsgDeletePrompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.confirmed),
		),
	).WithTheme(m.styles.FormTheme())
	return m.form.Init()
}

func (m *Model) updateConfirm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.confirmed = false
		return m.resolveDelete()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.resolveDelete())
	case huh.StateAborted:
		m.confirmed = false
		return m.resolveDelete()
	}
	return cmd
}

// resolveDelete hands the pending delete to the controller, which reads
// the answer back through Confirm.
func (m *Model) resolveDelete() tea.Cmd {
	id := m.pendingID
	m.form = nil
	m.pendingID = 0
	m.dispatch(controller.DeleteReport{ID: id})
	return m.expiryCmd()
}

// Confirm returns the answer given in the delete dialog.
func (m *Model) Confirm(context.Context, string) (bool, error) {
	return m.confirmed, nil
}

func (m *Model) dispatch(cmd controller.Command) {
	if err := m.ctrl.Dispatch(m.ctx, cmd); err != nil {
		logging.DebugContext(m.ctx, "ui command failed", logging.KeyError, err)
	}
}

// expiryCmd schedules removal of a fresh success banner.
func (m *Model) expiryCmd() tea.Cmd {
	if !m.pendingExpiry {
		return nil
	}
	m.pendingExpiry = false
	seq := m.banner.seq
	return tea.Tick(m.bannerTimeout, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

// RenderList replaces the visible cards.
func (m *Model) RenderList(reports []model.Report) {
	m.reports = reports
	if m.selected >= len(reports) {
		m.selected = max(len(reports)-1, 0)
	}
}

// AnnotateField sets or clears the error text of a field.
func (m *Model) AnnotateField(id model.FieldID, res validate.Result) {
	if res.Valid {
		delete(m.errors, id)
		return
	}
	m.errors[id] = res.Message
}

// ShowBanner replaces the banner.
func (m *Model) ShowBanner(msg string, kind controller.BannerKind) {
	m.banner = banner{msg: msg, kind: kind, seq: m.banner.seq + 1}
	m.pendingExpiry = kind == controller.BannerSuccess
}

// ResetForm clears every input and annotation.
func (m *Model) ResetForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.errors = make(map[model.FieldID]string)
}

// SetTheme switches the palette.
func (m *Model) SetTheme(dark bool) {
	m.dark = dark
	m.styles = NewStyles(dark)
}

// ShowLastVisited shows the previous visit time in the header.
func (m *Model) ShowLastVisited(ts string) {
	m.lastVisited = ts
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, opts Options) error {
	m := New(ctx, ctrl, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
