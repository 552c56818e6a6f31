package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// EmptyState is shown in place of the list when there is nothing to show.
const EmptyState = "No plant reports yet."

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
	palette Palette
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f, palette: Light}
}

// SetDark switches the color palette.
func (c *CLIFormatter) SetDark(dark bool) {
	c.palette = PaletteFor(dark)
}

func (c *CLIFormatter) styled(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.styled(lipgloss.NewStyle().Bold(true).Foreground(c.palette.Accent), text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.styled(lipgloss.NewStyle().Foreground(c.palette.Success), "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.styled(lipgloss.NewStyle().Foreground(c.palette.Warning), "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.styled(lipgloss.NewStyle().Foreground(c.palette.Error), "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.styled(lipgloss.NewStyle().Foreground(c.palette.Muted), text))
}

// FieldError prints a field annotation as "error-<field>: message".
func (c *CLIFormatter) FieldError(id model.FieldID, msg string) {
	line := fmt.Sprintf("%s: %s", id.ErrorID(), msg)
	c.Println(c.styled(lipgloss.NewStyle().Foreground(c.palette.Error), "  "+line))
}

// Card renders one report.
func (c *CLIFormatter) Card(r model.Report) string {
	if c.Format == FormatPlain {
		return strings.Join([]string{
			fmt.Sprint(r.ID), r.Name, r.Location, r.Frequency, r.Date, r.Notes,
		}, "\t")
	}

	label := lipgloss.NewStyle().Foreground(c.palette.Muted)
	title := lipgloss.NewStyle().Bold(true).Foreground(c.palette.Accent)
	if !c.IsColorEnabled() {
		label = lipgloss.NewStyle()
		title = lipgloss.NewStyle().Bold(true)
	}

	var b strings.Builder
	b.WriteString(title.Render(r.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", label.Render("Location:"), orDash(r.Location))
	fmt.Fprintf(&b, "%s every %s days\n", label.Render("Water:"), r.Frequency)
	fmt.Fprintf(&b, "%s %s\n", label.Render("Last watered:"), r.Date)
	fmt.Fprintf(&b, "%s %s\n", label.Render("Notes:"), r.Notes)
	b.WriteString(label.Render(fmt.Sprintf("id %d", r.ID)))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if c.IsColorEnabled() {
		border = border.BorderForeground(c.palette.Border)
	}
	return border.Render(b.String())
}

// PrintReports prints one card per report, or the empty-state line.
func (c *CLIFormatter) PrintReports(reports []model.Report) {
	if len(reports) == 0 {
		c.Muted(EmptyState)
		return
	}
	for _, r := range reports {
		c.Println(c.Card(r))
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// CLIPresenter draws controller output as terminal lines.
type CLIPresenter struct {
	cli  *CLIFormatter
	dark bool
}

var _ controller.Presenter = (*CLIPresenter)(nil)

// NewCLIPresenter creates a presenter writing through f.
func NewCLIPresenter(f *Formatter) *CLIPresenter {
	return &CLIPresenter{cli: NewCLIFormatter(f)}
}

// Dark returns the theme last set by the controller.
func (p *CLIPresenter) Dark() bool {
	return p.dark
}

func (p *CLIPresenter) RenderList(reports []model.Report) {
	p.cli.PrintReports(reports)
}

func (p *CLIPresenter) AnnotateField(id model.FieldID, res validate.Result) {
	if !res.Valid {
		p.cli.FieldError(id, res.Message)
	}
}

func (p *CLIPresenter) ShowBanner(msg string, kind controller.BannerKind) {
	if kind == controller.BannerError {
		p.cli.Error(msg)
		return
	}
	p.cli.Success(msg)
}

// ResetForm does nothing: a CLI form does not outlive the command.
func (p *CLIPresenter) ResetForm() {}

func (p *CLIPresenter) SetTheme(dark bool) {
	p.dark = dark
	p.cli.SetDark(dark)
}

func (p *CLIPresenter) ShowLastVisited(ts string) {
	p.cli.Muted("Last visited: " + ts)
}

// Flush does nothing; CLI output is written as it happens.
func (p *CLIPresenter) Flush() error { return nil }

// ViewPresenter is a controller.Presenter for one command run.
type ViewPresenter interface {
	controller.Presenter
	Dark() bool
	// Flush writes any buffered output.
	Flush() error
}

// NewPresenter returns the presenter for f's format.
func NewPresenter(f *Formatter) ViewPresenter {
	if f.Format == FormatJSON {
		return NewJSONPresenter(f)
	}
	return NewCLIPresenter(f)
}
