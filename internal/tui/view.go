package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/output"
	"github.com/manav03panchal/plantcare/internal/validate"
)

const (
	// maxCards is how many cards fit on screen at once.
	maxCards = 4
	// maxCardNotes caps the notes shown on a card, in runes.
	maxCardNotes = 120
)

// View renders the screen.
func (m *Model) View() string {
	if m.form != nil {
		return m.styles.Page.Render(m.form.View())
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if b := m.renderBanner(); b != "" {
		sections = append(sections, b)
	}

	left := m.renderForm()
	right := m.renderList()
	if m.width > 0 && m.width < 100 {
		sections = append(sections, left, right)
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))
	}

	sections = append(sections, m.help.View(m.keys))
	return m.styles.Page.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderHeader renders the title, theme toggle and last visit.
func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("🌿 Plant Care Reports")
	toggle := m.styles.Toggle.Render(output.ToggleLabel(m.dark))
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", toggle)

	if m.lastVisited != "" {
		header += "\n" + m.styles.Subtitle.Render("Last visited: "+m.lastVisited)
	}
	return header + "\n"
}

func (m *Model) renderBanner() string {
	if m.banner.msg == "" {
		return ""
	}
	if m.banner.kind == controller.BannerError {
		return m.styles.Error.Render("✗ " + m.banner.msg)
	}
	return m.styles.Success.Render("✓ " + m.banner.msg)
}

func (m *Model) renderForm() string {
	var b strings.Builder
	for i, id := range model.AllFields {
		b.WriteString(m.styles.Label.Render(id.Label()))
		b.WriteString("\n")

		frame := m.styles.Input
		if _, invalid := m.errors[id]; invalid {
			frame = m.styles.InvalidInput
		} else if m.focus == i {
			frame = m.styles.FocusedInput
		}
		b.WriteString(frame.Width(40).Render(m.inputs[i].View()))
		b.WriteString("\n")

		if msg, ok := m.errors[id]; ok {
			b.WriteString(m.styles.FieldError.Render(msg))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderList() string {
	var b strings.Builder

	frame := m.styles.Input
	if m.focus == focusSearch {
		frame = m.styles.FocusedInput
	}
	b.WriteString(frame.Width(40).Render(m.search.View()))
	b.WriteString("\n")

	if len(m.reports) == 0 {
		b.WriteString(m.styles.Empty.Render(output.EmptyState))
		return b.String()
	}

	start := 0
	if m.selected >= maxCards {
		start = m.selected - maxCards + 1
	}
	end := min(start+maxCards, len(m.reports))

	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(m.reports[i], i == m.selected && m.focus == focusList))
		b.WriteString("\n")
	}
	if len(m.reports) > maxCards {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d of %d", m.selected+1, len(m.reports))))
	}
	return b.String()
}

func (m *Model) renderCard(r model.Report, selected bool) string {
	style := m.styles.Card
	if selected {
		style = m.styles.SelectedCard
	}

	lines := []string{
		m.styles.CardTitle.Render(r.Name),
		m.styles.Subtitle.Render("Location: ") + r.Location,
		m.styles.Subtitle.Render("Water every: ") + r.Frequency + " days",
		m.styles.Subtitle.Render("Last watered: ") + r.Date,
		validate.TruncateString(r.Notes, maxCardNotes),
		m.styles.Subtitle.Render(fmt.Sprintf("id %d", r.ID)),
	}
	return style.Width(44).Render(strings.Join(lines, "\n"))
}
