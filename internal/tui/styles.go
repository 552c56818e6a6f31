// Package tui provides the interactive terminal interface for Plantcare.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/plantcare/internal/output"
)

// Styles is the full style set for one theme.
type Styles struct {
	Dark bool

	// Title is used for the page title.
	Title lipgloss.Style
	// Subtitle is used for secondary information.
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	// FieldError is the inline error text under an invalid field.
	FieldError lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Toggle     lipgloss.Style
	Empty      lipgloss.Style

	// Card is used for an unselected report card.
	Card lipgloss.Style
	// SelectedCard is used for the card the delete key acts on.
	SelectedCard lipgloss.Style
	CardTitle    lipgloss.Style

	// Input is the frame around a focused or valid input.
	Input lipgloss.Style
	// InvalidInput is the frame around an input in the error state.
	InvalidInput lipgloss.Style
	FocusedInput lipgloss.Style

	// Page is applied to the whole screen.
	Page lipgloss.Style
}

// NewStyles builds the style set for the given theme.
func NewStyles(dark bool) Styles {
	p := output.PaletteFor(dark)

	return Styles{
		Dark: dark,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		FieldError: lipgloss.NewStyle().
			Foreground(p.Error),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Success),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error),
		Toggle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.Muted).
			Padding(1, 2),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		SelectedCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border),
		InvalidInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Error),
		FocusedInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Accent),
		Page: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(1, 2),
	}
}

// FormTheme returns the huh theme matching the styles.
func (s Styles) FormTheme() *huh.Theme {
	if s.Dark {
		return huh.ThemeDracula()
	}
	return huh.ThemeCharm()
}
