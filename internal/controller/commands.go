package controller

import "github.com/manav03panchal/plantcare/internal/model"

// Command is a user action handled by Dispatch.
type Command interface {
	commandName() string
}

// EditField re-validates one form field after the user changed it.
type EditField struct {
	Field model.FieldID
	Value string
}

// SubmitReport validates the whole form and saves it as a new report.
type SubmitReport struct {
	Fields model.Fields
}

// SetSearchTerm filters the visible list.
type SetSearchTerm struct {
	Term string
}

// DeleteReport removes a report after the user confirms.
type DeleteReport struct {
	ID int64
}

// ToggleTheme flips between light and dark mode.
type ToggleTheme struct{}

// LoadView renders the list page and updates the last-visited marker.
type LoadView struct{}

func (EditField) commandName() string     { return "edit_field" }
func (SubmitReport) commandName() string  { return "submit_report" }
func (SetSearchTerm) commandName() string { return "set_search_term" }
func (DeleteReport) commandName() string  { return "delete_report" }
func (ToggleTheme) commandName() string   { return "toggle_theme" }
func (LoadView) commandName() string      { return "load_view" }
