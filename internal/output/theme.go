package output

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors for one theme.
type Palette struct {
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Surface lipgloss.Color
}

// Light is the default theme.
var Light = Palette{
	Accent:  lipgloss.Color("#2E7D32"), // Leaf green
	Text:    lipgloss.Color("#1F2937"),
	Muted:   lipgloss.Color("#6B7280"),
	Border:  lipgloss.Color("#A5D6A7"),
	Success: lipgloss.Color("#10B981"),
	Error:   lipgloss.Color("#EF4444"),
	Warning: lipgloss.Color("#F59E0B"),
	Surface: lipgloss.Color("#F1F8E9"),
}

// Dark is the dark-mode theme.
var Dark = Palette{
	Accent:  lipgloss.Color("#81C784"),
	Text:    lipgloss.Color("#E5E7EB"),
	Muted:   lipgloss.Color("#9CA3AF"),
	Border:  lipgloss.Color("#388E3C"),
	Success: lipgloss.Color("#34D399"),
	Error:   lipgloss.Color("#F87171"),
	Warning: lipgloss.Color("#FBBF24"),
	Surface: lipgloss.Color("#1B1F1C"),
}

// PaletteFor returns the palette for the given theme.
func PaletteFor(dark bool) Palette {
	if dark {
		return Dark
	}
	return Light
}

// ThemeName returns "dark" or "light".
func ThemeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// ToggleLabel is the label of the control that switches theme.
func ToggleLabel(dark bool) string {
	if dark {
		return "☀ Light mode"
	}
	return "☾ Dark mode"
}
