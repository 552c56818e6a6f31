package validate

import (
	"strings"
	"unicode"

	"github.com/manav03panchal/plantcare/internal/model"
)

// SanitizeNote cleans notes for safe storage.
func SanitizeNote(note string) string {
	// Remove null bytes (common injection attempt)
	note = strings.ReplaceAll(note, "\x00", "")

	// Normalize line endings
	note = strings.ReplaceAll(note, "\r\n", "\n")
	note = strings.ReplaceAll(note, "\r", "\n")

	return StripControlChars(note)
}

// StripControlChars removes all control characters from a string
// except newlines and tabs.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeFields returns a cleaned copy of submitted form values.
// Single-line fields lose newlines; notes keep them.
func SanitizeFields(fields model.Fields) model.Fields {
	out := make(model.Fields, len(fields))
	for id, v := range fields {
		if id == model.FieldNotes {
			out[id] = SanitizeNote(v)
			continue
		}
		v = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(v)
		out[id] = StripControlChars(v)
	}
	return out
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
