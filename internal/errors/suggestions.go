package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrInvalidReport:      "Fix the fields listed above and submit again.",
	ErrReportNotFound:     "Use 'plantcare list' to see report ids.",
	ErrInvalidID:          "Report ids are the numbers shown by 'plantcare list'.",
	ErrInvalidImport:      "Import files must contain a JSON array of reports, as written by 'plantcare export'.",
	ErrConfirmationNeeded: "Run the command from a terminal to confirm, or pass --yes.",

	// System errors
	ErrDiskFull:     "Free up disk space and try again.",
	ErrStorageWrite: "Nothing was saved. Check that the data directory is writable and try again.",
	ErrLockHeld:     "Another plantcare instance is running. Close it and try again.",
	ErrStorageRead:  "The database files look damaged. Restore them from a backup or an export.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	// Disk full is checked before the generic write failure it is wrapped in.
	if errors.Is(err, ErrDiskFull) {
		return Suggestions[ErrDiskFull]
	}
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
