package runtime

import (
	stderrors "errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/manav03panchal/plantcare/internal/errors"
)

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}
	if IsDiskFullError(err) {
		return errors.Suggestions[errors.ErrDiskFull]
	}
	return errors.GetSuggestion(err)
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	msg := err.Error()
	if ue, ok := errors.AsUserError(err); ok && ue.Field != "" {
		msg = fmt.Sprintf("%s: %s", ue.Field, ue.Message)
	}
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}

// IsDiskFullError checks if an error indicates a disk full condition.
// It checks for ENOSPC (Linux/macOS) and common disk full error patterns,
// which is how badger reports a full disk.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	if stderrors.Is(err, errors.ErrDiskFull) {
		return true
	}

	// Check for ENOSPC (no space left on device)
	var errno syscall.Errno
	if stderrors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}

	errStr := strings.ToLower(err.Error())
	diskFullPatterns := []string{
		"no space left on device",
		"disk full",
		"not enough space",
		"insufficient disk space",
	}
	for _, pattern := range diskFullPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// ExitCode maps an error to a process exit status: 1 for problems the
// user can fix, 2 for system errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Classify(err) == errors.CategorySystem || IsDiskFullError(err) {
		return 2
	}
	return 1
}
