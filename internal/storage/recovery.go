package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/manav03panchal/plantcare/internal/logging"
)

// CorruptKey returns the key an unreadable value is copied to.
func CorruptKey(key string, at time.Time) string {
	return fmt.Sprintf("%s.corrupt.%d", key, at.UnixMilli())
}

// quarantine copies an unreadable value to a side key so that the next
// write of key does not destroy it. Failure to copy is only logged.
func quarantine(kv KV, key string, data []byte, at time.Time) string {
	backup := CorruptKey(key, at)
	if err := kv.SetBytes(backup, data); err != nil {
		logging.Warn("failed to keep a copy of unreadable data",
			logging.KeyKey, key, logging.KeyError, err)
		return ""
	}
	logging.Warn("unreadable data copied aside",
		logging.KeyKey, key, "backup_key", backup, "bytes", len(data))
	return backup
}

// IsDatabaseCorrupted checks if the given error indicates database corruption.
func IsDatabaseCorrupted(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	corruptionPatterns := []string{
		"checksum mismatch",
		"corrupt",
		"unexpected eof",
		"bad magic",
		"truncated",
	}
	for _, pattern := range corruptionPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
