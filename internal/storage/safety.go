package storage

import (
	"fmt"

	"github.com/manav03panchal/plantcare/internal/errors"
)

// DiskSpaceInfo contains information about available disk space.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64
}

// FreePercent returns the percentage of free space.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// CheckDiskSpace checks that at least minFree bytes are available at path.
// An empty path (in-memory database) or a zero minimum always passes, as
// does a path whose free space cannot be determined.
func CheckDiskSpace(path string, minFree uint64) error {
	if path == "" || minFree == 0 {
		return nil
	}

	info, err := GetDiskSpace(path)
	if err != nil {
		return nil
	}

	if info.FreeBytes < minFree {
		return errors.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d MB free (%.1f%%), need at least %d MB",
				info.FreeBytes/(1024*1024),
				info.FreePercent(),
				minFree/(1024*1024)),
			errors.ErrDiskFull,
		)
	}

	return nil
}
