//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package local

import (
	"os"
	"time"
)

// changeTime falls back to the modification time on platforms without a
// creation time the adapter knows how to read.
func changeTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}

func isCrossDevice(error) bool {
	return false
}

func isNotDir(error) bool {
	return false
}
