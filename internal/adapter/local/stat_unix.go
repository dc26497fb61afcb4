//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package local

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// changeTime returns st_ctime, the inode change time. Unix has no portable
// creation time, so this is what "creation time" means on these platforms.
func changeTime(path string, info os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return info.ModTime()
	}
	sec, nsec := st.Ctim.Unix()
	return time.Unix(sec, nsec)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

// isNotDir reports a path whose parent is not a directory, e.g. "file.jpg/x"
func isNotDir(err error) bool {
	return errors.Is(err, unix.ENOTDIR)
}
