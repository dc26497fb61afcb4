//go:build windows

package local

import (
	"errors"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// changeTime returns the NTFS creation time
func changeTime(path string, info os.FileInfo) time.Time {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return info.ModTime()
	}
	var data windows.Win32FileAttributeData
	if err := windows.GetFileAttributesEx(p, windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&data))); err != nil {
		return info.ModTime()
	}
	return time.Unix(0, data.CreationTime.Nanoseconds())
}

func isCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}

func isNotDir(error) bool {
	return false
}
