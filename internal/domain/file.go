package domain

import "time"

// FileType represents the type of a filesystem entry
type FileType int

const (
	FileTypeRegular FileType = iota
	FileTypeDirectory
	FileTypeSymlink
	FileTypeOther
)

// TimeSource selects which file attribute provides the timestamp
type TimeSource int

const (
	// TimeSourceCreation uses the platform creation time (st_ctime on Unix)
	TimeSourceCreation TimeSource = iota
	// TimeSourceModification uses the last content modification time
	TimeSourceModification
)

// String returns the flag-style name of the source
func (s TimeSource) String() string {
	if s == TimeSourceModification {
		return "mtime"
	}
	return "ctime"
}

// FileInfo represents metadata about a filesystem entry
type FileInfo struct {
	// Path as given on the command line
	Path string

	// Type indicates if this is a file, directory, symlink or special file
	Type FileType

	// Size in bytes (0 for directories)
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// ChangeTime is what the platform reports as creation time.
	// On Unix this is the inode change time, on Windows the creation time.
	ChangeTime time.Time
}

// IsDir returns true if this is a directory
func (f FileInfo) IsDir() bool {
	return f.Type == FileTypeDirectory
}

// IsFile returns true if this is a regular file
func (f FileInfo) IsFile() bool {
	return f.Type == FileTypeRegular
}

// Time returns the attribute selected by src, truncated to whole seconds
func (f FileInfo) Time(src TimeSource) time.Time {
	t := f.ChangeTime
	if src == TimeSourceModification {
		t = f.ModTime
	}
	return time.Unix(t.Unix(), 0)
}
