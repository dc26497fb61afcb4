package adapter

import (
	"context"
	"io"

	"github.com/Ning0612/Photostamp/internal/domain"
)

// Adapter defines the filesystem operations the renamer needs.
// Implementations return domain-level errors for consistent handling.
type Adapter interface {
	// Stat returns metadata for a single path, following symlinks
	// Returns domain.ErrNotFound if path doesn't exist
	Stat(ctx context.Context, path string) (domain.FileInfo, error)

	// StatFile is Stat restricted to regular files
	// Returns domain.ErrNotFound if path doesn't exist
	// Returns domain.ErrNotFile if path is not a regular file
	StatFile(ctx context.Context, path string) (domain.FileInfo, error)

	// Read opens a file for reading
	// Caller is responsible for closing the reader
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Rename moves oldPath to newPath without overwriting
	// Returns domain.ErrAlreadyExists if newPath exists
	Rename(ctx context.Context, oldPath, newPath string) error

	// Exists checks if a path exists
	Exists(ctx context.Context, path string) (bool, error)
}
