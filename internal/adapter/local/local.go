package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Ning0612/Photostamp/internal/domain"
)

// Adapter implements the adapter.Adapter interface for the local filesystem.
// Paths are used as given; there is no root confinement because every path
// comes straight from the command line.
type Adapter struct{}

// New creates a new local filesystem adapter
func New() *Adapter {
	return &Adapter{}
}

// Stat returns metadata for a single path, following symlinks
func (a *Adapter) Stat(ctx context.Context, path string) (domain.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileInfo{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.FileInfo{}, a.mapError(err)
	}

	return a.fileInfoFromOS(path, info), nil
}

// StatFile is Stat restricted to regular files
func (a *Adapter) StatFile(ctx context.Context, path string) (domain.FileInfo, error) {
	info, err := a.Stat(ctx, path)
	if err != nil {
		return info, err
	}
	if !info.IsFile() {
		return domain.FileInfo{}, domain.ErrNotFile
	}
	return info, nil
}

// Read opens a file for reading
func (a *Adapter) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	if _, err := a.StatFile(ctx, path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, a.mapError(err)
	}

	return file, nil
}

// Rename moves oldPath to newPath. An existing newPath is never replaced.
func (a *Adapter) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// os.Rename silently replaces the target on Unix
	if _, err := os.Lstat(newPath); err == nil {
		return domain.ErrAlreadyExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return a.mapError(err)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return a.mapError(err)
	}
	return nil
}

// Exists checks if a path exists
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, a.mapError(err)
}

// fileInfoFromOS converts os.FileInfo to domain.FileInfo
func (a *Adapter) fileInfoFromOS(path string, info os.FileInfo) domain.FileInfo {
	fileType := domain.FileTypeRegular
	switch mode := info.Mode(); {
	case mode.IsDir():
		fileType = domain.FileTypeDirectory
	case mode&os.ModeSymlink != 0:
		fileType = domain.FileTypeSymlink
	case !mode.IsRegular():
		fileType = domain.FileTypeOther
	}

	return domain.FileInfo{
		Path:       path,
		Type:       fileType,
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		ChangeTime: changeTime(path, info),
	}
}

// mapError converts OS errors to domain errors, keeping the original as context
func (a *Adapter) mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), isNotDir(err):
		return domain.ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", domain.ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrExist):
		return domain.ErrAlreadyExists
	case isCrossDevice(err):
		return fmt.Errorf("%w: %w", domain.ErrCrossDevice, err)
	}

	return err
}
