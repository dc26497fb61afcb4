package domain

import "errors"

// Adapter errors - filesystem layer
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("does not exist")

	// ErrAlreadyExists indicates the rename target already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFile indicates the path exists but is not a regular file
	ErrNotFile = errors.New("is not a file")

	// ErrCrossDevice indicates source and target live on different devices
	ErrCrossDevice = errors.New("cross-device rename")
)

// Rename errors - per-file processing
var (
	// ErrOffsetFormat indicates a malformed time offset string
	ErrOffsetFormat = errors.New("expecting time format of [HH:]MM:SS")

	// ErrRenameFailed indicates the underlying rename call failed
	ErrRenameFailed = errors.New("rename failed")

	// ErrUnexpected wraps any other failure surfaced while processing one file
	ErrUnexpected = errors.New("unexpected error")

	// ErrInvalidPattern indicates the timestamp pattern cannot be used
	ErrInvalidPattern = errors.New("invalid timestamp pattern")
)

// Journal errors
var (
	// ErrJournalEmpty indicates there is no journaled run to act on
	ErrJournalEmpty = errors.New("journal is empty")

	// ErrJournalDisabled indicates a journal command ran without a journal path
	ErrJournalDisabled = errors.New("journal path not configured")

	// ErrChecksumMismatch indicates a renamed file changed since it was journaled
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Config errors
var (
	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)
