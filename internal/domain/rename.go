package domain

import (
	"errors"
	"time"
)

// DefaultPattern is the strftime pattern used for the timestamp prefix
const DefaultPattern = "%Y%m%d_%H%M%S"

// RenameOptions holds the per-run settings shared by every file
type RenameOptions struct {
	// OffsetSeconds is added to every timestamp before formatting
	OffsetSeconds int64

	// Source selects creation or modification time
	Source TimeSource

	// DryRun reports planned renames without touching the filesystem
	DryRun bool

	// Pattern is the strftime pattern for the prefix
	Pattern string
}

// RenameAction represents a single entry in a rename plan
type RenameAction struct {
	// Path is the file path as given on the command line
	Path string

	// Target is the full path the file will be renamed to
	Target string

	// NewName is the new basename
	NewName string

	// Timestamp is the offset-adjusted time used for the prefix
	Timestamp time.Time

	// Info is the metadata read for Path (zero when Err is set)
	Info FileInfo

	// Err is set when the timestamp could not be read; the file is skipped
	Err error
}

// ResultKind enumerates per-file outcomes
type ResultKind string

const (
	ResultRenamed      ResultKind = "renamed"
	ResultDryRun       ResultKind = "dry_run"
	ResultMissingFile  ResultKind = "missing_file"
	ResultNotAFile     ResultKind = "not_a_file"
	ResultRenameFailed ResultKind = "rename_failed"
	ResultUnexpected   ResultKind = "unexpected"

	// ResultChecksumMismatch marks an undo entry skipped because the file changed
	ResultChecksumMismatch ResultKind = "checksum_mismatch"
)

// Failed reports whether the outcome is a per-file failure
func (k ResultKind) Failed() bool {
	switch k {
	case ResultRenamed, ResultDryRun:
		return false
	}
	return true
}

// FileResult is the outcome of processing one file
type FileResult struct {
	Path   string
	Target string
	Kind   ResultKind
	Err    error
}

// ClassifyError maps a per-file error to its outcome kind
func ClassifyError(err error) ResultKind {
	switch {
	case err == nil:
		return ResultRenamed
	case errors.Is(err, ErrNotFound) && !errors.Is(err, ErrRenameFailed):
		return ResultMissingFile
	case errors.Is(err, ErrNotFile):
		return ResultNotAFile
	case errors.Is(err, ErrChecksumMismatch):
		return ResultChecksumMismatch
	case errors.Is(err, ErrRenameFailed):
		return ResultRenameFailed
	default:
		return ResultUnexpected
	}
}

// RunSummary collects per-file results for a run
type RunSummary struct {
	Results []FileResult
}

// Add appends a result
func (s *RunSummary) Add(r FileResult) {
	s.Results = append(s.Results, r)
}

// Count returns the number of results of the given kind
func (s RunSummary) Count(kind ResultKind) int {
	n := 0
	for _, r := range s.Results {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// Failures returns the number of failed files
func (s RunSummary) Failures() int {
	n := 0
	for _, r := range s.Results {
		if r.Kind.Failed() {
			n++
		}
	}
	return n
}
