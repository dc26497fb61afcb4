package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ResultKind
	}{
		{"nil", nil, ResultRenamed},
		{"missing", fmt.Errorf("stat a.jpg: %w", ErrNotFound), ResultMissingFile},
		{"not a file", fmt.Errorf("stat dir: %w", ErrNotFile), ResultNotAFile},
		{"rename failed", fmt.Errorf("%w: %w", ErrRenameFailed, ErrAlreadyExists), ResultRenameFailed},
		// Source vanished between stat and rename: still a rename failure
		{"rename failed not found", fmt.Errorf("%w: %w", ErrRenameFailed, ErrNotFound), ResultRenameFailed},
		{"checksum", fmt.Errorf("b.jpg: %w", ErrChecksumMismatch), ResultChecksumMismatch},
		{"other", errors.New("boom"), ResultUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestRunSummary(t *testing.T) {
	var s RunSummary
	s.Add(FileResult{Path: "a", Kind: ResultRenamed})
	s.Add(FileResult{Path: "b", Kind: ResultDryRun})
	s.Add(FileResult{Path: "c", Kind: ResultMissingFile})
	s.Add(FileResult{Path: "d", Kind: ResultRenamed})

	if got := s.Count(ResultRenamed); got != 2 {
		t.Errorf("Count(renamed) = %d, want 2", got)
	}
	if got := s.Failures(); got != 1 {
		t.Errorf("Failures() = %d, want 1", got)
	}
}

func TestFileInfo_Time(t *testing.T) {
	info := FileInfo{
		ModTime:    time.Unix(1700000000, 999_000_000),
		ChangeTime: time.Unix(1600000000, 500_000_000),
	}

	if got := info.Time(TimeSourceModification); got.Unix() != 1700000000 || got.Nanosecond() != 0 {
		t.Errorf("Time(mtime) = %v, want truncated 1700000000", got)
	}
	if got := info.Time(TimeSourceCreation); got.Unix() != 1600000000 || got.Nanosecond() != 0 {
		t.Errorf("Time(ctime) = %v, want truncated 1600000000", got)
	}
}
