package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Ning0612/Photostamp/internal/adapter"
	"github.com/Ning0612/Photostamp/internal/core/checksum"
	"github.com/Ning0612/Photostamp/internal/domain"
	"github.com/Ning0612/Photostamp/internal/lock"
	"github.com/Ning0612/Photostamp/internal/logger"
	"github.com/Ning0612/Photostamp/internal/progress"
	"github.com/Ning0612/Photostamp/internal/state"
)

// UndoService reverts the most recent journaled run
type UndoService struct {
	adapter  adapter.Adapter
	journal  *state.Manager
	lock     *lock.FileLock
	checksum *checksum.Calculator
	reporter progress.Reporter
}

// NewUndoService creates an undo service. l may be nil.
func NewUndoService(adp adapter.Adapter, journal *state.Manager, l *lock.FileLock) (*UndoService, error) {
	if adp == nil {
		return nil, fmt.Errorf("adapter cannot be nil")
	}
	if journal == nil {
		return nil, domain.ErrJournalDisabled
	}

	return &UndoService{
		adapter:  adp,
		journal:  journal,
		lock:     l,
		checksum: checksum.NewDefaultCalculator(),
	}, nil
}

// SetProgressReporter sets the progress reporter for undo
func (u *UndoService) SetProgressReporter(reporter progress.Reporter) {
	u.reporter = reporter
}

func (u *UndoService) getReporter() progress.Reporter {
	if u.reporter != nil {
		return u.reporter
	}
	return progress.NullReporter{}
}

// Undo renames the files of the last journaled run back, newest first.
// Files that are gone or whose content changed are skipped, reported and
// marked skipped in the journal so the next undo moves on to older runs.
// Returns domain.ErrJournalEmpty when nothing is left to undo.
func (u *UndoService) Undo(ctx context.Context, dryRun bool) (int64, domain.RunSummary, error) {
	var summary domain.RunSummary

	if u.lock != nil && !dryRun {
		if err := u.lock.Acquire("undo"); err != nil {
			return 0, summary, fmt.Errorf("failed to acquire journal lock: %w", err)
		}
		defer func() {
			if err := u.lock.Release(); err != nil {
				logger.Get().Error("failed to release journal lock", "error", err)
			}
		}()
	}

	run, err := u.journal.LastUndoableRun()
	if err != nil {
		return 0, summary, err
	}

	records, err := u.journal.GetRenames(run.ID)
	if err != nil {
		return run.ID, summary, err
	}

	pending := make([]state.RenameRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Pending() {
			pending = append(pending, records[i])
		}
	}

	log := logger.With("run", run.ID, "dry_run", dryRun)
	log.Info("undoing run", "renames", len(pending))

	reporter := u.getReporter()
	reporter.SetTotal(len(pending))

	for _, record := range pending {
		select {
		case <-ctx.Done():
			return run.ID, summary, ctx.Err()
		default:
		}

		result := u.revert(ctx, record, dryRun)
		reporter.Result(result)
		summary.Add(result)
	}

	log.Info("undo completed",
		"reverted", summary.Count(domain.ResultRenamed),
		"failures", summary.Failures(),
	)

	return run.ID, summary, nil
}

// revert renames one journaled file back to its original name
func (u *UndoService) revert(ctx context.Context, record state.RenameRecord, dryRun bool) domain.FileResult {
	result := domain.FileResult{Path: record.NewPath, Target: record.OldPath}

	fail := func(err error) domain.FileResult {
		result.Kind = domain.ClassifyError(err)
		result.Err = err
		logger.Get().Warn("cannot undo rename", "path", record.NewPath, "kind", result.Kind, "error", err)
		if dryRun || ctx.Err() != nil {
			return result
		}
		if markErr := u.journal.MarkSkipped(record.ID, string(result.Kind)); markErr != nil {
			logger.Get().Error("failed to mark rename skipped", "path", record.NewPath, "error", markErr)
		}
		return result
	}

	if _, err := u.adapter.StatFile(ctx, record.NewPath); err != nil {
		return fail(err)
	}

	if record.Checksum != "" {
		sum, err := u.checksum.File(ctx, u.adapter, record.NewPath)
		if err != nil {
			return fail(fmt.Errorf("%w: %s: %w", domain.ErrUnexpected, record.NewPath, err))
		}
		if sum != "" && sum != record.Checksum {
			return fail(fmt.Errorf("%s: %w", record.NewPath, domain.ErrChecksumMismatch))
		}
	}

	u.getReporter().Planned(domain.RenameAction{
		Path:      record.NewPath,
		Target:    record.OldPath,
		NewName:   filepath.Base(record.OldPath),
		Timestamp: record.Timestamp,
	})

	if dryRun {
		result.Kind = domain.ResultDryRun
		return result
	}

	if err := u.adapter.Rename(ctx, record.NewPath, record.OldPath); err != nil {
		return fail(fmt.Errorf("%w: %s: %w", domain.ErrRenameFailed, record.NewPath, err))
	}

	if err := u.journal.MarkUndone(record.ID); err != nil {
		logger.Get().Error("failed to mark rename undone", "path", record.OldPath, "error", err)
	}

	result.Kind = domain.ResultRenamed
	return result
}
