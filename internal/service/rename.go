package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Ning0612/Photostamp/internal/adapter"
	"github.com/Ning0612/Photostamp/internal/core/checksum"
	"github.com/Ning0612/Photostamp/internal/core/offset"
	"github.com/Ning0612/Photostamp/internal/core/planner"
	"github.com/Ning0612/Photostamp/internal/domain"
	"github.com/Ning0612/Photostamp/internal/lock"
	"github.com/Ning0612/Photostamp/internal/logger"
	"github.com/Ning0612/Photostamp/internal/progress"
	"github.com/Ning0612/Photostamp/internal/state"
)

// RenameService prefixes files with their timestamps, one file at a time
type RenameService struct {
	adapter  adapter.Adapter
	planner  planner.Planner
	opts     domain.RenameOptions
	reporter progress.Reporter

	journal  *state.Manager
	lock     *lock.FileLock
	checksum *checksum.Calculator
}

// NewRenameService creates a rename service over adp
func NewRenameService(adp adapter.Adapter, opts domain.RenameOptions) (*RenameService, error) {
	if adp == nil {
		return nil, fmt.Errorf("adapter cannot be nil")
	}

	p, err := planner.NewDefaultPlanner(opts.Pattern)
	if err != nil {
		return nil, err
	}

	return &RenameService{
		adapter: adp,
		planner: p,
		opts:    opts,
	}, nil
}

// SetPlanner replaces the default planner
func (s *RenameService) SetPlanner(p planner.Planner) {
	s.planner = p
}

// SetProgressReporter sets the progress reporter for rename runs
func (s *RenameService) SetProgressReporter(reporter progress.Reporter) {
	s.reporter = reporter
}

// SetJournal records performed renames into m. Runs hold the journal lock
// while they write. Dry runs are never journaled.
func (s *RenameService) SetJournal(m *state.Manager, l *lock.FileLock) {
	s.journal = m
	s.lock = l
	if s.checksum == nil {
		s.checksum = checksum.NewDefaultCalculator()
	}
}

// getReporter returns the current progress reporter or a null reporter
func (s *RenameService) getReporter() progress.Reporter {
	if s.reporter != nil {
		return s.reporter
	}
	return progress.NullReporter{}
}

func (s *RenameService) journaling() bool {
	return s.journal != nil && !s.opts.DryRun
}

// Run processes paths strictly in order. Per-file failures are reported and
// collected in the summary; the returned error is only set when the run
// itself cannot continue (journal unavailable, context cancelled).
func (s *RenameService) Run(ctx context.Context, paths []string) (domain.RunSummary, error) {
	var summary domain.RunSummary

	if len(paths) == 0 {
		return summary, nil
	}

	log := logger.With("dry_run", s.opts.DryRun, "source", s.opts.Source.String())
	log.Debug("starting rename run", "files", len(paths), "offset", offset.Format(s.opts.OffsetSeconds))

	var runID int64
	if s.journaling() {
		if s.lock != nil {
			if err := s.lock.Acquire("rename"); err != nil {
				return summary, fmt.Errorf("failed to acquire journal lock: %w", err)
			}
			defer func() {
				if err := s.lock.Release(); err != nil {
					log.Error("failed to release journal lock", "error", err)
				}
			}()
		}

		id, err := s.journal.BeginRun(s.opts)
		if err != nil {
			return summary, err
		}
		runID = id
		defer func() {
			if err := s.journal.FinishRun(runID, summary); err != nil {
				log.Error("failed to finish journaled run", "run", runID, "error", err)
			}
		}()
	}

	reporter := s.getReporter()
	reporter.SetTotal(len(paths))

	for _, path := range paths {
		select {
		case <-ctx.Done():
			log.Info("rename run cancelled", "processed", len(summary.Results), "files", len(paths))
			return summary, ctx.Err()
		default:
		}

		result := s.processFile(ctx, path, runID)
		reporter.Result(result)
		summary.Add(result)
	}

	log.Info("rename run completed",
		"files", len(paths),
		"renamed", summary.Count(domain.ResultRenamed),
		"dry_run_files", summary.Count(domain.ResultDryRun),
		"failures", summary.Failures(),
	)

	return summary, nil
}

// processFile plans and performs a single rename. It never panics: anything
// unexpected becomes a ResultUnexpected outcome.
func (s *RenameService) processFile(ctx context.Context, path string, runID int64) (result domain.FileResult) {
	result.Path = path

	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("panic while renaming", "path", path, "panic", r)
			result.Kind = domain.ResultUnexpected
			result.Err = fmt.Errorf("%w: %s: %v", domain.ErrUnexpected, path, r)
		}
	}()

	action := s.planner.PlanFile(ctx, s.adapter, path, s.opts)
	if action.Err != nil {
		logger.Get().Debug("cannot read timestamp", "path", path, "error", action.Err)
		result.Kind = domain.ClassifyError(action.Err)
		result.Err = action.Err
		return result
	}

	result.Target = action.Target
	s.getReporter().Planned(action)

	if s.opts.DryRun {
		result.Kind = domain.ResultDryRun
		return result
	}

	var sum string
	if s.journaling() {
		var err error
		sum, err = s.checksum.File(ctx, s.adapter, path)
		if err != nil {
			logger.Get().Warn("checksum failed, journaling without it", "path", path, "error", err)
			sum = ""
		}
	}

	if err := s.adapter.Rename(ctx, path, action.Target); err != nil {
		logger.Get().Error("rename failed", "path", path, "target", action.Target, "error", err)
		result.Kind = domain.ResultRenameFailed
		result.Err = fmt.Errorf("%w: %s: %w", domain.ErrRenameFailed, path, err)
		return result
	}

	result.Kind = domain.ResultRenamed
	logger.Get().Debug("renamed", "path", path, "target", action.Target)

	if s.journaling() {
		record := state.RenameRecord{
			OldPath:   absPath(path),
			NewPath:   absPath(action.Target),
			Timestamp: action.Timestamp,
			Checksum:  sum,
		}
		// Rename already done; journal failures are logged only
		if _, err := s.journal.RecordRename(runID, record); err != nil {
			logger.Get().Error("failed to journal rename", "path", path, "error", err)
		}
	}

	return result
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
