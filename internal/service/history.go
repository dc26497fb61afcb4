package service

import (
	"time"

	"github.com/Ning0612/Photostamp/internal/domain"
	"github.com/Ning0612/Photostamp/internal/state"
)

// RunHistory is one journaled run with its renames, shaped for output
type RunHistory struct {
	ID         int64           `json:"id" yaml:"id"`
	Started    time.Time       `json:"started" yaml:"started"`
	Finished   *time.Time      `json:"finished,omitempty" yaml:"finished,omitempty"`
	Status     string          `json:"status" yaml:"status"`
	Offset     int64           `json:"offset_seconds" yaml:"offset_seconds"`
	TimeSource string          `json:"time_source" yaml:"time_source"`
	Renamed    int             `json:"renamed" yaml:"renamed"`
	Failed     int             `json:"failed" yaml:"failed"`
	Renames    []RenameHistory `json:"renames" yaml:"renames"`
}

// RenameHistory is one journaled rename, shaped for output
type RenameHistory struct {
	OldPath   string    `json:"old_path" yaml:"old_path"`
	NewPath   string    `json:"new_path" yaml:"new_path"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Checksum  string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Undone    bool      `json:"undone" yaml:"undone"`
	Skipped   string    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// History returns the newest limit runs with their renames
func History(journal *state.Manager, limit int) ([]RunHistory, error) {
	if journal == nil {
		return nil, domain.ErrJournalDisabled
	}

	runs, err := journal.ListRuns(limit)
	if err != nil {
		return nil, err
	}

	history := make([]RunHistory, 0, len(runs))
	for _, run := range runs {
		records, err := journal.GetRenames(run.ID)
		if err != nil {
			return nil, err
		}

		entry := RunHistory{
			ID:         run.ID,
			Started:    run.StartTime,
			Status:     run.Status,
			Offset:     run.OffsetSeconds,
			TimeSource: run.TimeSource,
			Renamed:    run.Renamed,
			Failed:     run.Failed,
			Renames:    make([]RenameHistory, 0, len(records)),
		}
		if !run.EndTime.IsZero() {
			end := run.EndTime
			entry.Finished = &end
		}
		for _, r := range records {
			entry.Renames = append(entry.Renames, RenameHistory{
				OldPath:   r.OldPath,
				NewPath:   r.NewPath,
				Timestamp: r.Timestamp,
				Checksum:  r.Checksum,
				Undone:    r.Undone(),
				Skipped:   r.SkipReason,
			})
		}
		history = append(history, entry)
	}

	return history, nil
}
