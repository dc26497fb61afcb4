package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/Ning0612/Photostamp/internal/adapter"
	"github.com/Ning0612/Photostamp/internal/core/namer"
	"github.com/Ning0612/Photostamp/internal/domain"
)

// Planner computes the rename action for a single file
type Planner interface {
	PlanFile(ctx context.Context, adp adapter.Adapter, path string, opts domain.RenameOptions) domain.RenameAction
}

// DefaultPlanner reads the timestamp through the adapter and names the file
// with a namer.Namer
type DefaultPlanner struct {
	Namer namer.Namer
}

// NewDefaultPlanner creates a planner naming files with pattern.
// An empty pattern means domain.DefaultPattern.
func NewDefaultPlanner(pattern string) (*DefaultPlanner, error) {
	n, err := namer.New(pattern)
	if err != nil {
		return nil, err
	}
	return &DefaultPlanner{Namer: n}, nil
}

// PlanFile reads path's timestamp, applies the offset and computes the new
// name. Read failures are returned in the action's Err field.
func (p *DefaultPlanner) PlanFile(ctx context.Context, adp adapter.Adapter, path string, opts domain.RenameOptions) domain.RenameAction {
	action := domain.RenameAction{Path: path}

	info, err := adp.StatFile(ctx, path)
	if err != nil {
		action.Err = err
		return action
	}

	ts, err := shift(info.Time(opts.Source), opts.OffsetSeconds)
	if err != nil {
		action.Err = fmt.Errorf("%w: %s: %w", domain.ErrUnexpected, path, err)
		return action
	}
	newName := p.Namer.NewName(path, ts)

	action.Info = info
	action.Timestamp = ts
	action.NewName = newName
	action.Target = namer.Target(path, newName)
	return action
}

// maxUnix bounds shifted timestamps to about a billion years either side of
// the epoch, where calendar arithmetic in package time stays exact.
const maxUnix = 1 << 55

// shift adds seconds to t in whole-second arithmetic
func shift(t time.Time, seconds int64) (time.Time, error) {
	base := t.Unix()
	if (seconds > 0 && base > maxUnix-seconds) || (seconds < 0 && base < -maxUnix-seconds) {
		return time.Time{}, fmt.Errorf("offset %d seconds moves timestamp out of range", seconds)
	}
	return time.Unix(base+seconds, 0), nil
}
