package planner

import (
	"context"
	"errors"
	"io"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ning0612/Photostamp/internal/core/namer"
	"github.com/Ning0612/Photostamp/internal/domain"
)

// mockAdapter serves fixed metadata
type mockAdapter struct {
	files map[string]domain.FileInfo
}

func (m *mockAdapter) Stat(ctx context.Context, path string) (domain.FileInfo, error) {
	f, ok := m.files[path]
	if !ok {
		return domain.FileInfo{}, domain.ErrNotFound
	}
	return f, nil
}

func (m *mockAdapter) StatFile(ctx context.Context, path string) (domain.FileInfo, error) {
	f, err := m.Stat(ctx, path)
	if err != nil {
		return f, err
	}
	if !f.IsFile() {
		return domain.FileInfo{}, domain.ErrNotFile
	}
	return f, nil
}

func (m *mockAdapter) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAdapter) Rename(ctx context.Context, oldPath, newPath string) error {
	return nil
}

func (m *mockAdapter) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func newTestPlanner(t *testing.T) *DefaultPlanner {
	t.Helper()
	n, err := namer.New("")
	if err != nil {
		t.Fatal(err)
	}
	return &DefaultPlanner{Namer: n.WithLocation(time.UTC)}
}

func TestPlanFile_CreationTime(t *testing.T) {
	p := newTestPlanner(t)
	ctime := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)
	mtime := time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC)

	path := filepath.Join("dcim", "IMG_0001.JPG")
	adp := &mockAdapter{files: map[string]domain.FileInfo{
		path: {Path: path, Type: domain.FileTypeRegular, ModTime: mtime, ChangeTime: ctime},
	}}

	action := p.PlanFile(context.Background(), adp, path, domain.RenameOptions{})
	if action.Err != nil {
		t.Fatalf("unexpected error: %v", action.Err)
	}
	if action.NewName != "20220501_120000_IMG_0001.JPG" {
		t.Errorf("NewName = %q", action.NewName)
	}
	if action.Target != filepath.Join("dcim", "20220501_120000_IMG_0001.JPG") {
		t.Errorf("Target = %q", action.Target)
	}
}

func TestPlanFile_ModTimeWithOffset(t *testing.T) {
	p := newTestPlanner(t)
	mtime := time.Date(2021, 1, 2, 0, 30, 0, 0, time.UTC)

	adp := &mockAdapter{files: map[string]domain.FileInfo{
		"a.jpg": {Path: "a.jpg", Type: domain.FileTypeRegular, ModTime: mtime, ChangeTime: time.Now()},
	}}

	opts := domain.RenameOptions{
		Source:        domain.TimeSourceModification,
		OffsetSeconds: -3600,
	}
	action := p.PlanFile(context.Background(), adp, "a.jpg", opts)
	if action.Err != nil {
		t.Fatalf("unexpected error: %v", action.Err)
	}
	if action.NewName != "20210101_233000_a.jpg" {
		t.Errorf("NewName = %q, want previous day", action.NewName)
	}
	if !action.Timestamp.Equal(mtime.Add(-time.Hour)) {
		t.Errorf("Timestamp = %v", action.Timestamp)
	}
}

func TestPlanFile_EpochZero(t *testing.T) {
	p := newTestPlanner(t)
	adp := &mockAdapter{files: map[string]domain.FileInfo{
		"old.jpg": {Path: "old.jpg", Type: domain.FileTypeRegular, ModTime: time.Unix(0, 0)},
	}}

	action := p.PlanFile(context.Background(), adp, "old.jpg", domain.RenameOptions{Source: domain.TimeSourceModification})
	if action.Err != nil {
		t.Fatalf("epoch zero must be planned, got %v", action.Err)
	}
	if action.NewName != "19700101_000000_old.jpg" {
		t.Errorf("NewName = %q", action.NewName)
	}
}

func TestPlanFile_ReadErrors(t *testing.T) {
	p := newTestPlanner(t)
	adp := &mockAdapter{files: map[string]domain.FileInfo{
		"dir": {Path: "dir", Type: domain.FileTypeDirectory},
	}}

	tests := []struct {
		path string
		want error
	}{
		{"missing.jpg", domain.ErrNotFound},
		{"dir", domain.ErrNotFile},
	}

	for _, tt := range tests {
		action := p.PlanFile(context.Background(), adp, tt.path, domain.RenameOptions{})
		if !errors.Is(action.Err, tt.want) {
			t.Errorf("PlanFile(%q).Err = %v, want %v", tt.path, action.Err, tt.want)
		}
		if action.Target != "" {
			t.Errorf("PlanFile(%q) should not have a target", tt.path)
		}
	}
}

func TestPlanFile_LargeOffset(t *testing.T) {
	p := newTestPlanner(t)
	adp := &mockAdapter{files: map[string]domain.FileInfo{
		"old.jpg": {Path: "old.jpg", Type: domain.FileTypeRegular, ModTime: time.Unix(0, 0)},
	}}

	// Beyond what time.Duration can hold
	opts := domain.RenameOptions{Source: domain.TimeSourceModification, OffsetSeconds: 10_000_000_000}
	action := p.PlanFile(context.Background(), adp, "old.jpg", opts)
	if action.Err != nil {
		t.Fatalf("unexpected error: %v", action.Err)
	}
	if action.NewName != "22861120_174640_old.jpg" {
		t.Errorf("NewName = %q, want 22861120_174640_old.jpg", action.NewName)
	}

	opts.OffsetSeconds = -10_000_000_000
	action = p.PlanFile(context.Background(), adp, "old.jpg", opts)
	if action.Err != nil {
		t.Fatalf("unexpected error: %v", action.Err)
	}
	if action.NewName != "16530210_061320_old.jpg" {
		t.Errorf("NewName = %q, want 16530210_061320_old.jpg", action.NewName)
	}
}

func TestPlanFile_OffsetOutOfRange(t *testing.T) {
	p := newTestPlanner(t)
	adp := &mockAdapter{files: map[string]domain.FileInfo{
		"a.jpg": {Path: "a.jpg", Type: domain.FileTypeRegular, ModTime: time.Unix(1700000000, 0)},
	}}

	for _, secs := range []int64{math.MaxInt64, math.MinInt64} {
		opts := domain.RenameOptions{Source: domain.TimeSourceModification, OffsetSeconds: secs}
		action := p.PlanFile(context.Background(), adp, "a.jpg", opts)
		if !errors.Is(action.Err, domain.ErrUnexpected) {
			t.Errorf("offset %d: Err = %v, want ErrUnexpected", secs, action.Err)
		}
		if action.NewName != "" {
			t.Errorf("offset %d: NewName = %q, want empty", secs, action.NewName)
		}
	}
}
