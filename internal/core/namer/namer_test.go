package namer

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ning0612/Photostamp/internal/domain"
)

func TestStrftimeNamer_NewName(t *testing.T) {
	n, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n = n.WithLocation(time.UTC)

	ts := time.Date(2019, 3, 7, 8, 5, 9, 0, time.UTC)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"bare name", "IMG_0042.JPG", "20190307_080509_IMG_0042.JPG"},
		{"with directory", filepath.Join("photos", "trip", "DSC1.jpg"), "20190307_080509_DSC1.jpg"},
		{"already prefixed", "20190307_080509_a.jpg", "20190307_080509_20190307_080509_a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.NewName(tt.path, ts); got != tt.want {
				t.Errorf("NewName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestStrftimeNamer_MatchesGoLayout(t *testing.T) {
	n, err := New(domain.DefaultPattern)
	if err != nil {
		t.Fatal(err)
	}

	ts := time.Unix(1700000000, 0)
	want := ts.In(time.Local).Format("20060102_150405")
	if got := n.Prefix(ts); got != want {
		t.Errorf("Prefix() = %q, want %q", got, want)
	}
}

func TestStrftimeNamer_OffsetAcrossDayBoundary(t *testing.T) {
	n, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	n = n.WithLocation(time.UTC)

	base := time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)

	tests := []struct {
		offset time.Duration
		want   string
	}{
		{-time.Hour, "20231231_233000"},
		{24 * time.Hour, "20240102_003000"},
		{0, "20240101_003000"},
	}

	for _, tt := range tests {
		if got := n.Prefix(base.Add(tt.offset)); got != tt.want {
			t.Errorf("Prefix(base%+v) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New("%Y%Q")
	if !errors.Is(err, domain.ErrInvalidPattern) {
		t.Errorf("New() error = %v, want ErrInvalidPattern", err)
	}
}

func TestTarget(t *testing.T) {
	got := Target(filepath.Join("a", "b", "old.jpg"), "new.jpg")
	want := filepath.Join("a", "b", "new.jpg")
	if got != want {
		t.Errorf("Target() = %q, want %q", got, want)
	}
}
