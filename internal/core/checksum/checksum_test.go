package checksum

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ning0612/Photostamp/internal/adapter/local"
)

func TestCalculate(t *testing.T) {
	calc := NewDefaultCalculator()
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"hello world", "hello world", "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Calculate(ctx, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Calculate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMaxSizeLimit(t *testing.T) {
	calc := NewCalculator(Options{MaxSize: 10, BufferSize: 4096})

	_, err := calc.Calculate(context.Background(), strings.NewReader("this is longer than ten bytes"))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestExactlyMaxSize(t *testing.T) {
	calc := NewCalculator(Options{MaxSize: 5})

	if _, err := calc.Calculate(context.Background(), strings.NewReader("12345")); err != nil {
		t.Fatalf("content of exactly MaxSize should pass, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	calc := NewDefaultCalculator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calc.Calculate(ctx, bytes.NewReader(make([]byte, 1024)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestContextTimeout(t *testing.T) {
	calc := NewCalculator(Options{BufferSize: 1})
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := calc.Calculate(ctx, bytes.NewReader(make([]byte, 1024)))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}

	adp := local.New()
	ctx := context.Background()

	sum, err := NewDefaultCalculator().File(ctx, adp, path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if sum != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("File() = %s", sum)
	}

	sum, err = NewCalculator(Options{MaxSize: 3}).File(ctx, adp, path)
	if err != nil {
		t.Fatalf("oversized file should not fail, got %v", err)
	}
	if sum != "" {
		t.Errorf("oversized file checksum = %q, want empty", sum)
	}

	if _, err := NewDefaultCalculator().File(ctx, adp, filepath.Join(dir, "missing")); err == nil {
		t.Error("missing file should fail")
	}
}
