package logger

import (
	"errors"
	"testing"
)

func TestSanitizer_Sanitize(t *testing.T) {
	s := newSanitizer("/home/alice")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"own home", "/home/alice/Pictures/a.jpg", "~/Pictures/a.jpg"},
		{"own home exact", "/home/alice", "~"},
		{"other user", "/home/bob/x.jpg", "/home/***/x.jpg"},
		{"mac user", "/Users/carol/DCIM/1.JPG", "/Users/***/DCIM/1.JPG"},
		{"windows user", `C:\Users\dave\Pictures\1.jpg`, `C:\Users\***\Pictures\1.jpg`},
		{"no home", "/mnt/card/DCIM/IMG_1.JPG", "/mnt/card/DCIM/IMG_1.JPG"},
		{"prefix is not home", "/home/alice2/x", "/home/***/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizer_SanitizeArgs(t *testing.T) {
	s := newSanitizer("/home/alice")

	args := []any{"path", "/home/alice/a.jpg", "count", 3, "error", errors.New("open /home/alice/b.jpg: denied")}
	got := s.SanitizeArgs(args)

	if got[1] != "~/a.jpg" {
		t.Errorf("string value = %v", got[1])
	}
	if got[3] != 3 {
		t.Errorf("int value should be untouched, got %v", got[3])
	}
	if got[5] != "open ~/b.jpg: denied" {
		t.Errorf("error value = %v", got[5])
	}
	if args[1] != "/home/alice/a.jpg" {
		t.Error("input slice must not be modified")
	}
}

func TestSanitizer_Zero(t *testing.T) {
	var s Sanitizer
	if got := s.Sanitize("/home/alice/a.jpg"); got != "/home/alice/a.jpg" {
		t.Errorf("zero sanitizer changed input: %q", got)
	}
}

func TestSanitizer_AddRule(t *testing.T) {
	s := newSanitizer("")

	if err := s.AddRule(`/media/[^/]+`, "/media/***"); err != nil {
		t.Fatalf("AddRule() error = %v", err)
	}
	if got := s.Sanitize("/media/SDCARD/DCIM"); got != "/media/***/DCIM" {
		t.Errorf("Sanitize() = %q", got)
	}

	if err := s.AddRule(`([`, "x"); err == nil {
		t.Error("invalid pattern should fail")
	}
}
