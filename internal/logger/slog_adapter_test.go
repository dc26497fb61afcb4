package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlogLogger_Basic(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewSlogLogger(Config{
		Level:   LevelDebug,
		Format:  FormatText,
		Outputs: []OutputConfig{{Type: OutputStderr, Writer: buf}},
	})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}
	defer logger.Shutdown()

	logger.Info("renamed", "from", "IMG_1.JPG")

	output := buf.String()
	if !strings.Contains(output, "renamed") {
		t.Errorf("log output missing message: %s", output)
	}
	if !strings.Contains(output, "from=IMG_1.JPG") {
		t.Errorf("log output missing key-value: %s", output)
	}
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		logFunc   func(*SlogLogger)
		shouldLog bool
	}{
		{"debug at debug level", LevelDebug, func(l *SlogLogger) { l.Debug("msg") }, true},
		{"debug at info level", LevelInfo, func(l *SlogLogger) { l.Debug("msg") }, false},
		{"info at warn level", LevelWarn, func(l *SlogLogger) { l.Info("msg") }, false},
		{"error at warn level", LevelWarn, func(l *SlogLogger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := NewSlogLogger(Config{
				Level:   tt.level,
				Outputs: []OutputConfig{{Type: OutputStderr, Writer: buf}},
			})
			if err != nil {
				t.Fatal(err)
			}

			tt.logFunc(logger)

			if got := buf.Len() > 0; got != tt.shouldLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.shouldLog, buf.String())
			}
		})
	}
}

func TestSlogLogger_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewSlogLogger(Config{
		Level:   LevelInfo,
		Format:  FormatJSON,
		Outputs: []OutputConfig{{Type: OutputStderr, Writer: buf}},
	})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("rename planned", "path", "a.jpg")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "rename planned" || entry["path"] != "a.jpg" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSlogLogger_MaskHome(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewSlogLogger(Config{
		Outputs:  []OutputConfig{{Type: OutputStderr, Writer: buf}},
		MaskHome: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	logger.sanitizer = newSanitizer("/home/alice")

	logger.Info("renaming", "path", "/home/alice/Pictures/IMG_1.JPG")

	output := buf.String()
	if strings.Contains(output, "alice") {
		t.Errorf("home directory leaked: %s", output)
	}
	if !strings.Contains(output, "~/Pictures/IMG_1.JPG") {
		t.Errorf("expected ~ path, got: %s", output)
	}
}

func TestSlogLogger_FileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "photostamp.log")

	logger, err := NewSlogLogger(Config{
		Level:   LevelInfo,
		Outputs: []OutputConfig{{Type: OutputFile}},
		File: FileConfig{
			Path:       logPath,
			MaxSizeMB:  1,
			MaxBackups: 1,
		},
	})
	if err != nil {
		t.Fatalf("NewSlogLogger() error = %v", err)
	}

	logger.Info("file message")

	if err := logger.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "file message") {
		t.Errorf("log file missing message: %s", content)
	}
}

func TestSlogLogger_FileOutputRequiresPath(t *testing.T) {
	_, err := NewSlogLogger(Config{Outputs: []OutputConfig{{Type: OutputFile}}})
	if err == nil {
		t.Error("expected error for empty log file path")
	}
}

func TestSlogLogger_MultipleOutputs(t *testing.T) {
	buf1 := &bytes.Buffer{}
	buf2 := &bytes.Buffer{}
	logger, err := NewSlogLogger(Config{
		Outputs: []OutputConfig{
			{Type: OutputStderr, Writer: buf1},
			{Type: OutputFile, Writer: buf2},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	logger.Warn("both")

	if !strings.Contains(buf1.String(), "both") || !strings.Contains(buf2.String(), "both") {
		t.Errorf("message missing from an output: %q / %q", buf1.String(), buf2.String())
	}
}
