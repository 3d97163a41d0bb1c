package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/foundyear/internal/model"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(model.LogConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() { _ = closer.Close() }()

	logger.Info("hidden")
	logger.Warn("lookup failed", "company", "Ghostfirm Inc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info message to be filtered at warn level")
	}
	if !strings.Contains(out, `"company":"Ghostfirm Inc"`) {
		t.Errorf("expected JSON attribute, got %s", out)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foundyear.log")
	logger, closer, err := New(model.LogConfig{Level: "info", Format: "text", File: path, MaxSizeMB: 1}, os.Stderr)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("batch started", "run_id", "abc")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "run_id=abc") {
		t.Errorf("unexpected log contents: %s", data)
	}
}

func TestNew_BadFormat(t *testing.T) {
	if _, _, err := New(model.LogConfig{Format: "xml"}, os.Stderr); err == nil {
		t.Error("expected error for unknown format")
	}
}
