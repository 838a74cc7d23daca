package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eykd/adfconv/internal/config"
	"github.com/eykd/adfconv/internal/logger"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(config.Log{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Debug("hidden")
	log.Info("converted")
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync() unexpected error: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not one JSON entry: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "converted" {
		t.Errorf("msg = %v, want %q", entry["msg"], "converted")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want %q", entry["level"], "info")
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Errorf("entry has no timestamp: %v", entry)
	}
}

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(config.Log{Level: "warn", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info("quiet")
	log.Warn("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestNew_ConsoleNotTerminalHasNoColour(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(config.Log{Level: "info", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Warn("piped")
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output contains escape sequences: %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("output = %q, want plain capital level", out)
	}
}

func TestIsTerminal(t *testing.T) {
	if logger.IsTerminal(new(bytes.Buffer)) {
		t.Error("a buffer is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if logger.IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfc.log")
	var buf bytes.Buffer
	log, err := logger.New(config.Log{Level: "info", Format: "json", File: path, MaxMB: 1, Keep: 1}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info("to file")
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want entry", data)
	}
	if buf.Len() != 0 {
		t.Errorf("writer received %q, want nothing", buf.String())
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Log
	}{
		{name: "unknown level", cfg: config.Log{Level: "chatty", Format: "json"}},
		{name: "unknown format", cfg: config.Log{Level: "info", Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := logger.New(tt.cfg, new(bytes.Buffer)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
