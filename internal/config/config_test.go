package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eykd/adfconv/internal/config"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), config.FileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	data := "log:\n  level: debug\nconvert:\n  ids: sequential\nserver:\n  cache_ttl: 30s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := config.Default()
	want.Log.Level = "debug"
	want.Convert.IDs = config.IDModeSequential
	want.Server.CacheTTL = 30 * time.Second
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown key", data: "logging:\n  level: debug\n"},
		{name: "bad level", data: "log:\n  level: loud\n"},
		{name: "bad format", data: "log:\n  format: xml\n"},
		{name: "bad id mode", data: "convert:\n  ids: counter\n"},
		{name: "bad body limit", data: "server:\n  body_limit: 0\n"},
		{name: "bad duration", data: "server:\n  cache_ttl: soon\n"},
		{name: "zero cache ttl", data: "server:\n  cache_ttl: 0s\n"},
		{name: "negative cache ttl", data: "server:\n  cache_ttl: -1m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if err := config.Decode([]byte(tt.data), &cfg); err == nil {
				t.Errorf("Decode(%q) expected error", tt.data)
			}
		})
	}
}

func TestDecode_EmptyKeepsDefaults(t *testing.T) {
	cfg := config.Default()
	if err := config.Decode(nil, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	want := config.Default()
	want.Log.File = "adfc.log"
	data, err := config.Marshal(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := config.Config{}
	if err := config.Decode(data, &got); err != nil {
		t.Fatalf("Decode() unexpected error: %v\n%s", err, data)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
