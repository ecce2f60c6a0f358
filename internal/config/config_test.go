package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte(`{"workers": 4, "team2": "simple", "timeout_seconds": 0.5}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Workers != 4 || c.Team2 != "simple" {
		t.Fatalf("Parse() = %+v, want workers 4 and team2 simple", c)
	}
	if c.Team1 != "random" || c.ServerBinary != "euchred" {
		t.Fatalf("Parse() lost defaults: %+v", c)
	}
	if got := c.Timeout(); got != 500*time.Millisecond {
		t.Fatalf("Timeout() = %v, want %v", got, 500*time.Millisecond)
	}
	if got := c.FlushInterval(); got != time.Minute {
		t.Fatalf("FlushInterval() = %v, want %v", got, time.Minute)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no workers", `{"workers": 0}`},
		{"negative games", `{"games": -1}`},
		{"zero timeout", `{"timeout_seconds": 0}`},
		{"bad format", `{"log_format": "xml"}`},
		{"no binary", `{"server_binary": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Parse(%s) error = %v, want %v", tt.data, err, ErrInvalidConfig)
			}
		})
	}

	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatalf("Parse() of truncated JSON succeeded")
	}
}

func TestLoadRunConfigOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	if err := os.WriteFile(path, []byte(`{"games": 12, "grace_ms": 250}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadRunConfig(path); err != nil {
		t.Fatalf("LoadRunConfig() error = %v", err)
	}
	// later loads are no-ops
	if err := LoadRunConfig(filepath.Join(dir, "missing.json")); err != nil {
		t.Fatalf("second LoadRunConfig() error = %v", err)
	}
	c := GetRunConfig()
	if c.Games != 12 || c.Grace() != 250*time.Millisecond {
		t.Fatalf("GetRunConfig() = %+v", c)
	}
}
