package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_EmptyConfigUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.MinDelay.Duration() != 3*time.Second {
		t.Errorf("MinDelay = %v, want 3s", cfg.MinDelay.Duration())
	}
	if cfg.MaxDelay.Duration() != 5*time.Second {
		t.Errorf("MaxDelay = %v, want 5s", cfg.MaxDelay.Duration())
	}
	if cfg.Title != "" {
		t.Errorf("Title = %q, want empty", cfg.Title)
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
title: Night shift rig
port: 8080
min_delay: 250ms
max_delay: 1s
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Night shift rig" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.MinDelay.Duration() != 250*time.Millisecond {
		t.Errorf("MinDelay = %v, want 250ms", cfg.MinDelay.Duration())
	}
	if cfg.MaxDelay.Duration() != time.Second {
		t.Errorf("MaxDelay = %v, want 1s", cfg.MaxDelay.Duration())
	}
}

func TestParse_PartialConfigKeepsOtherDefaults(t *testing.T) {
	cfg, err := Parse([]byte("port: 9000"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.MinDelay.Duration() != 3*time.Second || cfg.MaxDelay.Duration() != 5*time.Second {
		t.Errorf("delays = [%v, %v], want defaults [3s, 5s]",
			cfg.MinDelay.Duration(), cfg.MaxDelay.Duration())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			yaml:    "port: [not a port",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "invalid duration",
			yaml:    "min_delay: fast",
			wantErr: "invalid duration",
		},
		{
			name:    "negative port",
			yaml:    "port: -1",
			wantErr: "port must be in",
		},
		{
			name:    "port too large",
			yaml:    "port: 70000",
			wantErr: "port must be in",
		},
		{
			name:    "min delay too small",
			yaml:    "min_delay: 1ms",
			wantErr: "min_delay must be at least",
		},
		{
			name:    "inverted delay bounds",
			yaml:    "min_delay: 10s\nmax_delay: 2s",
			wantErr: "must not be less than min_delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_EqualDelayBoundsAllowed(t *testing.T) {
	cfg, err := Parse([]byte("min_delay: 4s\nmax_delay: 4s"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.MinDelay != cfg.MaxDelay {
		t.Errorf("bounds differ: %v vs %v", cfg.MinDelay.Duration(), cfg.MaxDelay.Duration())
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.MinDelay.Duration() != DefaultMinDelay {
		t.Errorf("MinDelay = %v, want %v", cfg.MinDelay.Duration(), DefaultMinDelay)
	}
	if cfg.MaxDelay.Duration() != DefaultMaxDelay {
		t.Errorf("MaxDelay = %v, want %v", cfg.MaxDelay.Duration(), DefaultMaxDelay)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventsim.yaml")
	if err := os.WriteFile(path, []byte("port: 4000"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q", err)
	}
}
