package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("level = %v, want info", cfg.Level())
	}
	if got := len(cfg.ContextOptions()); got != 2 {
		t.Errorf("auto present mode produced %d context options, want 2", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water-spider.yaml")
	data := []byte(`
title: "Reflecting Pool"
resizable: false
log_level: DEBUG
profiling: true
power_preference: high
present_mode: mailbox
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Title:           "Reflecting Pool",
		LogLevel:        "debug",
		Profiling:       true,
		PowerPreference: "high",
		PresentMode:     "mailbox",
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.Level())
	}
	if got := len(cfg.ContextOptions()); got != 3 {
		t.Errorf("explicit present mode produced %d context options, want 3", got)
	}
	if got := len(cfg.WindowOptions()); got != 2 {
		t.Errorf("window options = %d, want 2", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want a read error", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"empty document", "", false},
		{"comment only", "# nothing here\n", false},
		{"blank title keeps default", "title: \"  \"\n", false},
		{"fallback adapter", "force_fallback_adapter: true\n", false},
		{"unknown key", "width: 640\n", true},
		{"bad log level", "log_level: loud\n", true},
		{"bad power preference", "power_preference: turbo\n", true},
		{"bad present mode", "present_mode: vsync\n", true},
		{"malformed", "title: [unterminated\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("err = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cfg.Title == "" {
				t.Error("title left empty")
			}
		})
	}
}
