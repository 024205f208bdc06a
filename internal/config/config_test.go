package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xvierd/gitprompt/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Color != "always" {
		t.Errorf("expected default color 'always', got %q", cfg.Color)
	}
	if cfg.Log.Debug {
		t.Error("debug logging should be off by default")
	}
	if cfg.Log.MaxFiles != 20 {
		t.Errorf("expected default max_files 20, got %d", cfg.Log.MaxFiles)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitprompt", "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Color != "always" {
		t.Errorf("expected defaults, got color %q", cfg.Color)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Load() must not create the config file")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `color = "never"

[log]
debug = true
max_files = 3
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Color != "never" {
		t.Errorf("expected color 'never', got %q", cfg.Color)
	}
	if !cfg.Log.Debug {
		t.Error("expected debug logging on")
	}
	if cfg.Log.MaxFiles != 3 {
		t.Errorf("expected max_files 3, got %d", cfg.Log.MaxFiles)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("color = [unterminated"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GITPROMPT_COLOR", "auto")
	t.Setenv("GITPROMPT_LOG_DEBUG", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Color != "auto" {
		t.Errorf("expected color 'auto' from env, got %q", cfg.Color)
	}
	if !cfg.Log.Debug {
		t.Error("expected debug from env")
	}
}

func TestConfig_ColorMode(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	cfg := DefaultConfig()
	mode, err := cfg.ColorMode()
	if err != nil || mode != domain.ColorAlways {
		t.Errorf("ColorMode() = %q, %v", mode, err)
	}

	cfg.Color = "sometimes"
	if _, err := cfg.ColorMode(); err == nil {
		t.Error("expected error for invalid color mode")
	}

	t.Setenv("NO_COLOR", "1")
	mode, err = cfg.ColorMode()
	if err != nil || mode != domain.ColorNever {
		t.Errorf("ColorMode() with NO_COLOR = %q, %v", mode, err)
	}
}

func TestGetConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "gitprompt", "config.toml"); path != want {
		t.Errorf("GetConfigPath() = %q, want %q", path, want)
	}
}
