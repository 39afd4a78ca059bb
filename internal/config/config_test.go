package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bryanchriswhite/snapsource/internal/source"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ServerPort != 8080 {
		t.Fatalf("default port = %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level = %q", cfg.LogLevel)
	}
	if cfg.CaptureTimeoutMS != 5000 {
		t.Fatalf("default capture timeout = %d", cfg.CaptureTimeoutMS)
	}
	if cfg.ThumbnailSize != (source.Size{Width: 160, Height: 120}) {
		t.Fatalf("default thumbnail size = %v", cfg.ThumbnailSize)
	}
	if cfg.IconSize != (source.Size{Width: 32, Height: 32}) {
		t.Fatalf("default icon size = %v", cfg.IconSize)
	}
}

func TestCaptureTimeout(t *testing.T) {
	cfg := &Config{CaptureTimeoutMS: 250}
	if got := cfg.CaptureTimeout(); got != 250*time.Millisecond {
		t.Fatalf("timeout = %v", got)
	}

	cfg.CaptureTimeoutMS = 0
	if got := cfg.CaptureTimeout(); got != 5*time.Second {
		t.Fatalf("zero timeout must fall back to 5s, got %v", got)
	}
}

func TestNewManagerCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
	if mgr.Get().ServerPort != 8080 {
		t.Fatalf("fresh config did not use defaults")
	}
}

func TestManagerSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	mgr.SetPort(9191)
	mgr.SetLogLevel("debug")
	if err := mgr.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := NewManager(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	cfg := reloaded.Get()
	if cfg.ServerPort != 9191 {
		t.Fatalf("reloaded port = %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("reloaded log level = %q", cfg.LogLevel)
	}
	// Untouched settings keep their defaults after a round trip.
	if cfg.StreamFPS != 10 {
		t.Fatalf("reloaded stream fps = %d", cfg.StreamFPS)
	}
}

func TestManagerPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_port: 3000\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	cfg := mgr.Get()
	if cfg.ServerPort != 3000 {
		t.Fatalf("port = %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("missing keys must fall back to defaults, log level = %q", cfg.LogLevel)
	}
}

func TestManagerRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := NewManager(path); err == nil {
		t.Fatalf("expected an error for a malformed config file")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := mgr.Get()
	cfg.ServerPort = 1
	if mgr.Get().ServerPort == 1 {
		t.Fatalf("Get must return a copy, not the live config")
	}
}
