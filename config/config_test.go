package config

import (
	"log/slog"
	"testing"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ZEELORE_DATADIR", "/tmp/entities")
	t.Setenv("ZEELORE_SAVE", "/tmp/save.json")
	t.Setenv("ZEELORE_STRICT", "true")
	t.Setenv("ZEELORE_LOG", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/entities" || cfg.SavePath != "/tmp/save.json" {
		t.Errorf("unexpected paths: %+v", cfg)
	}
	if !cfg.Strict {
		t.Error("expected strict mode on")
	}
	if !cfg.Logger().Enabled(nil, slog.LevelDebug) {
		t.Error("debug level should enable debug logging")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ZEELORE_DATADIR", "")
	t.Setenv("ZEELORE_SAVE", "")
	t.Setenv("ZEELORE_LOG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir == "" || cfg.SavePath == "" {
		t.Errorf("unset paths should get platform defaults, got %+v", cfg)
	}
	if cfg.Logger().Enabled(nil, slog.LevelDebug) {
		t.Error("default level should not enable debug logging")
	}
}
