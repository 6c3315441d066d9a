// Package config reads runtime settings from ZEELORE_* environment
// variables, with platform defaults for the game's export directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration.
type Config struct {
	DataDir  string `env:"ZEELORE_DATADIR"`
	SavePath string `env:"ZEELORE_SAVE"`
	Strict   bool   `env:"ZEELORE_STRICT"`
	LogLevel string `env:"ZEELORE_LOG" envDefault:"info"`
}

// Load parses the environment and fills in platform defaults for unset
// paths.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.SavePath == "" {
		cfg.SavePath = filepath.Join(defaultSaveDir(), "Autosave.json")
	}
	return cfg, nil
}

// Logger builds the process logger at the configured level, writing to
// stderr so command output stays clean on stdout.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// gameDir locates the game's user-data directory the way the game
// itself does on each platform.
func gameDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Sunless Sea")
	case "windows":
		if base := os.Getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(base, "Sunless Sea")
		}
		return filepath.Join(home, "AppData", "LocalLow", "Sunless Sea")
	default:
		if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
			return filepath.Join(base, "unity3d", "Failbetter Games", "Sunless Sea")
		}
		return filepath.Join(home, ".config", "unity3d", "Failbetter Games", "Sunless Sea")
	}
}

func defaultDataDir() string {
	return filepath.Join(gameDir(), "entities")
}

func defaultSaveDir() string {
	return filepath.Join(gameDir(), "saves")
}
