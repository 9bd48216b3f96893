package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings are process-level knobs read from the environment. CLI flags
// default to these values.
type Settings struct {
	ConfigDir        string `env:"COSTHAGGLE_CONFIG" envDefault:"assets"`
	Workers          int    `env:"COSTHAGGLE_WORKERS" envDefault:"8"`
	LogLevel         string `env:"COSTHAGGLE_LOG_LEVEL" envDefault:"info"`
	Color            bool   `env:"COSTHAGGLE_COLOR" envDefault:"true"`
	MirrorByNegation bool   `env:"COSTHAGGLE_MIRROR_BY_NEGATION" envDefault:"false"`
}

func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	if s.Workers < 1 {
		return s, fmt.Errorf("parse env: COSTHAGGLE_WORKERS must be positive, got %d", s.Workers)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
