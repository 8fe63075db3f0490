package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from ADBOARD_* environment variables. The defaults
// match the fixed file layout the dashboard expects: the four CSVs next
// to the binary.
type Config struct {
	DataDir       string        `envconfig:"DATA_DIR" default:"."`
	PlatformFiles []string      `envconfig:"PLATFORM_FILES" default:"Facebook.csv,Google.csv,TikTok.csv"`
	BusinessFile  string        `envconfig:"BUSINESS_FILE" default:"Business.csv"`
	Port          string        `envconfig:"PORT" default:"8080"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("ADBOARD", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto slog's levels,
// defaulting to info for anything unrecognized.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
