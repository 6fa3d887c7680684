// Package config loads CLI settings from the environment and optional
// dotenv files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/ham/internal/logging"
	"github.com/aretw0/ham/pkg/domain"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into Config.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds the process-level settings of the ham CLI.
type Config struct {
	LogLevel     string `env:"HAM_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"HAM_LOG_FORMAT" envDefault:"text"`
	DuplicateEnd string `env:"HAM_DUPLICATE_END" envDefault:"last-wins"`
	Addr         string `env:"HAM_ADDR" envDefault:":8080"`
}

// Load reads the given dotenv files (or ./.env when none are named) and then
// parses the environment. Variables already set in the process win over file
// values. A missing default .env is fine; a missing named file is not.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("failed to load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Logger builds the application logger described by LogLevel and LogFormat.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	switch c.LogFormat {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return nil, fmt.Errorf("invalid log format %q (want %s or %s)", c.LogFormat, logging.FormatText, logging.FormatJSON)
	}
	return logging.NewWithFormat(w, level, c.LogFormat), nil
}

// DuplicateEndPolicy parses HAM_DUPLICATE_END.
func (c Config) DuplicateEndPolicy() (domain.DuplicateEndPolicy, error) {
	return domain.ParseDuplicateEndPolicy(c.DuplicateEnd)
}
