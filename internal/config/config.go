// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment key.
const Prefix = "ROLEFORM_"

// Sink kinds.
const (
	SinkLog    = "log"
	SinkStdout = "stdout"
)

type Config struct {
	Addr          string        `env:"ADDR" envDefault:":8080"`
	Locale        string        `env:"LOCALE" envDefault:"en"`
	Theme         string        `env:"THEME" envDefault:"roleform"`
	ThemeVariant  string        `env:"THEME_VARIANT" envDefault:"light"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"5s"`
	Sink          string        `env:"SINK" envDefault:"log"`
	Logger        Logger
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads envPath when it exists, then parses the environment. An empty
// envPath skips the file.
func Load(envPath string) (Config, error) {
	if envPath = strings.TrimSpace(envPath); envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}
	return Parse(env.Options{Prefix: Prefix})
}

// Parse reads the configuration with explicit env options, e.g. a fixed
// Environment map in tests.
func Parse(opts env.Options) (Config, error) {
	if opts.Prefix == "" {
		opts.Prefix = Prefix
	}
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Sink {
	case SinkLog, SinkStdout:
	default:
		return fmt.Errorf("config: unknown sink %q", c.Sink)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Logger.Format)
	}
	if c.ShutdownGrace < 0 {
		return errors.New("config: shutdown grace must not be negative")
	}
	return nil
}
