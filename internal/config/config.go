// Package config loads server settings from the environment, reading a local
// .env file first when one exists.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the planner server settings.
type Config struct {
	HTTPAddr     string   `env:"PLANNER_HTTP_ADDR" envDefault:":8080"`
	DatabaseURL  string   `env:"PLANNER_DATABASE_URL"`
	KafkaBrokers []string `env:"PLANNER_KAFKA_BROKERS" envSeparator:","`
	LogLevel     string   `env:"PLANNER_LOG_LEVEL" envDefault:"info"`
	LogFormat    string   `env:"PLANNER_LOG_FORMAT" envDefault:"json"`
}

// UsesPostgres reports whether a database URL was configured.
func (c Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// UsesKafka reports whether any brokers were configured.
func (c Config) UsesKafka() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads the given .env files (".env" when none are named) and then
// parses the environment. Missing .env files are not an error; variables
// already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
