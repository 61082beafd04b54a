package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	SchemasDir    string `env:"RDGEN_SCHEMAS_DIR" envDefault:"./schemas"`
	RunsDBPath    string `env:"RDGEN_RUNS_DB" envDefault:"./rdgen-runs.sqlite"`
	LogLevel      string `env:"RDGEN_LOG_LEVEL" envDefault:"info"`
	BindAddr      string `env:"RDGEN_BIND_ADDR" envDefault:":8080"`
	DefaultCount  int    `env:"RDGEN_DEFAULT_COUNT" envDefault:"10"`
	DefaultFormat string `env:"RDGEN_DEFAULT_FORMAT" envDefault:"array"`
	BatchSize     int    `env:"RDGEN_BATCH_SIZE" envDefault:"500"`
	TableMode     string `env:"RDGEN_TABLE_MODE" envDefault:"create"`
}

// Load reads ./.env when present (without overriding variables already set)
// and then the process environment. Any unparseable variable is an error;
// nothing is silently replaced by its default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
