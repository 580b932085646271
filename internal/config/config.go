package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the server's runtime configuration. Empty DSN and journal path
// fall back to in-memory adapters.
type Config struct {
	HTTPAddr      string `env:"DECISIONLAB_HTTP_ADDR" envDefault:":8080"`
	DBDSN         string `env:"DECISIONLAB_DB_DSN"`
	MigrationsDir string `env:"DECISIONLAB_MIGRATIONS_DIR" envDefault:"db/migrations"`
	JournalPath   string `env:"DECISIONLAB_JOURNAL_PATH"`
	CatalogDir    string `env:"DECISIONLAB_CATALOG_DIR"`
	CORSOrigin    string `env:"DECISIONLAB_CORS_ORIGIN" envDefault:"*"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads from vars; nil vars means the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBDSN = strings.TrimSpace(cfg.DBDSN)
	cfg.JournalPath = strings.TrimSpace(cfg.JournalPath)
	cfg.CatalogDir = strings.TrimSpace(cfg.CatalogDir)
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return Config{}, fmt.Errorf("DECISIONLAB_HTTP_ADDR is empty")
	}
	return cfg, nil
}

// UsePostgres reports whether sessions live in postgres.
func (c Config) UsePostgres() bool {
	return c.DBDSN != ""
}
