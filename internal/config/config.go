package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	applog "shopfront/internal/log"
)

// Config is read from SHOPFRONT_* environment variables, optionally seeded from a .env file.
type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	DBDriver     string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN        string        `envconfig:"DB_DSN" default:"shopfront.db"`
	APIBaseURL   string        `envconfig:"API_BASE_URL" default:"https://dummyjson.com"`
	APITimeout   time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	PageSize     int           `envconfig:"PAGE_SIZE" default:"20"`
	ListStale    time.Duration `envconfig:"LIST_STALE" default:"5m"`
	LogFile      string        `envconfig:"LOG_FILE" default:"./shopfront.log"`
	TemplatesDir string        `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
	StaticDir    string        `envconfig:"STATIC_DIR" default:"./web/static"`
}

func Load() (Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("shopfront", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "read environment")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	applog.Info(nil, "config.loaded", map[string]any{
		"port":         cfg.Port,
		"db_driver":    cfg.DBDriver,
		"db_dsn":       cfg.DBDSN,
		"api_base_url": cfg.APIBaseURL,
		"api_timeout":  cfg.APITimeout.String(),
		"log_file":     cfg.LogFile,
	})
	return cfg, nil
}
