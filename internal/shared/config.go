package shared

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// Content store backends.
const (
	BackendHTTP  = "http"
	BackendMySQL = "mysql"
	BackendRedis = "redis"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`

	Backend      string        `env:"CONTENT_BACKEND" envDefault:"http"`
	ContentBase  string        `env:"CONTENT_BASE_URL" envDefault:"http://localhost:8081/_api/cms/v1"`
	ContentKey   string        `env:"CONTENT_API_KEY"`
	ContentAPI   string        `env:"CONTENT_API_LAYOUT" envDefault:"collections"`
	ContentRPS   float64       `env:"CONTENT_RPS" envDefault:"10"`
	MediaBase    string        `env:"CONTENT_MEDIA_BASE" envDefault:"https://static.wixstatic.com/media/"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"20s"`
	FetchRetries int           `env:"FETCH_RETRIES" envDefault:"1"`

	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MIN" envDefault:"120"`
	CheckWorkers    int    `env:"CHECK_WORKERS" envDefault:"4"`
	SiteProfile     string `env:"SITE_PROFILE"`
}

// Load reads the environment and then lets command-line flags override it.
func Load(args []string) (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	flags := pflag.NewFlagSet("hotel", pflag.ContinueOnError)
	flags.StringVarP(&c.HTTPAddr, "addr", "a", c.HTTPAddr, "HTTP listen address")
	flags.StringVarP(&c.Backend, "backend", "b", c.Backend, "content store backend: http|mysql|redis")
	flags.StringVarP(&c.AppEnv, "env", "e", c.AppEnv, "app environment (dev uses console logs)")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "minimum log level")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if flags.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	if c.Backend == BackendHTTP && c.ContentKey == "" {
		log.Warn().Msg("CONTENT_API_KEY is empty")
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendHTTP, BackendMySQL, BackendRedis:
	default:
		return fmt.Errorf("unknown content backend %q", c.Backend)
	}
	switch c.ContentAPI {
	case "collections", "legacy":
	default:
		return fmt.Errorf("CONTENT_API_LAYOUT must be collections or legacy, got %q", c.ContentAPI)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("FETCH_RETRIES must be >= 0, got %d", c.FetchRetries)
	}
	if c.ContentRPS <= 0 {
		return fmt.Errorf("CONTENT_RPS must be > 0, got %v", c.ContentRPS)
	}
	if c.CheckWorkers < 1 {
		return fmt.Errorf("CHECK_WORKERS must be >= 1, got %d", c.CheckWorkers)
	}
	return nil
}
