package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/contactdesk/internal/data/db"
	"github.com/yungbote/contactdesk/internal/observability"
	"github.com/yungbote/contactdesk/internal/platform/envutil"
)

const defaultSecretKey = "change-me"

type Config struct {
	Addr            string                   `yaml:"addr"`
	LogMode         string                   `yaml:"log_mode"`
	SecretKey       string                   `yaml:"secret_key"`
	FlashTTL        time.Duration            `yaml:"flash_ttl"`
	Database        db.Config                `yaml:"database"`
	CORSOrigins     []string                 `yaml:"cors_origins"`
	Otel            observability.OtelConfig `yaml:"otel"`
	MetricsEnabled  bool                     `yaml:"metrics_enabled"`
	MetricsInterval time.Duration            `yaml:"metrics_interval"`
	ShutdownTimeout time.Duration            `yaml:"shutdown_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Addr:      ":5000",
		LogMode:   "development",
		SecretKey: defaultSecretKey,
		FlashTTL:  60 * time.Second,
		Database: db.Config{
			Driver:       db.DriverSQLite,
			Path:         db.DefaultSQLitePath,
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		Otel: observability.OtelConfig{
			ServiceName: "contactdesk",
			SampleRatio: 0.1,
		},
		MetricsInterval: 10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig layers defaults, the optional YAML file and the environment, in
// that order. An empty path falls back to CONFIG_FILE.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		path = envutil.String("CONFIG_FILE", "")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Addr = envutil.String("HTTP_ADDR", c.Addr)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)
	c.SecretKey = envutil.String("SECRET_KEY", c.SecretKey)
	c.FlashTTL = envutil.Seconds("FLASH_TTL_SECONDS", c.FlashTTL)

	c.Database.Driver = envutil.String("DB_DRIVER", c.Database.Driver)
	c.Database.Path = envutil.String("DB_PATH", c.Database.Path)
	c.Database.DSN = envutil.String("DB_DSN", c.Database.DSN)
	c.Database.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = envutil.Int("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)

	c.CORSOrigins = envutil.List("CORS_ORIGINS", c.CORSOrigins)

	c.Otel.Enabled = envutil.Bool("OTEL_ENABLED", c.Otel.Enabled)
	c.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.Otel.ServiceName)
	c.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", c.Otel.Environment)
	c.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", c.Otel.SampleRatio)
	c.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint)
	c.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure)
	if h := observability.ParseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")); h != nil {
		c.Otel.Headers = h
	}

	c.MetricsEnabled = envutil.Bool("METRICS_ENABLED", c.MetricsEnabled)
	c.MetricsInterval = envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", c.MetricsInterval)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret key is required")
	}
	if c.FlashTTL <= 0 {
		return errors.New("flash ttl must be positive")
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}
