// Package config carga la configuración: defaults -> archivo YAML opcional -> env.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StoragePostgres StorageDriver = "postgres"
	StorageBolt     StorageDriver = "bolt"
)

type Config struct {
	HTTP struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"http"`

	Storage struct {
		Driver   StorageDriver `yaml:"driver"`
		DSN      string        `yaml:"dsn"`
		BoltPath string        `yaml:"bolt_path"`
	} `yaml:"storage"`

	Idempotency struct {
		RedisAddr string        `yaml:"redis_addr"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"idempotency"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		App    string `yaml:"app"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.ReadTimeout = 5 * time.Second
	cfg.HTTP.WriteTimeout = 10 * time.Second
	cfg.Storage.Driver = StorageMemory
	cfg.Storage.BoltPath = "pawpairs.db"
	cfg.Idempotency.TTL = 24 * time.Hour
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Log.App = "pawpairs"
	return cfg
}

// Load aplica, en orden: defaults, CONFIG_FILE (si existe) y variables de entorno.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	cfg.HTTP.ReadTimeout = envDuration("HTTP_READ_TIMEOUT", cfg.HTTP.ReadTimeout)
	cfg.HTTP.WriteTimeout = envDuration("HTTP_WRITE_TIMEOUT", cfg.HTTP.WriteTimeout)

	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = StorageDriver(strings.ToLower(strings.TrimSpace(v)))
	}
	cfg.Storage.DSN = envOrDefault("DB_DSN", cfg.Storage.DSN)
	cfg.Storage.BoltPath = envOrDefault("BOLT_PATH", cfg.Storage.BoltPath)

	cfg.Idempotency.RedisAddr = envOrDefault("REDIS_ADDR", cfg.Idempotency.RedisAddr)
	cfg.Idempotency.TTL = envDuration("IDEMPOTENCY_TTL", cfg.Idempotency.TTL)

	cfg.Log.Level = envOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOrDefault("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.App = envOrDefault("APP_NAME", cfg.Log.App)
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("config: DB_DSN required for postgres storage")
		}
	case StorageBolt:
		if strings.TrimSpace(c.Storage.BoltPath) == "" {
			return errors.New("config: BOLT_PATH required for bolt storage")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Idempotency.TTL <= 0 {
		return errors.New("config: idempotency ttl must be positive")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envDuration acepta "30s"/"2m" o segundos enteros.
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
