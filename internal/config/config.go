package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar names the optional YAML file layered between defaults and the
// environment.
const PathEnvVar = "CONFIG_PATH"

// Config captures all runtime configuration. Keys mirror the environment
// variable names, lower-cased, so a YAML file uses the same vocabulary.
type Config struct {
	Port              string `koanf:"port"`
	AuthToken         string `koanf:"auth_token"`
	DBURL             string `koanf:"db_url"`
	ReadTimeoutSecs   int    `koanf:"server_read_timeout"`
	WriteTimeoutSecs  int    `koanf:"server_write_timeout"`
	IdleTimeoutSecs   int    `koanf:"server_idle_timeout"`
	MaxBatchBytes     int64  `koanf:"max_batch_bytes"`
	DBMaxConns        int    `koanf:"db_max_conns"`
	DBMinConns        int    `koanf:"db_min_conns"`
	DBMaxIdleSecs     int    `koanf:"db_max_conn_idle_secs"`
	DBMaxLifeSecs     int    `koanf:"db_max_conn_lifetime_secs"`
	DBConnTimeoutSecs int    `koanf:"db_conn_timeout_secs"`
	DBStatementCache  int    `koanf:"db_statement_cache_capacity"`
	LogLevel          string `koanf:"log_level"`
	LogFormat         string `koanf:"log_format"`
}

func defaults() Config {
	return Config{
		Port:              "8080",
		ReadTimeoutSecs:   15,
		WriteTimeoutSecs:  15,
		IdleTimeoutSecs:   60,
		MaxBatchBytes:     8 << 20,
		DBMaxConns:        20,
		DBMinConns:        2,
		DBMaxIdleSecs:     300,
		DBMaxLifeSecs:     3600,
		DBConnTimeoutSecs: 10,
		DBStatementCache:  256,
		LogLevel:          "info",
		LogFormat:         "auto",
	}
}

// Load layers struct defaults, the optional CONFIG_PATH file and the
// environment, in increasing priority, then validates the result.
func Load() (Config, error) {
	k := koanf.New(".")

	base := defaults()
	if err := k.Load(structs.Provider(&base, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(PathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	known := make(map[string]bool)
	for _, key := range k.Keys() {
		known[key] = true
	}
	// Unset and empty variables leave the lower layers in place.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(key)
		if !known[key] || value == "" {
			return "", nil
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Stateless reports whether the server runs without a fixture store.
func (c Config) Stateless() bool {
	return c.DBURL == ""
}

// Validate applies range checks; messages name the offending key.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxBatchBytes <= 0 {
		return fmt.Errorf("MAX_BATCH_BYTES must be positive")
	}
	if c.ReadTimeoutSecs <= 0 || c.WriteTimeoutSecs <= 0 || c.IdleTimeoutSecs <= 0 {
		return fmt.Errorf("SERVER_*_TIMEOUT values must be positive")
	}
	switch c.LogFormat {
	case "auto", "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be one of auto, json, console")
	}
	if c.Stateless() {
		return nil
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if c.DBStatementCache < 0 {
		return fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}
	return nil
}
