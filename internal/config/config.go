package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`
	RunMigrations    bool   `koanf:"run_migrations"`

	HTTPPort        string `koanf:"http_port"`
	OperatorWorkers int    `koanf:"operator_workers"`

	RedisAddress  string        `koanf:"redis_address"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`

	JWTSecret       string        `koanf:"jwt_secret"`
	JWTIssuer       string        `koanf:"jwt_issuer"`
	JWTAudience     string        `koanf:"jwt_audience"`
	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`

	AMQPURL      string `koanf:"amqp_url"`
	AMQPExchange string `koanf:"amqp_exchange"`

	AutopayEnabled  bool   `koanf:"autopay_enabled"`
	AutopaySchedule string `koanf:"autopay_schedule"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"postgres_address":  "localhost",
	"postgres_port":     "5433",
	"postgres_db":       "postgres",
	"postgres_username": "postgres",
	"postgres_password": "testpassword",
	"run_migrations":    false,

	"http_port":        "9446",
	"operator_workers": 4,

	"redis_address":  "localhost:6379",
	"redis_password": "",
	"redis_db":       0,
	"cache_ttl":      "5m",

	"jwt_secret":        "",
	"jwt_issuer":        "budgetforge",
	"jwt_audience":      "budgetforge-clients",
	"access_token_ttl":  "15m",
	"refresh_token_ttl": "168h",

	"amqp_url":      "",
	"amqp_exchange": "budgetforge",

	"autopay_enabled":  true,
	"autopay_schedule": "@daily",
}

const minSecretLength = 32

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, known := defaults[key]; !known {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ProcessEnvironmentVariables loads the configuration without a config file.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load("")
}

func (c *Config) Validate() error {
	var errs []error
	// No default secret ships with the server; every deployment sets its own.
	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("jwt_secret is required"))
	case len(c.JWTSecret) < minSecretLength:
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d characters", minSecretLength))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, errors.New("operator_workers must be positive"))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("access_token_ttl must be positive"))
	}
	if c.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("refresh_token_ttl must be positive"))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http_port is required"))
	}
	return errors.Join(errs...)
}

// PostgresURL is the connection string for lib/pq and golang-migrate.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
