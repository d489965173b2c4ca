package config

import (
	"github.com/doctornein/dynasty-tokens/internal/logger"
)

// Config is the full application configuration tree, loaded once at startup.
type Config struct {
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Server   ServerConfig        `mapstructure:"server"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Redis    RedisConfig         `mapstructure:"redis"`
	Provider ProviderConfig      `mapstructure:"provider"`
}

// ServerConfig covers the HTTP listener and the shared secret that guards
// the settlement trigger endpoints (external cron calls them with a bearer).
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	SettlementToken string `mapstructure:"settlement_token"`
}

// PostgresConfig mirrors the pgxpool tuning knobs we expose.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
}

// RedisConfig configures the provider response cache. Cache is optional:
// an empty Addr disables it and the provider client is used directly.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

// ProviderConfig points at the external sports-data API.
type ProviderConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}
