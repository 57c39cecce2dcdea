package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is constructed once at
// startup and passed by reference to each component; nothing mutates it.
type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	AES            AESConfig            `mapstructure:"aes"`
	Ledger         LedgerConfig         `mapstructure:"ledger"`
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation"`
	Jobs           JobsConfig           `mapstructure:"jobs"`
	Audit          AuditConfig          `mapstructure:"audit"`
	Notify         NotifyConfig         `mapstructure:"notify"`
	Log            LogConfig            `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

// LedgerConfig carries pool-level policy knobs.
type LedgerConfig struct {
	// AllocationApprovalThreshold: allocations at or above it start as
	// PENDING_APPROVAL with the wallet debit deferred.
	AllocationApprovalThreshold string        `mapstructure:"allocation_approval_threshold"`
	AllocationTTL               time.Duration `mapstructure:"allocation_ttl"`
	ReversalHold                time.Duration `mapstructure:"reversal_hold"`
	RiskAlertThreshold          int           `mapstructure:"risk_alert_threshold"` // 0-100 score
}

// ReconciliationConfig carries variance policy.
type ReconciliationConfig struct {
	// Tolerance is the absolute variance (same currency unit as balances)
	// above which supervisor approval is required.
	Tolerance       string `mapstructure:"tolerance"`
	OverridePINHash string `mapstructure:"override_pin_hash"` // Argon2id hash
}

// JobsConfig schedules the background sweeps (5-field cron expressions).
type JobsConfig struct {
	ReversalSweepCron    string `mapstructure:"reversal_sweep_cron"`
	AllocationExpiryCron string `mapstructure:"allocation_expiry_cron"`
}

// AuditConfig keys the audit trail's entry hash chain.
type AuditConfig struct {
	HMACSecret string `mapstructure:"hmac_secret"`
}

// NotifyConfig points at the external notification dispatcher.
type NotifyConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"` // empty = dispatch disabled
	HMACSecret string        `mapstructure:"hmac_secret"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BCL_ (Branch Cash Ledger).
// Nested keys use underscore: BCL_DATABASE_HOST, BCL_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "branch_cash_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "12h")
	v.SetDefault("jwt.issuer", "branch-cash-ledger")
	v.SetDefault("aes.key", "")
	v.SetDefault("ledger.allocation_approval_threshold", "50000.00")
	v.SetDefault("ledger.allocation_ttl", "24h")
	v.SetDefault("ledger.reversal_hold", "24h")
	v.SetDefault("ledger.risk_alert_threshold", 75)
	v.SetDefault("reconciliation.tolerance", "10.00")
	v.SetDefault("reconciliation.override_pin_hash", "")
	v.SetDefault("jobs.reversal_sweep_cron", "*/15 * * * *")
	v.SetDefault("jobs.allocation_expiry_cron", "*/5 * * * *")
	v.SetDefault("audit.hmac_secret", "")
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.hmac_secret", "")
	v.SetDefault("notify.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BCL_DATABASE_HOST -> database.host
	v.SetEnvPrefix("BCL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
