// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the full service configuration.
type Config struct {
	Server     Server
	Storage    Storage
	Redis      RedisConfig
	Kafka      KafkaConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Governance GovernanceConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"PEZKUWI_ADDR,default=:8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	SeedDemoData    bool          `env:"SEED_DEMO_DATA,default=true"`
}

// Storage selects the backing store.
type Storage struct {
	Driver       string        `env:"STORAGE_DRIVER,default=memory"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS,default=5"`
	ConnMaxLife  time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`
	TxTimeout    time.Duration `env:"DB_TX_TIMEOUT,default=5s"`
}

// RedisConfig is optional; an empty URL disables Redis.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE,default=10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS,default=2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT,default=5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT,default=3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT,default=3s"`
	LockTTL      time.Duration `env:"REDIS_LOCK_TTL,default=10s"`
}

// KafkaConfig is optional; no brokers disables the audit sink.
type KafkaConfig struct {
	Brokers           string `env:"KAFKA_BROKERS"`
	AuditTopic        string `env:"AUDIT_TOPIC,default=pezkuwi.audit"`
	Partitions        int    `env:"AUDIT_TOPIC_PARTITIONS,default=3"`
	ReplicationFactor int    `env:"AUDIT_TOPIC_REPLICATION,default=1"`
}

// BrokerList splits the comma separated broker string.
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=json"`
}

// RateLimitConfig is the per-IP token bucket. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,default=20"`
	Burst int     `env:"RATE_LIMIT_BURST,default=40"`
}

// GovernanceConfig schedules the proposal resolution sweep.
type GovernanceConfig struct {
	ResolveSchedule string `env:"GOVERNANCE_RESOLVE_SCHEDULE,default=@every 1m"`
}

// Load reads an optional .env file and decodes the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv decodes the process environment without touching .env files.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	return nil
}
