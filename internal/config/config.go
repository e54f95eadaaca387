package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Store       StoreConfig       `yaml:"store"`
	Auth        AuthConfig        `yaml:"auth"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Rewards     RewardsConfig     `yaml:"rewards"`
	Leveling    LevelingConfig    `yaml:"leveling"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Redis       RedisConfig       `yaml:"redis"`
	RabbitMQ    RabbitMQConfig    `yaml:"rabbitmq"`
	Outbox      OutboxConfig      `yaml:"outbox"`
	Reconcile   ReconcileConfig   `yaml:"reconcile"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Idempotency-Key,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`

	ApplicationName   string        `yaml:"application_name"    env:"DATABASE_APPLICATION_NAME"    env-default:"ecobin-rewards"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period" env:"DATABASE_HEALTH_CHECK_PERIOD" env-default:"30s"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"     env:"DATABASE_CONNECT_TIMEOUT"     env-default:"30s"`
}

// StoreConfig bounds every unit of work against the database.
type StoreConfig struct {
	QueryTimeout         time.Duration `yaml:"query_timeout"          env:"STORE_QUERY_TIMEOUT"          env-default:"5s"`
	MaxRetries           int           `yaml:"max_retries"            env:"STORE_MAX_RETRIES"            env-default:"3"`
	RetryInitialInterval time.Duration `yaml:"retry_initial_interval" env:"STORE_RETRY_INITIAL_INTERVAL" env-default:"50ms"`
	RetryMaxInterval     time.Duration `yaml:"retry_max_interval"     env:"STORE_RETRY_MAX_INTERVAL"     env-default:"1s"`
}

// AuthConfig holds settings for validating tokens issued by the identity provider.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"ecobin"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request throttling settings.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_REQUESTS_PER_SECOND" env-default:"10"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"20"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

// RewardsConfig holds the pricing table.
type RewardsConfig struct {
	// RatesRaw lists "material:rate/xpPerKg/carbonPerKg" entries separated by commas.
	RatesRaw          string `yaml:"rates"              env:"REWARDS_RATES"              env-default:"plastic:0.50/10/2.5,glass:0.30/8/1.5,metal:0.80/15/3.0,paper:0.20/5/1.0,organic:0.10/3/0.5"`
	CurrencyPrecision int32  `yaml:"currency_precision" env:"REWARDS_CURRENCY_PRECISION" env-default:"2"`
	// MaxWeightKg caps a single deposit. Heavier weights fail as invalid.
	MaxWeightKg float64 `yaml:"max_weight_kg" env:"REWARDS_MAX_WEIGHT_KG" env-default:"1000"`

	// Rates is parsed from RatesRaw during validation.
	Rates []MaterialRate `yaml:"-" env:"-"`
}

// MaterialRate is one row of the pricing table.
type MaterialRate struct {
	Material    string
	RatePerKg   decimal.Decimal
	XPPerKg     decimal.Decimal
	CarbonPerKg decimal.Decimal
}

// LevelingConfig holds the XP thresholds of the eco levels.
type LevelingConfig struct {
	// ThresholdsRaw lists "Label:minXP" entries in ascending order.
	ThresholdsRaw string `yaml:"thresholds" env:"LEVELING_THRESHOLDS" env-default:"Eco Rookie:0,Green Sprout:100,Recycling Ranger:500,Eco Champion:1500,Planet Protector:5000"`

	// Thresholds is parsed from ThresholdsRaw during validation.
	Thresholds []LevelThreshold `yaml:"-" env:"-"`
}

// LevelThreshold is the minimum XP required for a level.
type LevelThreshold struct {
	Label string
	MinXP int64
}

// LeaderboardConfig holds leaderboard read settings.
type LeaderboardConfig struct {
	DefaultN int           `yaml:"default_n" env:"LEADERBOARD_DEFAULT_N" env-default:"10"`
	MaxN     int           `yaml:"max_n"     env:"LEADERBOARD_MAX_N"     env-default:"100"`
	PageSize int           `yaml:"page_size" env:"LEADERBOARD_PAGE_SIZE" env-default:"50"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"LEADERBOARD_CACHE_TTL" env-default:"15s"`
}

// RedisConfig holds the optional cache connection. Empty Addr disables caching.
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"REDIS_ADDR"`
	Password  string `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"ecobin"`
}

// RabbitMQConfig holds the optional broker connection. Empty URL disables the
// outbox relay.
type RabbitMQConfig struct {
	URL      string `yaml:"url"      env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"ecobin.events"`
}

// OutboxConfig holds outbox relay settings.
type OutboxConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"OUTBOX_POLL_INTERVAL" env-default:"2s"`
	BatchSize    int           `yaml:"batch_size"    env:"OUTBOX_BATCH_SIZE"    env-default:"50"`
	MaxAttempts  int           `yaml:"max_attempts"  env:"OUTBOX_MAX_ATTEMPTS"  env-default:"10"`
	// Lease hides claimed events from other relays while they are published.
	// An event whose outcome is not recorded within it is published again.
	Lease time.Duration `yaml:"lease" env:"OUTBOX_LEASE" env-default:"1m"`
}

// ReconcileConfig holds the ledger reconciliation schedule.
type ReconcileConfig struct {
	Enabled   bool   `yaml:"enabled"    env:"RECONCILE_ENABLED"    env-default:"false"`
	Schedule  string `yaml:"schedule"   env:"RECONCILE_SCHEDULE"   env-default:"@every 1h"`
	BatchSize int    `yaml:"batch_size" env:"RECONCILE_BATCH_SIZE" env-default:"500"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// CacheEnabled reports whether a Redis address is configured.
func (c RedisConfig) CacheEnabled() bool { return c.Addr != "" }

// PublisherEnabled reports whether a broker URL is configured.
func (c RabbitMQConfig) PublisherEnabled() bool { return c.URL != "" }
