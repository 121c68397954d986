package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Quote  QuoteConfig
	Upload UploadConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUOTESVC_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTESVC_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUOTESVC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTESVC_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"QUOTESVC_APP_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTESVC_DB_DSN"`
	Driver string `envconfig:"QUOTESVC_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"QUOTESVC_DB_HOST"`
	Port     int    `envconfig:"QUOTESVC_DB_PORT" default:"5432"`
	User     string `envconfig:"QUOTESVC_DB_USER"`
	Password string `envconfig:"QUOTESVC_DB_PASSWORD"`
	Name     string `envconfig:"QUOTESVC_DB_NAME"`
	SSLMode  string `envconfig:"QUOTESVC_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTESVC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTESVC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTESVC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTESVC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("db dsn or host/user/name are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTESVC_REDIS_URL"`
	Address      string        `envconfig:"QUOTESVC_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTESVC_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTESVC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTESVC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTESVC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTESVC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTESVC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTESVC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"QUOTESVC_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"QUOTESVC_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"QUOTESVC_JWT_EXPIRATION_MINUTES" default:"60"`
}

type QuoteConfig struct {
	// TaxPercent is applied during totals collection, e.g. "8.25".
	TaxPercent string `envconfig:"QUOTESVC_QUOTE_TAX_PERCENT" default:"0"`
}

type UploadConfig struct {
	MediaDir     string `envconfig:"QUOTESVC_UPLOAD_MEDIA_DIR" default:"media"`
	MaxFileBytes int64  `envconfig:"QUOTESVC_UPLOAD_MAX_FILE_BYTES" default:"20971520"`
}
