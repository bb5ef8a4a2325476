package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	CORS    CORSConfig
	Tracing TracingConfig
	Client  ClientConfig
}

type AppConfig struct {
	Port            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// AuthConfig guards mutating routes when Secret is non-empty.
type AuthConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TracingConfig struct {
	Exporter     string // none, stdout or otlp
	OTLPEndpoint string
	ServiceName  string
}

// ClientConfig is read by productctl.
type ClientConfig struct {
	APIURL  string
	Token   string
	Timeout time.Duration
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

var validExporters = map[string]bool{"none": true, "stdout": true, "otlp": true}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "products")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("AUTH_TOKEN_EXPIRY", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("TRACING_EXPORTER", "none")
	v.SetDefault("TRACING_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("TRACING_SERVICE_NAME", "product-catalog")

	v.SetDefault("API_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT", "10s")
}

// LoadConfig reads an optional .env file in the working directory, then the environment.
func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Load reads configuration from envFile (skipped when missing) and the process environment.
// Environment variables take precedence over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Port:            v.GetString("APP_PORT"),
			Env:             v.GetString("APP_ENV"),
			LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("CACHE_TTL"),
		},
		Auth: AuthConfig{
			Secret:      v.GetString("AUTH_SECRET"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Tracing: TracingConfig{
			Exporter:     strings.ToLower(v.GetString("TRACING_EXPORTER")),
			OTLPEndpoint: v.GetString("TRACING_OTLP_ENDPOINT"),
			ServiceName:  v.GetString("TRACING_SERVICE_NAME"),
		},
		Client: ClientConfig{
			APIURL:  strings.TrimRight(v.GetString("API_URL"), "/"),
			Token:   v.GetString("API_TOKEN"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("APP_PORT is required")
	}
	if !validLogLevels[c.App.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.App.LogLevel)
	}
	if c.App.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.DB.MaxOpenConns < 1 {
		return errors.New("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.DB.MaxIdleConns < 0 {
		return errors.New("DB_MAX_IDLE_CONNS must not be negative")
	}
	if c.Redis.Enabled && c.Redis.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive when REDIS_ENABLED is set")
	}
	if c.Auth.Secret != "" && c.Auth.TokenExpiry <= 0 {
		return errors.New("AUTH_TOKEN_EXPIRY must be positive")
	}
	if !validExporters[c.Tracing.Exporter] {
		return fmt.Errorf("invalid tracing exporter: %s (must be none, stdout or otlp)", c.Tracing.Exporter)
	}
	if c.Client.APIURL == "" {
		return errors.New("API_URL is required")
	}
	return nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
