package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Matching     MatchingConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int `validate:"min=1,max=65535"`
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	User     string `validate:"required"`
	Password string
	DBName   string `validate:"required"`
	SSLMode  string `validate:"oneof=disable require verify-ca verify-full"`
}

// RedisConfig is optional. With no host, auto-match runs are not locked
// across instances and the last report is not kept.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int `validate:"min=0"`
}

type JWTConfig struct {
	AdminSecret string `validate:"required,min=32"`
	Issuer      string
}

// MatchingConfig tunes auto-match runs. LockTTL bounds how long a crashed
// run keeps other instances out; a live run refreshes its lock.
type MatchingConfig struct {
	MinimumScore      int           `validate:"min=0,max=100"`
	Workers           int           `validate:"min=1,max=64"`
	MaxReportedErrors int           `validate:"min=1"`
	LockTTL           time.Duration `validate:"min=1s"`
}

type LoggingConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	JSON  bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("JWT_ISSUER", "firstrubyfriend")
	v.SetDefault("MATCH_MINIMUM_SCORE", 30)
	v.SetDefault("MATCH_WORKERS", 1)
	v.SetDefault("MATCH_MAX_REPORTED_ERRORS", 100)
	v.SetDefault("MATCH_LOCK_TTL", 5*time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AdminSecret: v.GetString("JWT_ADMIN_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
		},
		Matching: MatchingConfig{
			MinimumScore:      v.GetInt("MATCH_MINIMUM_SCORE"),
			Workers:           v.GetInt("MATCH_WORKERS"),
			MaxReportedErrors: v.GetInt("MATCH_MAX_REPORTED_ERRORS"),
			LockTTL:           v.GetDuration("MATCH_LOCK_TTL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			JSON:  v.GetBool("LOG_JSON"),
		},
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Redis.Host != "" && c.Redis.Port == 0 {
		return fmt.Errorf("redis port is required when redis host is set")
	}
	return nil
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
