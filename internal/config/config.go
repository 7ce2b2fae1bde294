package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingEnv is wrapped by Load when a required key has no value.
var ErrMissingEnv = errors.New("missing required environment variable")

// Config holds everything the service reads from its environment.
type Config struct {
	DatabaseURL    string
	JWTSecret      string // carried for the gateway contract; never used to verify requests here
	Algorithm      string
	UserServiceURL string
	Port           int
	RabbitMQURL    string
	Environment    string
}

// ListenAddr returns the address Fiber should listen on.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from a local .env file (if any) and the process environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("ALGORITHM", "HS256")
	v.SetDefault("USER_SERVICE_URL", "http://localhost:3000/api/users")
	v.SetDefault("PORT", 8000)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("APP_ENV", "development")
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:    strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:      v.GetString("JWT_SECRET"),
		Algorithm:      v.GetString("ALGORITHM"),
		UserServiceURL: v.GetString("USER_SERVICE_URL"),
		Port:           v.GetInt("PORT"),
		RabbitMQURL:    strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		Environment:    v.GetString("APP_ENV"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnv)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET", ErrMissingEnv)
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}

	return cfg, nil
}
