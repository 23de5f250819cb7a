package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevJWTSecret is used only when APP_ENV=development and JWT_SECRET is unset.
const DevJWTSecret = "projecthub-development-secret-do-not-deploy"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"production"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"mysql"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"root:root@tcp(localhost:3306)/project_management?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB     bool   `env:"RESET_DB"`

	JWTSecret       string        `env:"JWT_SECRET"`
	JWTAlgorithm    string        `env:"JWT_ALGORITHM" envDefault:"HS256"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"60m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"12"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	SwaggerHost        string   `env:"SWAGGER_HOST"`

	// UsingDevSecret is set by Load when the development fallback secret is in effect.
	UsingDevSecret bool
}

// Load builds Config from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) finalize() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET must be set outside development")
		}
		c.JWTSecret = DevJWTSecret
		c.UsingDevSecret = true
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm)
	}

	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
}
