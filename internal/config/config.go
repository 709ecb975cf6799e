package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT, default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`

	MySQLDSN string `env:"MYSQL_DSN, default=user:password@tcp(localhost:3306)/mybudget?charset=utf8mb4&parseTime=True&loc=Local"`

	RedisAddr string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,   default=0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	JWTSecret       string        `env:"JWT_SECRET, default=change-me"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL, default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	// RefreshRotation revokes a refresh token on first use so each one is single-shot.
	RefreshRotation bool `env:"AUTH_REFRESH_ROTATION, default=false"`

	// RateLimitWrite caps requests per minute on the auth endpoints.
	RateLimitWrite int `env:"RATE_LIMIT_WRITE, default=10"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with defaults applied.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}
